// Package normalize turns detected frames into a single unified record set.
//
// The pipeline has three steps:
//
//  1. [SplitColumns] melts wide frames into two-column frames that share
//     the label column.
//  2. [PromoteHeader] rewrites the first row of each frame into a
//     ("Title", label) pair.
//  3. [Unify] reads each frame as one record and aligns all records to the
//     sorted union of field names.
//
// [Pipeline] runs all three in order.
package normalize
