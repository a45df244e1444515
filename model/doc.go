// Package model holds the data structures that flow through the
// grid-to-records pipeline.
//
// # Frames
//
// A [Frame] is one table found in a grid. Each [Row] starts with a label
// cell followed by value cells:
//
//	frame := model.Frame{
//	    {"Name", "Alice", "Bob"},
//	    {"Age", "30", "41"},
//	}
//
// The [FrameRange] recorded for a frame is its bounding box in the grid.
// Both Tail coordinates are exclusive.
//
// # Records
//
// After normalization each frame is reduced to one [Record], an ordered list
// of [Field] values. A [UnifiedTable] is a set of records that all share the
// same ordered column names, which is what the renderers expect.
package model
