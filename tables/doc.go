// Package tables finds the individual tables ("frames") inside a grid of
// cell text.
//
// A single sheet often holds several tables separated by blank rows or
// columns. Nobody tells us where they are, so the detector has to discover
// the boundaries itself.
//
// # Detectors
//
// Frame detection is performed by types implementing the [Detector]
// interface. The package provides:
//
//   - [RegionDetector] - bounded flood fill over non-blank cells
//
// Detectors are registered globally and can be created by name:
//
//	detector := tables.GetDetector("region")
//	frames, err := detector.Detect(g)
//
// # Region Detection
//
// The [RegionDetector] scans columns left to right and rows top to bottom.
// Each unvisited non-blank cell starts a region scan:
//
//  1. Walk right along the row, widening the region whenever a non-blank
//     cell is found
//  2. Keep walking through blank cells while inside the current width
//  3. Move to the next row at the first blank cell past the width
//  4. Stop at the first row that is blank across the whole width
//
// Every cell a scan reads is marked visited and never starts another
// region, even when it lies in the trailing blank row outside the recorded
// range.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 2
//	detector.Configure(config)
//
// The defaults keep every detected frame.
package tables
