package normalize

import "github.com/tsawler/gridframe/model"

// Process transforms one frame into another. A Process must not modify its
// input.
type Process func(model.Frame) model.Frame

// Apply runs p over every frame and returns the results in order.
func Apply(frames []model.Frame, p Process) []model.Frame {
	out := make([]model.Frame, 0, len(frames))
	for _, f := range frames {
		out = append(out, p(f))
	}
	return out
}

// Pipeline splits, promotes and unifies frames.
func Pipeline(frames []model.Frame) (*model.UnifiedTable, error) {
	split := SplitColumns(frames)
	promoted := Apply(split, PromoteHeader)
	return Unify(promoted)
}
