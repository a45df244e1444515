package normalize

import "github.com/tsawler/gridframe/model"

// TitleField is the field name given to a frame's promoted first row.
const TitleField = "Title"

// PromoteHeader copies the frame as (label, value) pairs and replaces the
// first row with (TitleField, label of the first row). The first row's
// original value is dropped. Empty frames pass through.
func PromoteHeader(f model.Frame) model.Frame {
	if len(f) == 0 {
		return f
	}
	out := make(model.Frame, len(f))
	for i, row := range f {
		out[i] = model.Row{row.Label(), row.Value()}
	}
	out[0] = model.Row{TitleField, f[0].Label()}
	return out
}
