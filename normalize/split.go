package normalize

import "github.com/tsawler/gridframe/model"

// SplitColumns melts wide frames. A frame whose first row has at most two
// cells passes through unchanged. A frame with N value columns becomes N
// frames, the i-th holding [label, row[i]] for every row.
//
// Rows shorter than the first row contribute "" for missing values.
func SplitColumns(frames []model.Frame) []model.Frame {
	out := make([]model.Frame, 0, len(frames))
	for _, f := range frames {
		width := f.ColCount()
		if width <= 2 {
			out = append(out, f)
			continue
		}
		for i := 1; i < width; i++ {
			melted := make(model.Frame, 0, len(f))
			for _, row := range f {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				melted = append(melted, model.Row{row.Label(), value})
			}
			out = append(out, melted)
		}
	}
	return out
}
