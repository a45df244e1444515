package normalize

import (
	"errors"
	"sort"

	"github.com/tsawler/gridframe/model"
)

// ErrEmptyResult is returned when there are no frames to unify.
var ErrEmptyResult = errors.New("no frames found")

// Unify reads each frame as one record and aligns every record to the
// sorted union of field names. When a frame repeats a name, its first
// value wins. Names a frame lacks get "".
func Unify(frames []model.Frame) (*model.UnifiedTable, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyResult
	}

	records := make([]model.Record, len(frames))
	seen := make(map[string]struct{})
	for i, f := range frames {
		records[i] = f.Record()
		for _, field := range records[i] {
			seen[field.Name] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	table := &model.UnifiedTable{
		Columns: columns,
		Records: make([]model.Record, len(records)),
	}
	for i, rec := range records {
		values := make(map[string]string, len(rec))
		for _, field := range rec {
			if _, ok := values[field.Name]; !ok {
				values[field.Name] = field.Value
			}
		}

		aligned := make(model.Record, len(columns))
		for j, name := range columns {
			aligned[j] = model.Field{Name: name, Value: values[name]}
		}
		table.Records[i] = aligned
	}
	return table, nil
}
