package model

// Field is one named value of a record.
type Field struct {
	Name  string
	Value string
}

// Record is one logical entity: an ordered list of named fields.
type Record []Field

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (r Record) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Lookup returns the value of the first field called name.
func (r Record) Lookup(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// UnifiedTable is a record set in which every record carries the same
// ordered field names, given by Columns.
type UnifiedTable struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *UnifiedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
