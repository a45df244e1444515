package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/gridframe/model"
)

// jsonRecord marshals a record as an object with keys in field order.
type jsonRecord model.Record

func (r jsonRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, t *model.UnifiedTable) error {
	records := make([]jsonRecord, len(t.Records))
	for i, rec := range t.Records {
		records[i] = jsonRecord(rec)
	}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeYAML(buf *bytes.Buffer, t *model.UnifiedTable) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range t.Records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range rec {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
			)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeTable(buf *bytes.Buffer, t *model.UnifiedTable) {
	tw := table.NewWriter()
	tw.SetOutputMirror(buf)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, rec := range t.Records {
		row := make(table.Row, len(rec))
		for i, f := range rec {
			row[i] = f.Value
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(buf, "(%d rows)\n", len(t.Records))
}
