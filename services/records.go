package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// SemanticScoreField is the leading key of a serialized semantic hit.
const SemanticScoreField = "_semantic_score"

// MarshalJSON writes the record with its keys in column order.
func (m RowMatch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"index":`)
	buf.WriteString(strconv.Itoa(m.Index))
	buf.WriteString(`,"record":{`)
	if err := writeFields(&buf, m.Columns, m.Record, false); err != nil {
		return nil, err
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// MarshalJSON writes the score first, then the row's columns in sheet order.
func (m SemanticMatch) MarshalJSON() ([]byte, error) {
	score, err := json.Marshal(m.Score)
	if err != nil {
		return nil, fmt.Errorf("semantic score: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"` + SemanticScoreField + `":`)
	buf.Write(score)
	if err := writeFields(&buf, m.Columns, m.Record, true); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat semantic hit, keeping the column order it was written in.
func (m *SemanticMatch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok != json.Delim('{') {
		return fmt.Errorf("semantic hit: expected object, got %v", tok)
	}

	*m = SemanticMatch{RowMatch: RowMatch{Record: make(map[string]interface{})}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if key == SemanticScoreField {
			if err := dec.Decode(&m.Score); err != nil {
				return fmt.Errorf("semantic score: %w", err)
			}
			continue
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if _, seen := m.Record[key]; !seen {
			m.Columns = append(m.Columns, key)
		}
		m.Record[key] = value
	}
	_, err := dec.Token()
	return err
}

// writeFields writes record entries as `"key":value` pairs. Keys follow columns;
// keys not listed there come after them in sorted order.
func writeFields(buf *bytes.Buffer, columns []string, record map[string]interface{}, leadingComma bool) error {
	first := !leadingComma
	for _, key := range fieldOrder(columns, record) {
		if key == SemanticScoreField && leadingComma {
			continue
		}
		name, err := json.Marshal(key)
		if err != nil {
			return err
		}
		value, err := json.Marshal(record[key])
		if err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	return nil
}

func fieldOrder(columns []string, record map[string]interface{}) []string {
	keys := make([]string, 0, len(record))
	listed := make(map[string]bool, len(columns))
	for _, col := range columns {
		if _, ok := record[col]; ok && !listed[col] {
			keys = append(keys, col)
			listed[col] = true
		}
	}

	var rest []string
	for key := range record {
		if !listed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
