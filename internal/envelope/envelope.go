// Package envelope parses the self-describing result documents returned by
// the REST server.
//
// An envelope looks like
//
//	{
//	  "result-status-code": 0,
//	  "result-data-columns": 2,
//	  "result-data-lines": 1,
//	  "schema": [{"data": "id", "heading": "id", "unit": "string"}, ...],
//	  "data": [["1", "TEST"]]
//	}
//
// Rows are positional; the schema maps each position to a logical key and a
// display heading. A non-zero status carries its rows under "error" instead
// of "data".
package envelope

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

const (
	keyStatus  = "result-status-code"
	keyColumns = "result-data-columns"
	keyLines   = "result-data-lines"
	keySchema  = "schema"
	keyData    = "data"
	keyError   = "error"
)

// Column describes one position of every row.
type Column struct {
	// Key is the backend logical key, e.g. "lctn".
	Key     string
	Heading string
	Unit    string
}

// DisplayHeading is the heading as shown in table headers.
func (c Column) DisplayHeading() string {
	return strings.ToUpper(c.Heading)
}

// Envelope is a parsed result document.
type Envelope struct {
	StatusCode  int
	Schema      []Column
	Rows        [][]Cell
	RowCount    int
	ColumnCount int
}

// Index returns the position of the column with logical key key, or -1.
func (e *Envelope) Index(key string) int {
	for i, c := range e.Schema {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Value returns row's cell for logical key key.
func (e *Envelope) Value(row []Cell, key string) (Cell, bool) {
	i := e.Index(key)
	if i < 0 || i >= len(row) {
		return Cell{}, false
	}
	return row[i], true
}

// Failed reports whether the backend returned an error status. Rows then
// hold error rows.
func (e *Envelope) Failed() bool {
	return e.StatusCode != 0
}

// Parse parses raw into an Envelope.
func Parse(raw string) (*Envelope, error) {
	v, err := fastjson.Parse(raw)
	if err != nil {
		return nil, &MalformedEnvelopeError{Raw: raw, Reason: "invalid JSON"}
	}
	return FromValue(v, raw)
}

// IsEnvelope reports whether raw is a JSON object with the envelope's
// required fields.
func IsEnvelope(raw string) bool {
	v, err := fastjson.Parse(raw)
	if err != nil {
		return false
	}
	return isEnvelopeValue(v)
}

func isEnvelopeValue(v *fastjson.Value) bool {
	return v.Type() == fastjson.TypeObject && v.Exists(keyStatus) && v.Exists(keySchema)
}

// FromValue builds an Envelope from an already parsed document. raw is kept
// for error reporting.
func FromValue(v *fastjson.Value, raw string) (*Envelope, error) {
	malformed := func(format string, args ...interface{}) error {
		return &MalformedEnvelopeError{Raw: raw, Reason: fmt.Sprintf(format, args...)}
	}

	if v.Type() != fastjson.TypeObject {
		return nil, malformed("expected an object, got %s", v.Type())
	}
	if !v.Exists(keyStatus) {
		return nil, malformed("missing %s", keyStatus)
	}
	status, err := v.Get(keyStatus).Int()
	if err != nil {
		return nil, malformed("%s is not an integer", keyStatus)
	}

	schemaValue := v.Get(keySchema)
	if schemaValue == nil {
		return nil, malformed("missing %s", keySchema)
	}
	env := &Envelope{StatusCode: status}
	if schemaValue.Type() != fastjson.TypeNull {
		entries, err := schemaValue.Array()
		if err != nil {
			return nil, malformed("%s is not an array", keySchema)
		}
		for i, entry := range entries {
			if entry.Type() != fastjson.TypeObject {
				return nil, malformed("%s[%d] is not an object", keySchema, i)
			}
			env.Schema = append(env.Schema, Column{
				Key:     string(entry.GetStringBytes("data")),
				Heading: string(entry.GetStringBytes("heading")),
				Unit:    string(entry.GetStringBytes("unit")),
			})
		}
	}

	env.ColumnCount = len(env.Schema)
	if v.Exists(keyColumns) {
		n, err := v.Get(keyColumns).Int()
		if err != nil || n < 0 {
			return nil, malformed("%s is not a count", keyColumns)
		}
		if n > len(env.Schema) {
			return nil, malformed("%s is %d but schema has %d entries", keyColumns, n, len(env.Schema))
		}
		env.ColumnCount = n
		env.Schema = env.Schema[:n]
	}

	rowsKey := keyData
	if status != 0 {
		rowsKey = keyError
	}
	var rows []*fastjson.Value
	if rv := v.Get(rowsKey); rv != nil && rv.Type() != fastjson.TypeNull {
		rows, err = rv.Array()
		if err != nil {
			return nil, malformed("%s is not an array", rowsKey)
		}
	}

	lines := len(rows)
	if v.Exists(keyLines) {
		n, err := v.Get(keyLines).Int()
		if err != nil || n < 0 {
			return nil, malformed("%s is not a count", keyLines)
		}
		if n > len(rows) {
			return nil, malformed("%s is %d but %s has %d rows", keyLines, n, rowsKey, len(rows))
		}
		lines = n
	}

	for i, row := range rows[:lines] {
		cells, err := row.Array()
		if err != nil {
			return nil, malformed("%s[%d] is not an array", rowsKey, i)
		}
		if len(cells) < env.ColumnCount {
			return nil, malformed("%s[%d] has %d values for %d columns", rowsKey, i, len(cells), env.ColumnCount)
		}
		out := make([]Cell, env.ColumnCount)
		for j := range out {
			out[j] = newCell(cells[j])
		}
		env.Rows = append(env.Rows, out)
	}
	env.RowCount = len(env.Rows)

	return env, nil
}

// Named is an envelope keyed by the name it had in a grouped response.
type Named struct {
	Name     string
	Envelope *Envelope
}

// ParseGroup parses a JSON object whose values are all envelopes, such as the
// per node type system-info response. Member order is preserved.
func ParseGroup(raw string) ([]Named, error) {
	v, err := fastjson.Parse(raw)
	if err != nil {
		return nil, &MalformedEnvelopeError{Raw: raw, Reason: "invalid JSON"}
	}
	if !IsGroupValue(v) {
		return nil, &MalformedEnvelopeError{Raw: raw, Reason: "expected an object of result envelopes"}
	}

	var (
		out      []Named
		firstErr error
	)
	obj, _ := v.Object()
	obj.Visit(func(key []byte, member *fastjson.Value) {
		if firstErr != nil {
			return
		}
		env, err := FromValue(member, member.String())
		if err != nil {
			firstErr = err
			return
		}
		out = append(out, Named{Name: string(key), Envelope: env})
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// IsGroupValue reports whether v is a non-empty object whose members are all
// envelopes.
func IsGroupValue(v *fastjson.Value) bool {
	obj, err := v.Object()
	if err != nil || obj.Len() == 0 || isEnvelopeValue(v) {
		return false
	}
	all := true
	obj.Visit(func(_ []byte, member *fastjson.Value) {
		if !isEnvelopeValue(member) {
			all = false
		}
	})
	return all
}
