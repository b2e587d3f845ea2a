package envelope

import (
	"github.com/valyala/fastjson"
)

// NullDisplay is shown in tables for JSON null.
const NullDisplay = "-"

// Cell is one value of a row. It keeps the value's compact JSON so raw
// output can reproduce it exactly.
type Cell struct {
	// Raw is the compact JSON encoding of the value.
	Raw   string
	kind  fastjson.Type
	text  string
	value *fastjson.Value
}

func newCell(v *fastjson.Value) Cell {
	if v == nil {
		return Cell{Raw: "null", kind: fastjson.TypeNull}
	}
	c := Cell{Raw: v.String(), kind: v.Type(), value: v}
	if c.kind == fastjson.TypeString {
		c.text = string(v.GetStringBytes())
	}
	return c
}

// StringCell returns a Cell holding s, for tests and synthesized rows.
func StringCell(s string) Cell {
	var a fastjson.Arena
	return newCell(a.NewString(s))
}

// IsNull reports whether the value is JSON null.
func (c Cell) IsNull() bool {
	return c.kind == fastjson.TypeNull
}

// IsString reports whether the value is a JSON string.
func (c Cell) IsString() bool {
	return c.kind == fastjson.TypeString
}

// String returns the display form: strings unquoted, null as NullDisplay and
// any other value as compact JSON.
func (c Cell) String() string {
	switch c.kind {
	case fastjson.TypeString:
		return c.text
	case fastjson.TypeNull:
		return NullDisplay
	default:
		return c.Raw
	}
}

// JSON returns the parsed value.
func (c Cell) JSON() *fastjson.Value {
	if c.value == nil {
		return fastjson.MustParse("null")
	}
	return c.value
}

// Text is String except that null becomes "".
func (c Cell) Text() string {
	if c.IsNull() {
		return ""
	}
	return c.String()
}
