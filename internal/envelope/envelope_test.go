package envelope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnvelope = `{
	"result-status-code": 0,
	"result-data-columns": 3,
	"result-data-lines": 2,
	"schema": [
		{"data": "lctn", "heading": "lctn", "unit": "string"},
		{"data": "state", "heading": "state", "unit": "string"},
		{"data": "count", "heading": "Count", "unit": "long"}
	],
	"data": [["R0-CH0-N1", "A", 4], ["R0-CH0-N2", null, 1.5]]
}`

func TestParse(t *testing.T) {
	env, err := Parse(sampleEnvelope)
	require.NoError(t, err)

	assert.Equal(t, 0, env.StatusCode)
	assert.False(t, env.Failed())
	assert.Equal(t, 3, env.ColumnCount)
	assert.Equal(t, 2, env.RowCount)
	require.Len(t, env.Rows, 2)

	assert.Equal(t, []Column{
		{Key: "lctn", Heading: "lctn", Unit: "string"},
		{Key: "state", Heading: "state", Unit: "string"},
		{Key: "count", Heading: "Count", Unit: "long"},
	}, env.Schema)
	assert.Equal(t, "COUNT", env.Schema[2].DisplayHeading())

	assert.Equal(t, "R0-CH0-N1", env.Rows[0][0].String())
	assert.Equal(t, `"R0-CH0-N1"`, env.Rows[0][0].Raw)
	assert.Equal(t, "4", env.Rows[0][2].String())
	assert.True(t, env.Rows[1][1].IsNull())
	assert.Equal(t, "-", env.Rows[1][1].String())
	assert.Equal(t, "", env.Rows[1][1].Text())
	assert.Equal(t, "1.5", env.Rows[1][2].String())

	cell, ok := env.Value(env.Rows[0], "state")
	require.True(t, ok)
	assert.Equal(t, "A", cell.String())
	_, ok = env.Value(env.Rows[0], "missing")
	assert.False(t, ok)
}

func TestParse_ErrorRows(t *testing.T) {
	raw := `{"result-status-code": 1, "result-data-columns": 1, "result-data-lines": 1,
		"schema": [{"data": "error", "heading": "error", "unit": "string"}],
		"data": [["ignored"]],
		"error": [["Location R9 not found"]]}`

	env, err := Parse(raw)
	require.NoError(t, err)
	assert.True(t, env.Failed())
	require.Len(t, env.Rows, 1)
	assert.Equal(t, "Location R9 not found", env.Rows[0][0].String())
}

func TestParse_Defaults(t *testing.T) {
	raw := `{"result-status-code": 0,
		"schema": [{"data": "id", "heading": "id"}, {"data": "type", "heading": "type"}],
		"data": [["1", "TEST"]]}`

	env, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, env.ColumnCount)
	assert.Equal(t, 1, env.RowCount)
}

func TestParse_ZeroLinesTruncates(t *testing.T) {
	raw := `{"result-status-code": 0, "result-data-columns": 1, "result-data-lines": 0,
		"schema": [{"data": "id", "heading": "id"}],
		"data": [[]]}`

	env, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, env.RowCount)
	assert.Empty(t, env.Rows)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `Internal Server Error`},
		{"empty", ``},
		{"array", `[1, 2]`},
		{"missing status", `{"schema": [], "data": []}`},
		{"missing schema", `{"result-status-code": 0, "data": []}`},
		{"status not integer", `{"result-status-code": "ok", "schema": []}`},
		{"more lines than rows", `{"result-status-code": 0, "result-data-lines": 2, "schema": [{"data": "id"}], "data": [["1"]]}`},
		{"short row", `{"result-status-code": 0, "schema": [{"data": "id"}, {"data": "type"}], "data": [["1"]]}`},
		{"row not array", `{"result-status-code": 0, "schema": [{"data": "id"}], "data": ["1"]}`},
		{"more columns than schema", `{"result-status-code": 0, "result-data-columns": 3, "schema": [{"data": "id"}], "data": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var malformed *MalformedEnvelopeError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.raw, malformed.Raw)
		})
	}
}

func TestIsEnvelope(t *testing.T) {
	assert.True(t, IsEnvelope(sampleEnvelope))
	assert.False(t, IsEnvelope(`{"compute": {}}`))
	assert.False(t, IsEnvelope(`not json`))
	assert.False(t, IsEnvelope(`[]`))
}

func TestParseGroup(t *testing.T) {
	raw := `{
		"compute": {"result-status-code": 0, "schema": [{"data": "lctn", "heading": "lctn"}], "data": [["R0-CH0-N1"]]},
		"service": {"result-status-code": 0, "schema": [{"data": "lctn", "heading": "lctn"}], "data": []}
	}`

	group, err := ParseGroup(raw)
	require.NoError(t, err)
	require.Len(t, group, 2)
	assert.Equal(t, "compute", group[0].Name)
	assert.Equal(t, 1, group[0].Envelope.RowCount)
	assert.Equal(t, "service", group[1].Name)
	assert.Equal(t, 0, group[1].Envelope.RowCount)

	_, err = ParseGroup(sampleEnvelope)
	assert.Error(t, err)
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{"owner", "W", "WLM"},
		{"OWNER", "F", "Free Pool"},
		{"state", "A", "Active"},
		{"state", "K", "Kernel boot started"},
		{"wlmnodestate", "M", "Maintenance"},
		{"state", "Z", "Z"},
		{"lctn", "A", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultDecoder.Decode(tt.key, tt.value))
		})
	}
}
