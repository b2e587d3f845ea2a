package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucs/internal/envelope"
)

const summarySchema = `[
	{"data": "severity", "heading": "severity"},
	{"data": "lctn", "heading": "lctn"},
	{"data": "type", "heading": "type"},
	{"data": "detail", "heading": "detail"},
	{"data": "controloperation", "heading": "controloperation"},
	{"data": "time", "heading": "time"}
]`

func envelopeWith(t *testing.T, rows string) *envelope.Envelope {
	t.Helper()
	env, err := envelope.Parse(`{"result-status-code": 0, "schema": ` + summarySchema + `, "data": ` + rows + `}`)
	require.NoError(t, err)
	return env
}

func TestAggregate_CompositeFirstSeenOrder(t *testing.T) {
	env := envelopeWith(t, `[
		["ERROR", "A", "T1", "d1", "None", "2019-07-09 10:00:00.000000"],
		["ERROR", "B", "T1", "d2", "None", "2019-07-09 10:00:01.000000"],
		["FATAL", "A", "T2", "d3", "ErrorOnNode", "2019-07-09 10:00:02.000000"],
		["ERROR", "A", "T1", "d4", "None", "2019-07-09 10:00:03.000000"]
	]`)

	report, err := Aggregate(env)
	require.NoError(t, err)

	var keys []CompositeKey
	for _, g := range report.Composite {
		keys = append(keys, g.CompositeKey)
	}
	assert.Equal(t, []CompositeKey{{"A", "T1"}, {"B", "T1"}, {"A", "T2"}}, keys)
	assert.Equal(t, 2, report.Composite[0].Count)
	assert.Equal(t, "2019-07-09 10:00:03.000000", report.Composite[0].Time)
	assert.Equal(t, "ErrorOnNode", report.Composite[2].ControlOperation)
}

func TestAggregate_Counts(t *testing.T) {
	env := envelopeWith(t, `[
		["WARN", "node10", "T1", "old", "None", "2019-07-09 10:00:00.000000"],
		["ERROR", "node9", "T2", "x", "None", "2019-07-09 10:00:00.000000"],
		["WARN", "node10", "T1", "new", "None", "2019-07-09 11:00:00.000000"],
		["WARN", "node9", "T3", "y", "None", null]
	]`)

	report, err := Aggregate(env)
	require.NoError(t, err)

	assert.Equal(t, []Count{{"ERROR", 1}, {"WARN", 3}}, report.Severity)
	assert.Equal(t, []Count{{"node9", 2}, {"node10", 2}}, report.Location)

	require.Len(t, report.EventType, 3)
	assert.Equal(t, "T1", report.EventType[0].Type)
	assert.Equal(t, 2, report.EventType[0].Count)
	assert.Equal(t, "new", report.EventType[0].Detail, "latest sample wins")
	assert.Equal(t, "T2", report.EventType[1].Type)
	assert.Equal(t, "T3", report.EventType[2].Type)
}

func TestAggregate_EventListingKeys(t *testing.T) {
	raw := `{"result-status-code": 0,
		"schema": [
			{"data": "lastchgtimestamp", "heading": "time"},
			{"data": "lctn", "heading": "lctn"},
			{"data": "eventtype", "heading": "eventtype"},
			{"data": "severity", "heading": "severity"},
			{"data": "controloperation", "heading": "controloperation"},
			{"data": "msg", "heading": "msg"}
		],
		"data": [["2019-07-09 10:00:00.000000", "R0", "RasMntrForeignNodeSwitch", "INFO", "None", "switched"]]}`
	env, err := envelope.Parse(raw)
	require.NoError(t, err)

	report, err := Aggregate(env)
	require.NoError(t, err)
	require.Len(t, report.EventType, 1)
	assert.Equal(t, "RasMntrForeignNodeSwitch", report.EventType[0].Type)
	assert.Equal(t, "switched", report.EventType[0].Detail)
	assert.Equal(t, "2019-07-09 10:00:00.000000", report.Composite[0].Time)
}

func TestSummarize_Empty(t *testing.T) {
	env := envelopeWith(t, `[]`)

	_, err := Summarize(env)
	var empty *EmptyInputError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "No data returned try with different filters.", err.Error())
}

func TestSummarize_Sections(t *testing.T) {
	long := strings.Repeat("detail ", 30)
	env := envelopeWith(t, `[["ERROR", "R0-CH0-N1", "T1", "`+long+`", "None", "2019-07-09 10:00:00.000000"]]`)

	out, err := Summarize(env)
	require.NoError(t, err)

	titles := []string{
		"RAS EVENTS SUMMARY",
		"EVENTS SUMMARY BASED ON SEVERITY",
		"EVENTS SUMMARY BASED ON LOCATION",
		"EVENTS SUMMARY BASED ON EVENT TYPE",
		"EVENTS SUMMARY BASED ON THE COMBINATION OF LOCATION & EVENTS",
	}
	last := -1
	for _, title := range titles {
		idx := strings.Index(out, title)
		require.GreaterOrEqual(t, idx, 0, title)
		assert.Greater(t, idx, last, "%s out of order", title)
		last = idx
	}

	assert.Contains(t, out, "[...]")
	assert.Contains(t, out, "\n"+strings.Repeat(" ", detailIndent)+"detail")
	assert.Contains(t, out, "LATEST EVENT TIME")
}
