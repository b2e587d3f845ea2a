package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucs/internal/location"
)

func TestBuild_DefaultLimit(t *testing.T) {
	q, err := Build(Spec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Limit=100"}, q.Fragments)
	assert.Equal(t, 900*time.Second, q.Timeout)
}

func TestBuild_Limit(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		expected []string
	}{
		{
			name:     "explicit limit",
			spec:     Spec{Limit: IntPtr(5)},
			expected: []string{"Limit=5"},
		},
		{
			name:     "explicit zero limit",
			spec:     Spec{Limit: IntPtr(0)},
			expected: []string{"Limit=0"},
		},
		{
			name:     "time bound suppresses default",
			spec:     Spec{StartTime: "2019-07-09 10:00:00"},
			expected: []string{"StartTime=2019-07-09 10:00:00.000000"},
		},
		{
			name:     "explicit limit with time bound",
			spec:     Spec{StartTime: "2019-07-09 10:00:00", Limit: IntPtr(7)},
			expected: []string{"StartTime=2019-07-09 10:00:00.000000", "Limit=7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Build(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q.Fragments)
		})
	}
}

func TestBuild_NegativeLimit(t *testing.T) {
	for _, limit := range []int{-1, -100} {
		_, err := Build(Spec{Limit: IntPtr(limit)})
		var limitErr *InvalidLimitError
		require.True(t, errors.As(err, &limitErr), "limit %d", limit)
		assert.Equal(t, limit, limitErr.Limit)
	}
}

func TestBuild_BareEndDate(t *testing.T) {
	q, err := Build(Spec{EndTime: "2019-07-09"})
	require.NoError(t, err)
	assert.Equal(t, []string{"EndTime=2019-07-10 00:00:00.000000"}, q.Fragments)
}

func TestBuild_FullEndTimeUnchanged(t *testing.T) {
	q, err := Build(Spec{EndTime: "2019-07-09 23:30:00.123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"EndTime=2019-07-09 23:30:00.123000"}, q.Fragments)
}

func TestBuild_InvalidTimestamp(t *testing.T) {
	_, err := Build(Spec{StartTime: "invalid-date"})
	var tsErr *InvalidTimestampError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, "Input timestamp is of invalid type. Try again.", err.Error())
}

func TestBuild_FragmentOrder(t *testing.T) {
	spec := Spec{
		StartTime: "2019-07-01",
		EndTime:   "2019-07-09",
		Limit:     IntPtr(10),
		JobID:     "42",
		Extra:     []Param{{Key: "DiagId", Value: "7"}, {Key: "Sernum", Value: ""}},
		Location:  "R0-CH0-N[1-2]",
		Severity:  "FATAL",
		EventType: "0001",
		Exclude:   "^RasGen",
		Include:   "Mce",
		Auxiliary: []Param{{Key: "User", Value: "root"}},
	}

	q, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"StartTime=2019-07-01 00:00:00.000000",
		"EndTime=2019-07-10 00:00:00.000000",
		"Limit=10",
		"JobId=42",
		"DiagId=7",
		"Lctn=R0-CH0-N1,R0-CH0-N2",
		"Severity=FATAL",
		"EventType=0001",
		"Exclude=^RasGen",
		"Include=Mce",
		"User=root",
	}, q.Fragments)
}

func TestBuild_BadLocation(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		message string
	}{
		{
			name:    "wildcard location",
			spec:    Spec{Location: "R0*"},
			message: "Bad input, please try with a valid location",
		},
		{
			name:    "wildcard job id",
			spec:    Spec{JobID: "12?"},
			message: "Bad input, please try with a valid jobid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.spec)
			var locErr *location.BadLocationInputError
			require.True(t, errors.As(err, &locErr))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestBuild_InvalidDeviceExpression(t *testing.T) {
	_, err := Build(Spec{Location: "R0-CH[1-"})
	var exprErr *location.InvalidDeviceExpressionError
	assert.True(t, errors.As(err, &exprErr))
}

func TestBuild_RegexMerge(t *testing.T) {
	spec := Spec{
		Exclude: "^cli",
		Persisted: Patterns{
			Exclude: []Pattern{
				{Expression: "Heartbeat", Path: "/home/u/.ucs/exclude"},
				{Expression: "Mce[0-9]+", Path: "/home/u/.ucs/exclude"},
			},
			Include: []Pattern{{Expression: "Fatal", Path: "/home/u/.ucs/include"}},
		},
	}

	q, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Limit=100",
		"Exclude=^cli|Heartbeat|Mce[0-9]+",
		"Include=Fatal",
	}, q.Fragments)
}

func TestBuild_InvalidRegex(t *testing.T) {
	t.Run("from flag", func(t *testing.T) {
		_, err := Build(Spec{Include: "(unclosed"})
		var reErr *InvalidRegexError
		require.True(t, errors.As(err, &reErr))
		assert.Equal(t, "(unclosed", reErr.Expression)
		assert.Empty(t, reErr.Path)
	})

	t.Run("from file", func(t *testing.T) {
		spec := Spec{Persisted: Patterns{Exclude: []Pattern{{Expression: "[bad", Path: "/home/u/.ucs/exclude"}}}}
		_, err := Build(spec)
		var reErr *InvalidRegexError
		require.True(t, errors.As(err, &reErr))
		assert.Equal(t, "/home/u/.ucs/exclude", reErr.Path)
		assert.Contains(t, err.Error(), "/home/u/.ucs/exclude")
	})
}

func TestEffectiveTimeout(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		fallback  int
		expected  time.Duration
	}{
		{"requested", 30, 900, 30 * time.Second},
		{"clamped", MaxTimeoutSeconds + 1, 900, MaxTimeoutSeconds * time.Second},
		{"zero uses fallback", 0, 60, 60 * time.Second},
		{"no fallback uses default", -1, 0, DefaultTimeoutSeconds * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveTimeout(tt.requested, tt.fallback))
		})
	}
}

func TestQuery_Encode(t *testing.T) {
	q := Query{Fragments: []string{"StartTime=2019-07-09 00:00:00.000000", "Lctn=R0-CH0-N1,R0-CH0-N2", "Exclude=a|b"}}
	assert.Equal(t, "StartTime=2019-07-09+00%3A00%3A00.000000&Lctn=R0-CH0-N1%2CR0-CH0-N2&Exclude=a%7Cb", q.Encode())
	assert.Equal(t, "R0-CH0-N1,R0-CH0-N2", q.Values().Get("Lctn"))
}

func TestBuild_OmitDefaultLimit(t *testing.T) {
	q, err := Build(Spec{Location: "R0", OmitDefaultLimit: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lctn=R0"}, q.Fragments)

	q, err = Build(Spec{Limit: IntPtr(5), OmitDefaultLimit: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Limit=5"}, q.Fragments)
}
