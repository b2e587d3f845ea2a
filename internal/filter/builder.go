package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ucs/internal/location"
)

const (
	// DefaultLimit bounds queries that have neither a time range nor an
	// explicit limit.
	DefaultLimit = 100
	// MaxTimeoutSeconds is the largest timeout the backend accepts.
	MaxTimeoutSeconds = math.MaxInt32
	// DefaultTimeoutSeconds applies when no positive timeout is configured.
	DefaultTimeoutSeconds = 900
)

// Param is a single key=value query fragment.
type Param struct {
	Key   string
	Value string
}

func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// Spec is the set of user supplied filters for one query. Empty strings and
// a nil Limit mean "not given".
type Spec struct {
	StartTime string
	EndTime   string
	Limit     *int
	JobID     string
	// Extra holds command specific scalars such as DiagId or Sernum. They are
	// emitted after JobId, in order.
	Extra     []Param
	Location  string
	Severity  string
	EventType string
	Exclude   string
	Include   string
	// Persisted holds the patterns read from the user's filter files.
	Persisted Patterns
	// Auxiliary fragments are emitted last, in order.
	Auxiliary []Param
	// Timeout is the requested timeout in seconds.
	Timeout int
	// DefaultTimeout replaces a non-positive Timeout. Zero means
	// DefaultTimeoutSeconds.
	DefaultTimeout int
	// OmitDefaultLimit suppresses the implicit Limit fragment for endpoints
	// that do not page.
	OmitDefaultLimit bool
}

// Query is the serialized form of a Spec.
type Query struct {
	Fragments []string
	Timeout   time.Duration
}

// Encode joins the fragments with "&", escaping each value.
func (q Query) Encode() string {
	return EncodeFragments(q.Fragments)
}

// Values returns the fragments as url.Values. Fragment order is lost.
func (q Query) Values() url.Values {
	values := url.Values{}
	for _, f := range q.Fragments {
		key, value, _ := strings.Cut(f, "=")
		values.Add(key, value)
	}
	return values
}

// EncodeFragments escapes and joins key=value fragments preserving order.
func EncodeFragments(fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		key, value, _ := strings.Cut(f, "=")
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(parts, "&")
}

// Build validates spec and returns its ordered fragments:
// StartTime, EndTime, Limit, JobId, extras, Lctn, Severity, EventType,
// Exclude, Include, auxiliary.
func Build(spec Spec) (Query, error) {
	var frags []string
	add := func(key, value string) {
		frags = append(frags, key+"="+value)
	}

	if spec.StartTime != "" {
		start, err := NormalizeTimestamp(spec.StartTime)
		if err != nil {
			return Query{}, err
		}
		add("StartTime", start)
	}
	if spec.EndTime != "" {
		end, err := NormalizeEndTimestamp(spec.EndTime)
		if err != nil {
			return Query{}, err
		}
		add("EndTime", end)
	}

	switch {
	case spec.Limit != nil:
		if *spec.Limit < 0 {
			return Query{}, &InvalidLimitError{Limit: *spec.Limit}
		}
		add("Limit", strconv.Itoa(*spec.Limit))
	case spec.StartTime == "" && spec.EndTime == "" && !spec.OmitDefaultLimit:
		add("Limit", strconv.Itoa(DefaultLimit))
	}

	if spec.JobID != "" {
		if err := location.ValidateInput("jobid", spec.JobID); err != nil {
			return Query{}, err
		}
		add("JobId", spec.JobID)
	}

	for _, p := range spec.Extra {
		if p.Value != "" {
			add(p.Key, p.Value)
		}
	}

	if strings.TrimSpace(spec.Location) != "" {
		if err := location.ValidateInput("location", spec.Location); err != nil {
			return Query{}, err
		}
		devices, err := location.Expand(spec.Location)
		if err != nil {
			return Query{}, err
		}
		add("Lctn", devices)
	}

	if spec.Severity != "" {
		add("Severity", spec.Severity)
	}
	if spec.EventType != "" {
		add("EventType", spec.EventType)
	}

	exclude, err := MergePatterns(spec.Exclude, spec.Persisted.Exclude)
	if err != nil {
		return Query{}, err
	}
	if exclude != "" {
		add("Exclude", exclude)
	}
	include, err := MergePatterns(spec.Include, spec.Persisted.Include)
	if err != nil {
		return Query{}, err
	}
	if include != "" {
		add("Include", include)
	}

	for _, p := range spec.Auxiliary {
		add(p.Key, p.Value)
	}

	return Query{Fragments: frags, Timeout: EffectiveTimeout(spec.Timeout, spec.DefaultTimeout)}, nil
}

// EffectiveTimeout clamps requested to MaxTimeoutSeconds. A non-positive
// request falls back to fallback, or DefaultTimeoutSeconds when that is not
// positive either.
func EffectiveTimeout(requested, fallback int) time.Duration {
	seconds := requested
	if seconds <= 0 {
		seconds = fallback
	}
	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}
	if seconds > MaxTimeoutSeconds {
		seconds = MaxTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// IntPtr returns a pointer to v, for building a Spec with an explicit limit.
func IntPtr(v int) *int {
	return &v
}
