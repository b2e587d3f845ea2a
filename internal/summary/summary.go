// Package summary aggregates RAS event rows into grouped counts.
package summary

import (
	"fmt"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xlab/handysort"

	"ucs/internal/envelope"
	ucsstrings "ucs/pkg/strings"
)

// EmptyInputError is returned when there are no rows to summarize.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "No data returned try with different filters."
}

const (
	detailWrapWidth = 60
	// detailIndent aligns wrapped details under the DETAILS column.
	detailIndent = 5 + 1 + 70 + 1 + 10 + 1
)

// Field lookups accept the summary endpoint's keys first and the event
// listing's keys second.
var (
	severityKeys  = []string{"severity"}
	locationKeys  = []string{"lctn"}
	typeKeys      = []string{"type", "eventtype"}
	detailKeys    = []string{"detail", "msg"}
	operationKeys = []string{"controloperation"}
	timeKeys      = []string{"time", "lastchgtimestamp"}
)

// Count is a key and the number of rows carrying it.
type Count struct {
	Key   string
	Count int
}

// TypeGroup summarizes the rows of one event type.
type TypeGroup struct {
	Type     string
	Count    int
	Severity string
	Detail   string
	time     string
}

// CompositeKey identifies rows by location and event type.
type CompositeKey struct {
	Location string
	Type     string
}

// CompositeGroup summarizes the rows of one location and event type.
type CompositeGroup struct {
	CompositeKey
	Count            int
	Severity         string
	ControlOperation string
	Time             string
}

// Report holds the four summary sections.
type Report struct {
	// Severity is sorted by severity.
	Severity []Count
	// Location is sorted in natural order.
	Location []Count
	// EventType is sorted by descending count, then type.
	EventType []TypeGroup
	// Composite is in the order each key was first seen.
	Composite []CompositeGroup
}

type row struct {
	env   *envelope.Envelope
	cells []envelope.Cell
}

func (r row) get(keys []string) string {
	for _, key := range keys {
		if cell, ok := r.env.Value(r.cells, key); ok {
			return cell.Text()
		}
	}
	return ""
}

// newer reports whether a row stamped t replaces a sample stamped stored.
// Timestamps sort lexicographically; rows without one count as latest.
func newer(t, stored string) bool {
	return t >= stored
}

// Aggregate groups env's rows in a single pass.
func Aggregate(env *envelope.Envelope) (*Report, error) {
	if env == nil || len(env.Rows) == 0 {
		return nil, &EmptyInputError{}
	}

	severity := map[string]int{}
	location := map[string]int{}
	types := map[string]*TypeGroup{}
	composite := orderedmap.New[CompositeKey, *CompositeGroup]()

	for _, cells := range env.Rows {
		r := row{env: env, cells: cells}
		sev := r.get(severityKeys)
		lctn := r.get(locationKeys)
		typ := r.get(typeKeys)
		ts := r.get(timeKeys)

		severity[sev]++
		location[lctn]++

		tg, ok := types[typ]
		if !ok {
			tg = &TypeGroup{Type: typ}
			types[typ] = tg
		}
		tg.Count++
		if tg.Count == 1 || newer(ts, tg.time) {
			tg.Severity = sev
			tg.Detail = r.get(detailKeys)
			tg.time = ts
		}

		key := CompositeKey{Location: lctn, Type: typ}
		cg, ok := composite.Get(key)
		if !ok {
			cg = &CompositeGroup{CompositeKey: key}
			composite.Set(key, cg)
		}
		cg.Count++
		if cg.Count == 1 || newer(ts, cg.Time) {
			cg.Severity = sev
			cg.ControlOperation = r.get(operationKeys)
			cg.Time = ts
		}
	}

	report := &Report{
		Severity: sortedCounts(severity, func(a, b string) bool { return a < b }),
		Location: sortedCounts(location, handysort.StringLess),
	}
	for _, tg := range types {
		report.EventType = append(report.EventType, *tg)
	}
	sort.Slice(report.EventType, func(i, j int) bool {
		a, b := report.EventType[i], report.EventType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})
	for pair := composite.Oldest(); pair != nil; pair = pair.Next() {
		report.Composite = append(report.Composite, *pair.Value)
	}
	return report, nil
}

func sortedCounts(m map[string]int, less func(a, b string) bool) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Key, out[j].Key) })
	return out
}

// Summarize returns the printable summary of env.
func Summarize(env *envelope.Envelope) (string, error) {
	report, err := Aggregate(env)
	if err != nil {
		return "", err
	}
	return report.String(), nil
}

// String renders the report as fixed width text sections.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("\nRAS EVENTS SUMMARY\n")

	b.WriteString("\nEVENTS SUMMARY BASED ON SEVERITY\n")
	fmt.Fprintf(&b, "%-10s %-15s\n", "SEVERITY", "COUNT")
	for _, c := range r.Severity {
		fmt.Fprintf(&b, "%-10s %-15d\n", c.Key, c.Count)
	}

	b.WriteString("\nEVENTS SUMMARY BASED ON LOCATION\n")
	fmt.Fprintf(&b, "%-14s %-15s\n", "LOCATION", "COUNT")
	for _, c := range r.Location {
		fmt.Fprintf(&b, "%-14s %-15d\n", c.Key, c.Count)
	}

	b.WriteString("\nEVENTS SUMMARY BASED ON EVENT TYPE\n")
	fmt.Fprintf(&b, "%-5s %-70s %-10s %s\n", "COUNT", "EVENT TYPE", "SEVERITY", "DETAILS")
	for _, tg := range r.EventType {
		detail := ucsstrings.Wrap(ucsstrings.Shorten(tg.Detail, ucsstrings.DefaultDetailWidth), detailWrapWidth, detailIndent)
		fmt.Fprintf(&b, "%-5d %-70s %-10s %s\n", tg.Count, tg.Type, tg.Severity, detail)
	}

	b.WriteString("\nEVENTS SUMMARY BASED ON THE COMBINATION OF LOCATION & EVENTS\n")
	fmt.Fprintf(&b, "%-14s %-10s %-70s %-15s %-20s %s\n",
		"LOCATION", "COUNT", "TYPE", "SEVERITY", "CONTROL OPERATION", "LATEST EVENT TIME")
	for _, cg := range r.Composite {
		fmt.Fprintf(&b, "%-14s %-10d %-70s %-15s %-20s %s\n",
			cg.Location, cg.Count, cg.Type, cg.Severity, cg.ControlOperation, cg.Time)
	}
	return b.String()
}
