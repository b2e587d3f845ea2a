package location

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/xlab/handysort"
)

// ReservedCharacters are wildcard characters the backend interprets itself.
// They must never reach the expander as literal device tokens.
const ReservedCharacters = "?*%$"

// MaxExpansion bounds the number of device names a single expression may
// produce.
const MaxExpansion = 100000

// ValidateInput rejects values containing any of ReservedCharacters. field is
// used in the error message ("location", "jobid").
func ValidateInput(field, value string) error {
	if strings.ContainsAny(value, ReservedCharacters) {
		return &BadLocationInputError{Field: field, Value: value}
	}
	return nil
}

// Expand enumerates a location expression such as "R2-CH0[1-4]-N[1-4]" or
// "node001,node[003-005]" into a comma-joined device list in natural
// ascending order without duplicates. An empty expression expands to "".
func Expand(expr string) (string, error) {
	names, err := ExpandList(expr)
	if err != nil {
		return "", err
	}
	return strings.Join(names, ","), nil
}

// ExpandList is Expand returning the device names as a slice.
func ExpandList(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	items, err := splitTopLevel(expr)
	if err != nil {
		return nil, err
	}

	devices := mapset.NewSet()
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "empty device name"}
		}
		names, err := expandItem(expr, item)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			devices.Add(name)
		}
		if devices.Cardinality() > MaxExpansion {
			return nil, &InvalidDeviceExpressionError{
				Expression: expr,
				Reason:     fmt.Sprintf("expands to more than %d devices", MaxExpansion),
			}
		}
	}

	return sortedNames(devices), nil
}

// splitTopLevel splits on commas that are not inside a bracket group.
func splitTopLevel(expr string) ([]string, error) {
	var items []string
	depth := 0
	start := 0
	for i, r := range expr {
		switch r {
		case '[':
			if depth > 0 {
				return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "nested brackets are not supported"}
			}
			depth++
		case ']':
			if depth == 0 {
				return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "unbalanced ']'"}
			}
			depth--
		case ',':
			if depth == 0 {
				items = append(items, expr[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "unbalanced '['"}
	}
	return append(items, expr[start:]), nil
}

// expandItem expands a single comma-free item into the cartesian product of
// its bracket groups.
func expandItem(expr, item string) ([]string, error) {
	results := []string{""}
	rest := item
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			results = appendSuffix(results, rest)
			break
		}
		closing := strings.IndexByte(rest[open:], ']')
		if closing < 0 {
			return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "unbalanced '['"}
		}
		closing += open

		values, err := expandGroup(expr, rest[open+1:closing])
		if err != nil {
			return nil, err
		}
		results = appendSuffix(results, rest[:open])
		if len(results)*len(values) > MaxExpansion {
			return nil, &InvalidDeviceExpressionError{
				Expression: expr,
				Reason:     fmt.Sprintf("expands to more than %d devices", MaxExpansion),
			}
		}

		product := make([]string, 0, len(results)*len(values))
		for _, prefix := range results {
			for _, v := range values {
				product = append(product, prefix+v)
			}
		}
		results = product
		rest = rest[closing+1:]
	}
	return results, nil
}

func appendSuffix(names []string, suffix string) []string {
	if suffix == "" {
		return names
	}
	for i := range names {
		names[i] += suffix
	}
	return names
}

// expandGroup expands the inside of a bracket group: "1-3,7,09-11".
// The lower bound of a range sets the zero-padded width of every value.
func expandGroup(expr, group string) ([]string, error) {
	if strings.TrimSpace(group) == "" {
		return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: "empty bracket group"}
	}

	var values []string
	for _, part := range strings.Split(group, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		if !isDigits(lo) || (isRange && !isDigits(hi)) {
			return nil, &InvalidDeviceExpressionError{
				Expression: expr,
				Reason:     fmt.Sprintf("%q is not a number or numeric range", part),
			}
		}
		if !isRange {
			values = append(values, lo)
			continue
		}

		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: err.Error()}
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, &InvalidDeviceExpressionError{Expression: expr, Reason: err.Error()}
		}
		if start > end {
			return nil, &InvalidDeviceExpressionError{
				Expression: expr,
				Reason:     fmt.Sprintf("range %q is descending", part),
			}
		}
		if end-start >= MaxExpansion {
			return nil, &InvalidDeviceExpressionError{
				Expression: expr,
				Reason:     fmt.Sprintf("range %q is larger than %d", part, MaxExpansion),
			}
		}
		for n := start; n <= end; n++ {
			values = append(values, fmt.Sprintf("%0*d", len(lo), n))
		}
	}
	return values, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sortedNames(set mapset.Set) []string {
	names := make([]string, 0, set.Cardinality())
	for _, v := range set.ToSlice() {
		names = append(names, v.(string))
	}
	sortNatural(names)
	return names
}

// sortNatural orders names so that numeric runs compare by value: node9
// sorts before node10.
func sortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return handysort.StringLess(names[i], names[j])
	})
}
