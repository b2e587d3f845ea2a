package location

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

type partKind int

const (
	literalPart partKind = iota
	numberPart
	groupPart
)

// part is one segment of a device name: literal text, a run of digits, or a
// bracket group produced by an earlier fold pass.
type part struct {
	kind partKind
	text string
}

type name []part

func (n name) String() string {
	var b strings.Builder
	for _, p := range n {
		b.WriteString(p.text)
	}
	return b.String()
}

// runIndex returns the index of the k-th numeric or group part counted from
// the right (k starts at 1), or -1.
func (n name) runIndex(k int) int {
	seen := 0
	for i := len(n) - 1; i >= 0; i-- {
		if n[i].kind == literalPart {
			continue
		}
		seen++
		if seen == k {
			return i
		}
	}
	return -1
}

func (n name) runs() int {
	count := 0
	for _, p := range n {
		if p.kind != literalPart {
			count++
		}
	}
	return count
}

func parseName(s string) name {
	var out name
	start := 0
	for i := 1; i <= len(s); i++ {
		if i < len(s) && isDigitByte(s[i]) == isDigitByte(s[start]) {
			continue
		}
		kind := literalPart
		if isDigitByte(s[start]) {
			kind = numberPart
			if _, err := strconv.Atoi(s[start:i]); err != nil {
				kind = literalPart
			}
		}
		out = append(out, part{kind: kind, text: s[start:i]})
		start = i
	}
	return out
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// Fold compresses a comma-separated device list into the shortest bracket
// expression this package produces, e.g. "c01,c02,c03,c07" becomes
// "c[01-03,07]". Numeric runs are folded from the rightmost position
// leftwards. Expand(Fold(list)) yields the same set of devices as list.
func Fold(list string) string {
	set := mapset.NewSet()
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set.Add(item)
		}
	}
	if set.Cardinality() == 0 {
		return ""
	}

	var names []name
	maxRuns := 0
	for _, s := range sortedNames(set) {
		n := parseName(s)
		if r := n.runs(); r > maxRuns {
			maxRuns = r
		}
		names = append(names, n)
	}

	for k := 1; k <= maxRuns; k++ {
		names = foldPass(names, k)
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.String())
	}
	sortNatural(out)
	return strings.Join(out, ",")
}

type foldKey struct {
	prefix string
	suffix string
	width  int
}

type foldGroup struct {
	template name
	index    int
	width    int
	numbers  []int
}

// foldPass merges names that differ only in their k-th numeric run from the
// right. Names whose k-th run is already a bracket group, or that have fewer
// runs, pass through.
func foldPass(names []name, k int) []name {
	var passthrough []name
	groups := map[foldKey]*foldGroup{}
	var order []foldKey

	for _, n := range names {
		idx := n.runIndex(k)
		if idx < 0 || n[idx].kind != numberPart {
			passthrough = append(passthrough, n)
			continue
		}
		digits := n[idx].text
		value, _ := strconv.Atoi(digits)
		width := 0
		if len(digits) > 1 && digits[0] == '0' {
			width = len(digits)
		}
		key := foldKey{
			prefix: name(n[:idx]).String(),
			suffix: name(n[idx+1:]).String(),
			width:  width,
		}
		g, ok := groups[key]
		if !ok {
			g = &foldGroup{template: n, index: idx, width: width}
			groups[key] = g
			order = append(order, key)
		}
		g.numbers = append(g.numbers, value)
	}

	mergeUnpadded(groups, order)

	out := passthrough
	for _, key := range order {
		g := groups[key]
		if len(g.numbers) == 0 {
			continue
		}
		out = append(out, g.render())
	}
	return out
}

// mergeUnpadded moves numbers without leading zeros into a padded group of
// the same prefix and suffix when their digit count equals the pad width, so
// 08,09,10 fold into one group.
func mergeUnpadded(groups map[foldKey]*foldGroup, order []foldKey) {
	for _, key := range order {
		if key.width != 0 {
			continue
		}
		natural := groups[key]
		kept := natural.numbers[:0]
		for _, v := range natural.numbers {
			padded, ok := groups[foldKey{prefix: key.prefix, suffix: key.suffix, width: len(strconv.Itoa(v))}]
			if ok && padded.width > 1 {
				padded.numbers = append(padded.numbers, v)
				continue
			}
			kept = append(kept, v)
		}
		natural.numbers = kept
	}
}

func (g *foldGroup) render() name {
	numbers := uniqueSorted(g.numbers)
	format := func(v int) string {
		return fmt.Sprintf("%0*d", g.width, v)
	}

	out := make(name, 0, len(g.template))
	out = append(out, g.template[:g.index]...)
	if len(numbers) == 1 {
		out = append(out, part{kind: numberPart, text: format(numbers[0])})
	} else {
		var ranges []string
		for i := 0; i < len(numbers); {
			j := i
			for j+1 < len(numbers) && numbers[j+1] == numbers[j]+1 {
				j++
			}
			if i == j {
				ranges = append(ranges, format(numbers[i]))
			} else {
				ranges = append(ranges, format(numbers[i])+"-"+format(numbers[j]))
			}
			i = j + 1
		}
		out = append(out, part{kind: groupPart, text: "[" + strings.Join(ranges, ",") + "]"})
	}
	return append(out, g.template[g.index+1:]...)
}

func uniqueSorted(values []int) []int {
	sort.Ints(values)
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
