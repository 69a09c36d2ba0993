// Package report renders fixpoint results in the exact textual forms
// the analyses are specified to produce, so that test fixtures and
// the CLI driver agree byte-for-byte.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"dataflow/internal/dataflow"
)

// filterRegisters drops any name containing the virtual-register
// marker character, leaving only local slots in reported output.
func filterRegisters(names []string) []string {
	out := names[:0]
	for _, n := range names {
		if !strings.Contains(n, "%") {
			out = append(out, n)
		}
	}
	return out
}

// VarSetReport renders a "members" style report (initialized-variable
// and taint analyses share this shape) for blocks in blockOrder.
func VarSetReport(kind string, blockOrder []string, states map[string]dataflow.VarSet) string {
	var b strings.Builder
	for _, label := range blockOrder {
		names := filterRegisters(states[label].Sorted())
		fmt.Fprintf(&b, "Block name:%s\n", label)
		fmt.Fprintf(&b, "%s varabile have: %s\n", kind, strings.Join(names, " "))
	}
	return b.String()
}

// formatBound renders a saturated endpoint using the literal spelling
// the interval analysis is specified to use for its bounds.
func formatBound(v int64) string {
	switch v {
	case dataflow.NegInf:
		return "NEG_INF"
	case dataflow.PosInf:
		return "POS_INF"
	default:
		return strconv.FormatInt(v, 10)
	}
}

// localNames returns the sorted, register-filtered variable names
// present in m.
func localNames(m dataflow.IntervalMap) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	names = filterRegisters(names)
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// IntervalReport renders the interval analysis's per-block, per-local
// `name\t[ lo , hi ]` report for blocks in blockOrder.
func IntervalReport(blockOrder []string, states map[string]dataflow.IntervalMap) string {
	var b strings.Builder
	for _, label := range blockOrder {
		m := states[label]
		fmt.Fprintf(&b, "Block name is:%s\n", label)
		for _, name := range localNames(m) {
			iv := m[name]
			if iv.Empty {
				continue
			}
			fmt.Fprintf(&b, "%s\t[ %s , %s ]\n", name, formatBound(iv.Lo), formatBound(iv.Hi))
		}
	}
	return b.String()
}

// gap computes the maximum endpoint gap between two intervals, the
// value the 3a pairwise-gap report emits per unordered pair of locals.
func gap(a, b dataflow.Interval) (value int64, unbounded bool) {
	if a.Lo == dataflow.NegInf || a.Hi == dataflow.PosInf || b.Lo == dataflow.NegInf || b.Hi == dataflow.PosInf {
		return 0, true
	}
	d1 := abs64(a.Lo - b.Hi)
	d2 := abs64(a.Hi - b.Lo)
	if d1 > d2 {
		return d1, false
	}
	return d2, false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// IntervalGapReport renders the interval-with-narrowing variant's
// additional per-pair endpoint-gap report.
func IntervalGapReport(blockOrder []string, states map[string]dataflow.IntervalMap) string {
	var b strings.Builder
	for _, label := range blockOrder {
		m := states[label]
		names := localNames(m)
		fmt.Fprintf(&b, "Block name is:%s\n", label)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, bb := m[names[i]], m[names[j]]
				if a.Empty || bb.Empty {
					continue
				}
				v, unbounded := gap(a, bb)
				if unbounded {
					fmt.Fprintf(&b, "gap %s,%s: Infinity\n", names[i], names[j])
				} else {
					fmt.Fprintf(&b, "gap %s,%s: %d\n", names[i], names[j], v)
				}
			}
		}
	}
	return b.String()
}
