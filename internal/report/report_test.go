package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataflow/internal/dataflow"
	"dataflow/internal/report"
)

func TestVarSetReportFiltersRegistersAndSortsNames(t *testing.T) {
	states := map[string]dataflow.VarSet{
		"entry": dataflow.NewVarSet("b", "a", "%1"),
	}
	out := report.VarSetReport("initialized", []string{"entry"}, states)

	assert.Equal(t, "Block name:entry\ninitialized varabile have: a b\n", out)
}

func TestIntervalReportUsesLiteralInfinitySpellings(t *testing.T) {
	states := map[string]dataflow.IntervalMap{
		"loop": {
			"i": dataflow.Interval{Lo: 0, Hi: dataflow.PosInf},
			"%r": dataflow.Interval{Lo: 1, Hi: 1},
		},
	}
	out := report.IntervalReport([]string{"loop"}, states)

	assert.Equal(t, "Block name is:loop\ni\t[ 0 , POS_INF ]\n", out)
}

func TestIntervalReportSkipsEmptyIntervals(t *testing.T) {
	states := map[string]dataflow.IntervalMap{
		"b": {"x": dataflow.EmptyInterval()},
	}
	out := report.IntervalReport([]string{"b"}, states)
	assert.Equal(t, "Block name is:b\n", out)
}

func TestIntervalGapReportMarksUnboundedAsInfinity(t *testing.T) {
	states := map[string]dataflow.IntervalMap{
		"b": {
			"x": dataflow.Interval{Lo: 0, Hi: 10},
			"y": dataflow.Interval{Lo: 0, Hi: dataflow.PosInf},
		},
	}
	out := report.IntervalGapReport([]string{"b"}, states)
	assert.Equal(t, "Block name is:b\ngap x,y: Infinity\n", out)
}

func TestIntervalGapReportComputesMaxEndpointGap(t *testing.T) {
	states := map[string]dataflow.IntervalMap{
		"b": {
			"x": dataflow.Interval{Lo: 0, Hi: 4},
			"y": dataflow.Interval{Lo: 5, Hi: 10},
		},
	}
	out := report.IntervalGapReport([]string{"b"}, states)
	assert.Equal(t, "Block name is:b\ngap x,y: 10\n", out)
}
