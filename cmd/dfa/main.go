// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"dataflow/internal/analysis"
	"dataflow/internal/dataflow"
	"dataflow/internal/diag"
	"dataflow/internal/ir"
	"dataflow/internal/irtext"
	"dataflow/internal/report"
	"dataflow/internal/solver"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: dfa <file> <initvars|taint|interval|interval-cond|all>")
		os.Exit(1)
	}

	path, which := os.Args[1], os.Args[2]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	proc, err := irtext.ParseSource(path, string(source))
	if err != nil {
		reportFailure(path, string(source), err)
		os.Exit(1)
	}

	order := blockOrder(proc)

	switch which {
	case "initvars":
		runVarSet(proc, order, "initialized", analysis.InitVars{})
	case "taint":
		runVarSet(proc, order, "taint", analysis.NewTaint())
	case "interval":
		runInterval(path, string(source), proc, order, &analysis.Interval{})
	case "interval-cond":
		runInterval(path, string(source), proc, order, &analysis.Interval{Narrow: true})
	case "all":
		runVarSet(proc, order, "initialized", analysis.InitVars{})
		runVarSet(proc, order, "taint", analysis.NewTaint())
		runInterval(path, string(source), proc, order, &analysis.Interval{})
		runInterval(path, string(source), proc, order, &analysis.Interval{Narrow: true})
	default:
		fmt.Printf("unknown analysis %q; expected initvars, taint, interval, interval-cond, or all\n", which)
		os.Exit(1)
	}
}

func blockOrder(proc *ir.Procedure) []string {
	order := make([]string, len(proc.Blocks))
	for i, b := range proc.Blocks {
		order[i] = b.Label
	}
	return order
}

func traceTo(s *color.Color) solver.Tracer {
	return func(round int, label string, changed bool) {
		if changed {
			s.Fprintf(os.Stderr, "round %d: %s changed\n", round, label)
		}
	}
}

func runVarSet(proc *ir.Procedure, order []string, kind string, a solver.Analysis[dataflow.VarSet]) {
	s := solver.New[dataflow.VarSet](proc, a)
	s.Trace = traceTo(color.New(color.FgCyan))
	s.Run()
	fmt.Print(report.VarSetReport(kind, order, s.Results()))
}

func runInterval(path, source string, proc *ir.Procedure, order []string, a *analysis.Interval) {
	s := solver.New[dataflow.IntervalMap](proc, a)
	s.Trace = traceTo(color.New(color.FgMagenta))
	s.Run()
	fmt.Print(report.IntervalReport(order, s.Results()))
	if a.Narrow {
		fmt.Print(report.IntervalGapReport(order, s.Results()))
	}
	reportDivWarnings(path, source, a.Warnings)
}

func reportDivWarnings(path, source string, warnings []analysis.DivWarning) {
	if len(warnings) == 0 {
		return
	}
	reporter := diag.NewReporter(path, source)
	for _, w := range warnings {
		d := diag.PossibleDivByZero(w.Divisor, diag.Position{Line: w.Pos.Line, Column: w.Pos.Column})
		fmt.Fprint(os.Stderr, reporter.Format(d))
	}
}

func reportFailure(path, source string, err error) {
	d := diag.FromParseError(err)
	reporter := diag.NewReporter(path, source)
	fmt.Fprint(os.Stderr, reporter.Format(d))
}
