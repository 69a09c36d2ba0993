package ir

// PrintProcedure returns a pretty-printed, round-trippable textual
// rendering of a procedure, mirroring the format internal/irtext
// parses.
func PrintProcedure(p *Procedure) string {
	return Print(p)
}
