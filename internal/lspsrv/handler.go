// Package lspsrv implements the language server: parse-on-change
// diagnostics and a hover showing the computed abstract state at the
// hovered block, the way an editor surfaces a compiler's own analyses
// to the person reading the source.
package lspsrv

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dataflow/internal/analysis"
	"dataflow/internal/dataflow"
	"dataflow/internal/diag"
	"dataflow/internal/ir"
	"dataflow/internal/irtext"
	"dataflow/internal/solver"
)

// document is the cached state for one open file: its text and the
// last procedure it parsed to, if parsing succeeded.
type document struct {
	content string
	proc    *ir.Procedure
}

// Handler implements the glsp protocol.Handler methods for the
// textual IR language. One Handler instance is shared across all
// requests; its document cache is mutex-protected since glsp may
// dispatch notifications and requests concurrently.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewHandler creates a Handler with an empty document cache.
func NewHandler() *Handler {
	return &Handler{docs: make(map[string]*document)}
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

// Initialize advertises full-document sync and hover support.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: &protocol.HoverOptions{},
		},
	}, nil
}

// Initialized is a no-op acknowledgement.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown is a no-op acknowledgement.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

// TextDocumentDidOpen parses the newly opened document and publishes
// any resulting diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange reparses the document on every full-text change.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	return h.refresh(ctx, params.TextDocument.URI, change.Text)
}

// TextDocumentDidClose drops the document from the cache.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.docs, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentHover reports, for the block containing the cursor, the
// initialized-variable, taint, and interval state computed at that
// block's exit.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if !ok || doc.proc == nil {
		return nil, nil
	}

	label, ok := blockAtLine(doc.proc, int(params.Position.Line)+1)
	if !ok {
		return nil, nil
	}

	text := hoverText(doc.proc, label)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: text},
	}, nil
}

// hoverText runs all three analyses and formats the exit state of one
// block as the hover body.
func hoverText(proc *ir.Procedure, label string) string {
	var b strings.Builder

	iv := solver.New[dataflow.VarSet](proc, analysis.InitVars{})
	iv.Run()
	fmt.Fprintf(&b, "initialized: %s\n", strings.Join(iv.State(label).Sorted(), ", "))

	tn := solver.New[dataflow.VarSet](proc, analysis.NewTaint())
	tn.Run()
	fmt.Fprintf(&b, "tainted: %s\n", strings.Join(tn.State(label).Sorted(), ", "))

	in := solver.New[dataflow.IntervalMap](proc, &analysis.Interval{Narrow: true})
	in.Run()
	state := in.State(label)

	b.WriteString("intervals:\n")
	for name, val := range state {
		if strings.Contains(name, "%") {
			continue
		}
		fmt.Fprintf(&b, "  %s: [%d, %d]\n", name, val.Lo, val.Hi)
	}

	return b.String()
}

// blockAtLine finds the block whose printed range contains the 1-based
// line. Since the printer emits the "proc <name> {" header on line 1,
// then one line per label followed by its instructions and terminator
// in order, this walks the same structure the printer does rather than
// requiring a separate source map.
func blockAtLine(proc *ir.Procedure, line int) (string, bool) {
	current := 2 // line 1 is the procedure header
	for _, b := range proc.Blocks {
		start := current
		current++ // label line
		current += len(b.Instructions)
		current++ // terminator line
		if line >= start && line < current {
			return b.Label, true
		}
	}
	return "", false
}

// refresh reparses content for uri, caching the result and publishing
// diagnostics (one entry on a parse failure; on success, any
// possible-division-by-zero warnings).
func (h *Handler) refresh(ctx *glsp.Context, uri protocol.DocumentUri, content string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	proc, parseErr := irtext.ParseSource(path, content)

	h.mu.Lock()
	h.docs[path] = &document{content: content, proc: proc}
	h.mu.Unlock()

	var diagnostics []protocol.Diagnostic
	if parseErr != nil {
		d := diag.FromParseError(parseErr)
		diagnostics = []protocol.Diagnostic{toProtocolDiagnostic(d)}
	} else {
		diagnostics = divByZeroDiagnostics(proc)
	}

	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
	}
	return nil
}

// divByZeroDiagnostics runs the (unnarrowed) interval analysis over a
// successfully parsed document and surfaces any possibly-zero divisor
// it finds as warning-severity diagnostics, the same signal the CLI
// prints to stderr after a run.
func divByZeroDiagnostics(proc *ir.Procedure) []protocol.Diagnostic {
	a := &analysis.Interval{}
	s := solver.New[dataflow.IntervalMap](proc, a)
	s.Run()

	diagnostics := make([]protocol.Diagnostic, 0, len(a.Warnings))
	for _, w := range a.Warnings {
		d := diag.PossibleDivByZero(w.Divisor, diag.Position{Line: w.Pos.Line, Column: w.Pos.Column})
		diagnostics = append(diagnostics, toProtocolDiagnostic(d))
	}
	return diagnostics
}

func toProtocolDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	line := uint32(0)
	if d.Position.Line > 0 {
		line = uint32(d.Position.Line - 1)
	}
	col := uint32(0)
	if d.Position.Column > 0 {
		col = uint32(d.Position.Column - 1)
	}
	severity := protocol.DiagnosticSeverityError
	if d.Level == diag.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := "dfa"
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

func uriToPath(rawURI protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(rawURI))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}
