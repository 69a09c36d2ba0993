package lspsrv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dataflow/internal/lspsrv"
)

const sampleURI = "file:///tmp/sample.dfa"

const sampleSource = `proc main {
entry:
  x = alloc-slot
  store 1, x
  ret
}
`

func openSample(t *testing.T, h *lspsrv.Handler) *glsp.Context {
	t.Helper()
	ctx := &glsp.Context{}
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: sampleURI, Text: sampleSource},
	})
	require.NoError(t, err)
	return ctx
}

func TestHoverReportsComputedState(t *testing.T) {
	h := lspsrv.NewHandler()
	ctx := openSample(t, h)

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: sampleURI},
			Position:     protocol.Position{Line: 1, Character: 0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "initialized: x")
	assert.Contains(t, content.Value, "x: [1, 1]")
}

func TestDidCloseDropsDocument(t *testing.T) {
	h := lspsrv.NewHandler()
	ctx := openSample(t, h)

	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: sampleURI},
	})
	require.NoError(t, err)

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: sampleURI},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestParseErrorOnOpenDoesNotPanic(t *testing.T) {
	h := lspsrv.NewHandler()
	ctx := &glsp.Context{}
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: sampleURI, Text: "not valid ir"},
	})
	assert.NoError(t, err)
}
