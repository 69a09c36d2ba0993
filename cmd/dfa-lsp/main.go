// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"dataflow/internal/lspsrv"
)

const serverName = "dfa-lsp"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	h := lspsrv.NewHandler()

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentHover:     h.TextDocumentHover,
	}

	s := server.NewServer(&handler, serverName, false)

	log.Println("Starting dataflow LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting dataflow LSP server:", err)
		os.Exit(1)
	}
}
