// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lsp exposes the semantic analyser over the Language Server
// Protocol: a client opens or edits a document, and this server publishes
// the diagnostics name resolution, visibility and completion checking
// raised against it (expression type checking is not run).
package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/analysis"
)

// Server implements the textDocument synchronisation lifecycle this
// analyser needs to publish diagnostics.  protocol.Server is embedded so
// every other method required by the interface (workspace symbols,
// completion, hover, and so on) is satisfied without being implemented; a
// client that respects the capabilities Initialize advertises never calls
// one of those.
type Server struct {
	protocol.Server

	client protocol.Client
	log    *zap.Logger
}

// NewServer constructs a Server that publishes diagnostics to `client`.
func NewServer(client protocol.Client, log *zap.Logger) *Server {
	return &Server{client: client, log: log}
}

// Initialize implements protocol.Server.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.log.Info("initialize", zap.String("rootURI", string(params.RootURI)))
	//
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncKindFull,
		},
		ServerInfo: &protocol.ServerInfo{Name: "vhdl-lang"},
	}, nil
}

// Initialized implements protocol.Server.
func (s *Server) Initialized(context.Context, *protocol.InitializedParams) error {
	return nil
}

// Shutdown implements protocol.Server.
func (s *Server) Shutdown(context.Context) error {
	return nil
}

// Exit implements protocol.Server.
func (s *Server) Exit(context.Context) error {
	return nil
}

// DidOpen implements protocol.Server: the opened document's full text is
// analysed and its diagnostics published immediately.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	return s.analyze(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// DidChange implements protocol.Server.  Synchronisation is advertised as
// Full, so the most recent content change always carries the document's
// complete new text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	//
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	//
	return s.analyze(ctx, params.TextDocument.URI, text)
}

// DidClose implements protocol.Server, clearing the closed document's
// diagnostics from the client.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI: params.TextDocument.URI,
	})
}

func (s *Server) analyze(ctx context.Context, docURI protocol.DocumentURI, text string) error {
	filename := uri.URI(docURI).Filename()
	f := source.NewSourceFile(filename, []byte(text))
	//
	_, diags := analysis.AnalyzeFiles(analysis.DefaultConfig(), []*source.File{f})
	//
	s.log.Debug("analyzed document", zap.String("uri", string(docURI)), zap.Int("diagnostics", len(diags)))
	//
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: toProtocolDiagnostics(f, diags),
	})
}
