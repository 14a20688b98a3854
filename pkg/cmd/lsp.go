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
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/vhdl-lang/vhdl-lang/pkg/lsp"

	"github.com/spf13/cobra"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the VHDL language server over stdio.",
	Long:  "Serves the Language Server Protocol over stdin/stdout, publishing diagnostics as documents are opened and edited.",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLspLogger(GetFlag(cmd, "verbose"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		defer logger.Sync() //nolint:errcheck
		//
		stream := jsonrpc2.NewStream(stdrwc{})
		conn := jsonrpc2.NewConn(stream)
		client := protocol.ClientDispatcher(conn, logger.Named("client"))
		server := lsp.NewServer(client, logger.Named("server"))
		//
		ctx := context.Background()
		//
		conn.Go(ctx, protocol.ServerHandler(server, jsonrpc2.MethodNotFoundHandler))
		//
		<-conn.Done()
		//
		if err := conn.Err(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func newLspLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	//
	return zap.NewProduction()
}

func init() {
	rootCmd.AddCommand(lspCmd)
}

// stdrwc adapts stdin/stdout into the io.ReadWriteCloser a jsonrpc2.Stream
// needs, since a language server client speaks to this process over its
// standard streams rather than a socket.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	//
	return os.Stdout.Close()
}

var _ io.ReadWriteCloser = stdrwc{}
