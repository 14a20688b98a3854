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
	"fmt"
	"os"

	"github.com/vhdl-lang/vhdl-lang/pkg/util"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/analysis"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Check one or more VHDL source files for name resolution errors.",
	Long: `Parses the given VHDL source files and resolves the names in their
assignments, printing every diagnostic raised; expression type checking is not
run.  Files are analysed together as a single design, so a later
file's "use" clauses can see an earlier file's entities and packages.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := analysis.DefaultConfig()
		cfg.MaxResolutionIterations = GetUint(cmd, "max-iterations")
		cfg.Defensive = GetFlag(cmd, "defensive")
		//
		stats := util.NewPerfStats()
		//
		files, err := source.ReadFiles(args...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		filePtrs := make([]*source.File, len(files))
		for i := range files {
			filePtrs[i] = &files[i]
		}
		//
		_, diags := analysis.AnalyzeFiles(cfg, filePtrs)
		//
		stats.Log("Analysis")
		log.Debugf("%d diagnostic(s) raised across %d file(s)", len(diags), len(args))
		//
		reportDiagnostics(diags)
		//
		if len(diags) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("max-iterations", 1000, "bound the iterated fixed-point resolution pass")
	checkCmd.Flags().Bool("defensive", false, "set the analysis configuration's Defensive field (the analysis does not read it)")
}
