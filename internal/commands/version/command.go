// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"encoding/json"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/DaniilVdovin/SSRFGuard/internal/commands/shared"
)

// NewCommand creates the version command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, b := shared.GetVersion()

			if shared.GetJSON() {
				info := struct {
					Version   string `json:"version"`
					Commit    string `json:"commit"`
					BuildDate string `json:"build_date"`
					GoVersion string `json:"go_version"`
				}{v, c, b, runtime.Version()}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			cmd.Printf("ssrfguard %s\n", v)
			cmd.Printf("  commit:     %s\n", c)
			cmd.Printf("  built:      %s\n", b)
			cmd.Printf("  go version: %s\n", runtime.Version())
			return nil
		},
	}
}
