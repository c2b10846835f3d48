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

package main

import (
	"log/slog"

	"github.com/DaniilVdovin/SSRFGuard/internal/cli"
	"github.com/DaniilVdovin/SSRFGuard/internal/commands/check"
	"github.com/DaniilVdovin/SSRFGuard/internal/commands/fetch"
	versioncmd "github.com/DaniilVdovin/SSRFGuard/internal/commands/version"
	"github.com/DaniilVdovin/SSRFGuard/internal/log"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	slog.SetDefault(log.New(log.FromEnv()))

	// Set version information from build-time ldflags
	cli.SetVersion(version, commit, buildDate)

	// Create root command and add subcommands
	rootCmd := cli.NewRootCommand()
	rootCmd.AddCommand(check.NewCommand())
	rootCmd.AddCommand(fetch.NewCommand())
	rootCmd.AddCommand(versioncmd.NewCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		cli.HandleExitError(err)
	}
}
