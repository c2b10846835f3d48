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

package check

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/DaniilVdovin/SSRFGuard/internal/commands/shared"
	"github.com/DaniilVdovin/SSRFGuard/internal/config"
	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

// Result is the outcome of checking a single URL.
type Result struct {
	URL     string `json:"url"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewCommand creates the check command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url> [url...]",
		Short: "Check URLs against the outbound request policy",
		Long: `Check validates one or more URLs against the configured policy without
making any network connection. Each URL is reported as allowed or
rejected together with the rejection reason.

The exit code is 0 when every URL is allowed and 1 when at least one
is rejected, so check works as a guard in scripts.`,
		Example: `  # Example 1: Check a single URL
  ssrfguard check https://api.example.com/v1/users

  # Example 2: Check several URLs with JSON output
  ssrfguard check --json https://example.com http://10.0.0.1/admin

  # Example 3: Check against a custom policy file
  ssrfguard check --config policy.yaml https://internal.example.com`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewInvalidInputError("failed to load config", err)
	}

	results := Check(args, cfg.Policy)

	rejected := 0
	for _, r := range results {
		if !r.Allowed {
			rejected++
		}
	}

	if shared.GetJSON() {
		resp := struct {
			Success  bool     `json:"success"`
			Rejected int      `json:"rejected"`
			Results  []Result `json:"results"`
		}{
			Success:  rejected == 0,
			Rejected: rejected,
			Results:  results,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else if !shared.GetQuiet() {
		for _, r := range results {
			if r.Allowed {
				cmd.Printf("allow  %s\n", r.URL)
			} else {
				cmd.Printf("reject %s (%s)\n", r.URL, r.Error)
			}
		}
	}

	if rejected > 0 {
		return shared.NewRejectedError("", nil)
	}
	return nil
}

// Check validates each URL against the policy and collects the outcomes.
func Check(urls []string, policy *urlpolicy.Policy) []Result {
	results := make([]Result, 0, len(urls))
	for _, raw := range urls {
		r := Result{URL: raw, Allowed: true}
		if err := urlpolicy.Validate(raw, policy); err != nil {
			r.Allowed = false
			r.Error = err.Error()
			r.Reason = string(urlpolicy.ReasonOf(err))
		}
		results = append(results, r)
	}
	return results
}
