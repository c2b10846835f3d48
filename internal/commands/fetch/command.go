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

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DaniilVdovin/SSRFGuard/internal/commands/shared"
	"github.com/DaniilVdovin/SSRFGuard/internal/config"
	"github.com/DaniilVdovin/SSRFGuard/pkg/httpclient"
	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

// NewCommand creates the fetch command
func NewCommand() *cobra.Command {
	var (
		method          string
		headers         []string
		output          string
		timeout         time.Duration
		followRedirects bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Perform a guarded HTTP request",
		Long: `Fetch performs an HTTP request through the policy-enforcing client.
The URL is validated before any connection is made, and when redirect
following is enabled every redirect target is validated again.

The response body is written to stdout (or --output) and the exit code
reflects the outcome: 1 when the URL is rejected by policy, 4 when the
request itself fails.`,
		Example: `  # Example 1: Fetch a URL with the default policy
  ssrfguard fetch https://api.example.com/v1/status

  # Example 2: POST with a header, following redirects
  ssrfguard fetch -X POST -H "Accept: application/json" -L https://example.com/submit

  # Example 3: Save the body to a file with a custom policy
  ssrfguard fetch --config policy.yaml -o body.json https://internal.example.com/data`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], method, headers, output, timeout, followRedirects)
		},
	}

	cmd.Flags().StringVarP(&method, "request", "X", http.MethodGet, "HTTP method to use")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra request header (repeatable, \"Name: value\")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the response body to a file instead of stdout")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (overrides config)")
	cmd.Flags().BoolVarP(&followRedirects, "location", "L", false, "Follow redirects (each hop is revalidated)")

	return cmd
}

func runFetch(cmd *cobra.Command, rawURL, method string, headers []string, output string, timeout time.Duration, followRedirects bool) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewInvalidInputError("failed to load config", err)
	}

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return shared.NewInvalidInputError("invalid client config", err)
	}
	if timeout > 0 {
		clientCfg.Timeout = timeout
	}
	if followRedirects {
		clientCfg.FollowRedirects = true
	}

	client, err := httpclient.New(clientCfg)
	if err != nil {
		return shared.NewInvalidInputError("failed to build client", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), rawURL, nil)
	if err != nil {
		return shared.NewInvalidInputError("invalid request", err)
	}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return shared.NewInvalidInputError(fmt.Sprintf("malformed header %q, want \"Name: value\"", h), nil)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	resp, err := client.Do(req)
	if err != nil {
		if urlpolicy.IsRejection(err) {
			return shared.NewRejectedError("request rejected by policy", err)
		}
		return shared.NewRequestFailedError("request failed", err)
	}
	defer resp.Body.Close()

	dst := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return shared.NewRequestFailedError("failed to create output file", err)
		}
		defer f.Close()
		dst = f
	}

	if shared.GetVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", resp.Proto, resp.Status)
		for name, values := range resp.Header {
			for _, v := range values {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, v)
			}
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return shared.NewRequestFailedError("failed to read response body", err)
	}

	if resp.StatusCode >= 400 {
		return shared.NewRequestFailedError(fmt.Sprintf("server returned %s", resp.Status), nil)
	}
	return nil
}
