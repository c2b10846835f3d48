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
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/DaniilVdovin/SSRFGuard/internal/cli"
	"github.com/DaniilVdovin/SSRFGuard/internal/commands/shared"
	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	if cmd.Use != "check <url> [url...]" {
		t.Errorf("expected use 'check <url> [url...]', got %q", cmd.Use)
	}
	// Note: --json and --config flags are global and added by root command
}

func TestCheckResults(t *testing.T) {
	results := Check([]string{
		"https://api.example.com/v1/users",
		"http://127.0.0.1/admin",
		"ftp://example.com/file",
	}, urlpolicy.Default())

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Allowed {
		t.Errorf("expected first URL allowed, got rejection: %s", results[0].Error)
	}
	if results[1].Allowed {
		t.Error("expected loopback URL to be rejected")
	}
	if results[1].Reason != string(urlpolicy.ReasonDangerousHostname) {
		t.Errorf("expected dangerous_hostname reason, got %q", results[1].Reason)
	}
	if results[2].Reason != string(urlpolicy.ReasonSchemeNotAllowed) {
		t.Errorf("expected scheme_not_allowed reason, got %q", results[2].Reason)
	}
}

func TestCheckCommandAllows(t *testing.T) {
	cmd := NewCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"https://example.com/"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected allowed URL to pass, got: %v", err)
	}
	if !strings.Contains(outBuf.String(), "allow") {
		t.Errorf("expected allow line, got %q", outBuf.String())
	}
}

func TestCheckCommandRejects(t *testing.T) {
	cmd := NewCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"https://example.com/", "http://10.0.0.1/admin"})

	err := cmd.Execute()
	var exitErr *shared.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != shared.ExitRejected {
		t.Errorf("expected exit code %d, got %d", shared.ExitRejected, exitErr.Code)
	}
	if !strings.Contains(outBuf.String(), "reject http://10.0.0.1/admin") {
		t.Errorf("expected reject line, got %q", outBuf.String())
	}
}

func TestCheckCommandJSON(t *testing.T) {
	// The --json flag is registered on the root command.
	root := cli.NewRootCommand()
	root.AddCommand(NewCommand())

	_, _, jsonPtr, _ := shared.RegisterFlagPointers()
	defer func() { *jsonPtr = false }()

	var outBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check", "--json", "http://192.168.1.1/"})

	err := root.Execute()
	var exitErr *shared.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != shared.ExitRejected {
		t.Fatalf("expected rejection exit error, got %v", err)
	}

	var resp struct {
		Success  bool     `json:"success"`
		Rejected int      `json:"rejected"`
		Results  []Result `json:"results"`
	}
	if err := json.Unmarshal(outBuf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, outBuf.String())
	}
	if resp.Success || resp.Rejected != 1 {
		t.Errorf("expected 1 rejection, got %+v", resp)
	}
	if resp.Results[0].Reason != string(urlpolicy.ReasonPrivateIP) {
		t.Errorf("expected private_ip reason, got %q", resp.Results[0].Reason)
	}
}

func TestCheckCommandBadConfig(t *testing.T) {
	shared.SetConfigPathForTest("/nonexistent/config.yaml")
	defer shared.SetConfigPathForTest("")

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"https://example.com/"})

	err := cmd.Execute()
	var exitErr *shared.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != shared.ExitInvalidInput {
		t.Errorf("expected exit code %d, got %d", shared.ExitInvalidInput, exitErr.Code)
	}
}
