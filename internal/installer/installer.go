// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package installer downloads and runs the official uv install script.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"go.astrophena.name/ensure-uv/internal/request"
)

// DefaultScriptURL returns the URL of the official install script for
// the current platform.
func DefaultScriptURL() string {
	if runtime.GOOS == "windows" {
		return "https://astral.sh/uv/install.ps1"
	}
	return "https://astral.sh/uv/install.sh"
}

// Options configures an installer run.
type Options struct {
	// ScriptURL is the URL to download the install script from. If
	// empty, [DefaultScriptURL] is used.
	ScriptURL string
	// Env is the environment of the installer process, in "key=value"
	// form. The script reads variables like UV_INSTALL_DIR from it. If
	// nil, the installer inherits the process environment.
	Env []string
	// Output, if non-nil, additionally receives the combined output of
	// the installer as it runs.
	Output io.Writer
	// HTTPClient is used to download the script. If nil,
	// [request.DefaultClient] is used.
	HTTPClient *http.Client
}

// Error describes an install script that started but did not succeed.
type Error struct {
	// ExitCode is the exit code of the installer process, or 1 if the
	// process could not be started.
	ExitCode int
	// Output is the combined stdout and stderr of the installer.
	Output []byte

	err error
}

func (e *Error) Error() string {
	if len(e.Output) > 0 {
		return fmt.Sprintf("install script failed (exit code %d):\n%s", e.ExitCode, e.Output)
	}
	return fmt.Sprintf("install script failed (exit code %d): %v", e.ExitCode, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// Run downloads the install script and executes it once, waiting for
// it to complete.
//
// The script's combined output is captured and, on failure, returned
// inside [Error] along with the script's exit code. Run doesn't kill
// the script on context cancellation: an interrupt is expected to
// reach it through the process group.
func Run(ctx context.Context, opts Options) error {
	url := opts.ScriptURL
	if url == "" {
		url = DefaultScriptURL()
	}

	script, err := request.Make[request.Bytes](ctx, request.Params{
		Method:     http.MethodGet,
		URL:        url,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return fmt.Errorf("downloading install script: %w", err)
	}

	f, err := os.CreateTemp("", "ensure-uv-install-*"+scriptExt())
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(script); err != nil {
		f.Close()
		return fmt.Errorf("writing install script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing install script: %w", err)
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if opts.Output != nil {
		out = io.MultiWriter(&buf, opts.Output)
	}

	cmd := command(f.Name())
	cmd.Env = opts.Env
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Error{ExitCode: exitErr.ExitCode(), Output: buf.Bytes(), err: err}
		}
		return &Error{ExitCode: 1, Output: buf.Bytes(), err: err}
	}
	return nil
}

func scriptExt() string {
	if runtime.GOOS == "windows" {
		return ".ps1"
	}
	return ".sh"
}

func command(path string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("powershell", "-ExecutionPolicy", "ByPass", "-NoProfile", "-NonInteractive", "-File", path)
	}
	return exec.Command("sh", path, "--quiet")
}
