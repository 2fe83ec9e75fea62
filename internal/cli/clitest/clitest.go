// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides utilities for testing command-line
// applications built with the [cli] package.
package clitest

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"
	"testing"

	"go.astrophena.name/ensure-uv/internal/cli"
)

// Case describes a single test case for a [cli.App].
type Case[App cli.App] struct {
	// Args are the command-line arguments passed to the application.
	Args []string
	// Cmdline is the full command line of the application, including
	// the program name. Only applications that re-invoke themselves
	// care about it.
	Cmdline []string
	// Env are the environment variables visible to the application.
	Env map[string]string
	// Stdin is the standard input of the application. If nil, an empty
	// reader is used.
	Stdin io.Reader
	// WantErr, if non-nil, requires the application to return an error
	// matching it with [errors.Is].
	WantErr error
	// WantErrType, if non-nil, requires the application to return an
	// error whose type matches it with [errors.As].
	WantErrType error
	// WantInStdout is a string that must appear in standard output.
	WantInStdout string
	// WantInStderr is a string that must appear in standard error.
	WantInStderr string
	// WantNothingPrinted requires the application to print nothing.
	WantNothingPrinted bool
	// CheckFunc, if non-nil, runs after the application for additional
	// assertions.
	CheckFunc func(*testing.T, App)
}

// Run runs each case as a subtest. For every case, setup constructs
// the App, and the application runs through [cli.Run] with an
// environment built from the case.
func Run[App cli.App](t *testing.T, setup func(*testing.T) App, cases map[string]Case[App]) {
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}

			environ := make([]string, 0, len(tc.Env))
			for _, k := range slices.Sorted(maps.Keys(tc.Env)) {
				environ = append(environ, k+"="+tc.Env[k])
			}

			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:    tc.Args,
				Cmdline: tc.Cmdline,
				Environ: environ,
				Stdin:   stdin,
				Stdout:  &stdout,
				Stderr:  &stderr,
			}

			err := cli.Run(cli.WithEnv(t.Context(), env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("want error %v, got %v", tc.WantErr, err)
				}
			case tc.WantErrType != nil:
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("want error of type %T, got %v (%T)", tc.WantErrType, err, err)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("nothing should be printed to stdout, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("nothing should be printed to stderr, got: %q", stderr.String())
				}
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
