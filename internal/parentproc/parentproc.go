// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package parentproc identifies the hook runner hosting the current
// process by inspecting the parent process command line.
package parentproc

import (
	"os"
	"regexp"

	"go.astrophena.name/ensure-uv/internal/lookpath"
)

// KnownRunners lists the hook runners this package recognizes, in
// order of preference.
var KnownRunners = []string{"prek", "pre-commit"}

// Runner guesses which hook runner started the current process.
//
// It first looks for a known runner named on the parent process
// command line, then falls back to the first known runner resolvable
// in path, which has the format of the PATH environment variable. It
// returns the runner name and whether one was identified.
func Runner(path string) (string, bool) {
	if cl, err := cmdline(os.Getppid()); err == nil {
		if r, ok := runnerFromCmdline(cl, path); ok {
			return r, true
		}
	}
	return runnerFromPath(path)
}

// runnerFromCmdline returns the first known runner that is named on
// the command line cl and also resolves to an executable in path.
func runnerFromCmdline(cl, path string) (string, bool) {
	for _, r := range KnownRunners {
		if !matchWord(cl, r) {
			continue
		}
		if _, ok := lookpath.Look(lookpath.ExeName(r), path); ok {
			return r, true
		}
	}
	return "", false
}

// runnerFromPath returns the first known runner that resolves to an
// executable in path.
func runnerFromPath(path string) (string, bool) {
	for _, r := range KnownRunners {
		if _, ok := lookpath.Look(lookpath.ExeName(r), path); ok {
			return r, true
		}
	}
	return "", false
}

// matchWord reports whether word occurs in s on word boundaries, so
// that a runner name is not found inside an unrelated longer word.
func matchWord(s, word string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`).MatchString(s)
}
