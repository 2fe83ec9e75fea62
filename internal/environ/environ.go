// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package environ manipulates environment variable lists in the
// "key=value" form used by [os.Environ] and [os/exec.Cmd].
//
// All functions treat their input as immutable and return fresh
// slices. On Windows, keys are compared case-insensitively, matching
// how the system environment behaves there.
package environ

import (
	"runtime"
	"strings"
)

// caseInsensitiveKeys is overridden in tests.
var caseInsensitiveKeys = runtime.GOOS == "windows"

func keyEqual(a, b string) bool {
	if caseInsensitiveKeys {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func cut(entry string) (key, value string) {
	if i := strings.IndexByte(entry, '='); i >= 0 {
		return entry[:i], entry[i+1:]
	}
	return entry, ""
}

// Lookup returns the value of key in env and whether it is present.
// If env contains duplicate entries for key, the last one wins.
func Lookup(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		if k, v := cut(env[i]); keyEqual(k, key) {
			return v, true
		}
	}
	return "", false
}

// Get returns the value of key in env, or the empty string if key is
// not present.
func Get(env []string, key string) string {
	v, _ := Lookup(env, key)
	return v
}

// Set returns a copy of env with key set to value. Any existing
// entries for key are dropped, so the result contains exactly one
// entry for it.
func Set(env []string, key, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if k, _ := cut(entry); keyEqual(k, key) {
			continue
		}
		out = append(out, entry)
	}
	return append(out, key+"="+value)
}
