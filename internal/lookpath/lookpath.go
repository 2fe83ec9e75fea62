// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package lookpath resolves executable files against an explicit PATH
// value instead of the process environment.
package lookpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExeName appends the Windows executable suffix to name when the
// platform requires one.
func ExeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// Look searches for an executable named file in the directories
// listed in path, which has the format of the PATH environment
// variable. It returns the full path of the first match and whether
// one was found.
//
// Empty PATH entries are skipped: they resolve relative to the
// working directory, and a hook must never pick up a binary from the
// repository it runs in.
func Look(file, path string) (string, bool) {
	for dir := range strings.SplitSeq(path, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, file)
		if isExecutable(p) {
			return p, true
		}
	}
	return "", false
}

// InDirs searches for an executable named file in each of dirs in
// order. It returns the full path of the first match and whether one
// was found.
func InDirs(file string, dirs []string) (string, bool) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, file)
		if isExecutable(p) {
			return p, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		// The execute bit carries no meaning on Windows; the
		// caller-provided name already includes the .exe suffix.
		return true
	}
	return info.Mode()&0o111 != 0
}
