// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"go.astrophena.name/ensure-uv/internal/syncx"
)

// CmdName returns the base name of the running binary, without the
// .exe suffix on Windows.
func CmdName() string {
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}

// Info describes the build of the running binary.
type Info struct {
	// Name is the binary name.
	Name string
	// Version is the module version, or "devel" if the binary was not
	// built from a tagged release.
	Version string
	// Commit is the VCS revision the binary was built from, with a
	// "-dirty" suffix if the working tree had uncommitted changes.
	Commit string
	// Go is the version of the Go toolchain that built the binary.
	Go string
	// OSArch is the target operating system and architecture.
	OSArch string
}

// String implements the [fmt.Stringer] interface.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	fmt.Fprintf(&sb, "\nbuilt with %s for %s\n", i.Go, i.OSArch)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns the build information of the running binary.
func Version() Info { return info.Get(load) }

func load() Info {
	i := Info{
		Name:    CmdName(),
		Version: "devel",
		Go:      runtime.Version(),
		OSArch:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		i.Version = v
	}

	var (
		revision string
		modified bool
	)
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	i.Commit = revision
	if revision != "" && modified {
		i.Commit += "-dirty"
	}

	return i
}
