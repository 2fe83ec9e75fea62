// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Ensure-uv is a pre-commit hook that makes sure the uv binary is
findable on PATH before any other hook needs it.

When uv already resolves on PATH, the hook exits immediately. When uv
is installed in a known location ($UV_INSTALL_DIR, $XDG_BIN_HOME,
~/.local/bin or ~/.cargo/bin) but the hook runner stripped that
location from PATH, the hook re-runs its own command line with the
location prepended to PATH. When uv is not installed at all, the hook
downloads and runs the official install script once, then proceeds as
above.

A re-run is marked with the _ENSURE_UV_RERUN environment variable and
never installs or re-runs anything itself: it either finds uv or fails
with diagnostics.

# Usage

Add the hook as the first entry of .pre-commit-config.yaml, so that it
runs before any hook that needs uv:

	repos:
	  - repo: https://github.com/astrophena/ensure-uv
	    rev: v0.1.0
	    hooks:
	      - id: ensure-uv

If the binary is installed some other way, it also works as a
repo-local hook:

	- repo: local
	  hooks:
	    - id: ensure-uv
	      name: ensure uv
	      entry: ensure-uv
	      language: system
	      always_run: true
	      pass_filenames: false

# Configuration

An optional .ensure-uv.txtar archive in the repository root adjusts
the hook's behavior through the ensure-uv.json file inside it:

	-- ensure-uv.json --
	{
		"install_url": "https://mirror.corp.example.com/uv/install.sh",
		"bin_dirs": ["~/tools/bin"],
		"no_install": false
	}

The ENSURE_UV_INSTALL_URL and ENSURE_UV_NO_INSTALL environment
variables override the corresponding file settings.

# Exit codes

The hook exits 0 when uv is on PATH, possibly after installing it and
re-running itself. When the install script fails, the hook exits with
the script's exit code; when the re-run fails, with the re-run's exit
code.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/ensure-uv/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
