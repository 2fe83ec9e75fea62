// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package ensureuv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.astrophena.name/ensure-uv/internal/cli"
	"go.astrophena.name/ensure-uv/internal/txtar"
)

// configFile is looked up in the working directory, which the hook
// runner sets to the repository root.
const configFile = ".ensure-uv.txtar"

// config controls where the hook looks for uv and how it installs it.
//
// It is read from the ensure-uv.json file inside an optional
// .ensure-uv.txtar archive in the repository root:
//
//	-- ensure-uv.json --
//	{
//		"install_url": "https://mirror.corp.example.com/uv/install.sh",
//		"bin_dirs": ["~/tools/bin"],
//		"no_install": false
//	}
//
// The ENSURE_UV_INSTALL_URL and ENSURE_UV_NO_INSTALL environment
// variables override the corresponding file settings.
type config struct {
	// InstallURL replaces the official install script URL.
	InstallURL string `json:"install_url"`
	// BinDirs replaces the list of directories checked when the tool
	// is not on PATH. Entries may start with "~/" to refer to the
	// home directory.
	BinDirs []string `json:"bin_dirs"`
	// NoInstall forbids running the installer: if the tool is missing,
	// the hook fails instead.
	NoInstall bool `json:"no_install"`
}

func loadConfig(env *cli.Env) (*config, error) {
	cfg := new(config)

	ar, err := txtar.ParseFile(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		for _, f := range ar.Files {
			if f.Name != "ensure-uv.json" {
				continue
			}
			if err := json.Unmarshal(f.Data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configFile, err)
			}
		}
	}

	if url := env.Getenv("ENSURE_UV_INSTALL_URL"); url != "" {
		cfg.InstallURL = url
	}
	if v := env.Getenv("ENSURE_UV_NO_INSTALL"); v != "" {
		noInstall, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing ENSURE_UV_NO_INSTALL: %w", err)
		}
		cfg.NoInstall = noInstall
	}

	return cfg, nil
}

// binDirs returns the directories searched for the tool when it is
// not on PATH, most specific first.
func (c *config) binDirs(env *cli.Env) []string {
	if len(c.BinDirs) > 0 {
		dirs := make([]string, 0, len(c.BinDirs))
		for _, d := range c.BinDirs {
			dirs = append(dirs, expandHome(d, env))
		}
		return dirs
	}

	var dirs []string
	if dir := env.Getenv("UV_INSTALL_DIR"); dir != "" {
		dirs = append(dirs, dir)
	}
	if dir := env.Getenv("XDG_BIN_HOME"); dir != "" {
		dirs = append(dirs, dir)
	}
	if home := homeDir(env); home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
		)
	}
	return dirs
}

// expandHome rewrites a leading "~" or "~/" in dir to the home
// directory.
func expandHome(dir string, env *cli.Env) string {
	if dir == "~" {
		return homeDir(env)
	}
	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		if home := homeDir(env); home != "" {
			return filepath.Join(home, rest)
		}
	}
	return dir
}

// homeDir resolves the home directory from the environment snapshot,
// falling back to the operating system account database.
func homeDir(env *cli.Env) string {
	if home := env.Getenv("HOME"); home != "" {
		return home
	}
	if runtime.GOOS == "windows" {
		if home := env.Getenv("USERPROFILE"); home != "" {
			return home
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
