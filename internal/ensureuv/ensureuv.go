// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package ensureuv implements a pre-commit hook that guarantees the
// uv binary is findable on PATH before any other hook needs it.
//
// The hook distinguishes four situations:
//
//   - uv already resolves on PATH: do nothing.
//   - uv is installed in a known directory but not on PATH: re-run
//     the hook's own command line with that directory prepended to
//     PATH, marked so the new process knows it is a re-run.
//   - uv is not installed at all: run the official installer once,
//     then proceed as above.
//   - the process is a marked re-run and uv still does not resolve:
//     print diagnostics and fail without trying again.
//
// The marker keeps the hook from looping: a marked process never
// installs and never re-runs itself.
package ensureuv

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.astrophena.name/ensure-uv/internal/cli"
	"go.astrophena.name/ensure-uv/internal/installer"
	"go.astrophena.name/ensure-uv/internal/logger"
	"go.astrophena.name/ensure-uv/internal/lookpath"
	"go.astrophena.name/ensure-uv/internal/parentproc"

	"github.com/lmittmann/tint"
)

const (
	// toolName is the command this hook puts on PATH.
	toolName = "uv"
	// markerEnv marks a process as a re-invocation performed by this
	// hook. Only presence matters: any non-empty value counts.
	markerEnv = "_ENSURE_UV_RERUN"
)

// App implements the ensure-uv pre-commit hook.
type App struct {
	verbose bool

	httpc *http.Client // used by tests to stub out the installer download
}

// Flags implements [cli.HasFlags].
func (a *App) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.verbose, "verbose", false, "Log what the hook is doing.")
}

// Run implements [cli.App].
func (a *App) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	ctx = logger.Put(ctx, newLogger(env, a.verbose))

	tool := lookpath.ExeName(toolName)
	path := env.Getenv("PATH")
	rerun := env.Getenv(markerEnv) != ""

	// The fast path: nothing to do if the tool already resolves. For a
	// marked process this is the fix taking effect; for an unmarked one
	// it is the common case of an already working setup.
	if p, ok := lookpath.Look(tool, path); ok {
		logger.Debug(ctx, "tool is on PATH",
			slog.String("tool", toolName),
			slog.String("path", p),
			slog.Bool("rerun", rerun))
		return nil
	}

	// A marked process that still can't see the tool must not try to
	// fix anything again: explain what went wrong and give up.
	if rerun {
		a.rerunDiagnostics(env)
		return fmt.Errorf("%s is still not on PATH after installing it and re-running the hook", toolName)
	}

	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}

	dirs := cfg.binDirs(env)
	bin, ok := lookpath.InDirs(tool, dirs)
	if !ok {
		if cfg.NoInstall {
			return fmt.Errorf("%s is not installed, and the configuration forbids installing it", toolName)
		}
		logger.Info(ctx, "installing", slog.String("tool", toolName))
		if err := a.install(ctx, env, cfg); err != nil {
			return err
		}
		if bin, ok = lookpath.InDirs(tool, dirs); !ok {
			return fmt.Errorf("the installer finished, but %s did not appear in any known directory (checked %s)",
				toolName, strings.Join(dirs, ", "))
		}
	}

	logger.Debug(ctx, "re-running with the tool's directory on PATH",
		slog.String("bin", bin))
	return reinvoke(ctx, env, filepath.Dir(bin))
}

// install downloads and runs the install script. On script failure it
// surfaces the script's output and returns a [cli.ExitError] carrying
// the script's exit code, so the hook exits with that same code.
func (a *App) install(ctx context.Context, env *cli.Env, cfg *config) error {
	opts := installer.Options{
		ScriptURL:  cfg.InstallURL,
		Env:        env.Environ,
		HTTPClient: a.httpc,
	}
	if a.verbose {
		opts.Output = logger.Logf(env.Logf)
	}

	err := installer.Run(ctx, opts)
	if err == nil {
		return nil
	}

	var installErr *installer.Error
	if errors.As(err, &installErr) {
		env.Logf("%s installer failed: exit code %d", toolName, installErr.ExitCode)
		if !a.verbose && len(installErr.Output) > 0 {
			env.Logf("%s", bytes.TrimSuffix(installErr.Output, []byte("\n")))
		}
		return &cli.ExitError{Code: installErr.ExitCode}
	}
	return fmt.Errorf("installing %s: %w", toolName, err)
}

// rerunDiagnostics explains why a re-invoked hook still can't see the
// tool. Every probe degrades to silence: diagnostics must not fail.
func (a *App) rerunDiagnostics(env *cli.Env) {
	cfg, err := loadConfig(env)
	if err != nil {
		cfg = new(config)
	}

	tool := lookpath.ExeName(toolName)
	env.Logf("%s is not on PATH after a re-run.", toolName)
	for _, dir := range cfg.binDirs(env) {
		p := filepath.Join(dir, tool)
		_, statErr := os.Stat(p)
		env.Logf("  checked %s (exists: %v)", p, statErr == nil)
	}

	entries := strings.Split(env.Getenv("PATH"), string(os.PathListSeparator))
	if len(entries) > 5 {
		entries = entries[:5]
	}
	env.Logf("  first PATH entries: %s", strings.Join(entries, ", "))

	if runner, ok := parentproc.Runner(env.Getenv("PATH")); ok {
		env.Logf("  hook runner: %s", runner)
	}
}

// newLogger builds the hook's logger on top of the standard error
// stream. Colors are used only when that stream is a terminal and
// NO_COLOR is unset.
func newLogger(env *cli.Env, verbose bool) *logger.Logger {
	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	isTerm := false
	if f, ok := env.Stderr.(*os.File); ok {
		isTerm = cli.IsTerminal(int(f.Fd()))
	}
	return logger.New(level, tint.NewHandler(env.Stderr, &tint.Options{
		Level:      level,
		NoColor:    !isTerm || env.Getenv("NO_COLOR") != "",
		TimeFormat: time.Kitchen,
	}))
}
