// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package ensureuv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"go.astrophena.name/ensure-uv/internal/cli"
	"go.astrophena.name/ensure-uv/internal/environ"
	"go.astrophena.name/ensure-uv/internal/logger"
)

// reinvoke runs the hook's original command line again with binDir
// prepended to PATH and the re-run marker set. The child inherits the
// hook's standard streams, and its exit code becomes the hook's own.
func reinvoke(ctx context.Context, env *cli.Env, binDir string) error {
	if len(env.Cmdline) == 0 {
		return fmt.Errorf("cannot re-run %s: the original command line is unknown", toolName)
	}

	childEnv := environ.Set(env.Environ, "PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
	childEnv = environ.Set(childEnv, markerEnv, "1")

	logger.Debug(ctx, "re-running",
		slog.Any("cmdline", env.Cmdline),
		slog.String("prepended", binDir))

	// Not exec.CommandContext: an interrupt reaches the child through
	// the process group, and the child must not be killed on context
	// cancellation.
	cmd := exec.Command(env.Cmdline[0], env.Cmdline[1:]...)
	cmd.Env = childEnv
	cmd.Stdin = env.Stdin
	cmd.Stdout = env.Stdout
	cmd.Stderr = env.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &cli.ExitError{Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("re-running %s: %w", env.Cmdline[0], err)
}
