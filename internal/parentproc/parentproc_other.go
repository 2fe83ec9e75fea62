// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build !linux && !darwin && !windows

package parentproc

import (
	"errors"
	"fmt"
	"runtime"
)

func cmdline(pid int) (string, error) {
	return "", fmt.Errorf("reading process command lines on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}
