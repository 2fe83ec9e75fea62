// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package parentproc

import (
	"fmt"
	"os/exec"
	"strings"
)

// cmdline returns the command line of the process with the given PID.
func cmdline(pid int) (string, error) {
	out, err := exec.Command("wmic", "process", "where", fmt.Sprintf("ProcessId=%d", pid), "get", "CommandLine").Output()
	if err != nil {
		return "", err
	}
	s := strings.ReplaceAll(string(out), "\r", "")
	// The first line is the "CommandLine" column header.
	_, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(rest), nil
}
