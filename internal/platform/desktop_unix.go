//go:build !windows

package platform

import "runtime"

// DefaultOpener returns the host's opener command.
func DefaultOpener() Opener {
	if runtime.GOOS == "darwin" {
		return ExecOpener{Command: "open"}
	}
	return ExecOpener{Command: "xdg-open"}
}

// DefaultTrasher returns the host's trash command.
func DefaultTrasher() Trasher {
	if runtime.GOOS == "darwin" {
		return ExecTrasher{Command: "trash"}
	}
	return ExecTrasher{Command: "gio", Args: []string{"trash"}}
}
