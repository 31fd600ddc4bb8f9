//go:build !windows

package platform

import (
	"os"

	"github.com/kballard/go-shellquote"
)

// DefaultShell resolves the command line used for new terminal sessions:
// the override variable wins (split shell-style, so it may carry
// arguments), then $SHELL, then /bin/sh.
func DefaultShell() []string {
	if override := os.Getenv(ShellOverrideEnv); override != "" {
		if argv, err := shellquote.Split(override); err == nil && len(argv) > 0 {
			return argv
		}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/sh"}
}
