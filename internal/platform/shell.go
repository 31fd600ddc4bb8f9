// Package platform isolates the handful of host-specific capabilities
// the core needs: shell resolution for new terminal sessions, volume
// enumeration, and the "hand this path to the desktop" operations. Each
// lives behind a small interface or per-platform function so command
// handlers never branch on GOOS themselves.
package platform

// ShellOverrideEnv names the environment variable that overrides the
// default shell command on non-Windows systems. Its value may carry
// arguments, e.g. "/usr/bin/fish -l".
const ShellOverrideEnv = "FILETERM_SHELL"
