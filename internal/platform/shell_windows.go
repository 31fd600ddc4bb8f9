//go:build windows

package platform

// DefaultShell returns the Windows interactive shell. The override
// variable is not consulted; Windows always gets PowerShell.
func DefaultShell() []string {
	return []string{"powershell.exe"}
}
