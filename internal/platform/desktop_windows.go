//go:build windows

package platform

// DefaultOpener returns the host's opener command.
func DefaultOpener() Opener {
	return ExecOpener{Command: "rundll32", Args: []string{"url.dll,FileProtocolHandler"}}
}

// DefaultTrasher returns nil: recycle-bin deletion has no stock CLI on
// Windows, so the endpoint reports unsupported unless a Trasher is wired
// explicitly.
func DefaultTrasher() Trasher {
	return nil
}
