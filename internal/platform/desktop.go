package platform

import (
	"context"
	"os/exec"
)

// Opener hands a path to the desktop's default application.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Trasher moves a path to the platform trash instead of unlinking it.
type Trasher interface {
	Trash(ctx context.Context, path string) error
}

// ExecOpener shells out to an opener command with the path appended.
type ExecOpener struct {
	Command string
	Args    []string
}

// Open runs the configured command against path.
func (o ExecOpener) Open(ctx context.Context, path string) error {
	args := append(append([]string(nil), o.Args...), path)
	return exec.CommandContext(ctx, o.Command, args...).Run()
}

// ExecTrasher shells out to a trash CLI with the path appended.
type ExecTrasher struct {
	Command string
	Args    []string
}

// Trash runs the configured command against path.
func (t ExecTrasher) Trash(ctx context.Context, path string) error {
	args := append(append([]string(nil), t.Args...), path)
	return exec.CommandContext(ctx, t.Command, args...).Run()
}
