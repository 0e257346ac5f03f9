package executor

import "context"

// Executor defines the interface for running external commands
type Executor interface {
	// Execute runs a command and returns its stdout. On failure the error
	// carries the command's stderr output.
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports where the named binary resolves on PATH.
	LookPath(name string) (string, error)
}
