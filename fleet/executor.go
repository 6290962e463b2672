package fleet

import (
	"context"
	"io"
)

// Executor is the remote shell capability the orchestrator drives. Every call
// targets one host; the orchestrator never assumes anything about transport.
type Executor interface {
	// Run executes command on host and returns its standard output.
	Run(ctx context.Context, host, command string) (string, error)
	// Stream executes command on host and copies its output to out until the
	// command exits or ctx is cancelled.
	Stream(ctx context.Context, host, command string, out io.Writer) error
	// Copy recursively copies remotePath on host into localPath.
	Copy(ctx context.Context, host, remotePath, localPath string) error
}
