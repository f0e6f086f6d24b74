package ports

import (
	"context"

	"github.com/aretw0/replica/pkg/domain"
)

// ProcessRunner executes an external command and waits for it to terminate.
type ProcessRunner interface {
	// Run blocks until the process exits or ctx is done.
	// A non-zero exit is reported through ExitStatus.Code, not as an error.
	// An error means the process could not be started or awaited.
	Run(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error)
}

// ProcessRunnerFunc adapts a function to the ProcessRunner interface.
type ProcessRunnerFunc func(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error)

// Run calls f(ctx, inv).
func (f ProcessRunnerFunc) Run(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error) {
	return f(ctx, inv)
}
