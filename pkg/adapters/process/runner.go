package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/aretw0/replica/pkg/domain"
)

// DefaultStderrTail is how many trailing bytes of stderr are kept in the ExitStatus.
const DefaultStderrTail = 4096

// DefaultWaitDelay bounds how long Run waits for the output pipes after the
// process was killed or exited, in case a grandchild keeps them open.
const DefaultWaitDelay = 5 * time.Second

// Runner implements ports.ProcessRunner by executing local processes.
// Output is streamed to the configured writers while the process runs,
// matching a plain foreground invocation.
type Runner struct {
	stdout   io.Writer
	stderr   io.Writer
	baseDir  string
	env       []string
	tailSize  int
	waitDelay time.Duration
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithStdout sets where the child's standard output goes (default os.Stdout).
func WithStdout(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = w
	}
}

// WithStderr sets where the child's standard error goes (default os.Stderr).
func WithStderr(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stderr = w
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env map[string]string) RunnerOption {
	return func(r *Runner) {
		for k, v := range env {
			r.env = append(r.env, k+"="+v)
		}
	}
}

// WithStderrTail sets how many trailing stderr bytes are captured. Zero disables capture.
func WithStderrTail(n int) RunnerOption {
	return func(r *Runner) {
		r.tailSize = n
	}
}

// WithWaitDelay sets how long to wait for I/O after the process ends before
// closing the pipes (default DefaultWaitDelay).
func WithWaitDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.waitDelay = d
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		tailSize:  DefaultStderrTail,
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.stdout == nil {
		r.stdout = io.Discard
	}
	if r.stderr == nil {
		r.stderr = io.Discard
	}
	return r
}

// Run executes the invocation and blocks until it terminates.
// A non-zero exit is returned as ExitStatus.Code with a nil error.
// Processes killed by a signal report code -1.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error) {
	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Dir = r.baseDir
	cmd.WaitDelay = r.waitDelay
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	tail := newTailBuffer(r.tailSize)
	cmd.Stdout = r.stdout
	cmd.Stderr = io.MultiWriter(r.stderr, tail)

	start := time.Now()
	err := cmd.Run()
	status := domain.ExitStatus{
		Duration: time.Since(start),
		Stderr:   tail.String(),
	}

	if err == nil {
		return status, nil
	}

	status.Code = -1
	if ctxErr := ctx.Err(); ctxErr != nil {
		return status, fmt.Errorf("process interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status.Code = exitErr.ExitCode()
		return status, nil
	}

	return status, fmt.Errorf("failed to run %s: %w", inv.Command, err)
}
