package driver

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/replica/pkg/metrics"
	"github.com/aretw0/replica/pkg/ports"
)

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithRunner replaces the process runner (default: local os/exec runner).
func WithRunner(r ports.ProcessRunner) Option {
	return func(d *Driver) {
		d.runner = r
	}
}

// WithStore records every invocation in the given run store.
func WithStore(s ports.RunStore) Option {
	return func(d *Driver) {
		d.store = s
	}
}

// WithLocker serializes runs that write to the same output directory.
func WithLocker(l ports.Locker, ttl time.Duration) Option {
	return func(d *Driver) {
		d.locker = l
		d.lockTTL = ttl
	}
}

// WithMetrics registers run outcomes and durations with the recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithStdout sets where the progress lines are printed (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(d *Driver) {
		d.stdout = w
	}
}

// WithStrict turns a non-zero exit of the binary into domain.ErrProcessFailed.
func WithStrict(strict bool) Option {
	return func(d *Driver) {
		d.strict = strict
	}
}

// WithTimeout bounds each invocation. Zero waits indefinitely.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}
