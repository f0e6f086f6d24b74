package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/replica/pkg/adapters/process"
	"github.com/aretw0/replica/pkg/dataset"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/metrics"
	"github.com/aretw0/replica/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed driver can hold an output directory.
const DefaultLockTTL = 6 * time.Hour

// Request identifies the dataset to reconstruct.
// Empty OutputRoot and BinaryPath fall back to the locator defaults.
type Request struct {
	DatasetPath string `json:"dataset_path"`
	OutputRoot  string `json:"output_root_path,omitempty"`
	BinaryPath  string `json:"binary_path,omitempty"`
}

// Result reports where the artifacts were requested to be written and how
// the binary exited. The paths are returned whether or not the files exist.
type Result struct {
	RunID       string            `json:"run_id"`
	Dataset     string            `json:"dataset"`
	DatasetPath string            `json:"dataset_path"`
	Binary      string            `json:"binary"`
	Outputs     domain.Outputs    `json:"outputs"`
	Status      domain.ExitStatus `json:"status"`
}

// Driver runs fuse_replica on a dataset.
type Driver struct {
	locator *dataset.Locator
	runner  ports.ProcessRunner
	store   ports.RunStore
	locker  ports.Locker
	lockTTL time.Duration
	metrics *metrics.Recorder
	logger  *slog.Logger
	stdout  io.Writer
	strict  bool
	timeout time.Duration
}

// New creates a Driver resolving default locations through locator.
func New(locator *dataset.Locator, opts ...Option) *Driver {
	d := &Driver{
		locator: locator,
		lockTTL: DefaultLockTTL,
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runner == nil {
		d.runner = process.NewRunner()
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.stdout == nil {
		d.stdout = io.Discard
	}
	if d.lockTTL <= 0 {
		d.lockTTL = DefaultLockTTL
	}
	return d
}

// Reconstruct invokes the binary on req.DatasetPath and returns the output paths.
//
// The binary must exist as a regular file, otherwise domain.ErrBinaryNotFound
// is returned before anything is launched or created. A non-zero exit is
// reported in Result.Status and only becomes an error in strict mode.
func (d *Driver) Reconstruct(ctx context.Context, req Request) (Result, error) {
	name, err := dataset.Name(req.DatasetPath)
	if err != nil {
		return Result{}, err
	}

	binary := d.locator.ResolveBinary(req.BinaryPath)
	if err := dataset.CheckBinary(binary); err != nil {
		d.logger.Error("binary check failed", "binary", binary, "error", err)
		return Result{}, err
	}

	dir, err := d.locator.OutputDir(name, req.OutputRoot)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Dataset:     name,
		DatasetPath: req.DatasetPath,
		Binary:      binary,
		Outputs:     domain.NewOutputs(dir),
	}

	if d.locker != nil {
		unlock, err := d.locker.Lock(ctx, dir, d.lockTTL)
		if err != nil {
			return res, fmt.Errorf("failed to lock output directory %s: %w", dir, err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				d.logger.Warn("failed to release output directory lock", "dir", dir, "error", err)
			}
		}()
	}

	fmt.Fprintf(d.stdout, "Running executable at:\t%s\n", binary)
	fmt.Fprintf(d.stdout, "On the dataset at:\t%s\n", req.DatasetPath)
	fmt.Fprintf(d.stdout, "Outputting mesh at:\t%s\n", res.Outputs.MeshPath)
	fmt.Fprintf(d.stdout, "Outputting esdf at:\t%s\n", res.Outputs.ESDFPath)

	runCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	inv := domain.NewReconstructInvocation(binary, req.DatasetPath, res.Outputs)
	d.logger.Debug("invoking reconstruction", "command", inv.Command, "args", inv.Args)

	started := time.Now()
	status, runErr := d.runner.Run(runCtx, inv)
	elapsed := time.Since(started)
	res.Status = status

	run := domain.Run{
		ID:          uuid.NewString(),
		Dataset:     name,
		DatasetPath: req.DatasetPath,
		Binary:      binary,
		Outputs:     res.Outputs,
		StartedAt:   started.UTC(),
		Duration:    elapsed,
		ExitCode:    status.Code,
		Outcome:     domain.OutcomeOf(status, runErr),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	res.RunID = run.ID
	d.record(ctx, run)

	if runErr != nil {
		return res, fmt.Errorf("reconstruction of %s: %w", name, runErr)
	}

	if !status.Success() {
		d.logger.Debug("reconstruction binary exited with failure",
			"dataset", name,
			"code", status.Code,
		)
		if d.strict {
			return res, fmt.Errorf("%w: %s exited with code %d", domain.ErrProcessFailed, binary, status.Code)
		}
	}

	d.logger.Debug("reconstruction finished",
		"dataset", name,
		"run_id", run.ID,
		"outcome", run.Outcome,
		"duration", elapsed,
	)
	return res, nil
}

// record publishes the run to the configured store and metrics.
// Failing to persist never changes the outcome of the reconstruction.
func (d *Driver) record(ctx context.Context, run domain.Run) {
	if d.metrics != nil {
		d.metrics.Observe(run)
	}
	if d.store == nil {
		return
	}
	if err := d.store.Save(context.WithoutCancel(ctx), &run); err != nil {
		d.logger.Warn("failed to record run", "run_id", run.ID, "error", err)
	}
}
