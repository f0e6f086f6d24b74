package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/replica/internal/config"
	"github.com/aretw0/replica/internal/logging"
	"github.com/aretw0/replica/pkg/adapters/file"
	"github.com/aretw0/replica/pkg/adapters/memory"
	"github.com/aretw0/replica/pkg/adapters/process"
	"github.com/aretw0/replica/pkg/adapters/redis"
	"github.com/aretw0/replica/pkg/dataset"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/aretw0/replica/pkg/metrics"
	"github.com/aretw0/replica/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	locator *dataset.Locator
	store   ports.RunStore
	locker  ports.Locker
	metrics *metrics.Recorder
	closers []func() error
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	locator, err := dataset.NewLocator(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logging.NewWithWriter(cmd.ErrOrStderr(), level),
		locator: locator,
		metrics: metrics.NewRecorder(),
	}
	if err := a.openStore(); err != nil {
		return nil, err
	}
	return a, nil
}

// loadConfig reads the config file and applies the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("output_root_path") {
		cfg.OutputRoot, _ = flags.GetString("output_root_path")
	}
	if flags.Changed("fuse_replica_binary_path") {
		cfg.BinaryPath, _ = flags.GetString("fuse_replica_binary_path")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("store") {
		cfg.Store.Kind, _ = flags.GetString("store")
	}
	if flags.Changed("store-dir") {
		cfg.Store.Dir, _ = flags.GetString("store-dir")
	}
	if flags.Changed("redis-addr") {
		cfg.Store.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("lock") {
		cfg.Store.Lock, _ = flags.GetBool("lock")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}

	return cfg, cfg.Validate()
}

func (a *app) openStore() error {
	switch a.cfg.Store.Kind {
	case config.StoreMemory:
		a.store = memory.NewStore()
	case config.StoreFile:
		a.store = file.New(a.cfg.Store.Dir)
	case config.StoreRedis:
		rs := redis.New(a.cfg.Store.RedisAddr, a.cfg.Store.RedisPassword, a.cfg.Store.RedisDB,
			redis.WithTTL(a.cfg.Store.TTL))
		a.store = rs
		a.closers = append(a.closers, rs.Close)
		if a.cfg.Store.Lock {
			a.locker = redis.NewLocker(rs.Client(), redis.DefaultPrefix)
		}
	case config.StoreNone:
	default:
		return fmt.Errorf("unknown store kind %q", a.cfg.Store.Kind)
	}

	if a.cfg.Store.Lock && a.locker == nil {
		a.locker = memory.NewLocker()
	}
	return nil
}

// driver builds a Driver whose progress lines and child output go to stdout,
// with the child's stderr on stderr.
func (a *app) driver(stdout, stderr io.Writer) *driver.Driver {
	runner := process.NewRunner(
		process.WithStdout(stdout),
		process.WithStderr(stderr),
		process.WithEnv(a.cfg.Env),
	)

	opts := []driver.Option{
		driver.WithRunner(runner),
		driver.WithLogger(a.logger),
		driver.WithStdout(stdout),
		driver.WithStrict(a.cfg.Strict),
		driver.WithTimeout(a.cfg.Timeout),
		driver.WithMetrics(a.metrics),
	}
	if a.store != nil {
		opts = append(opts, driver.WithStore(a.store))
	}
	if a.locker != nil {
		opts = append(opts, driver.WithLocker(a.locker, driver.DefaultLockTTL))
	}
	return driver.New(a.locator, opts...)
}

// policy pins the binary and output root for servers, resolved once at startup.
func (a *app) policy() driver.RequestPolicy {
	root := a.cfg.OutputRoot
	if root == "" {
		root = a.locator.DefaultOutputRoot()
	}
	return driver.RequestPolicy{
		BinaryPath: a.locator.ResolveBinary(a.cfg.BinaryPath),
		OutputRoot: root,
	}
}

// flushMetrics writes the textfile if one is configured. Failures are only logged.
func (a *app) flushMetrics() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Warn("failed to export metrics", "path", a.cfg.MetricsFile, "error", err)
	}
}

func (a *app) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// fileOf returns w as a file when it is one, so renderers can detect a terminal.
func fileOf(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

func profileFor(w io.Writer) termenv.Profile {
	if f := fileOf(w); f != nil {
		return termenv.NewOutput(f).Profile
	}
	return termenv.Ascii
}
