package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/replica/internal/presentation/tui"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "replica <dataset_path>",
	Short: "Run fuse_replica on a Replica dataset",
	Long: `Reconstructs a mesh and an ESDF from a Replica dataset by invoking the
pre-built fuse_replica executable.

Outputs are written to <output_root_path>/<dataset name>/reconstructed_mesh.ply
and reconstructed_esdf.ply. A non-zero exit of the binary does not fail the
command unless --strict is set; --report shows how it exited.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReconstruct,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML or JSON config file")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("output_root_path", "", "Root directory for outputs (default: <executable dir>/output)")
	pf.String("fuse_replica_binary_path", "", "Path to the fuse_replica executable (default: <executable dir>/build/executables/fuse_replica)")
	pf.Bool("strict", false, "Fail when fuse_replica exits with a non-zero code")
	pf.Duration("timeout", 0, "Abort the reconstruction after this long (0 waits indefinitely)")
	pf.String("store", "none", "Where to record runs: none, memory, file or redis")
	pf.String("store-dir", "", "Directory for the file run store")
	pf.String("redis-addr", "", "Address of the Redis run store")
	pf.Bool("lock", false, "Serialize runs writing to the same output directory")
	pf.String("metrics-file", "", "Write Prometheus metrics to this textfile after each run")

	rootCmd.Flags().Bool("report", false, "Print a status line and a markdown report of the result")
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d := a.driver(cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := d.Reconstruct(ctx, driver.Request{
		DatasetPath: args[0],
		OutputRoot:  a.cfg.OutputRoot,
		BinaryPath:  a.cfg.BinaryPath,
	})
	a.flushMetrics()
	if err != nil && !errors.Is(err, domain.ErrProcessFailed) {
		return err
	}

	// Only the progress lines are printed unless a report is asked for.
	if report, _ := cmd.Flags().GetBool("report"); report {
		fmt.Fprintln(cmd.ErrOrStderr(), tui.StatusLine(profileFor(cmd.ErrOrStderr()), res))
		render := tui.NewRenderer(fileOf(cmd.OutOrStdout()))
		out, rerr := render(tui.Report(res))
		if rerr != nil {
			return fmt.Errorf("failed to render report: %w", rerr)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
