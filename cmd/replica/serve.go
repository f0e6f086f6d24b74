package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/replica/pkg/adapters/http"
	"github.com/aretw0/replica/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the reconstruction driver as a JSON API over HTTP.
Runs are recorded in memory unless another --store is configured.

Clients only choose the dataset: the binary is fixed by --fuse_replica_binary_path
(or the config file) and outputs stay under --output_root_path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetString("port")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.store == nil {
			a.store = memory.NewStore()
		}

		// The child's output and the progress lines go to stderr, away from any piped stdout.
		d := a.driver(cmd.ErrOrStderr(), cmd.ErrOrStderr())

		srv := &http.Server{
			Addr: net.JoinHostPort(host, port),
			Handler: httpAdapter.NewHandler(&httpAdapter.Server{
				Driver:  d,
				Policy:  a.policy(),
				Store:   a.store,
				Metrics: a.metrics.Handler(),
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			a.logger.Info("Starting replica server", "address", srv.Addr, "store", a.cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			a.logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Warn("Graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			a.logger.Info("Replica server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "127.0.0.1", "Interface to listen on (empty for all interfaces)")
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
