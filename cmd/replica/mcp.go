package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/replica/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the reconstruction driver as MCP tools (reconstruct, list_runs).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		// Stdout carries JSON-RPC, so nothing else may write there.
		d := a.driver(cmd.ErrOrStderr(), cmd.ErrOrStderr())
		srv := mcp.NewServer(d, a.policy(), a.store)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			a.logger.Info("Starting replica MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			a.logger.Info("Starting replica MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, host, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			a.logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("host", "127.0.0.1", "Interface to listen on (only for SSE, empty for all interfaces)")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
