package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/replica"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/aretw0/replica/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Reconstructor is the driver capability exposed as an MCP tool.
type Reconstructor interface {
	Reconstruct(ctx context.Context, req driver.Request) (driver.Result, error)
}

// Server wraps the reconstruction driver and exposes it as an MCP Server.
type Server struct {
	driver    Reconstructor
	policy    driver.RequestPolicy
	store     ports.RunStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// policy pins the binary and output root for every tool call.
// store may be nil, in which case list_runs reports that no store is configured.
func NewServer(d Reconstructor, policy driver.RequestPolicy, store ports.RunStore) *Server {
	s := &Server{
		driver:    d,
		policy:    policy,
		store:     store,
		mcpServer: server.NewMCPServer("replica-mcp", strings.TrimSpace(replica.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on host:port using SSE.
func (s *Server) ServeSSE(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	baseURL := "http://" + addr
	if host == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: reconstruct
	s.mcpServer.AddTool(mcp.NewTool("reconstruct",
		mcp.WithDescription("Run fuse_replica on a dataset and return the mesh and ESDF output paths."),
		mcp.WithString("dataset_path", mcp.Required(), mcp.Description("Path to the root of the dataset")),
		mcp.WithString("output_root_path", mcp.Description("Output root inside the server's configured root (optional)")),
	), s.handleReconstruct)

	// TOOL: list_runs
	s.mcpServer.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recorded reconstruction runs, oldest first."),
	), s.handleListRuns)
}

func (s *Server) handleReconstruct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasetPath, err := request.RequireString("dataset_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req, err := s.policy.Apply(driver.Request{
		DatasetPath: datasetPath,
		OutputRoot:  request.GetString("output_root_path", ""),
		BinaryPath:  request.GetString("binary_path", ""),
	})
	if err != nil {
		slog.Warn("MCP Reconstruct: Request rejected", "dataset", datasetPath, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.driver.Reconstruct(ctx, req)
	if err != nil {
		// A strict failure still carries the run, so report it alongside the error.
		if errors.Is(err, domain.ErrProcessFailed) {
			jsonBytes, _ := json.Marshal(res)
			return mcp.NewToolResultError(fmt.Sprintf("%v\n%s", err, jsonBytes)), nil
		}
		slog.Warn("MCP Reconstruct failed", "dataset", datasetPath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("reconstruct failed: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(res)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("run store not configured"), nil
	}
	runs, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if runs == nil {
		runs = []domain.Run{}
	}
	jsonBytes, _ := json.Marshal(runs)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
