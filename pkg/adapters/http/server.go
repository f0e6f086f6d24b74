package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/replica"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/aretw0/replica/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// APIVersion is the version of the JSON API served by this package.
const APIVersion = "0.1.0"

// Reconstructor is the driver capability exposed over HTTP.
type Reconstructor interface {
	Reconstruct(ctx context.Context, req driver.Request) (driver.Result, error)
}

// Server exposes the reconstruction driver as a JSON API.
// Policy pins the binary and output root; clients only choose the dataset.
type Server struct {
	Driver  Reconstructor
	Policy  driver.RequestPolicy
	Store   ports.RunStore
	Metrics http.Handler
}

// NewHandler creates the HTTP handler.
// Store and Metrics are optional: without a store the run listing answers 501,
// without metrics /metrics is not routed.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/reconstructions", func(r chi.Router) {
		r.Post("/", s.PostReconstruction)
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "replica-http",
		"version":     strings.TrimSpace(replica.Version),
		"api_version": APIVersion,
	})
}

// PostReconstruction handles the POST /reconstructions request.
// The binary's exit status is part of the response body; a non-zero exit is
// only an HTTP error when the driver runs in strict mode.
func (s *Server) PostReconstruction(w http.ResponseWriter, r *http.Request) {
	var body driver.Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		slog.Warn("PostReconstruction: Invalid request body", "error", err)
		return
	}
	if body.DatasetPath == "" {
		writeError(w, http.StatusBadRequest, "dataset_path is required")
		return
	}

	req, err := s.Policy.Apply(body)
	if err != nil {
		slog.Warn("PostReconstruction: Request rejected", "dataset", body.DatasetPath, "error", err)
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	res, err := s.Driver.Reconstruct(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, domain.ErrBinaryNotFound), errors.Is(err, domain.ErrInvalidDataset):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrProcessFailed):
		writeJSON(w, http.StatusBadGateway, res)
	default:
		slog.Error("PostReconstruction failed", "dataset", body.DatasetPath, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ListRuns handles the GET /reconstructions request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "run store not configured")
		return
	}
	runs, err := s.Store.List(r.Context())
	if err != nil {
		slog.Error("ListRuns failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun handles the GET /reconstructions/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "run store not configured")
		return
	}
	run, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("GetRun failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
