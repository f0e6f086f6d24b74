package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/replica/pkg/domain"
)

const tmpPrefix = "tmp-"

// Store implements ports.RunStore using the local filesystem.
// It stores one JSON file per run in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".replica/runs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".replica", "runs")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) string {
	return filepath.Join(s.BasePath, id+".json")
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("run id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid run id %q", id)
	}
	return nil
}

// Save persists the run to a JSON file atomically.
// It writes to a temporary file first, syncs it, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	if err := validID(run.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, tmpPrefix+run.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(run.ID)
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing run file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves a run from its JSON file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Run, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// Delete removes the run file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	err := os.Remove(s.path(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	return nil
}

// List loads every stored run, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.Run, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Run{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]domain.Run, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		run, err := s.Load(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	domain.SortRuns(runs)
	return runs, nil
}
