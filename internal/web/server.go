// Package web exposes the scan, duplicate and organize pipeline over a
// small JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sweeply/sweep/internal/dedup"
	"github.com/sweeply/sweep/internal/engine"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/organize"
	"github.com/sweeply/sweep/internal/scanner"
)

// Server wires the pipeline components behind HTTP handlers.
type Server struct {
	logger    *slog.Logger
	scanner   *scanner.Scanner
	engine    *engine.Engine
	detector  *dedup.Detector
	organizer *organize.Organizer

	dirs         []string
	organizeOpts organize.Options

	mu              sync.Mutex
	lastFiles       []model.FileRecord
	lastAssignments []model.CategoryAssignment
	lastScanAt      time.Time
	lastSummary     *model.RunSummary
}

// Config holds the server dependencies.
type Config struct {
	Logger       *slog.Logger
	Scanner      *scanner.Scanner
	Engine       *engine.Engine
	Detector     *dedup.Detector
	Organizer    *organize.Organizer
	Dirs         []string
	OrganizeOpts organize.Options
}

// NewServer creates a Server from its dependencies.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:       logger,
		scanner:      cfg.Scanner,
		engine:       cfg.Engine,
		detector:     cfg.Detector,
		organizer:    cfg.Organizer,
		dirs:         cfg.Dirs,
		organizeOpts: cfg.OrganizeOpts,
	}
}

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("POST /api/scan", s.handleScan)
	mux.HandleFunc("POST /api/duplicates", s.handleDuplicates)
	mux.HandleFunc("POST /api/organize", s.handleOrganize)
	return mux
}

// ListenAndServe runs the HTTP server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	}
}

type statusResponse struct {
	LastScanAt   *time.Time        `json:"last_scan_at,omitempty"`
	LastRun      *model.RunSummary `json:"last_run,omitempty"`
	Provider     string            `json:"provider"`
	Directories  []string          `json:"directories"`
	FilesScanned int               `json:"files_scanned"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := statusResponse{
		Provider:     s.engine.Provider(),
		Directories:  s.dirs,
		FilesScanned: len(s.lastFiles),
		LastRun:      s.lastSummary,
	}
	if !s.lastScanAt.IsZero() {
		at := s.lastScanAt
		resp.LastScanAt = &at
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cats := model.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"categories": names})
}

type scannedFile struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Source   string  `json:"source"`
	SizeMB   float64 `json:"size_mb"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	files, warnings := s.scanner.Scan(r.Context(), s.dirs)
	assignments := s.engine.Categorize(r.Context(), files)

	s.mu.Lock()
	s.lastFiles = files
	s.lastAssignments = assignments
	s.lastScanAt = time.Now()
	s.mu.Unlock()

	byPath := make(map[string]model.CategoryAssignment, len(assignments))
	for _, a := range assignments {
		byPath[a.FilePath] = a
	}

	out := make([]scannedFile, 0, len(files))
	counts := make(map[string]int)
	for _, f := range files {
		a := byPath[f.Path]
		out = append(out, scannedFile{
			Path:     f.Path,
			Name:     f.Name,
			SizeMB:   f.SizeMB(),
			Category: string(a.Category),
			Source:   string(a.Source),
		})
		counts[string(a.Category)]++
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"files":    out,
		"counts":   counts,
		"warnings": len(warnings),
		"total":    len(files),
		"provider": s.engine.Provider(),
	})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	files := s.cachedFiles()
	if files == nil {
		files, _ = s.scanner.Scan(r.Context(), s.dirs)
	}

	groups, err := s.detector.FindDuplicates(r.Context(), files)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"groups":      groups,
		"summary":     dedup.Summarize(groups),
		"suggestions": dedup.SuggestCleanup(groups),
	})
}

type organizeRequest struct {
	Dest    string `json:"dest"`
	Mode    string `json:"mode"`
	Project string `json:"project"`
	DryRun  bool   `json:"dry_run"`
}

func (s *Server) handleOrganize(w http.ResponseWriter, r *http.Request) {
	var req organizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	opts := s.organizeOpts
	if req.Dest != "" {
		opts.Root = req.Dest
	}
	if req.Mode != "" {
		mode, err := organize.ParseMode(req.Mode)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		opts.Mode = mode
	}
	if req.Project != "" {
		opts.Project = req.Project
	}

	files := s.cachedFiles()
	assignments := s.cachedAssignments()
	if files == nil {
		files, _ = s.scanner.Scan(r.Context(), s.dirs)
		assignments = s.engine.Categorize(r.Context(), files)
	}

	plan := s.organizer.Plan(files, assignments, opts)
	if req.DryRun {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"dry_run": true,
			"plan":    plan,
			"planned": len(plan),
		})
		return
	}

	runID := organize.NewRunID()
	results := s.organizer.Apply(r.Context(), plan, runID)
	summary := model.Summarize(results)

	s.mu.Lock()
	s.lastSummary = &summary
	s.lastFiles = nil
	s.lastAssignments = nil
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"dry_run": false,
		"run_id":  runID,
		"results": results,
		"summary": summary,
	})
}

func (s *Server) cachedFiles() []model.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFiles
}

func (s *Server) cachedAssignments() []model.CategoryAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAssignments
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
