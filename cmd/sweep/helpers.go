package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/sweeply/sweep/internal/common"
	"github.com/sweeply/sweep/internal/config"
	"github.com/sweeply/sweep/internal/dedup"
	"github.com/sweeply/sweep/internal/engine"
	"github.com/sweeply/sweep/internal/llm"
	"github.com/sweeply/sweep/internal/organize"
	"github.com/sweeply/sweep/internal/prefs"
	"github.com/sweeply/sweep/internal/scanner"
	"github.com/sweeply/sweep/internal/storage"
)

// resolveDirs turns configured scan directories into absolute paths,
// dropping ones that don't exist with a warning. Args beat config. Zero
// resolvable directories is the only fatal startup condition.
func resolveDirs(args []string) ([]string, error) {
	raw := args
	if len(raw) == 0 {
		raw = viper.GetStringSlice("directories")
	}
	if len(raw) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			raw = []string{filepath.Join(home, "Downloads")}
		}
	}

	var dirs []string
	for _, d := range raw {
		d = config.ExpandPath(d)
		if !filepath.IsAbs(d) {
			if home, err := os.UserHomeDir(); err == nil {
				d = filepath.Join(home, d)
			}
		}
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			slog.Warn("skipping unusable scan directory", "dir", d)
			continue
		}
		dirs = append(dirs, d)
	}

	if len(dirs) == 0 {
		return nil, common.NewUserError(
			"No usable scan directories. Pass directories as arguments or set \"directories\" in the config.",
			common.ErrNoScanDirs)
	}
	return dirs, nil
}

func openPrefs() (*prefs.Store, error) {
	path := viper.GetString("preferences.path")
	if path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate data directory: %w", err)
		}
		path = filepath.Join(dir, "preferences.json")
	}
	return prefs.Load(config.ExpandPath(path))
}

func openMoveLog() (*storage.MoveLog, error) {
	path := viper.GetString("database.path")
	if path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate data directory: %w", err)
		}
		path = filepath.Join(dir, "sweep.db")
	}
	return storage.OpenMoveLog(config.ExpandPath(path))
}

func llmConfig() llm.Config {
	return llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Timeout:     viper.GetDuration("llm.timeout"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}
}

// pipeline bundles the components a command run needs.
type pipeline struct {
	scanner   *scanner.Scanner
	engine    *engine.Engine
	detector  *dedup.Detector
	organizer *organize.Organizer
	store     *prefs.Store
	moveLog   *storage.MoveLog
	dirs      []string
}

// newPipeline builds the component graph. The model backend is probed once
// here; withMoveLog controls whether the SQLite move log is opened.
func newPipeline(ctx context.Context, args []string, withMoveLog bool) (*pipeline, error) {
	dirs, err := resolveDirs(args)
	if err != nil {
		return nil, err
	}

	store, err := openPrefs()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	client := llm.Detect(ctx, llmConfig(), slog.Default())

	eng := engine.New(client, store, slog.Default(), engine.Options{
		BatchSize: viper.GetInt("batch_size"),
	})

	org := organize.New(slog.Default())
	p := &pipeline{
		scanner:   scanner.New(scanner.Options{IncludeHidden: viper.GetBool("include_hidden")}, slog.Default()),
		engine:    eng,
		detector:  dedup.New(slog.Default()),
		organizer: org,
		store:     store,
		dirs:      dirs,
	}

	if withMoveLog {
		moveLog, err := openMoveLog()
		if err != nil {
			return nil, fmt.Errorf("failed to open move log: %w", err)
		}
		p.moveLog = moveLog
		org.MoveLog = moveLog
	}

	return p, nil
}

// close flushes learned preferences and releases the move log.
func (p *pipeline) close() {
	if err := p.store.Save(); err != nil {
		slog.Warn("failed to save preferences", "error", err)
	}
	if p.moveLog != nil {
		if err := p.moveLog.Close(); err != nil {
			slog.Warn("failed to close move log", "error", err)
		}
	}
}

func organizeOptions() (organize.Options, error) {
	mode, err := organize.ParseMode(viper.GetString("mode"))
	if err != nil {
		return organize.Options{}, err
	}
	root := viper.GetString("destination")
	if root == "" {
		root = config.DefaultOrganizeDir()
	}
	return organize.Options{
		Root:    config.ExpandPath(root),
		Mode:    mode,
		Project: viper.GetString("project"),
	}, nil
}

func formatDuration(d time.Duration) string {
	return d.Round(10 * time.Millisecond).String()
}
