package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schrockblock/recipes/internal/catalog"
	"github.com/schrockblock/recipes/internal/config"
	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/imageload"
	"github.com/schrockblock/recipes/internal/mealdb"
	"github.com/schrockblock/recipes/internal/recipe"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/recipes/prefs.toml
	Category   string // overrides the configured category when set
	Verbose    bool
	// LogOutput receives the log. Nil writes to the configured log file,
	// which is what the TUI needs since it owns the terminal.
	LogOutput io.Writer
}

// Env holds the collaborators built once at startup and passed explicitly
// to every component.
type Env struct {
	Config   config.Config
	Client   *mealdb.Client
	Images   *imageload.Loader
	NewID    recipe.IDGenerator
	Logger   *slog.Logger
	Category string

	closers []io.Closer
}

// NewEnv loads the configuration and builds the HTTP client, image loader
// and logger.
func NewEnv(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	env := &Env{
		Config:   cfg,
		NewID:    recipe.DefaultIDGenerator(),
		Category: cfg.Category,
	}
	if v := strings.TrimSpace(opts.Category); v != "" {
		env.Category = v
	}

	out := opts.LogOutput
	if out == nil {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, f)
		out = f
	}
	env.Logger = newLogger(out, opts.Verbose)

	env.Client, err = mealdb.NewClient(cfg.APIBaseURL,
		mealdb.WithTimeout(cfg.RequestTimeout),
		mealdb.WithRateLimit(cfg.RequestsPerSecond),
		mealdb.WithLogger(env.Logger),
	)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	env.Images, err = imageload.New(imageload.Options{
		CacheEntries:      cfg.ImageCacheEntries,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.RequestTimeout,
		Logger:            env.Logger,
	})
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init image loader: %w", err)
	}

	env.Logger.Debug("environment ready",
		"api", env.Client.BaseURL(),
		"category", env.Category,
		"timeout", cfg.RequestTimeout,
		"rate", cfg.RequestsPerSecond,
	)
	return env, nil
}

// Close releases the log file, if one was opened.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Fetch returns the fetch environment bound to ctx.
func (e *Env) Fetch(ctx context.Context) fetch.Env {
	return fetch.Env{
		Context:   ctx,
		Performer: e.Client,
		Parser:    mealdb.NewParser(e.NewID),
		Logger:    e.Logger,
	}
}

// CatalogOptions returns the catalog wiring bound to ctx.
func (e *Env) CatalogOptions(ctx context.Context) catalog.Options {
	return catalog.Options{
		Env:      e.Fetch(ctx),
		Images:   e.Images,
		Category: e.Category,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
