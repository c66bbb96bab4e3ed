package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/monorun/internal/gitdiff"
	"github.com/vk/monorun/internal/manifest"
	"github.com/vk/monorun/internal/report"
	"github.com/vk/monorun/internal/workspace"
)

// ManifestLoader supplies the root configuration and the discovered
// workspaces. The concrete implementation lives in the manifest package; the
// interface keeps app testable without fixture files.
type ManifestLoader interface {
	LoadRoot(ctx context.Context, repoRoot string) (*manifest.Root, error)
	Discover(ctx context.Context, repoRoot string, roots []string) ([]*workspace.Workspace, error)
}

// ChangeDetector supplies the changed-file list between two refs.
type ChangeDetector interface {
	ChangedFiles(ctx context.Context, base, head string) ([]string, error)
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   ManifestLoader
	reporter *report.Reporter

	// Detector computes the changed-file list; it defaults to the git-backed
	// detector and is replaceable in tests.
	Detector ChangeDetector
}

// NewApp is the constructor for the main application. Listings and task
// output go to outW; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader ManifestLoader) *App {
	return &App{
		outW:     outW,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		loader:   loader,
		reporter: report.New(outW, cfg.Verbose),
		Detector: gitdiff.NewDetector(cfg.RepoRoot),
	}
}
