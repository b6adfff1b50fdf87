package app

import (
	"context"
	"runtime"

	"github.com/e-santo/modtrace/internal/analysis"
	"github.com/e-santo/modtrace/internal/report"
)

type App struct {
	Analyzer  analysis.Analyzer
	Formatter report.Formatter
}

func New() *App {
	return &App{
		Analyzer:  analysis.NewService(),
		Formatter: report.NewFormatter(),
	}
}

func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	workers := req.Scan.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	result, err := a.Analyzer.Analyse(ctx, analysis.Request{
		RepoPath: req.RepoPath,
		Workers:  workers,
		SkipDirs: req.Scan.SkipDirs,
	})
	if err != nil {
		return "", err
	}

	if !req.Scan.ShowUnresolved {
		// The summary still counts unresolved expressions so the user
		// knows the static view is incomplete.
		result.Unresolved = nil
	}

	return a.Formatter.Format(result, req.Scan.Format)
}
