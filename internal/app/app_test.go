package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/e-santo/modtrace/internal/analysis"
	"github.com/e-santo/modtrace/internal/report"
)

type stubAnalyzer struct {
	result  report.Report
	err     error
	lastReq analysis.Request
}

func (s *stubAnalyzer) Analyse(_ context.Context, req analysis.Request) (report.Report, error) {
	s.lastReq = req
	return s.result, s.err
}

func stubReport() report.Report {
	result := report.New("/repo")
	result.Dependencies = []report.Dependency{
		{
			Name:      "path",
			Kind:      report.KindBuiltin,
			Locations: []report.Location{{File: "src/index.js", Line: 1, Column: 21}},
		},
	}
	result.Unresolved = []report.Diagnostic{
		{
			Expression: `import(name)`,
			Reason:     "import() is not supported",
			Location:   report.Location{File: "src/index.js", Line: 4, Column: 7},
		},
	}
	result.Summary = report.Summary{FileCount: 1, DependencyCount: 1, UnresolvedCount: 1}
	return result
}

func TestExecuteFormatsReport(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubReport()}
	application := &App{Analyzer: analyzer, Formatter: report.NewFormatter()}

	req := DefaultRequest()
	req.RepoPath = "/repo"
	req.Scan.Workers = 3
	req.Scan.ShowUnresolved = true

	output, err := application.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(output, "path") {
		t.Fatalf("expected dependency in output, got:\n%s", output)
	}
	if !strings.Contains(output, "import() is not supported") {
		t.Fatalf("expected unresolved diagnostic in output, got:\n%s", output)
	}
	if analyzer.lastReq.RepoPath != "/repo" {
		t.Fatalf("expected repo path forwarded, got %q", analyzer.lastReq.RepoPath)
	}
	if analyzer.lastReq.Workers != 3 {
		t.Fatalf("expected 3 workers, got %d", analyzer.lastReq.Workers)
	}
}

func TestExecuteHidesUnresolvedByDefault(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubReport()}
	application := &App{Analyzer: analyzer, Formatter: report.NewFormatter()}

	req := DefaultRequest()
	req.RepoPath = "/repo"

	output, err := application.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.Contains(output, "import() is not supported") {
		t.Fatalf("expected diagnostics hidden, got:\n%s", output)
	}
	if !strings.Contains(output, "1 unresolved") {
		t.Fatalf("expected unresolved count in summary, got:\n%s", output)
	}
}

func TestExecuteDefaultsWorkersToCPUCount(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubReport()}
	application := &App{Analyzer: analyzer, Formatter: report.NewFormatter()}

	req := DefaultRequest()
	if _, err := application.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if analyzer.lastReq.Workers < 1 {
		t.Fatalf("expected a positive worker count, got %d", analyzer.lastReq.Workers)
	}
}

func TestExecutePropagatesAnalyzerError(t *testing.T) {
	wantErr := errors.New("walk failed")
	application := &App{
		Analyzer:  &stubAnalyzer{err: wantErr},
		Formatter: report.NewFormatter(),
	}

	if _, err := application.Execute(context.Background(), DefaultRequest()); !errors.Is(err, wantErr) {
		t.Fatalf("expected analyzer error, got %v", err)
	}
}
