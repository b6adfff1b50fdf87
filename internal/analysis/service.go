package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/e-santo/modtrace/internal/graph"
	"github.com/e-santo/modtrace/internal/lower"
	"github.com/e-santo/modtrace/internal/report"
	"github.com/e-santo/modtrace/internal/safeio"
)

type Request struct {
	RepoPath string
	Workers  int
	SkipDirs []string
}

func DefaultRequest() Request {
	return Request{
		RepoPath: ".",
		Workers:  runtime.NumCPU(),
	}
}

var skipDirectories = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"vendor":       true,
	".next":        true,
	".turbo":       true,
}

type Analyzer interface {
	Analyse(ctx context.Context, req Request) (report.Report, error)
}

type Service struct {
	parser *lower.SourceParser
}

func NewService() *Service {
	return &Service{parser: lower.NewSourceParser()}
}

// fileResult is one file's resolved imports and diagnostics. Files are
// analyzed concurrently; results are merged in path order so output is
// deterministic regardless of scheduling.
type fileResult struct {
	relPath     string
	imports     []graph.Import
	diagnostics []report.Diagnostic
	parseError  bool
}

func (s *Service) Analyse(ctx context.Context, req Request) (report.Report, error) {
	result := report.New(req.RepoPath)
	if strings.TrimSpace(req.RepoPath) == "" {
		return result, errors.New("repo path is empty")
	}

	paths, err := collectSourceFiles(ctx, req.RepoPath, req.SkipDirs)
	if err != nil {
		return result, err
	}
	if len(paths) == 0 {
		result.Warnings = append(result.Warnings, "no JS/TS files found for analysis")
		return result, nil
	}

	results, err := s.analyseFiles(ctx, req, paths)
	if err != nil {
		return result, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].relPath < results[j].relPath
	})

	var imports []graph.Import
	parseErrorCount := 0
	var parseErrorFiles []string
	for _, file := range results {
		imports = append(imports, file.imports...)
		result.Unresolved = append(result.Unresolved, file.diagnostics...)
		if file.parseError {
			parseErrorCount++
			if len(parseErrorFiles) < 5 {
				parseErrorFiles = append(parseErrorFiles, file.relPath)
			}
		}
	}

	result.Dependencies = graph.Dependencies(imports)
	result.Summary = report.Summary{
		FileCount:       len(results),
		DependencyCount: len(result.Dependencies),
		UnresolvedCount: len(result.Unresolved),
	}

	if parseErrorCount > 0 {
		warning := fmt.Sprintf("parse errors in %d file(s)", parseErrorCount)
		if len(parseErrorFiles) > 0 {
			warning = fmt.Sprintf("%s: %s", warning, strings.Join(parseErrorFiles, ", "))
		}
		result.Warnings = append(result.Warnings, warning)
	}

	return result, nil
}

func collectSourceFiles(ctx context.Context, repoPath string, extraSkipDirs []string) ([]string, error) {
	skip := make(map[string]bool, len(skipDirectories)+len(extraSkipDirs))
	for dir := range skipDirectories {
		skip[dir] = true
	}
	for _, dir := range extraSkipDirs {
		skip[dir] = true
	}

	var paths []string
	err := filepath.WalkDir(repoPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			if path != repoPath && skip[entry.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if lower.IsSupportedFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Service) analyseFiles(ctx context.Context, req Request, paths []string) ([]fileResult, error) {
	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	results := make([]fileResult, 0, len(paths))

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				file, err := s.analyseFile(ctx, req.RepoPath, path)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					results = append(results, file)
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) analyseFile(ctx context.Context, repoPath string, path string) (fileResult, error) {
	content, err := safeio.ReadFileUnder(repoPath, path)
	if err != nil {
		return fileResult{}, err
	}

	tree, err := s.parser.Parse(ctx, path, content)
	if err != nil {
		return fileResult{}, err
	}

	relPath, err := filepath.Rel(repoPath, path)
	if err != nil {
		relPath = path
	}

	result := fileResult{
		relPath:    relPath,
		parseError: tree.RootNode().HasError(),
	}

	for _, expr := range lower.File(tree, content, relPath) {
		resolved := Resolve(expr.Value)
		for _, name := range Modules(resolved) {
			result.imports = append(result.imports, graph.Import{
				Module:   name,
				Location: expr.Location,
			})
		}
		for _, unknown := range Unresolved(resolved) {
			result.diagnostics = append(result.diagnostics, report.Diagnostic{
				Expression: unknown.Origin.String(),
				Reason:     unknown.Reason,
				Location:   expr.Location,
			})
		}
	}

	result.imports = dedupeImports(result.imports)
	result.diagnostics = dedupeDiagnostics(result.diagnostics)
	return result, nil
}

// dedupeImports collapses the same module reference reported from both an
// outer expression and a call nested inside it. The entry with the greatest
// column wins: it is the innermost, most precise location on that line.
func dedupeImports(imports []graph.Import) []graph.Import {
	type key struct {
		module string
		file   string
		line   int
	}
	best := make(map[key]int, len(imports))
	order := make([]key, 0, len(imports))
	for i, imp := range imports {
		k := key{module: imp.Module, file: imp.Location.File, line: imp.Location.Line}
		if existing, ok := best[k]; ok {
			if imp.Location.Column > imports[existing].Location.Column {
				best[k] = i
			}
			continue
		}
		best[k] = i
		order = append(order, k)
	}

	deduped := make([]graph.Import, 0, len(order))
	for _, k := range order {
		deduped = append(deduped, imports[best[k]])
	}
	return deduped
}

func dedupeDiagnostics(diagnostics []report.Diagnostic) []report.Diagnostic {
	type key struct {
		expression string
		reason     string
		file       string
		line       int
	}
	best := make(map[key]int, len(diagnostics))
	order := make([]key, 0, len(diagnostics))
	for i, diag := range diagnostics {
		k := key{expression: diag.Expression, reason: diag.Reason, file: diag.Location.File, line: diag.Location.Line}
		if existing, ok := best[k]; ok {
			if diag.Location.Column > diagnostics[existing].Location.Column {
				best[k] = i
			}
			continue
		}
		best[k] = i
		order = append(order, k)
	}

	deduped := make([]report.Diagnostic, 0, len(order))
	for _, k := range order {
		deduped = append(deduped, diagnostics[best[k]])
	}
	return deduped
}
