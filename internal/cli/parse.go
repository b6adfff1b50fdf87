package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/e-santo/modtrace/internal/app"
	"github.com/e-santo/modtrace/internal/config"
	"github.com/e-santo/modtrace/internal/report"
)

var ErrHelpRequested = errors.New("help requested")

func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, ErrHelpRequested
	}

	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	switch args[0] {
	case "scan":
		return parseScan(args[1:], req)
	default:
		return req, fmt.Errorf("unknown command: %s", args[0])
	}
}

func parseScan(args []string, req app.Request) (app.Request, error) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	repoPath := fs.String("repo", req.RepoPath, "repository path")
	formatFlag := fs.String("format", string(req.Scan.Format), "output format")
	workers := fs.Int("workers", req.Scan.Workers, "number of analysis workers")
	configPath := fs.String("config", "", "config file path")
	showUnresolved := fs.Bool("show-unresolved", req.Scan.ShowUnresolved, "list unresolved expressions")
	var skipDirs stringList
	fs.Var(&skipDirs, "skip-dir", "additional directory name to skip")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}
	if fs.NArg() > 0 {
		return req, fmt.Errorf("unexpected arguments for scan")
	}
	if *workers < 0 {
		return req, fmt.Errorf("--workers must be >= 0")
	}

	visited := visitedFlags(fs)

	configOverrides, _, err := config.Load(strings.TrimSpace(*repoPath), strings.TrimSpace(*configPath))
	if err != nil {
		return req, err
	}

	values := configOverrides.Apply(config.Defaults())

	cliOverrides := config.Overrides{}
	if visited["workers"] {
		cliOverrides.Workers = workers
	}
	if visited["format"] {
		cliOverrides.Format = formatFlag
	}
	if visited["skip-dir"] {
		cliOverrides.SkipDirs = skipDirs
	}
	values = cliOverrides.Apply(values)
	if err := values.Validate(); err != nil {
		return req, err
	}

	format, err := report.ParseFormat(string(values.Format))
	if err != nil {
		return req, err
	}

	req.RepoPath = strings.TrimSpace(*repoPath)
	req.Scan = app.ScanRequest{
		Format:         format,
		Workers:        values.Workers,
		SkipDirs:       values.SkipDirs,
		ShowUnresolved: *showUnresolved,
	}

	return req, nil
}

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})
	return visited
}
