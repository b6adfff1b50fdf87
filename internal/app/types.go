package app

import "github.com/e-santo/modtrace/internal/report"

type Request struct {
	RepoPath string
	Scan     ScanRequest
}

// ScanRequest carries the fully merged scan options. Parsing and config
// merging happen before Execute sees the request.
type ScanRequest struct {
	Format         report.Format
	Workers        int
	SkipDirs       []string
	ShowUnresolved bool
}

func DefaultRequest() Request {
	return Request{
		RepoPath: ".",
		Scan: ScanRequest{
			Format: report.FormatTable,
		},
	}
}
