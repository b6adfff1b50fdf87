package cli

const usage = `Usage:
  modtrace scan [--repo PATH] [--format table|json] [--workers N] [--config PATH] [--show-unresolved]

Options:
  --repo PATH           Repository path (default: .)
  --format table|json   Output format (default: table)
  --workers N           Number of analysis workers (default: one per CPU)
  --config PATH         Config file path (default: discovered in the repo)
  --skip-dir NAME       Additional directory name to skip (repeatable)
  --show-unresolved     List expressions that could not be resolved statically
  -h, --help            Show this help text
`

func Usage() string {
	return usage
}
