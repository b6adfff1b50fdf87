package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

const SchemaVersion = "0.1.0"

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// DependencyKind classifies a statically resolved module specifier.
type DependencyKind string

const (
	KindBuiltin  DependencyKind = "builtin"
	KindRelative DependencyKind = "relative"
	KindPackage  DependencyKind = "package"
)

// Dependency is one statically resolved module reference with every source
// location that imports it.
type Dependency struct {
	Name      string         `json:"name"`
	Kind      DependencyKind `json:"kind"`
	Locations []Location     `json:"locations"`
}

// Diagnostic describes one expression the analyzer could not resolve, with
// the reconstructed expression text for the user.
type Diagnostic struct {
	Expression string   `json:"expression"`
	Reason     string   `json:"reason"`
	Location   Location `json:"location"`
}

type Summary struct {
	FileCount       int `json:"fileCount"`
	DependencyCount int `json:"dependencyCount"`
	UnresolvedCount int `json:"unresolvedCount"`
}

type Report struct {
	SchemaVersion string       `json:"schemaVersion"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	RepoPath      string       `json:"repoPath"`
	Summary       Summary      `json:"summary"`
	Dependencies  []Dependency `json:"dependencies"`
	Unresolved    []Diagnostic `json:"unresolved,omitempty"`
	Warnings      []string     `json:"warnings,omitempty"`
}

func New(repoPath string) Report {
	return Report{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		RepoPath:      repoPath,
		Dependencies:  []Dependency{},
	}
}
