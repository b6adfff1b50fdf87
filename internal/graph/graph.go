// Package graph merges the per-file module references the resolver produced
// into a deterministic dependency list for the report.
package graph

import (
	"sort"
	"strings"

	"github.com/e-santo/modtrace/internal/report"
)

// Import is one resolved module reference at a source location.
type Import struct {
	Module   string
	Location report.Location
}

// Dependencies groups imports by module name, deduplicates repeated
// locations, and classifies each specifier. Output ordering is stable:
// dependencies by name, locations by file then position.
func Dependencies(imports []Import) []report.Dependency {
	byName := make(map[string][]report.Location)
	for _, imp := range imports {
		if imp.Module == "" {
			continue
		}
		byName[imp.Module] = appendLocation(byName[imp.Module], imp.Location)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	dependencies := make([]report.Dependency, 0, len(names))
	for _, name := range names {
		locations := byName[name]
		sort.Slice(locations, func(i, j int) bool {
			if locations[i].File != locations[j].File {
				return locations[i].File < locations[j].File
			}
			if locations[i].Line != locations[j].Line {
				return locations[i].Line < locations[j].Line
			}
			return locations[i].Column < locations[j].Column
		})
		dependencies = append(dependencies, report.Dependency{
			Name:      name,
			Kind:      Classify(name),
			Locations: locations,
		})
	}
	return dependencies
}

func appendLocation(locations []report.Location, location report.Location) []report.Location {
	for _, seen := range locations {
		if seen == location {
			return locations
		}
	}
	return append(locations, location)
}

// Classify decides whether a module specifier is a Node builtin, a relative
// (or absolute) file reference, or a package dependency.
func Classify(name string) report.DependencyKind {
	if isNodeBuiltin(name) {
		return report.KindBuiltin
	}
	if name == "." || name == ".." ||
		strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") ||
		strings.HasPrefix(name, "/") {
		return report.KindRelative
	}
	return report.KindPackage
}
