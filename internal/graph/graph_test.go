package graph

import (
	"testing"

	"github.com/e-santo/modtrace/internal/report"
)

func TestDependenciesGroupsAndSorts(t *testing.T) {
	imports := []Import{
		{Module: "lodash", Location: report.Location{File: "b.js", Line: 1, Column: 1}},
		{Module: "./util", Location: report.Location{File: "a.js", Line: 3, Column: 5}},
		{Module: "lodash", Location: report.Location{File: "a.js", Line: 2, Column: 1}},
		{Module: "fs", Location: report.Location{File: "a.js", Line: 1, Column: 1}},
	}

	deps := Dependencies(imports)
	if len(deps) != 3 {
		t.Fatalf("expected 3 dependencies, got %d", len(deps))
	}
	if deps[0].Name != "./util" || deps[1].Name != "fs" || deps[2].Name != "lodash" {
		t.Fatalf("expected name-sorted dependencies, got %+v", deps)
	}
	if deps[2].Locations[0].File != "a.js" || deps[2].Locations[1].File != "b.js" {
		t.Fatalf("expected location-sorted references, got %+v", deps[2].Locations)
	}
}

func TestDependenciesDeduplicatesRepeatedLocations(t *testing.T) {
	location := report.Location{File: "a.js", Line: 1, Column: 1}
	deps := Dependencies([]Import{
		{Module: "./x", Location: location},
		{Module: "./x", Location: location},
	})
	if len(deps) != 1 || len(deps[0].Locations) != 1 {
		t.Fatalf("expected a single deduplicated reference, got %+v", deps)
	}
}

func TestDependenciesSkipsEmptyNames(t *testing.T) {
	deps := Dependencies([]Import{{Module: ""}})
	if len(deps) != 0 {
		t.Fatalf("expected empty module names dropped, got %+v", deps)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]report.DependencyKind{
		"fs":             report.KindBuiltin,
		"node:fs":        report.KindBuiltin,
		"fs/promises":    report.KindBuiltin,
		"path":           report.KindBuiltin,
		"./util":         report.KindRelative,
		"../shared":      report.KindRelative,
		".":              report.KindRelative,
		"/abs/module":    report.KindRelative,
		"lodash":         report.KindPackage,
		"@scope/pkg":     report.KindPackage,
		"fsevents":       report.KindPackage,
		"node-fetch":     report.KindPackage,
		"pathological":   report.KindPackage,
	}
	for name, want := range cases {
		if got := Classify(name); got != want {
			t.Fatalf("classify %q: expected %s, got %s", name, want, got)
		}
	}
}
