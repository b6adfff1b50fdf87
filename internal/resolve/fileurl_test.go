package resolve

import (
	"testing"

	"github.com/e-santo/modtrace/internal/value"
)

func fileURLCall(args ...value.Value) *value.Call {
	return value.NewCall(value.NewWellKnownFunction(value.FuncPathToFileURL), args)
}

func TestPathToFileURLAbsolutePath(t *testing.T) {
	got := mustStep(t, fileURLCall(value.Str("/tmp/app/main.js")))
	resolved, ok := got.(*value.URL)
	if !ok {
		t.Fatalf("expected a url value, got %s", got)
	}
	if resolved.Parsed.String() != "file:///tmp/app/main.js" {
		t.Fatalf("unexpected url %q", resolved.Parsed.String())
	}
}

func TestPathToFileURLRelativePathIsNotParseable(t *testing.T) {
	got := mustStep(t, fileURLCall(value.Str("./main.js")))
	unknown, ok := got.(*value.Unknown)
	if !ok {
		t.Fatalf("expected unknown, got %s", got)
	}
	if unknown.Reason != "url not parseable" {
		t.Fatalf("unexpected reason %q", unknown.Reason)
	}
	if unknown.Origin == nil {
		t.Fatalf("expected the original call retained")
	}
}

func TestPathToFileURLArgumentShapes(t *testing.T) {
	nonConstant := mustStep(t, fileURLCall(opaque("dynamic")))
	unknown, ok := nonConstant.(*value.Unknown)
	if !ok {
		t.Fatalf("expected unknown, got %s", nonConstant)
	}
	if unknown.Reason != "only constant argument is supported" {
		t.Fatalf("unexpected reason %q", unknown.Reason)
	}

	wrongArity := mustStep(t, fileURLCall(value.Str("/a"), value.Str("/b")))
	unknown, ok = wrongArity.(*value.Unknown)
	if !ok {
		t.Fatalf("expected unknown, got %s", wrongArity)
	}
	if unknown.Reason != "only a single argument is supported" {
		t.Fatalf("unexpected reason %q", unknown.Reason)
	}
}
