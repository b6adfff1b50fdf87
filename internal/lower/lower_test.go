package lower

import (
	"context"
	"testing"

	"github.com/e-santo/modtrace/internal/value"
)

func lowerSource(t *testing.T, name, source string) []Expr {
	t.Helper()
	parser := NewSourceParser()
	tree, err := parser.Parse(context.Background(), name, []byte(source))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return File(tree, []byte(source), name)
}

func requireCallArg(t *testing.T, expr Expr) value.Value {
	t.Helper()
	call, ok := expr.Value.(*value.Call)
	if !ok {
		t.Fatalf("expected call, got %T", expr.Value)
	}
	fn, ok := call.Callee.(*value.WellKnownFunction)
	if !ok || fn.Kind != value.FuncRequire {
		t.Fatalf("expected require callee, got %s", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected one argument, got %d", len(call.Args))
	}
	return call.Args[0]
}

func TestFileLowersRequireLiteral(t *testing.T) {
	exprs := lowerSource(t, "index.js", "require('./util');\n")
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}

	arg := requireCallArg(t, exprs[0])
	if !arg.Equal(value.Str("./util")) {
		t.Fatalf("expected './util' argument, got %s", arg)
	}
	if exprs[0].Location.File != "index.js" || exprs[0].Location.Line != 1 {
		t.Fatalf("unexpected location: %+v", exprs[0].Location)
	}
}

func TestFileLowersDynamicImport(t *testing.T) {
	exprs := lowerSource(t, "index.js", "import('./feature.js');\n")
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}

	call, ok := exprs[0].Value.(*value.Call)
	if !ok {
		t.Fatalf("expected call, got %T", exprs[0].Value)
	}
	fn, ok := call.Callee.(*value.WellKnownFunction)
	if !ok || fn.Kind != value.FuncImport {
		t.Fatalf("expected import callee, got %s", call.Callee)
	}
}

func TestFileLowersConcatenation(t *testing.T) {
	exprs := lowerSource(t, "index.js", "require('./lang/' + name);\n")

	arg := requireCallArg(t, exprs[0])
	concat, ok := arg.(*value.Concat)
	if !ok {
		t.Fatalf("expected concat argument, got %T", arg)
	}
	if len(concat.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(concat.Parts))
	}
	if !concat.Parts[0].Equal(value.Str("./lang/")) {
		t.Fatalf("expected literal prefix, got %s", concat.Parts[0])
	}
	if _, ok := concat.Parts[1].(*value.Unknown); !ok {
		t.Fatalf("expected unknown suffix, got %T", concat.Parts[1])
	}
}

func TestFileLowersTemplateString(t *testing.T) {
	exprs := lowerSource(t, "index.js", "require(`./locale/${name}.json`);\n")

	arg := requireCallArg(t, exprs[0])
	concat, ok := arg.(*value.Concat)
	if !ok {
		t.Fatalf("expected concat argument, got %T", arg)
	}
	if len(concat.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %s", len(concat.Parts), arg)
	}
	if !concat.Parts[0].Equal(value.Str("./locale/")) {
		t.Fatalf("expected literal prefix, got %s", concat.Parts[0])
	}
	if !concat.Parts[2].Equal(value.Str(".json")) {
		t.Fatalf("expected literal suffix, got %s", concat.Parts[2])
	}
}

func TestFileLowersTernary(t *testing.T) {
	exprs := lowerSource(t, "index.js", "require(dev ? './dev' : './prod');\n")

	arg := requireCallArg(t, exprs[0])
	alternatives, ok := arg.(*value.Alternatives)
	if !ok {
		t.Fatalf("expected alternatives argument, got %T", arg)
	}
	if len(alternatives.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(alternatives.Options))
	}
	if !alternatives.Options[0].Equal(value.Str("./dev")) || !alternatives.Options[1].Equal(value.Str("./prod")) {
		t.Fatalf("unexpected options: %s", arg)
	}
}

func TestFileLowersMemberCallOnBoundModule(t *testing.T) {
	source := "const path = require('path');\npath.join('a', 'b');\n"
	exprs := lowerSource(t, "index.js", source)
	if len(exprs) != 2 {
		t.Fatalf("expected 2 expressions, got %d", len(exprs))
	}

	call, ok := exprs[1].Value.(*value.Call)
	if !ok {
		t.Fatalf("expected call, got %T", exprs[1].Value)
	}
	member, ok := call.Callee.(*value.Member)
	if !ok {
		t.Fatalf("expected member callee, got %T", call.Callee)
	}
	object, ok := member.Object.(*value.WellKnownObject)
	if !ok || object.Kind != value.ObjectPathModule {
		t.Fatalf("expected path module object, got %s", member.Object)
	}
	if !member.Property.Equal(value.Str("join")) {
		t.Fatalf("expected join property, got %s", member.Property)
	}
}

func TestFileLowersNestedCallsSeparately(t *testing.T) {
	source := "wrap(require('./inner'));\n"
	exprs := lowerSource(t, "index.js", source)
	if len(exprs) != 2 {
		t.Fatalf("expected outer and inner calls, got %d", len(exprs))
	}

	// The outer wrap(...) call lowers first; the nested require is also
	// collected on its own so it is not lost inside an opaque callee.
	if _, ok := exprs[0].Value.(*value.Call); !ok {
		t.Fatalf("expected outer call, got %T", exprs[0].Value)
	}
	arg := requireCallArg(t, exprs[1])
	if !arg.Equal(value.Str("./inner")) {
		t.Fatalf("expected './inner', got %s", arg)
	}
}

func TestFileLowersTypeScript(t *testing.T) {
	source := "const mod: string = 'fs';\nrequire('./data.ts');\n"
	exprs := lowerSource(t, "index.ts", source)
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}
	arg := requireCallArg(t, exprs[0])
	if !arg.Equal(value.Str("./data.ts")) {
		t.Fatalf("expected './data.ts', got %s", arg)
	}
}

func TestIsSupportedFile(t *testing.T) {
	supported := []string{"a.js", "b.jsx", "c.ts", "d.tsx", "e.mjs", "f.cjs"}
	for _, name := range supported {
		if !IsSupportedFile(name) {
			t.Fatalf("expected %s to be supported", name)
		}
	}
	for _, name := range []string{"a.go", "b.json", "c.md", "noext"} {
		if IsSupportedFile(name) {
			t.Fatalf("expected %s to be unsupported", name)
		}
	}
}
