package resolve

import (
	"testing"

	"github.com/e-santo/modtrace/internal/value"
)

func memberOf(object value.Value, name string) *value.Member {
	return value.NewMember(object, value.Str(name))
}

func TestPathModuleMembers(t *testing.T) {
	path := value.NewWellKnownObject(value.ObjectPathModule)

	got := mustStep(t, memberOf(path, "join"))
	if !got.Equal(value.NewWellKnownFunction(value.FuncPathJoin)) {
		t.Fatalf("expected path.join marker, got %s", got)
	}

	got = mustStep(t, memberOf(path, "dirname"))
	if !got.Equal(value.NewWellKnownFunction(value.FuncPathDirname)) {
		t.Fatalf("expected path.dirname marker, got %s", got)
	}
}

func TestFsModuleReadMethods(t *testing.T) {
	fs := value.NewWellKnownObject(value.ObjectFsModule)
	methods := []string{
		"realpath", "realpathSync", "stat", "statSync", "existsSync",
		"createReadStream", "exists", "open", "openSync", "readFile", "readFileSync",
	}
	for _, method := range methods {
		got := mustStep(t, memberOf(fs, method))
		fn, ok := got.(*value.WellKnownFunction)
		if !ok || fn.Kind != value.FuncFsReadMethod {
			t.Fatalf("expected fs read-method marker for %q, got %s", method, got)
		}
		if fn.Method != method {
			t.Fatalf("expected the method name %q preserved, got %q", method, fn.Method)
		}
	}
}

func TestFsPromisesResolvesBackToFsModule(t *testing.T) {
	fs := value.NewWellKnownObject(value.ObjectFsModule)
	got := mustStep(t, memberOf(fs, "promises"))
	if !got.Equal(fs) {
		t.Fatalf("expected fs.promises to resolve to the fs module marker, got %s", got)
	}

	// fs.promises.readFile goes through the same table again.
	got = mustStep(t, memberOf(got, "readFile"))
	fn, ok := got.(*value.WellKnownFunction)
	if !ok || fn.Kind != value.FuncFsReadMethod || fn.Method != "readFile" {
		t.Fatalf("expected fs.promises.readFile to resolve to a read method, got %s", got)
	}
}

func TestURLModuleMembers(t *testing.T) {
	urlModule := value.NewWellKnownObject(value.ObjectURLModule)
	got := mustStep(t, memberOf(urlModule, "pathToFileURL"))
	if !got.Equal(value.NewWellKnownFunction(value.FuncPathToFileURL)) {
		t.Fatalf("expected pathToFileURL marker, got %s", got)
	}
}

func TestChildProcessMembers(t *testing.T) {
	childProcess := value.NewWellKnownObject(value.ObjectChildProcess)
	for _, method := range []string{"spawn", "spawnSync", "execFile", "execFileSync"} {
		got := mustStep(t, memberOf(childProcess, method))
		fn, ok := got.(*value.WellKnownFunction)
		if !ok || fn.Kind != value.FuncChildProcessSpawnMethod || fn.Method != method {
			t.Fatalf("expected spawn-method marker for %q, got %s", method, got)
		}
	}

	got := mustStep(t, memberOf(childProcess, "fork"))
	if !got.Equal(value.NewWellKnownFunction(value.FuncChildProcessFork)) {
		t.Fatalf("expected fork marker, got %s", got)
	}
}

func TestRequireResolveMember(t *testing.T) {
	require := value.NewWellKnownFunction(value.FuncRequire)
	got := mustStep(t, memberOf(require, "resolve"))
	if !got.Equal(value.NewWellKnownFunction(value.FuncRequireResolve)) {
		t.Fatalf("expected require.resolve marker, got %s", got)
	}
}

func TestUnknownMembersReconstructTheAccess(t *testing.T) {
	cases := []struct {
		object value.Value
		prop   value.Value
		reason string
	}{
		{value.NewWellKnownObject(value.ObjectPathModule), value.Str("sep"), "unsupported property on Node.js path module"},
		{value.NewWellKnownObject(value.ObjectFsModule), value.Str("writeFile"), "unsupported property on Node.js fs module"},
		{value.NewWellKnownObject(value.ObjectFsModule), value.Number(1), "unsupported property on Node.js fs module"},
		{value.NewWellKnownObject(value.ObjectURLModule), value.Str("fileURLToPath"), "unsupported property on Node.js url module"},
		{value.NewWellKnownObject(value.ObjectChildProcess), value.Str("exec"), "unsupported property on Node.js child_process module"},
		{value.NewWellKnownFunction(value.FuncRequire), value.Str("cache"), "unsupported property on function"},
		{value.NewWellKnownFunction(value.FuncPathJoin), value.Str("resolve"), "unsupported property on function"},
	}
	for _, tc := range cases {
		member := value.NewMember(tc.object, tc.prop)
		got := mustStep(t, member)
		unknown, ok := got.(*value.Unknown)
		if !ok {
			t.Fatalf("expected unknown for %s, got %s", member, got)
		}
		if unknown.Reason != tc.reason {
			t.Fatalf("expected reason %q for %s, got %q", tc.reason, member, unknown.Reason)
		}
		if unknown.Origin == nil || !unknown.Origin.Equal(member) {
			t.Fatalf("expected origin to reconstruct %s, got %s", member, unknown.Origin)
		}
	}
}
