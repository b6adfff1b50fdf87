package resolve

import (
	"github.com/e-santo/modtrace/internal/value"
)

// fsReadMethods is the set of fs properties that resolve to a read-style
// method marker. The concrete method name is preserved on the marker for
// consumers that care which accessor was used.
var fsReadMethods = map[string]bool{
	"realpath":         true,
	"realpathSync":     true,
	"stat":             true,
	"statSync":         true,
	"existsSync":       true,
	"createReadStream": true,
	"exists":           true,
	"open":             true,
	"openSync":         true,
	"readFile":         true,
	"readFileSync":     true,
}

var childProcessSpawnMethods = map[string]bool{
	"spawn":        true,
	"spawnSync":    true,
	"execFile":     true,
	"execFileSync": true,
}

func objectMember(object *value.WellKnownObject, prop value.Value) value.Value {
	switch object.Kind {
	case value.ObjectPathModule:
		return pathModuleMember(object, prop)
	case value.ObjectFsModule:
		return fsModuleMember(object, prop)
	case value.ObjectURLModule:
		return urlModuleMember(object, prop)
	case value.ObjectChildProcess:
		return childProcessMember(object, prop)
	default:
		return unknownMember(object, prop, "unsupported object kind")
	}
}

func pathModuleMember(object *value.WellKnownObject, prop value.Value) value.Value {
	switch name, _ := value.AsString(prop); name {
	case "join":
		return value.NewWellKnownFunction(value.FuncPathJoin)
	case "dirname":
		return value.NewWellKnownFunction(value.FuncPathDirname)
	default:
		return unknownMember(object, prop, "unsupported property on Node.js path module")
	}
}

func fsModuleMember(object *value.WellKnownObject, prop value.Value) value.Value {
	if name, ok := value.AsString(prop); ok {
		if fsReadMethods[name] {
			return value.NewFsReadMethod(name)
		}
		// The promise-based API exposes the same surface, so fs.promises
		// resolves back to the fs module marker.
		if name == "promises" {
			return value.NewWellKnownObject(value.ObjectFsModule)
		}
	}
	return unknownMember(object, prop, "unsupported property on Node.js fs module")
}

func urlModuleMember(object *value.WellKnownObject, prop value.Value) value.Value {
	if name, _ := value.AsString(prop); name == "pathToFileURL" {
		return value.NewWellKnownFunction(value.FuncPathToFileURL)
	}
	return unknownMember(object, prop, "unsupported property on Node.js url module")
}

func childProcessMember(object *value.WellKnownObject, prop value.Value) value.Value {
	if name, ok := value.AsString(prop); ok {
		if childProcessSpawnMethods[name] {
			return value.NewChildProcessSpawnMethod(name)
		}
		if name == "fork" {
			return value.NewWellKnownFunction(value.FuncChildProcessFork)
		}
	}
	return unknownMember(object, prop, "unsupported property on Node.js child_process module")
}

func functionMember(fn *value.WellKnownFunction, prop value.Value) value.Value {
	if name, _ := value.AsString(prop); fn.Kind == value.FuncRequire && name == "resolve" {
		return value.NewWellKnownFunction(value.FuncRequireResolve)
	}
	return unknownMember(fn, prop, "unsupported property on function")
}
