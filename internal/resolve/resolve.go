// Package resolve rewrites symbolic values that call into or read from a
// fixed catalog of recognized Node.js runtime APIs (path, fs, url,
// child_process, require, import). Each rewrite is a pure, local step: it
// either refines the node to a more precise value or to an Unknown that
// snapshots the original expression, and it never inspects sibling nodes or
// global state.
package resolve

import (
	"github.com/e-santo/modtrace/internal/value"
)

// Step applies one rewrite to v and reports whether anything changed.
//
// A Call whose callee is a well-known function, and a Member whose object is
// a well-known object or function, are always rewritten (to a precise result
// or an Unknown wrapping themselves), so a caller's fixpoint loop never
// re-inspects the same well-known node forever. Every other shape is
// returned untouched with changed=false, which is the base case that lets
// the fixpoint terminate.
func Step(v value.Value) (value.Value, bool) {
	switch v := v.(type) {
	case *value.Call:
		if fn, ok := v.Callee.(*value.WellKnownFunction); ok {
			return functionCall(fn, v.Args), true
		}
	case *value.Member:
		switch target := v.Object.(type) {
		case *value.WellKnownObject:
			return objectMember(target, v.Property), true
		case *value.WellKnownFunction:
			return functionMember(target, v.Property), true
		}
	}
	return v, false
}

func functionCall(fn *value.WellKnownFunction, args []value.Value) value.Value {
	switch fn.Kind {
	case value.FuncPathJoin:
		return pathJoin(args)
	case value.FuncPathDirname:
		return pathDirname(args)
	case value.FuncRequire:
		return requireCall(args)
	case value.FuncPathToFileURL:
		return pathToFileURL(args)
	case value.FuncImport:
		return unknownCall(fn, args, "import() is not supported")
	case value.FuncRequireResolve:
		return unknownCall(fn, args, "require.resolve() is not supported")
	default:
		return unknownCall(fn, args, "unsupported function")
	}
}

// requireCall maps require("name") to a Module reference, the sole signal
// the dependency graph builder acts on. Anything but a single constant
// string stays Unknown, with distinct reasons for arity and argument shape.
func requireCall(args []value.Value) value.Value {
	fn := value.NewWellKnownFunction(value.FuncRequire)
	if len(args) != 1 {
		return unknownCall(fn, args, "only a single argument is supported")
	}
	name, ok := value.AsString(args[0])
	if !ok {
		return unknownCall(fn, args, "only constant argument is supported")
	}
	return value.NewModule(name)
}

// unknownCall resolves a well-known call to Unknown while keeping an owned
// reconstruction of the call expression for diagnostics.
func unknownCall(fn *value.WellKnownFunction, args []value.Value, reason string) value.Value {
	return value.NewUnknown(value.NewCall(fn, args), reason)
}

// unknownMember is the member-access counterpart of unknownCall.
func unknownMember(object value.Value, prop value.Value, reason string) value.Value {
	return value.NewUnknown(value.NewMember(object, prop), reason)
}
