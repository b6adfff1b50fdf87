package resolve

import (
	"strings"

	"github.com/e-santo/modtrace/internal/value"
)

// pathJoin symbolically evaluates path.join over a mix of literal and opaque
// segments, mirroring POSIX join/normalization semantics where segments are
// known and staying conservative where they are not.
func pathJoin(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Str(".")
	}

	// Literal arguments are split on "/" so each component normalizes
	// independently; empty components from leading/trailing/double slashes
	// are kept. Non-literal arguments stay whole, opaque segments.
	parts := make([]value.Value, 0, len(args))
	for _, arg := range args {
		if str, ok := value.AsString(arg); ok {
			for _, segment := range strings.Split(str, "/") {
				parts = append(parts, value.Str(segment))
			}
			continue
		}
		parts = append(parts, arg)
	}

	// finalized holds segments that can no longer change; pending holds
	// literal segments a later ".." may still cancel. An opaque segment
	// flushes pending first: normalization cannot see through it to know
	// what a following ".." would cancel.
	var finalized, pending []value.Value
	for _, part := range parts {
		str, literal := value.AsString(part)
		if !literal {
			finalized = append(finalized, pending...)
			pending = pending[:0]
			finalized = append(finalized, part)
			continue
		}
		switch str {
		case "", ".":
			if len(finalized) == 0 && len(pending) == 0 {
				finalized = append(finalized, part)
			}
		case "..":
			if len(pending) > 0 {
				pending = pending[:len(pending)-1]
			} else {
				finalized = append(finalized, part)
			}
		default:
			pending = append(pending, part)
		}
	}
	finalized = append(finalized, pending...)

	// Fully cancelled joins such as join("a", "..") normalize to ".".
	if len(finalized) == 0 {
		return value.Str(".")
	}

	// A leading "." only survives a fully-degenerate join; once a real
	// segment follows, join(".", "a") is "a". A leading "" is different: it
	// marks an absolute path and must stay.
	if len(finalized) > 1 {
		if str, ok := value.AsString(finalized[0]); ok && str == "." {
			finalized = finalized[1:]
		}
	}

	// Reassemble with separators. Between two literal neighbors the
	// separator is a literal "/"; next to an opaque segment the runtime may
	// or may not need one, so the separator stays a sound disjunction of
	// "/" and "".
	pieces := make([]value.Value, 0, len(finalized)*2-1)
	lastLiteral := false
	for i, part := range finalized {
		_, literal := value.AsString(part)
		if i > 0 {
			if lastLiteral && literal {
				pieces = append(pieces, value.Str("/"))
			} else {
				pieces = append(pieces, value.NewAlternatives(value.Str("/"), value.Str("")))
			}
		}
		pieces = append(pieces, part)
		lastLiteral = literal
	}
	return value.NewConcat(pieces...)
}

// pathDirname returns the portion of its argument preceding the final "/".
// A Concat whose trailing part is literal is still partially resolvable: the
// search runs inside that trailing literal only.
func pathDirname(args []value.Value) value.Value {
	if len(args) > 0 {
		switch arg := args[0].(type) {
		case *value.Constant:
			if str, ok := value.AsString(arg); ok {
				return value.Str(dirnameLiteral(str))
			}
		case *value.Concat:
			last := arg.Parts[len(arg.Parts)-1]
			if str, ok := value.AsString(last); ok {
				if i := strings.LastIndex(str, "/"); i >= 0 {
					parts := make([]value.Value, 0, len(arg.Parts))
					parts = append(parts, arg.Parts[:len(arg.Parts)-1]...)
					parts = append(parts, value.Str(str[:i]))
					return value.NewConcat(parts...)
				}
			}
		}
	}
	fn := value.NewWellKnownFunction(value.FuncPathDirname)
	return unknownCall(fn, args, "path.dirname with unsupported arguments")
}

func dirnameLiteral(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}
