package analysis

import (
	"github.com/e-santo/modtrace/internal/resolve"
	"github.com/e-santo/modtrace/internal/value"
)

// maxPasses bounds the rewrite loop. Every resolve.Step on a well-known node
// strictly removes it (precise result or Unknown), so real inputs converge
// long before this; the bound is a termination guarantee for the loop, not a
// tuning knob.
const maxPasses = 64

// Resolve rewrites v to a fixpoint: children bottom-up, then the node
// itself, repeated until a full pass reports no change.
func Resolve(v value.Value) value.Value {
	for i := 0; i < maxPasses; i++ {
		next, changed := rewrite(v)
		v = next
		if !changed {
			break
		}
	}
	return v
}

// rewrite performs one bottom-up pass. Unknown origins are snapshots, not
// live subtrees, so they are never descended into.
func rewrite(v value.Value) (value.Value, bool) {
	changed := false
	switch n := v.(type) {
	case *value.Call:
		callee, calleeChanged := rewrite(n.Callee)
		args, argsChanged := rewriteSlice(n.Args)
		if calleeChanged || argsChanged {
			v = value.NewCall(callee, args)
			changed = true
		}
	case *value.Member:
		object, objectChanged := rewrite(n.Object)
		property, propertyChanged := rewrite(n.Property)
		if objectChanged || propertyChanged {
			v = value.NewMember(object, property)
			changed = true
		}
	case *value.Concat:
		parts, partsChanged := rewriteSlice(n.Parts)
		if partsChanged {
			v = value.NewConcat(parts...)
			changed = true
		}
	case *value.Alternatives:
		options, optionsChanged := rewriteSlice(n.Options)
		if optionsChanged {
			v = value.NewAlternatives(options...)
			changed = true
		}
	}

	stepped, steppedChanged := resolve.Step(v)
	return stepped, changed || steppedChanged
}

func rewriteSlice(values []value.Value) ([]value.Value, bool) {
	changed := false
	result := make([]value.Value, len(values))
	for i, v := range values {
		next, vChanged := rewrite(v)
		result[i] = next
		changed = changed || vChanged
	}
	return result, changed
}

// Modules collects every resolved Module reference in v, outermost first.
func Modules(v value.Value) []string {
	var names []string
	walkValue(v, func(v value.Value) {
		if module, ok := v.(*value.Module); ok {
			names = append(names, module.Name)
		}
	})
	return names
}

// Unresolved collects every Unknown in v that retained an origin snapshot.
// Origin-less Unknowns come from lowering (free variables, unsupported
// syntax) and carry no diagnostic value.
func Unresolved(v value.Value) []*value.Unknown {
	var unknowns []*value.Unknown
	walkValue(v, func(v value.Value) {
		if unknown, ok := v.(*value.Unknown); ok && unknown.Origin != nil {
			unknowns = append(unknowns, unknown)
		}
	})
	return unknowns
}

func walkValue(v value.Value, visit func(value.Value)) {
	visit(v)
	switch n := v.(type) {
	case *value.Call:
		walkValue(n.Callee, visit)
		for _, arg := range n.Args {
			walkValue(arg, visit)
		}
	case *value.Member:
		walkValue(n.Object, visit)
		walkValue(n.Property, visit)
	case *value.Concat:
		for _, part := range n.Parts {
			walkValue(part, visit)
		}
	case *value.Alternatives:
		for _, option := range n.Options {
			walkValue(option, visit)
		}
	}
}
