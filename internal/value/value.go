package value

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Value is the symbolic representation of a JavaScript expression as seen by
// the analyzer. The variant set is closed: every Value is exactly one of the
// types in this package, and resolver passes switch over them exhaustively
// with an Unknown fallback.
//
// Values are immutable once constructed. Every rewrite produces a new tree;
// callers never mutate a Value they received.
type Value interface {
	value()
	Equal(other Value) bool
	String() string
}

type ConstKind int

const (
	ConstString ConstKind = iota
	ConstNumber
	ConstBool
)

// Constant is a literal scalar whose exact runtime value is known.
type Constant struct {
	Kind ConstKind
	Str  string
	Num  float64
	Bool bool
}

// Concat is a runtime string concatenation of Parts, left to right.
type Concat struct {
	Parts []Value
}

// Alternatives means the runtime value is one of Options, but which one is
// statically unresolved. It keeps uncertainty sound without collapsing to
// Unknown.
type Alternatives struct {
	Options []Value
}

// Call is an unresolved call expression, retained for re-resolution and
// diagnostics.
type Call struct {
	Callee Value
	Args   []Value
}

// Member is an unresolved property access, retained for re-resolution and
// diagnostics.
type Member struct {
	Object   Value
	Property Value
}

// Module is a resolved static import target, the terminal outcome for a
// require() with a constant argument.
type Module struct {
	Name string
}

// URL is a resolved filesystem-to-URL conversion result.
type URL struct {
	Parsed *url.URL
}

// Unknown is the safe fallback for anything the analyzer cannot resolve.
// Origin, when non-nil, is an owned snapshot of the unresolved expression so
// a reporting layer can render it; it is never a back-reference into a live
// tree. Reason is a short fixed diagnostic string.
type Unknown struct {
	Origin Value
	Reason string
}

func (*Constant) value()          {}
func (*Concat) value()            {}
func (*Alternatives) value()      {}
func (*Call) value()              {}
func (*Member) value()            {}
func (*Module) value()            {}
func (*URL) value()               {}
func (*Unknown) value()           {}
func (*WellKnownFunction) value() {}
func (*WellKnownObject) value()   {}

func Str(s string) *Constant {
	return &Constant{Kind: ConstString, Str: s}
}

func Number(n float64) *Constant {
	return &Constant{Kind: ConstNumber, Num: n}
}

func Boolean(b bool) *Constant {
	return &Constant{Kind: ConstBool, Bool: b}
}

// AsString reports the literal string content of v, if v is a string
// constant.
func AsString(v Value) (string, bool) {
	c, ok := v.(*Constant)
	if !ok || c.Kind != ConstString {
		return "", false
	}
	return c.Str, true
}

// NewConcat builds a concatenation, flattening nested concats and merging
// adjacent string constants. All-literal input collapses to a single
// Constant.
func NewConcat(parts ...Value) Value {
	flat := make([]Value, 0, len(parts))
	for _, part := range parts {
		if nested, ok := part.(*Concat); ok {
			flat = append(flat, nested.Parts...)
			continue
		}
		flat = append(flat, part)
	}

	merged := make([]Value, 0, len(flat))
	for _, part := range flat {
		str, ok := AsString(part)
		if ok && len(merged) > 0 {
			if prev, prevOk := AsString(merged[len(merged)-1]); prevOk {
				merged[len(merged)-1] = Str(prev + str)
				continue
			}
		}
		merged = append(merged, part)
	}

	switch len(merged) {
	case 0:
		return Str("")
	case 1:
		return merged[0]
	default:
		return &Concat{Parts: merged}
	}
}

// NewAlternatives builds a sound disjunction, flattening nested alternatives
// and dropping duplicates. A single remaining option is returned directly.
func NewAlternatives(options ...Value) Value {
	flat := make([]Value, 0, len(options))
	for _, option := range options {
		if nested, ok := option.(*Alternatives); ok {
			flat = append(flat, nested.Options...)
			continue
		}
		flat = append(flat, option)
	}

	distinct := make([]Value, 0, len(flat))
	for _, option := range flat {
		duplicate := false
		for _, seen := range distinct {
			if seen.Equal(option) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			distinct = append(distinct, option)
		}
	}

	if len(distinct) == 1 {
		return distinct[0]
	}
	return &Alternatives{Options: distinct}
}

func NewCall(callee Value, args []Value) *Call {
	return &Call{Callee: callee, Args: args}
}

func NewMember(object Value, property Value) *Member {
	return &Member{Object: object, Property: property}
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

func NewURL(parsed *url.URL) *URL {
	return &URL{Parsed: parsed}
}

// NewUnknown wraps origin as unresolvable with a fixed reason. The origin is
// cloned so the Unknown owns its snapshot outright.
func NewUnknown(origin Value, reason string) *Unknown {
	if origin != nil {
		origin = Clone(origin)
	}
	return &Unknown{Origin: origin, Reason: reason}
}

// Clone produces a deep, independently-owned copy of v.
func Clone(v Value) Value {
	switch v := v.(type) {
	case *Constant:
		c := *v
		return &c
	case *Concat:
		return &Concat{Parts: cloneSlice(v.Parts)}
	case *Alternatives:
		return &Alternatives{Options: cloneSlice(v.Options)}
	case *Call:
		return &Call{Callee: Clone(v.Callee), Args: cloneSlice(v.Args)}
	case *Member:
		return &Member{Object: Clone(v.Object), Property: Clone(v.Property)}
	case *Module:
		return &Module{Name: v.Name}
	case *URL:
		parsed := *v.Parsed
		return &URL{Parsed: &parsed}
	case *Unknown:
		clone := &Unknown{Reason: v.Reason}
		if v.Origin != nil {
			clone.Origin = Clone(v.Origin)
		}
		return clone
	case *WellKnownFunction:
		return &WellKnownFunction{Kind: v.Kind, Method: v.Method}
	case *WellKnownObject:
		return &WellKnownObject{Kind: v.Kind}
	default:
		return v
	}
}

func cloneSlice(values []Value) []Value {
	cloned := make([]Value, len(values))
	for i, v := range values {
		cloned[i] = Clone(v)
	}
	return cloned
}

func (c *Constant) Equal(other Value) bool {
	o, ok := other.(*Constant)
	if !ok || c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstString:
		return c.Str == o.Str
	case ConstNumber:
		return c.Num == o.Num
	default:
		return c.Bool == o.Bool
	}
}

func (c *Concat) Equal(other Value) bool {
	o, ok := other.(*Concat)
	return ok && equalSlices(c.Parts, o.Parts)
}

func (a *Alternatives) Equal(other Value) bool {
	o, ok := other.(*Alternatives)
	return ok && equalSlices(a.Options, o.Options)
}

func (c *Call) Equal(other Value) bool {
	o, ok := other.(*Call)
	return ok && c.Callee.Equal(o.Callee) && equalSlices(c.Args, o.Args)
}

func (m *Member) Equal(other Value) bool {
	o, ok := other.(*Member)
	return ok && m.Object.Equal(o.Object) && m.Property.Equal(o.Property)
}

func (m *Module) Equal(other Value) bool {
	o, ok := other.(*Module)
	return ok && m.Name == o.Name
}

func (u *URL) Equal(other Value) bool {
	o, ok := other.(*URL)
	return ok && u.Parsed.String() == o.Parsed.String()
}

func (u *Unknown) Equal(other Value) bool {
	o, ok := other.(*Unknown)
	if !ok || u.Reason != o.Reason {
		return false
	}
	if u.Origin == nil || o.Origin == nil {
		return u.Origin == nil && o.Origin == nil
	}
	return u.Origin.Equal(o.Origin)
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (c *Constant) String() string {
	switch c.Kind {
	case ConstString:
		return strconv.Quote(c.Str)
	case ConstNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	default:
		return strconv.FormatBool(c.Bool)
	}
}

func (c *Concat) String() string {
	parts := make([]string, len(c.Parts))
	for i, part := range c.Parts {
		parts[i] = part.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Alternatives) String() string {
	options := make([]string, len(a.Options))
	for i, option := range a.Options {
		options[i] = option.String()
	}
	return "(" + strings.Join(options, " | ") + ")"
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func (m *Member) String() string {
	if prop, ok := AsString(m.Property); ok {
		return fmt.Sprintf("%s.%s", m.Object, prop)
	}
	return fmt.Sprintf("%s[%s]", m.Object, m.Property)
}

func (m *Module) String() string {
	return fmt.Sprintf("module(%q)", m.Name)
}

func (u *URL) String() string {
	return fmt.Sprintf("url(%q)", u.Parsed.String())
}

func (u *Unknown) String() string {
	if u.Origin != nil {
		return fmt.Sprintf("?(%s)", u.Origin)
	}
	return "?"
}
