package value

// FunctionKind identifies a recognized runtime function surface. Kinds that
// stand for a family of methods (fs reads, child_process spawns) carry the
// concrete method name on the WellKnownFunction marker.
type FunctionKind int

const (
	FuncRequire FunctionKind = iota
	FuncRequireResolve
	FuncImport
	FuncPathJoin
	FuncPathDirname
	FuncPathToFileURL
	FuncFsReadMethod
	FuncChildProcessSpawnMethod
	FuncChildProcessFork
)

// ObjectKind identifies a recognized runtime module object.
type ObjectKind int

const (
	ObjectPathModule ObjectKind = iota
	ObjectFsModule
	ObjectURLModule
	ObjectChildProcess
)

// WellKnownFunction marks a value as a recognized runtime function. Method is
// set only for per-method kinds (FuncFsReadMethod,
// FuncChildProcessSpawnMethod).
type WellKnownFunction struct {
	Kind   FunctionKind
	Method string
}

// WellKnownObject marks a value as a recognized runtime module object.
type WellKnownObject struct {
	Kind ObjectKind
}

func NewWellKnownFunction(kind FunctionKind) *WellKnownFunction {
	return &WellKnownFunction{Kind: kind}
}

func NewFsReadMethod(method string) *WellKnownFunction {
	return &WellKnownFunction{Kind: FuncFsReadMethod, Method: method}
}

func NewChildProcessSpawnMethod(method string) *WellKnownFunction {
	return &WellKnownFunction{Kind: FuncChildProcessSpawnMethod, Method: method}
}

func NewWellKnownObject(kind ObjectKind) *WellKnownObject {
	return &WellKnownObject{Kind: kind}
}

func (f *WellKnownFunction) Equal(other Value) bool {
	o, ok := other.(*WellKnownFunction)
	return ok && f.Kind == o.Kind && f.Method == o.Method
}

func (o *WellKnownObject) Equal(other Value) bool {
	other2, ok := other.(*WellKnownObject)
	return ok && o.Kind == other2.Kind
}

func (f *WellKnownFunction) String() string {
	switch f.Kind {
	case FuncRequire:
		return "require"
	case FuncRequireResolve:
		return "require.resolve"
	case FuncImport:
		return "import"
	case FuncPathJoin:
		return "path.join"
	case FuncPathDirname:
		return "path.dirname"
	case FuncPathToFileURL:
		return "url.pathToFileURL"
	case FuncFsReadMethod:
		return "fs." + f.Method
	case FuncChildProcessSpawnMethod:
		return "child_process." + f.Method
	case FuncChildProcessFork:
		return "child_process.fork"
	default:
		return "function"
	}
}

func (o *WellKnownObject) String() string {
	switch o.Kind {
	case ObjectPathModule:
		return "path"
	case ObjectFsModule:
		return "fs"
	case ObjectURLModule:
		return "url"
	case ObjectChildProcess:
		return "child_process"
	default:
		return "object"
	}
}
