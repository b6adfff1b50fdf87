package graph

// nodeBuiltinModules lists the top-level Node.js core module names. These
// are dependency edges a bundler never needs to resolve on disk.
//
// Regenerate with:
//   node -p "[...require('module').builtinModules].filter(m => !m.startsWith('_') && !m.includes('/')).sort().join('\n')"
var nodeBuiltinModules = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// isNodeBuiltin handles bare names ("fs"), "node:" prefixed names, and
// subpath imports like "fs/promises".
func isNodeBuiltin(moduleName string) bool {
	if len(moduleName) > 5 && moduleName[:5] == "node:" {
		moduleName = moduleName[5:]
	}

	for i := 0; i < len(moduleName); i++ {
		if moduleName[i] == '/' {
			return nodeBuiltinModules[moduleName[:i]]
		}
	}

	return nodeBuiltinModules[moduleName]
}
