package resolve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/e-santo/modtrace/internal/value"
)

// pathToFileURL symbolically evaluates url.pathToFileURL for a single
// constant path argument. Non-constant or wrong-arity arguments and paths
// that cannot form a file URL resolve to Unknown with distinct reasons.
func pathToFileURL(args []value.Value) value.Value {
	fn := value.NewWellKnownFunction(value.FuncPathToFileURL)
	if len(args) != 1 {
		return unknownCall(fn, args, "only a single argument is supported")
	}
	path, ok := value.AsString(args[0])
	if !ok {
		return unknownCall(fn, args, "only constant argument is supported")
	}
	parsed, err := fileURLFromPath(path)
	if err != nil {
		return unknownCall(fn, args, "url not parseable")
	}
	return value.NewURL(parsed)
}

// fileURLFromPath builds a file:// URL from an absolute POSIX path. Relative
// paths have no file-URL form, matching Node's pathToFileURL resolving them
// against the working directory, which a static analysis cannot know.
func fileURLFromPath(path string) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path is not absolute: %s", path)
	}
	if strings.ContainsRune(path, 0) {
		return nil, fmt.Errorf("path contains NUL byte")
	}
	return &url.URL{Scheme: "file", Path: path}, nil
}
