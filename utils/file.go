package utils

import (
	"path/filepath"
	"runtime"
)

// ResolveFile returns the absolute path of a file given relative to the module root,
// no matter where the caller runs from. Test data files are addressed this way.
func ResolveFile(fn string) string {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to locate the calling source file")
	}
	root := filepath.Dir(filepath.Dir(self))
	return filepath.Join(root, fn)
}
