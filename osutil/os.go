// Package osutil provides small operating system helpers.
package osutil

import "path/filepath"

// AbsPath resolves path to a canonical absolute form,
// with symlinks evaluated.
func AbsPath(path string) (abspath string, err error) {
	if abspath, err = filepath.Abs(path); err != nil {
		return
	}
	abspath, err = filepath.EvalSymlinks(abspath)
	return
}
