package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// defaultMode is the permission of a newly created manifest.
const defaultMode os.FileMode = 0o644

// Write stores data at path, replacing any existing file. The bytes go to
// a temporary file in the same directory first and are renamed into place,
// so readers see either the old file or the complete new one. An existing
// file keeps its permissions, and a symlinked path is written through to
// the file it points at.
func Write(path string, data []byte) error {
	target, mode, err := resolveTarget(path)
	if err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := atomicWrite(target, data, filepath.Dir(target), mode); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// resolveTarget follows a symlink at path and returns the file to replace
// along with the mode it should end up with.
func resolveTarget(path string) (string, os.FileMode, error) {
	if li, err := os.Lstat(path); err == nil && li.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		switch {
		case err == nil:
			path = resolved
		case errors.Is(err, fs.ErrNotExist):
			// Dangling link: create the file it names.
			dest, rerr := os.Readlink(path)
			if rerr != nil {
				return "", 0, rerr
			}
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(path), dest)
			}
			path = dest
		default:
			return "", 0, err
		}
	}

	mode := defaultMode
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}
	return path, mode, nil
}

// atomicWrite writes data to path via a temporary file and rename. The
// result has permission mode.
func atomicWrite(path string, data []byte, tmpDir string, mode os.FileMode) error {
	tmp, err := os.CreateTemp(tmpDir, ".manifest-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	// CreateTemp uses 0600.
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
