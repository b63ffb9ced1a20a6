// Package scripts lists the experiment scripts in a target directory.
package scripts

import (
	"fmt"
	"os"
	"strings"
)

// DefaultExtensions are the filename suffixes treated as scripts when no
// others are configured.
var DefaultExtensions = []string{".sh", ".py", ".ipynb", ".yml", ".txt"}

// Find returns the names of the immediate entries of dir whose name ends
// with one of exts (DefaultExtensions when exts is empty). Entries keep
// the order the directory listing yields them in, and directories are not
// distinguished from files. The slice is never nil.
func Find(dir string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dir, err)
	}
	defer f.Close()

	// Readdirnames keeps directory order; os.ReadDir would sort.
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	found := []string{}
	for _, name := range names {
		if Match(name, exts) {
			found = append(found, name)
		}
	}
	return found, nil
}

// Match reports whether name ends with any of exts.
func Match(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
