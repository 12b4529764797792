package toolkit

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Probe resolves the toolkit's executable. Resolution order: an explicit
// executable path, then the override directories, then the process search
// path. Returns the directory the executable was found in, its name, and
// whether resolution succeeded. Performs filesystem and environment reads
// only.
func (c Capabilities) Probe(executable string, overrideDirs []string) (dir, name string, ok bool) {
	name = executable
	if name == "" {
		name = c.Executable
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if isExecutable(name) {
			return filepath.Dir(name), filepath.Base(name), true
		}
		return "", "", false
	}

	for _, d := range overrideDirs {
		candidate := filepath.Join(d, name)
		if isExecutable(candidate) {
			return d, name, true
		}
	}

	resolved, err := exec.LookPath(name)
	if err != nil {
		return "", "", false
	}
	return filepath.Dir(resolved), name, true
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
