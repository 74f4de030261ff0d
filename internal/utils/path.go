package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds the word list relative to the places the binary is
// usually run from.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location.
// configDir is searched last.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// Candidates lists, in order of preference, where userPath may live:
// 1. userPath itself if absolute
// 2. relative to the current working directory
// 3. relative to the executable directory
// 4. inside the config directory
func (pr *PathResolver) Candidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, userPath))
	}
	return candidates
}

// ResolveDictPath returns the first candidate for userPath that exists.
// If none exist the most likely candidate is returned for error reporting.
func (pr *PathResolver) ResolveDictPath(userPath string) string {
	candidates := pr.Candidates(userPath)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found dictionary at: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not found: %s", path)
	}
	return candidates[0]
}
