package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindEnvFile resolves an env file name to a path. An absolute name is used
// as is; a relative one is looked up in the working directory and then in
// each parent, so a binary or test run from a subdirectory still finds the
// project's file. An empty name means ".env". Directories never match.
func FindEnvFile(name string) (string, error) {
	if name == "" {
		name = ".env"
	}
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("env file %s: %w", name, os.ErrNotExist)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("env file %s: %w", name, err)
	}
	for {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("env file %s: %w", name, os.ErrNotExist)
		}
		dir = parent
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
