// Package pkgpath resolves the root directory of the packaged
// application. Every relative path in the launch configuration
// (executable, scripts, working directory) resolves against this root.
package pkgpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides package root resolution, mainly for development and
// testing outside a real package.
const RootEnv = "STAGEHAND_PACKAGE_ROOT"

// Resolve determines the package root once at startup:
//  1. the RootEnv environment variable, when set;
//  2. the directory containing the launcher binary, when it holds a
//     config.json;
//  3. the current working directory.
//
// The result is absolute.
func Resolve() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve package root %q: %w", root, err)
		}
		return abs, nil
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if _, err := os.Stat(filepath.Join(dir, "config.json")); err == nil {
			return dir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve package root: %w", err)
	}
	return wd, nil
}
