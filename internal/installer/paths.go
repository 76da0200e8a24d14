// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"path/filepath"
	"strings"

	"github.com/joomcode/errorx"
)

const pathSeparators = `/\`

// NormalizeInstallPath strips trailing path separators from installPath.
//
// A leading separator is kept so an absolute path stays absolute. The filesystem root and empty input are rejected
// since no installer operation makes sense there.
func NormalizeInstallPath(installPath string) (string, error) {
	if strings.TrimSpace(installPath) == "" {
		return "", errorx.IllegalArgument.New("install path cannot be empty")
	}

	absolute := strings.ContainsRune(pathSeparators, rune(installPath[0]))
	trimmed := strings.Trim(installPath, pathSeparators)
	if trimmed == "" {
		return "", errorx.IllegalArgument.New("install path %q cannot be the filesystem root", installPath)
	}

	if absolute {
		trimmed = string(filepath.Separator) + trimmed
	}

	return filepath.Clean(trimmed), nil
}

// resolveInstallPath normalizes installPath and makes it absolute so that stash keys are stable across callers.
func resolveInstallPath(installPath string) (string, error) {
	normalized, err := NormalizeInstallPath(installPath)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(normalized)
	if err != nil {
		return "", errorx.IllegalArgument.Wrap(err, "failed to resolve install path %q", installPath)
	}

	if abs == string(filepath.Separator) {
		return "", errorx.IllegalArgument.New("install path %q cannot be the filesystem root", installPath)
	}

	return abs, nil
}
