// SPDX-License-Identifier: Apache-2.0

package version

import (
	_ "embed"
	"strings"
)

//go:embed COMMIT
var commit string

//go:embed VERSION
var number string

// buildMode is stamped by the release pipeline:
// -ldflags="-X 'github.com/opencart-tools/ocinstaller/internal/version.buildMode=release'"
var buildMode string

const (
	ModeRelease = "release"
	ModeDev     = "dev"
)

// Commit returns the embedded commit hash without surrounding whitespace.
func Commit() string {
	return strings.TrimSpace(commit)
}

// Number returns the embedded release number without surrounding whitespace.
func Number() string {
	return strings.TrimSpace(number)
}

// IsReleaseBuild reports whether the binary was stamped as a release build.
func IsReleaseBuild() bool {
	return strings.TrimSpace(buildMode) == ModeRelease
}

func BuildMode() string {
	if IsReleaseBuild() {
		return ModeRelease
	}
	return ModeDev
}
