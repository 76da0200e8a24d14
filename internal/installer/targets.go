// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"io/fs"
	"path/filepath"

	"github.com/joomcode/errorx"
)

const (
	// DefaultBasePerms is applied to every chmod target unless the caller asks for something else.
	DefaultBasePerms fs.FileMode = 0644

	// directories additionally receive the execute bit for owner, group and others
	dirExecBits fs.FileMode = 0111

	configTemplateSuffix = "-dist.php"
	configFileSuffix     = ".php"

	rotationDirPrefix = "oci-"
)

// DefaultChmodTargets lists the paths, relative to the install root, which the web server needs to write to.
func DefaultChmodTargets() []string {
	return []string{
		"download",
		"system/cache",
		"system/logs",
		"system/download",
		"image",
		"image/cache",
		"image/catalog",
		"config.php",
		"admin/config.php",
		"config-dist.php",
		"admin/config-dist.php",
	}
}

// DefaultPreservedTargets lists the paths which carry site specific state and must survive an upgrade.
func DefaultPreservedTargets() []string {
	return []string{
		"config.php",
		"admin/config.php",
		"image",
		"system/logs",
		"system/download",
	}
}

// DefaultConfigTemplates lists the config base names. Each base name maps <base>-dist.php to <base>.php.
func DefaultConfigTemplates() []string {
	return []string{
		"config",
		"admin/config",
	}
}

// ValidateTargets ensures every entry is a non-empty path which stays inside the install root.
func ValidateTargets(kind string, targets []string) error {
	for _, t := range targets {
		if t == "" || !filepath.IsLocal(filepath.FromSlash(t)) {
			return errorx.IllegalArgument.New("invalid %s entry %q, it must be a relative path inside the install root", kind, t)
		}
	}

	return nil
}

// ValidateBasePerms rejects anything outside of the rwx permission bits.
func ValidateBasePerms(perms fs.FileMode) error {
	if perms&^fs.ModePerm != 0 {
		return errorx.IllegalArgument.New("invalid base permissions %#o, only the 0777 bits are allowed", uint32(perms))
	}

	return nil
}
