// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"io/fs"
	"path/filepath"
)

// SetPermissions chmods every chmod target under installPath to basePerms, with 0111 added for directories.
//
// Only the target itself is changed, never its children. Symbolic links are followed, so a linked directory gets the
// directory bits on its target. Targets that resolve to neither a file nor a directory are skipped.
func (m *manager) SetPermissions(installPath string, basePerms fs.FileMode) ([]PermissionChange, error) {
	if err := ValidateBasePerms(basePerms); err != nil {
		return nil, err
	}

	root, err := resolveInstallPath(installPath)
	if err != nil {
		return nil, err
	}

	var changes []PermissionChange
	for _, entry := range m.chmodTargets {
		path := filepath.Join(root, filepath.FromSlash(entry))

		isDir := m.fm.IsDirectory(path)
		if !isDir && !m.fm.IsRegularFile(path) {
			m.logger.Info().
				Str(logFields.path, path).
				Msgf("%q not found, skipping it", path)
			continue
		}

		previous, err := m.fm.ReadPermissions(path)
		if err != nil {
			return changes, newOperationError(err, OpChmod, path, "failed to inspect %q", path)
		}

		perms := basePerms
		pathType := "file"
		if isDir {
			perms |= dirExecBits
			pathType = "directory"
		}

		m.logger.Debug().
			Str(logFields.path, path).
			Str(logFields.pathType, pathType).
			Str(logFields.perms, perms.String()).
			Str(logFields.prevPerms, previous.String()).
			Msg("Setting permissions")

		if err = m.fm.WritePermissions(path, perms, false); err != nil {
			return changes, newOperationError(err, OpChmod, path, "failed to set permissions %s on %q", perms, path)
		}

		changes = append(changes, PermissionChange{Entry: entry, Path: path, Previous: previous, Perms: perms, IsDir: isDir})
	}

	return changes, nil
}
