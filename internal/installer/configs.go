// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"path/filepath"
)

// CopyConfigFiles copies <base>-dist.php to <base>.php for each config template under installPath.
//
// Existing config files are always overwritten. Templates without a -dist.php file are skipped.
func (m *manager) CopyConfigFiles(installPath string) ([]string, error) {
	root, err := resolveInstallPath(installPath)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, base := range m.configTemplates {
		basePath := filepath.Join(root, filepath.FromSlash(base))
		source := basePath + configTemplateSuffix
		target := basePath + configFileSuffix

		// a template that links to a regular file is copied by content
		if !m.fm.IsRegularFile(source) {
			m.logger.Info().
				Str(logFields.path, source).
				Msgf("File %q doesn't exist, skipping it", source)
			continue
		}

		m.logger.Debug().
			Str(logFields.path, source).
			Str(logFields.targetPath, target).
			Msg("Copying config template")

		if err := m.fm.CopyFile(source, target, true); err != nil {
			return written, newOperationError(err, OpConfigs, target, "failed to copy %q to %q", source, target)
		}

		written = append(written, target)
	}

	return written, nil
}
