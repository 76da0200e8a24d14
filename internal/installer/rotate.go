// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"path/filepath"
	"strings"
)

// RotateInstalledFiles handles archives which unpack into a single top level directory, e.g. upload/.
//
// When the install root holds exactly one non-hidden subdirectory, that subdirectory becomes the new install root and
// everything else that was beside it is discarded. With zero or several candidates nothing is touched.
func (m *manager) RotateInstalledFiles(installPath string) (bool, error) {
	root, err := resolveInstallPath(installPath)
	if err != nil {
		return false, err
	}

	dirs, err := m.fm.ListDirectories(root)
	if err != nil {
		return false, newOperationError(err, OpRotate, root, "failed to list directories of install path %q", root)
	}

	var candidates []string
	for _, d := range dirs {
		if strings.HasPrefix(d, ".") {
			continue
		}
		candidates = append(candidates, d)
	}

	if len(candidates) != 1 {
		m.logger.Debug().
			Str(logFields.installPath, root).
			Strs(logFields.candidates, candidates).
			Msg("Install path does not contain a single wrapper directory, skipping rotation")
		return false, nil
	}

	scratch := filepath.Join(m.stash.Root(), rotationDirPrefix+m.newToken())
	wrapper := candidates[0]

	m.logger.Info().
		Str(logFields.installPath, root).
		Str(logFields.wrapper, wrapper).
		Str(logFields.rotationDir, scratch).
		Msg("Rotating installed files out of the wrapper directory")

	if err = m.fm.Move(root, scratch, false); err != nil {
		return false, newOperationError(err, OpRotate, root, "failed to move install path %q to %q", root, scratch)
	}

	if err = m.fm.Move(filepath.Join(scratch, wrapper), root, false); err != nil {
		return false, newOperationError(err, OpRotate, root,
			"failed to move wrapper directory %q back to %q, the original tree is kept at %q", wrapper, root, scratch)
	}

	if err = m.fm.RemoveAll(scratch); err != nil {
		return false, newOperationError(err, OpRotate, scratch, "failed to remove rotation directory %q", scratch)
	}

	return true, nil
}
