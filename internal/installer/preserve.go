// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"path/filepath"
)

// SaveModifiedFiles copies the preserved targets of installPath into the stash.
//
// Directories are merged into an existing saved copy, files overwrite theirs. Targets that don't exist are skipped.
func (m *manager) SaveModifiedFiles(installPath string) ([]Record, error) {
	root, err := resolveInstallPath(installPath)
	if err != nil {
		return nil, err
	}

	var saved []Record
	for _, entry := range m.preserved {
		source := filepath.Join(root, filepath.FromSlash(entry))

		fi, exists, err := m.fm.PathExists(source)
		if err != nil {
			return saved, newOperationError(err, OpSave, source, "failed to inspect %q", source)
		}

		if !exists {
			m.logger.Info().
				Str(logFields.path, source).
				Msgf("Item %q is missing, skipping it", source)
			continue
		}

		target := m.stash.PathFor(source)
		record := Record{Entry: entry, Target: source, Stashed: target, IsDir: fi.IsDir()}

		m.logger.Debug().
			Str(logFields.path, source).
			Str(logFields.stashPath, target).
			Msg("Saving item")

		if fi.Mode().IsRegular() {
			err = m.fm.CopyFile(source, target, true)
		} else {
			err = m.fm.CopyTree(source, target)
		}

		if err != nil {
			return saved, newOperationError(err, OpSave, source, "failed to save %q to %q", source, target)
		}

		saved = append(saved, record)
	}

	return saved, nil
}

// RestoreModifiedFiles moves the saved copies of the preserved targets back into installPath.
//
// Whatever sits at the live path is removed first. Saved copies are consumed, so a second restore without a save in
// between has nothing left to do.
func (m *manager) RestoreModifiedFiles(installPath string) ([]Record, error) {
	root, err := resolveInstallPath(installPath)
	if err != nil {
		return nil, err
	}

	var restored []Record
	for _, entry := range m.preserved {
		target := filepath.Join(root, filepath.FromSlash(entry))
		source := m.stash.PathFor(target)

		sfi, exists, err := m.fm.PathExists(source)
		if err != nil {
			return restored, newOperationError(err, OpRestore, target, "failed to inspect saved copy %q", source)
		}

		if !exists {
			m.logger.Info().
				Str(logFields.path, target).
				Str(logFields.stashPath, source).
				Msgf("Item %q is missing, skipping it", source)
			continue
		}

		_, live, err := m.fm.PathExists(target)
		if err != nil {
			return restored, newOperationError(err, OpRestore, target, "failed to inspect %q", target)
		}

		if live {
			if err = m.fm.RemoveAll(target); err != nil {
				return restored, newOperationError(err, OpRestore, target, "failed to remove %q", target)
			}
		} else if err = m.fm.CreateDirectory(filepath.Dir(target), true); err != nil {
			return restored, newOperationError(err, OpRestore, target, "failed to create parent directory of %q", target)
		}

		m.logger.Debug().
			Str(logFields.path, target).
			Str(logFields.stashPath, source).
			Msg("Restoring item")

		if err = m.fm.Move(source, target, true); err != nil {
			return restored, newOperationError(err, OpRestore, target, "failed to restore %q from %q", target, source)
		}

		restored = append(restored, Record{Entry: entry, Target: target, Stashed: source, IsDir: sfi.IsDir()})
	}

	return restored, nil
}

// InspectSaved reports the preserved targets of installPath which have a saved copy.
func (m *manager) InspectSaved(installPath string) ([]Record, error) {
	return m.walkSaved(installPath, OpInspect, nil)
}

// PurgeSaved drops the saved copies belonging to installPath.
func (m *manager) PurgeSaved(installPath string) ([]Record, error) {
	return m.walkSaved(installPath, OpPurge, func(r Record) error {
		m.logger.Debug().
			Str(logFields.path, r.Target).
			Str(logFields.stashPath, r.Stashed).
			Msg("Purging saved item")
		return m.fm.RemoveAll(r.Stashed)
	})
}

func (m *manager) walkSaved(installPath string, op string, fn func(Record) error) ([]Record, error) {
	root, err := resolveInstallPath(installPath)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, entry := range m.preserved {
		target := filepath.Join(root, filepath.FromSlash(entry))
		stashed := m.stash.PathFor(target)

		fi, exists, err := m.fm.PathExists(stashed)
		if err != nil {
			return records, newOperationError(err, op, target, "failed to inspect saved copy %q", stashed)
		}

		if !exists {
			continue
		}

		r := Record{Entry: entry, Target: target, Stashed: stashed, IsDir: fi.IsDir()}
		if fn != nil {
			if err = fn(r); err != nil {
				return records, newOperationError(err, op, target, "failed to %s saved copy %q", op, stashed)
			}
		}

		records = append(records, r)
	}

	return records, nil
}
