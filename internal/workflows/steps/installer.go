// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"io/fs"
	"strconv"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/opencart-tools/ocinstaller/internal/installer"
)

const (
	RotateInstalledFilesStepId = "rotate-installed-files"
	SaveModifiedFilesStepId    = "save-modified-files"
	RestoreModifiedFilesStepId = "restore-modified-files"
	SetPermissionsStepId       = "set-permissions"
	CopyConfigFilesStepId      = "copy-config-files"

	SavedByThisStep = automa.Key("savedByThisStep")

	MetaInstallPath = "installPath"
	MetaRotated     = "rotated"
	MetaCount       = "count"
	MetaPaths       = "paths"
	MetaPerms       = "perms"
)

func meta(installPath string, paths []string) map[string]string {
	return map[string]string{
		MetaInstallPath: installPath,
		MetaCount:       strconv.Itoa(len(paths)),
		MetaPaths:       strings.Join(paths, ","),
	}
}

func recordTargets(records []installer.Record) []string {
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Target)
	}
	return paths
}

// RotateInstalledFiles collapses the wrapper directory of a freshly extracted archive.
// There is no rollback; the original tree is gone once the rotation succeeds.
func RotateInstalledFiles(mgr installer.Manager, installPath string) *automa.StepBuilder {
	return automa.NewStepBuilder().WithId(RotateInstalledFilesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			rotated, err := mgr.RotateInstalledFiles(installPath)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			m := map[string]string{
				MetaInstallPath: installPath,
				MetaRotated:     strconv.FormatBool(rotated),
			}

			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(m))
		})
}

// SaveModifiedFiles stashes the site state of installPath.
// On rollback the saved copies are purged, but only if this step produced them.
func SaveModifiedFiles(mgr installer.Manager, installPath string) *automa.StepBuilder {
	return automa.NewStepBuilder().WithId(SaveModifiedFilesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			saved, err := mgr.SaveModifiedFiles(installPath)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			stp.State().Set(SavedByThisStep, true)
			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(meta(installPath, recordTargets(saved))))
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if !stp.State().Bool(SavedByThisStep) {
				return automa.StepSkippedReport(stp.Id())
			}

			purged, err := mgr.PurgeSaved(installPath)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			stp.State().Set(SavedByThisStep, false)
			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(meta(installPath, recordTargets(purged))))
		})
}

// RestoreModifiedFiles moves the stashed site state back into installPath.
func RestoreModifiedFiles(mgr installer.Manager, installPath string) *automa.StepBuilder {
	return automa.NewStepBuilder().WithId(RestoreModifiedFilesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			restored, err := mgr.RestoreModifiedFiles(installPath)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(meta(installPath, recordTargets(restored))))
		})
}

// SetPermissions makes the writable OpenCart paths accessible to the web server.
func SetPermissions(mgr installer.Manager, installPath string, basePerms fs.FileMode) *automa.StepBuilder {
	return automa.NewStepBuilder().WithId(SetPermissionsStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			changes, err := mgr.SetPermissions(installPath, basePerms)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			paths := make([]string, 0, len(changes))
			for _, c := range changes {
				paths = append(paths, c.Path)
			}

			m := meta(installPath, paths)
			m[MetaPerms] = "0" + strconv.FormatUint(uint64(basePerms), 8)
			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(m))
		})
}

// CopyConfigFiles materializes the config files from their -dist templates.
func CopyConfigFiles(mgr installer.Manager, installPath string) *automa.StepBuilder {
	return automa.NewStepBuilder().WithId(CopyConfigFilesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			written, err := mgr.CopyConfigFiles(installPath)
			if err != nil {
				return automa.StepFailureReport(stp.Id(), automa.WithError(err))
			}

			return automa.StepSuccessReport(stp.Id(), automa.WithMetadata(meta(installPath, written)))
		})
}
