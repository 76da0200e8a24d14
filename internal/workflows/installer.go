// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"io/fs"

	"github.com/automa-saga/automa"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/opencart-tools/ocinstaller/internal/workflows/notify"
	"github.com/opencart-tools/ocinstaller/internal/workflows/steps"
)

const (
	SaveWorkflowId     = "save-install"
	RestoreWorkflowId  = "restore-install"
	RotateWorkflowId   = "rotate-install"
	ChmodWorkflowId    = "chmod-install"
	ConfigsWorkflowId  = "configs-install"
	FinalizeWorkflowId = "finalize-install"
)

// withNotifications attaches the start, failure and completion callbacks shared by all installer workflows.
func withNotifications(wb *automa.WorkflowBuilder, installPath string, action string) *automa.WorkflowBuilder {
	return wb.
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "%s %s", action, installPath)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "%s %s failed", action, installPath)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "%s %s completed", action, installPath)
		})
}

// NewSaveWorkflow stashes the site state of installPath ahead of a re-install.
func NewSaveWorkflow(mgr installer.Manager, installPath string) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(SaveWorkflowId).Steps(
			steps.SaveModifiedFiles(mgr, installPath),
		), installPath, "Saving site state of")
}

// NewRestoreWorkflow moves the stashed site state back into installPath.
func NewRestoreWorkflow(mgr installer.Manager, installPath string) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(RestoreWorkflowId).Steps(
			steps.RestoreModifiedFiles(mgr, installPath),
		), installPath, "Restoring site state of")
}

// NewRotateWorkflow collapses the archive wrapper directory of installPath.
func NewRotateWorkflow(mgr installer.Manager, installPath string) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(RotateWorkflowId).Steps(
			steps.RotateInstalledFiles(mgr, installPath),
		), installPath, "Rotating installed files of")
}

// NewChmodWorkflow applies the web server permissions to installPath.
func NewChmodWorkflow(mgr installer.Manager, installPath string, basePerms fs.FileMode) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(ChmodWorkflowId).Steps(
			steps.SetPermissions(mgr, installPath, basePerms),
		), installPath, "Setting permissions of")
}

// NewConfigsWorkflow materializes the config files of installPath from their templates.
func NewConfigsWorkflow(mgr installer.Manager, installPath string) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(ConfigsWorkflowId).Steps(
			steps.CopyConfigFiles(mgr, installPath),
		), installPath, "Copying config files of")
}

// NewFinalizeWorkflow runs everything needed after a fresh archive was extracted over installPath:
//  1. rotate the wrapper directory away
//  2. materialize config files from their templates
//  3. restore the stashed site state, which wins over the materialized configs
//  4. apply the web server permissions
func NewFinalizeWorkflow(mgr installer.Manager, installPath string, basePerms fs.FileMode) *automa.WorkflowBuilder {
	return withNotifications(
		automa.NewWorkflowBuilder().WithId(FinalizeWorkflowId).Steps(
			steps.RotateInstalledFiles(mgr, installPath),
			steps.CopyConfigFiles(mgr, installPath),
			steps.RestoreModifiedFiles(mgr, installPath),
			steps.SetPermissions(mgr, installPath, basePerms),
		), installPath, "Finalizing installation at")
}
