// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/internal/config"
	"github.com/opencart-tools/ocinstaller/internal/doctor"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/opencart-tools/ocinstaller/internal/workflows/steps"
	"github.com/opencart-tools/ocinstaller/pkg/plock"
	"github.com/spf13/cobra"
)

// WorkflowFactory builds the workflow to run against installPath with mgr.
type WorkflowFactory func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error)

// DefaultRunE shows the help message. Group commands use it so cobra treats them as runnable.
func DefaultRunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// InstallPath returns the normalized value of the --path flag.
func InstallPath(cmd *cobra.Command, args []string) (string, error) {
	p, err := FlagPath.Value(cmd, args)
	if err != nil {
		return "", errorx.IllegalArgument.Wrap(err, "failed to get path flag")
	}

	if strings.TrimSpace(p) == "" {
		return "", errorx.IllegalArgument.New("installation path is required, use --%s", FlagPath.Name)
	}

	return installer.NormalizeInstallPath(p)
}

// NewInstallerManager builds an installer.Manager from the loaded configuration.
func NewInstallerManager() (installer.Manager, error) {
	opts := append(config.Get().Install.InstallerOptions(), installer.WithLogger(logx.As()))
	return installer.NewManager(opts...)
}

// LockInstallPath acquires the advisory lock that serializes runs against installPath.
// The lock file lives in the configured temp root next to the saved copies.
func LockInstallPath(ctx context.Context, installPath string) (plock.Lock, error) {
	conf := config.Get().Install

	lock, err := plock.NewLock(plock.NameFor(installPath), conf.TempRoot)
	if err != nil {
		return nil, err
	}

	if err = lock.TryAcquire(ctx, conf.LockTimeout); err != nil {
		return nil, errorx.Decorate(err, "another run is in progress for %s", installPath)
	}

	logx.As().Debug().
		Str("install_path", installPath).
		Str("lock_file", lock.Info().LockFilePath).
		Msg("Acquired installation lock")

	return lock, nil
}

// WithInstallLock runs fn with a manager while holding the lock for installPath.
func WithInstallLock(ctx context.Context, installPath string, fn func(mgr installer.Manager) error) error {
	mgr, err := NewInstallerManager()
	if err != nil {
		return err
	}

	lock, err := LockInstallPath(ctx, installPath)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			logx.As().Warn().Err(rerr).Str("install_path", installPath).Msg("Failed to release installation lock")
		}
	}()

	return fn(mgr)
}

// ExecuteWorkflow builds the workflow from factory and executes it while holding the installation lock.
// The lock is released before the report is returned so diagnosing a failure never leaves it held.
func ExecuteWorkflow(ctx context.Context, installPath string, factory WorkflowFactory) (*automa.Report, error) {
	var report *automa.Report
	err := WithInstallLock(ctx, installPath, func(mgr installer.Manager) error {
		wb, err := factory(mgr, installPath)
		if err != nil {
			return err
		}

		wf, err := wb.Build()
		if err != nil {
			return errorx.IllegalState.Wrap(err, "failed to build workflow")
		}

		report = wf.Execute(ctx)
		return nil
	})

	return report, err
}

// RunWorkflow executes the workflow and exits through the doctor if it fails.
func RunWorkflow(ctx context.Context, installPath string, factory WorkflowFactory) {
	report, err := ExecuteWorkflow(ctx, installPath, factory)
	if err != nil {
		doctor.CheckErr(ctx, err)
		return
	}

	CheckWorkflowReport(ctx, report)
}

// ReportPath returns where the report of workflowId is saved, or an empty string when saving is disabled.
func ReportPath(workflowId string, now time.Time) string {
	dir := config.Get().Install.ReportDir
	if dir == "" {
		return ""
	}

	if workflowId == "" {
		workflowId = "workflow"
	}

	return filepath.Join(dir, fmt.Sprintf("%s_report_%s.yaml", workflowId, now.Format("20060102_150405")))
}

// CheckWorkflowReport prints the report and runs the doctor on the first failure found.
func CheckWorkflowReport(ctx context.Context, report *automa.Report) {
	if report == nil {
		doctor.CheckErr(ctx, errorx.IllegalState.New("workflow produced no report"))
		return
	}

	reportPath := ReportPath(report.Id, time.Now())
	steps.PrintWorkflowReport(report, reportPath)
	if reportPath != "" {
		logx.As().Info().Str("report_path", reportPath).Msg("Workflow report is saved")
	}

	if report.Error != nil {
		doctor.CheckReportErr(ctx, report)
		return
	}

	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			doctor.CheckReportErr(ctx, stepReport)
			return
		}
	}
}
