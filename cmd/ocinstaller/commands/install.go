// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io/fs"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands/common"
	"github.com/opencart-tools/ocinstaller/internal/config"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/opencart-tools/ocinstaller/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	flagPerms           string
	flagStopOnError     bool
	flagRollbackOnError bool
	flagContinueOnError bool
)

// workflowCommand wires a cobra command that runs a single installer workflow against --path.
func workflowCommand(use string, short string, long string, factory common.WorkflowFactory) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			installPath, err := common.InstallPath(cmd, args)
			if err != nil {
				return err
			}

			logx.As().Debug().
				Str("command", cmd.Name()).
				Str("install_path", installPath).
				Any("install", config.Get().Install).
				Msg("Running installer workflow")

			common.RunWorkflow(cmd.Context(), installPath, factory)
			return nil
		},
	}
}

// basePerms resolves the permissions from --perms, falling back to the configured value.
func basePerms() (fs.FileMode, error) {
	if flagPerms == "" {
		return config.Get().Install.Perms()
	}

	return config.InstallConfig{BasePerms: flagPerms}.Perms()
}

func executionMode() (automa.TypeMode, error) {
	mode, err := common.GetExecutionMode(flagContinueOnError, flagStopOnError, flagRollbackOnError)
	if err != nil {
		return mode, errorx.Decorate(err, "failed to determine execution mode")
	}

	return mode, nil
}

var (
	saveCmd = workflowCommand("save",
		"Save site specific files ahead of a re-install",
		"Copy the preserved targets (config files, image directory, etc.) of the installation into temporary storage.",
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			return workflows.NewSaveWorkflow(mgr, installPath), nil
		})

	restoreCmd = workflowCommand("restore",
		"Restore previously saved site files",
		"Move the saved copies of the preserved targets back over the installation, replacing what is there.",
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			return workflows.NewRestoreWorkflow(mgr, installPath), nil
		})

	rotateCmd = workflowCommand("rotate",
		"Flatten the wrapper directory left by archive extraction",
		`If the installation path holds exactly one visible directory, for example "opencart-4.0.2.3/",
its contents become the installation root. Anything else is left untouched.`,
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			return workflows.NewRotateWorkflow(mgr, installPath), nil
		})

	chmodCmd = workflowCommand("chmod",
		"Apply base permissions to writable targets",
		"Set the base permissions on each chmod target. Directories also get the execute bits. Not recursive.",
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			perms, err := basePerms()
			if err != nil {
				return nil, err
			}
			return workflows.NewChmodWorkflow(mgr, installPath, perms), nil
		})

	configsCmd = workflowCommand("configs",
		"Create config.php files from their -dist.php templates",
		"Copy each <name>-dist.php template to <name>.php, overwriting any existing file.",
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			return workflows.NewConfigsWorkflow(mgr, installPath), nil
		})

	finalizeCmd = workflowCommand("finalize",
		"Run rotate, configs, restore and chmod in order",
		`Finish an install or upgrade after the archive has been extracted into the installation path:

1. Flatten the wrapper directory
2. Create config files from their templates
3. Restore saved site files over them
4. Apply base permissions`,
		func(mgr installer.Manager, installPath string) (*automa.WorkflowBuilder, error) {
			perms, err := basePerms()
			if err != nil {
				return nil, err
			}

			mode, err := executionMode()
			if err != nil {
				return nil, err
			}

			return workflows.NewFinalizeWorkflow(mgr, installPath, perms).WithExecutionMode(mode), nil
		})
)

func init() {
	common.FlagPerms.SetVar(chmodCmd, &flagPerms, false)
	common.FlagPerms.SetVar(finalizeCmd, &flagPerms, false)

	common.FlagStopOnError.SetVar(finalizeCmd, &flagStopOnError, false)
	common.FlagRollbackOnError.SetVar(finalizeCmd, &flagRollbackOnError, false)
	common.FlagContinueOnError.SetVar(finalizeCmd, &flagContinueOnError, false)
}
