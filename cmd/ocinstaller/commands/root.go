// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands/common"
	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands/version"
	"github.com/opencart-tools/ocinstaller/internal/config"
	"github.com/opencart-tools/ocinstaller/internal/doctor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// examples:
// ocinstaller save --path /var/www/shop
// ocinstaller finalize --path /var/www/shop --perms 0640 --rollback-on-error
// ocinstaller stash list --path /var/www/shop -o json

var (
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string
	flagPath         string
	flagTempRoot     string
	flagReportDir    string
	flagLockTimeout  time.Duration

	rootCmd = &cobra.Command{
		Use:   "ocinstaller",
		Short: "Prepare OpenCart installation trees and carry site state across re-installs",
		Long: `ocinstaller drives the on-disk part of installing or upgrading OpenCart.

It flattens the wrapper directory left behind by archive extraction, saves and restores
site-specific files around a re-install, applies base permissions and materializes
config.php files from their -dist.php templates.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				return version.PrintVersion(cmd, flagOutputFormat)
			}

			return cmd.Help()
		},
	}
)

func init() {
	common.FlagConfig.SetVarP(rootCmd, &flagConfig, false)
	common.FlagPath.SetVarP(rootCmd, &flagPath, false)
	common.FlagTempRoot.SetVarP(rootCmd, &flagTempRoot, false)
	common.FlagReportDir.SetVarP(rootCmd, &flagReportDir, false)
	common.FlagLockTimeout.SetVarP(rootCmd, &flagLockTimeout, false)
	common.FlagOutputFormat.SetVarP(rootCmd, &flagOutputFormat, false)

	// support '--version', '-v' to show version information
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "Show version")

	// keep the lifecycle order in help output
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(saveCmd, rotateCmd, configsCmd, restoreCmd, chmodCmd, finalizeCmd)
	rootCmd.AddCommand(stashCmd)
	rootCmd.AddCommand(version.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	err := config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	err = applyFlagOverrides(rootCmd.PersistentFlags())
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	err = logx.Initialize(config.Get().Log)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}

// applyFlagOverrides lets flags win over the config file and the environment.
// The lock timeout is taken whenever the flag was given, so an explicit 0 selects a single attempt.
func applyFlagOverrides(flags *pflag.FlagSet) error {
	err := config.OverrideInstallConfig(config.InstallConfig{
		TempRoot:  flagTempRoot,
		ReportDir: flagReportDir,
	})
	if err != nil {
		return err
	}

	if !flags.Changed(common.FlagLockTimeout.Name) {
		return nil
	}

	timeout, err := flags.GetDuration(common.FlagLockTimeout.Name)
	if err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid value for --%s", common.FlagLockTimeout.Name)
	}

	c := config.Get()
	c.Install.LockTimeout = timeout
	return config.Set(&c)
}
