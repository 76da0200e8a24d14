// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/automa-saga/logx"
	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands/common"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/spf13/cobra"
)

// stashListing is what the stash commands print.
type stashListing struct {
	InstallPath string             `yaml:"installPath" json:"installPath"`
	StashRoot   string             `yaml:"stashRoot" json:"stashRoot"`
	Records     []installer.Record `yaml:"records" json:"records"`
}

var (
	stashCmd = &cobra.Command{
		Use:   "stash",
		Short: "Inspect or clean up saved site files",
		Long:  "Inspect or clean up the copies made by 'save' that have not been restored yet",
		RunE:  common.DefaultRunE,
	}

	stashListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the saved copies for an installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStash(cmd, args, installer.Manager.InspectSaved)
		},
	}

	stashPurgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete the saved copies for an installation",
		Long:  "Delete the saved copies for an installation. Use it after an aborted upgrade that will not be restored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStash(cmd, args, installer.Manager.PurgeSaved)
		},
	}
)

func init() {
	stashCmd.AddCommand(stashListCmd, stashPurgeCmd)
}

func runStash(cmd *cobra.Command, args []string, op func(installer.Manager, string) ([]installer.Record, error)) error {
	installPath, err := common.InstallPath(cmd, args)
	if err != nil {
		return err
	}

	format, err := common.FlagOutputFormat.Value(cmd, args)
	if err != nil {
		return err
	}

	var listing stashListing
	err = common.WithInstallLock(cmd.Context(), installPath, func(mgr installer.Manager) error {
		records, err := op(mgr, installPath)
		if err != nil {
			return err
		}

		listing = stashListing{
			InstallPath: installPath,
			StashRoot:   mgr.Stash().Root(),
			Records:     records,
		}
		return nil
	})
	if err != nil {
		return err
	}

	logx.As().Debug().
		Str("command", cmd.CommandPath()).
		Str("install_path", installPath).
		Int("count", len(listing.Records)).
		Msg("Stash command completed")

	return common.Render(cmd.OutOrStdout(), format, listing)
}
