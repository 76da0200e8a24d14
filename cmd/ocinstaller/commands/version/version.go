// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands/common"
	"github.com/opencart-tools/ocinstaller/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Long:  "Show the version of ocinstaller",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := common.FlagOutputFormat.Value(cmd, args)
		if err != nil {
			return err
		}

		return PrintVersion(cmd, format)
	},
}

func GetCmd() *cobra.Command {
	return versionCmd
}

func PrintVersion(cmd *cobra.Command, format string) error {
	output, err := version.Get().Format(format)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
