// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"time"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/internal/doctor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	FlagConfig = FlagDefinition[string]{
		Name:        "config",
		ShortName:   "c",
		Description: "config file path",
		Default:     "",
	}

	FlagPath = FlagDefinition[string]{
		Name:        "path",
		ShortName:   "p",
		Description: "OpenCart installation path",
		Default:     "",
	}

	FlagTempRoot = FlagDefinition[string]{
		Name:        "temp-root",
		ShortName:   "",
		Description: "Directory for saved copies, rotation scratch space and lock files (default: system temp dir)",
		Default:     "",
	}

	FlagReportDir = FlagDefinition[string]{
		Name:        "report-dir",
		ShortName:   "",
		Description: "Directory to save workflow reports into",
		Default:     "",
	}

	FlagLockTimeout = FlagDefinition[time.Duration]{
		Name:        "lock-timeout",
		ShortName:   "",
		Description: "How long to wait for another run on the same installation path",
		Default:     0,
	}

	FlagOutputFormat = FlagDefinition[string]{
		Name:        "output",
		ShortName:   "o",
		Description: "Output format (yaml|json)",
		Default:     "yaml",
	}

	FlagPerms = FlagDefinition[string]{
		Name:        "perms",
		ShortName:   "",
		Description: "Base permissions in octal; directories also get the execute bits",
		Default:     "",
	}

	FlagStopOnError = FlagDefinition[bool]{
		Name:        "stop-on-error",
		ShortName:   "",
		Description: "Stop execution on first error (default behaviour)",
		Default:     false,
	}

	FlagRollbackOnError = FlagDefinition[bool]{
		Name:        "rollback-on-error",
		ShortName:   "",
		Description: "Rollback executed steps on error",
		Default:     false,
	}

	FlagContinueOnError = FlagDefinition[bool]{
		Name:        "continue-on-error",
		ShortName:   "",
		Description: "Continue executing steps even if some steps fail",
		Default:     false,
	}
)

// FlagDefinition defines a command-line flag typed by T.
type FlagDefinition[T any] struct {
	Name        string
	ShortName   string
	Description string
	Default     T
}

func (fp *FlagDefinition[T]) valueFrom(flags *pflag.FlagSet) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		v, err := flags.GetString(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case bool:
		v, err := flags.GetBool(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case int:
		v, err := flags.GetInt(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case []string:
		v, err := flags.GetStringSlice(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case time.Duration:
		v, err := flags.GetDuration(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	default:
		return zero, errorx.IllegalArgument.New("unsupported flag type: %T", zero)
	}
}

// Value extracts the flag value from the full flag set of cmd, including flags inherited from parents.
func (fp *FlagDefinition[T]) Value(cmd *cobra.Command, args []string) (T, error) {
	if args == nil {
		args = []string{}
	}

	err := cmd.ParseFlags(args)
	if err != nil {
		var zero T
		return zero, errorx.InternalError.Wrap(err, "failed to parse flags for command %s", cmd.Name())
	}

	return fp.valueFrom(cmd.Flags())
}

// ValueP extracts the persistent flag value registered on cmd itself. Use Value for inherited flags.
func (fp *FlagDefinition[T]) ValueP(cmd *cobra.Command, args []string) (T, error) {
	if args == nil {
		args = []string{}
	}

	err := cmd.ParseFlags(args)
	if err != nil {
		var zero T
		return zero, errorx.InternalError.Wrap(err, "failed to parse flags for command %s", cmd.Name())
	}

	return fp.valueFrom(cmd.PersistentFlags())
}

// SetVarP sets up the persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVarP(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, fmt.Sprintf("failed to set flag %s", fp.Name))
	}
}

// SetVar sets up the non-persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVar(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varNP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, fmt.Sprintf("failed to set flag %s", fp.Name))
	}
}

func (fp *FlagDefinition[T]) varP(cmd *cobra.Command, p *T, required bool) error {
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}

	err := fp.setFlagVar(cmd.PersistentFlags(), p)
	if err != nil {
		return err
	}

	return fp.MarkRequiredP(cmd, required)
}

func (fp *FlagDefinition[T]) varNP(cmd *cobra.Command, p *T, required bool) error {
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}

	err := fp.setFlagVar(cmd.Flags(), p)
	if err != nil {
		return err
	}

	return fp.MarkRequired(cmd, required)
}

// setFlagVar registers the flag on flags, which is either the persistent or the local flag set of a command.
func (fp *FlagDefinition[T]) setFlagVar(flags *pflag.FlagSet, p *T) error {
	if p == nil {
		return errorx.IllegalArgument.New("pointer for flag %s is nil", fp.Name)
	}

	switch ptr := any(p).(type) {
	case *string:
		flags.StringVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(string), fp.Description)
	case *bool:
		flags.BoolVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(bool), fp.Description)
	case *int:
		flags.IntVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(int), fp.Description)
	case *[]string:
		flags.StringSliceVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).([]string), fp.Description)
	case *time.Duration:
		flags.DurationVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(time.Duration), fp.Description)
	default:
		return errorx.IllegalArgument.New("unsupported flag type: %T", p)
	}

	return nil
}

func (fp *FlagDefinition[T]) MarkRequired(cmd *cobra.Command, v bool) error {
	if v {
		err := cmd.MarkFlagRequired(fp.Name)
		if err != nil {
			return errorx.InternalError.Wrap(err, "failed to mark flag %s as required", fp.Name)
		}
	}

	return nil
}

func (fp *FlagDefinition[T]) MarkRequiredP(cmd *cobra.Command, v bool) error {
	if v {
		err := cmd.MarkPersistentFlagRequired(fp.Name)
		if err != nil {
			return errorx.InternalError.Wrap(err, "failed to mark persistent flag %s as required", fp.Name)
		}
	}

	return nil
}

// GetExecutionMode determines the execution mode based on the provided flags.
// Only one flag may be set. Precedence is continue, then rollback, then stop (the default).
func GetExecutionMode(continueOnErr bool, stopOnErr bool, rollbackOnErr bool) (automa.TypeMode, error) {
	count := 0
	for _, set := range []bool{continueOnErr, stopOnErr, rollbackOnErr} {
		if set {
			count++
		}
	}

	if count > 1 {
		return automa.StopOnError, errorx.IllegalArgument.New("only one of execution mode can be set; "+
			"found continue-on-error: %t, stop-on-error: %t, rollback-on-error: %t", continueOnErr, stopOnErr, rollbackOnErr)
	}

	switch {
	case continueOnErr:
		return automa.ContinueOnError, nil
	case rollbackOnErr:
		return automa.RollbackOnError, nil
	default:
		return automa.StopOnError, nil
	}
}
