// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/internal/config"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/opencart-tools/ocinstaller/internal/version"
	"github.com/opencart-tools/ocinstaller/internal/workflows/notify"
	"github.com/opencart-tools/ocinstaller/pkg/fsx"
	"github.com/opencart-tools/ocinstaller/pkg/plock"
)

// ErrPropertyResolution lets the code raising an error suggest how to fix it.
var ErrPropertyResolution = errorx.RegisterPrintableProperty("resolution")

// overridable in tests
var (
	output io.Writer = os.Stdout
	exit             = os.Exit
)

type ErrorDiagnosis struct {
	Error      error    `yaml:"error" json:"error"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause" json:"cause"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	Operation  string   `yaml:"operation" json:"operation"`
	Target     string   `yaml:"target" json:"target"`
	TraceId    string   `yaml:"traceId" json:"traceId"`
	Commit     string   `yaml:"commit" json:"commit"`
	Version    string   `yaml:"version" json:"version"`
	Pid        int      `yaml:"pid" json:"pid"`
	Code       int      `yaml:"code" json:"code"`
	Logfile    string   `yaml:"log" json:"log"`
	Resolution []string `yaml:"steps" json:"steps"`
}

// rootCause returns the innermost errorx error, or err itself.
func rootCause(err error) error {
	cur := err
	for {
		e := errorx.Cast(cur)
		if e == nil || e.Cause() == nil {
			return cur
		}

		if errorx.Cast(e.Cause()) == nil {
			return cur
		}
		cur = e.Cause()
	}
}

// isOfType checks both the reported error and its root cause, since commands wrap what the core returns.
func isOfType(err error, t *errorx.Type) bool {
	return errorx.IsOfType(err, t) || errorx.IsOfType(rootCause(err), t)
}

func toErrorCode(err error) int {
	root := rootCause(err)
	switch {
	case isOfType(err, errorx.IllegalArgument), isOfType(err, config.InvalidConfigError):
		return 10400
	case errorx.IsOfType(root, fsx.PermissionChangeError):
		return 10403
	case errorx.HasTrait(err, errorx.NotFound()), errorx.HasTrait(root, errorx.NotFound()):
		return 10404
	case errorx.HasTrait(root, errorx.Duplicate()):
		return 10409
	case isOfType(err, plock.LockTimeout):
		return 10423
	default:
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	if e.Cause() == nil {
		return e.Message(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	if r, ok := errorx.ExtractProperty(err, ErrPropertyResolution); ok {
		if s, ok := r.(string); ok && s != "" {
			return []string{s}
		}
	}

	root := rootCause(err)
	target, _ := installer.TargetOf(err)
	if target == "" {
		target, _ = fsx.PathOf(root)
	}

	switch {
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg)}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	case errorx.IsOfType(err, config.InvalidConfigError):
		return []string{
			"Ensure install.basePerms is an octal value no larger than 0777.",
			"Ensure every target list entry is a relative path inside the install root.",
		}
	case isOfType(err, errorx.IllegalArgument):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure %q is provided.", arg)}
		}
		return []string{"Ensure all required arguments are provided and the install path is not the filesystem root."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case isOfType(err, plock.LockTimeout):
		return []string{
			"Another ocinstaller run is working on the same install path.",
			"Wait for it to finish or raise install.lockTimeout.",
		}
	case errorx.IsOfType(root, fsx.PermissionChangeError):
		return []string{fmt.Sprintf("Run ocinstaller as the owner of %q or with elevated privileges.", target)}
	case errorx.HasTrait(root, errorx.NotFound()):
		return []string{fmt.Sprintf("Ensure %q exists and the --path flag points at the OpenCart install root.", target)}
	case errorx.HasTrait(root, errorx.Duplicate()):
		return []string{fmt.Sprintf("Remove %q, it is likely left over from an interrupted run.", target)}
	case errorx.IsOfType(err, installer.OperationFailed):
		op, _ := installer.OperationOf(err)
		return []string{
			fmt.Sprintf("The %s operation stopped at %q; fix the cause above and run it again.", op, target),
			"Saved copies are kept until they are restored or purged; run `ocinstaller stash list` to inspect them.",
		}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	msg, cause := toErrorMessage(ex)
	op, _ := installer.OperationOf(ex)
	target, _ := installer.TargetOf(ex)

	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		Operation:  op,
		Target:     target,
		TraceId:    notify.TraceId(ctx),
		Code:       toErrorCode(ex),
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    config.Get().Log.Filename,
		Resolution: findResolution(ex),
	}
}

// Print writes the diagnosis in a human friendly form.
func (d *ErrorDiagnosis) Print(w io.Writer, instructions ...string) {
	c := paletteFor(w)
	line := func(color string, label string, value interface{}) {
		_, _ = fmt.Fprintf(w, "%s*%s\t%s%s:%s %v\n", c.red, c.reset, color, label, c.reset, value)
	}

	_, _ = fmt.Fprintf(w, "\n%s%s************************************** Error Diagnostics ******************************************%s\n", c.bold, c.red, c.reset)
	line(c.bold+c.white, "Error", d.Message)
	if d.Cause != "" {
		line(c.bold+c.white, "Cause", d.Cause)
	}
	if d.Operation != "" {
		line(c.bold+c.white, "Operation", d.Operation)
	}
	if d.Target != "" {
		line(c.bold+c.white, "Target", d.Target)
	}
	line(c.bold+c.white, "Error Type", d.ErrorType)
	line(c.bold+c.white, "Error Code", d.Code)
	line(c.gray, "Commit", d.Commit)
	line(c.gray, "Pid", d.Pid)
	line(c.gray, "TraceId", d.TraceId)
	line(c.gray, "Version", d.Version)
	if d.Logfile != "" {
		line(c.cyan, "Logfile", d.Logfile)
	}
	_, _ = fmt.Fprintf(w, "%s%s***************************************************************************************************%s\n", c.bold, c.red, c.reset)
	_, _ = fmt.Fprintf(w, "\n%s%s****************************************** Resolution *********************************************%s\n", c.bold, c.yellow, c.reset)

	// custom instructions go first
	if len(instructions) > 0 && instructions[0] != "" {
		for _, l := range strings.Split(instructions[0], "\n") {
			if l == "" {
				_, _ = fmt.Fprintf(w, "%s*%s\n", c.yellow, c.reset)
			} else {
				_, _ = fmt.Fprintf(w, "%s*%s\t%s\n", c.yellow, c.reset, c.bold+c.white+l+c.reset)
			}
		}
		if len(d.Resolution) > 0 {
			_, _ = fmt.Fprintf(w, "%s*%s\n", c.yellow, c.reset)
		}
	}

	for _, r := range d.Resolution {
		_, _ = fmt.Fprintf(w, "%s*%s\t%s\n", c.yellow, c.reset, c.white+r+c.reset)
	}

	_, _ = fmt.Fprintf(w, "%s%s***************************************************************************************************%s\n", c.bold, c.yellow, c.reset)
}

// CheckErr prints diagnosis and exit with error code 1
// Optional instructions can be provided to give additional context to the user
func CheckErr(ctx context.Context, err error, instructions ...string) {
	if err == nil {
		return
	}

	logx.As().Error().Err(err).Str("trace_id", notify.TraceId(ctx)).Msg("error occurred")
	_, _ = fmt.Fprintf(output, "%+v\n", err)
	Diagnose(ctx, err).Print(output, instructions...)

	exit(1)
}

// CheckReportErr diagnoses the error of a failed workflow report.
func CheckReportErr(ctx context.Context, report *automa.Report) {
	if report == nil || report.Error == nil {
		return
	}

	CheckErr(ctx, report.Error, GetInstructionsFromReport(report))
}

// GetInstructionsFromReport recursively searches for instructions in report metadata.
// Returns the first non-empty instructions found in the report tree, or an empty string if none exist.
func GetInstructionsFromReport(report *automa.Report) string {
	if report == nil {
		return ""
	}

	if instructions, ok := report.Metadata["instructions"]; ok {
		return instructions
	}

	for _, stepReport := range report.StepReports {
		if instructions := GetInstructionsFromReport(stepReport); instructions != "" {
			return instructions
		}
	}

	return ""
}
