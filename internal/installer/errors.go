// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace = errorx.NewNamespace("installer")
	OperationFailed = ErrorsNamespace.NewType("operation_failed")

	operationProperty = errorx.RegisterPrintableProperty("operation")
	targetProperty    = errorx.RegisterPrintableProperty("target")
)

const (
	OpRotate  = "rotate"
	OpSave    = "save"
	OpRestore = "restore"
	OpChmod   = "chmod"
	OpConfigs = "configs"
	OpInspect = "inspect"
	OpPurge   = "purge"
)

func newOperationError(cause error, op string, target string, format string, args ...interface{}) *errorx.Error {
	return OperationFailed.Wrap(cause, format, args...).
		WithProperty(operationProperty, op).
		WithProperty(targetProperty, target)
}

// OperationOf returns the installer operation recorded on err, if any.
func OperationOf(err error) (string, bool) {
	v, ok := errorx.ExtractProperty(err, operationProperty)
	if !ok {
		return "", false
	}

	op, ok := v.(string)
	return op, ok
}

// TargetOf returns the path the failing installer operation was working on.
func TargetOf(err error) (string, bool) {
	v, ok := errorx.ExtractProperty(err, targetProperty)
	if !ok {
		return "", false
	}

	target, ok := v.(string)
	return target, ok
}
