// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"strconv"

	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace       = errorx.NewNamespace("fsx")
	FileAlreadyExists     = ErrorsNamespace.NewType("file_already_exists", errorx.Duplicate())
	FileNotFound          = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())
	FileSystemError       = ErrorsNamespace.NewType("filesystem_error")
	FileTypeError         = ErrorsNamespace.NewType("file_type_error")
	PermissionChangeError = ErrorsNamespace.NewType("permission_change_error")

	pathProperty      = errorx.RegisterPrintableProperty("path")
	recursiveProperty = errorx.RegisterPrintableProperty("recursive")
	permsProperty     = errorx.RegisterPrintableProperty("perms")
)

const (
	permissionChangeErrorMsg = "failed to change file or directory permissions [ path = '%s', perms = '%s', recursive = '%t' ]"
)

func NewPermissionChangeError(cause error, path string, perms uint, recursive bool) *errorx.Error {
	e := PermissionChangeError.New(permissionChangeErrorMsg, path, strconv.FormatUint(uint64(perms), 8), recursive).
		WithProperty(pathProperty, path).
		WithProperty(permsProperty, perms).
		WithProperty(recursiveProperty, recursive)

	if cause == nil {
		return e
	}

	return e.WithUnderlyingErrors(cause)
}

// PathOf returns the path recorded on an fsx error, if any.
func PathOf(err error) (string, bool) {
	v, ok := errorx.ExtractProperty(err, pathProperty)
	if !ok {
		return "", false
	}

	p, ok := v.(string)
	return p, ok
}
