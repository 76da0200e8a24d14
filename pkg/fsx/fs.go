// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"io/fs"
	"os"
)

// Manager provides an operating system independent interface for managing files and directories.
type Manager interface {
	// PathExists determines if the source path exists. This method does not follow symlinks.
	PathExists(path string) (os.FileInfo, bool, error)
	// IsRegularFile returns true if the path resolves to a regular file; otherwise, false is returned.
	// Symbolic links are followed.
	IsRegularFile(path string) bool
	// IsDirectory returns true if the path resolves to a directory; otherwise, false is returned.
	// Symbolic links are followed.
	IsDirectory(path string) bool
	// IsSymbolicLink returns true if the path is a symbolic link; otherwise, false is returned.
	IsSymbolicLink(path string) bool
	// ListDirectories returns the names of the immediate subdirectories of the given path in lexical order.
	// Symbolic links which resolve to a directory are reported as directories. The listing is not recursive.
	ListDirectories(path string) ([]string, error)
	// CreateDirectory creates a directory at the path specified by the path argument.
	// If the path argument refers to an existing directory, then no action is taken and no error is returned.
	// If the path argument refers to an existing file, then an error is returned.
	// If the path argument refers to a non-existent parent path, then an error is returned unless
	// the recursive argument is true.
	CreateDirectory(path string, recursive bool) error
	// CopyFile copies a single file.
	// The src argument must resolve to an existing file; a symbolic link is copied by content. The dst argument may reference either a file or directory.
	//
	// If the dst argument refers to an existing directory, then the file will be copied into the directory with same
	// name as the original file.
	//
	// If the dst argument refers to an existing file, then the existing file will be replaced if the overwrite
	// argument is true; otherwise, an error will be returned.
	//
	// If the dst argument refers to a non-existent path, then the last element of the path will be used as the file
	// name. If the parent directory does not exist, then an error will be returned.
	CopyFile(src string, dst string, overwrite bool) error
	// CopyTree mirrors the src directory into dst. Missing directories in dst are created, existing files in dst are
	// overwritten and files present only in dst are left untouched. Symbolic links, including a src which is itself
	// a symbolic link, are copied as links.
	CopyTree(src string, dst string) error
	// Move renames src to dst.
	//
	// If dst exists and overwrite is false, then an error is returned. If dst exists and overwrite is true, then dst
	// is removed before the rename. When src and dst live on different devices the content is mirrored to dst and
	// src is removed afterwards.
	Move(src string, dst string, overwrite bool) error
	// ReadPermissions returns the permissions of the file at the given path. Symbolic links are followed.
	ReadPermissions(path string) (fs.FileMode, error)
	// WritePermissions sets the permissions of the file at the given path. A symbolic link at path is followed.
	WritePermissions(path string, perms fs.FileMode, recursive bool) error
	// RemoveAll removes the path and its contents
	// It is a wrapper of os.RemoveAll. This interface exists to help us mock the functionality during tests.
	RemoveAll(path string) error
}
