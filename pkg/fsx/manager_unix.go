// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package fsx

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joomcode/errorx"
	cp "github.com/otiai10/copy"
	"golang.org/x/sys/unix"
)

const (
	// DefaultFileMode is the default file mode used when creating files.
	DefaultFileMode = 0644
	// DefaultDirectoryMode is the default directory mode used when creating directories.
	DefaultDirectoryMode = 0755
)

type Option func(*unixManager) error

type unixManager struct {
	syncWrites bool
	rename     func(oldpath, newpath string) error
}

func NewManager(opts ...Option) (Manager, error) {
	manager := &unixManager{
		syncWrites: true,
		rename:     os.Rename,
	}

	for _, opt := range opts {
		if err := opt(manager); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

// WithSyncWrites controls whether copied files are flushed to stable storage before returning.
func WithSyncWrites(sync bool) Option {
	return func(manager *unixManager) error {
		manager.syncWrites = sync
		return nil
	}
}

// withRename replaces the rename(2) call used by Move.
func withRename(rename func(oldpath, newpath string) error) Option {
	return func(manager *unixManager) error {
		manager.rename = rename
		return nil
	}
}

func (m *unixManager) PathExists(path string) (os.FileInfo, bool, error) {
	pi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return pi, true, nil
}

// IsRegularFile follows symbolic links.
func (m *unixManager) IsRegularFile(path string) bool {
	pi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return pi.Mode().IsRegular()
}

// IsDirectory follows symbolic links.
func (m *unixManager) IsDirectory(path string) bool {
	pi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return pi.IsDir()
}

func (m *unixManager) IsSymbolicLink(path string) bool {
	pi, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return false
	}

	return pi.Mode()&os.ModeSymlink != 0
}

func (m *unixManager) ListDirectories(path string) ([]string, error) {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return nil, FileSystemError.New("invalid path %q", path).
			WithProperty(pathProperty, path).
			WithUnderlyingErrors(err)
	}

	if !exists {
		return nil, FileNotFound.New("path %q not found", path).WithProperty(pathProperty, path)
	}

	if !fi.IsDir() {
		return nil, FileTypeError.New("path %q is not a directory", path).WithProperty(pathProperty, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, FileSystemError.New("failed to read directory %q", path).
			WithProperty(pathProperty, path).
			WithUnderlyingErrors(err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
			continue
		}

		// follow symbolic links the same way a shell glob does
		if entry.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(path, entry.Name())); err == nil && target.IsDir() {
				dirs = append(dirs, entry.Name())
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func (m *unixManager) CreateDirectory(path string, recursive bool) error {
	var err error

	fi, exists, err := m.PathExists(path)
	if err != nil {
		return FileSystemError.New("invalid path %q", path).WithUnderlyingErrors(err)
	}

	if exists {
		if !fi.IsDir() {
			return FileTypeError.New("path %q exists and is not a directory", path).WithProperty(pathProperty, path)
		}

		return nil
	}

	parentDir := filepath.Dir(path)
	pfi, exists, err := m.PathExists(parentDir)
	if err != nil {
		return FileSystemError.
			New("parent directory is not a valid path %q", parentDir).
			WithUnderlyingErrors(err)
	}

	if exists && !pfi.Mode().IsDir() {
		retError := true

		// for a symbolic link read info about the target and check if that's a directory
		if m.IsSymbolicLink(parentDir) {
			if pfi2, err := os.Stat(parentDir); err == nil && pfi2.Mode().IsDir() {
				retError = false
			}
		}

		if retError {
			return FileTypeError.New("parent path %q is not a directory", parentDir).WithProperty(pathProperty, parentDir)
		}
	} else if !exists && !recursive {
		return FileNotFound.New("parent path %q not found", parentDir).WithProperty(pathProperty, parentDir)
	}

	if recursive {
		err = os.MkdirAll(path, DefaultDirectoryMode)
	} else {
		err = os.Mkdir(path, DefaultDirectoryMode)
	}

	if err != nil {
		return FileSystemError.New("failed to create a directory %q", path).
			WithProperty(pathProperty, path).
			WithUnderlyingErrors(err)
	}

	return nil
}

func (m *unixManager) CopyFile(src string, dst string, overwrite bool) error {
	// Ensure src resolves to a file; a symbolic link is copied by content
	sfi, err := os.Stat(src)
	if err != nil {
		return FileNotFound.New("source file %q not found", src).
			WithProperty(pathProperty, src).
			WithUnderlyingErrors(err)
	}

	if !sfi.Mode().IsRegular() {
		return errorx.IllegalArgument.New("source path is not a file: %s", src)
	}

	// Check to see if dst exists
	dfi, exists, err := m.PathExists(dst)
	if err != nil {
		return FileSystemError.New("destination path is not a valid path: %s", dst).WithUnderlyingErrors(err)
	}

	// If dst exists and is the same file as src, return
	if exists && os.SameFile(sfi, dfi) {
		return nil
	}

	var dstParent, dstFileName string

	if exists {
		switch {
		case dfi.Mode().IsRegular() && !overwrite:
			return FileAlreadyExists.New("destination file %q already exists, overwrite is disabled.", dst).
				WithProperty(pathProperty, dst)
		case dfi.Mode().IsRegular():
			dstParent = filepath.Dir(dst)
			dstFileName = filepath.Base(dst)
		case dfi.Mode().IsDir():
			// copy the file into the directory
			dstParent = dst
			dstFileName = filepath.Base(src)
		case dfi.Mode()&os.ModeSymlink != 0:
			if err := os.Remove(dst); err != nil {
				return FileSystemError.New("failed to remove symlink %q", dst).WithUnderlyingErrors(err)
			}
			dstParent = filepath.Dir(dst)
			dstFileName = filepath.Base(dst)
		default:
			return FileAlreadyExists.New("destination path %q already exists and is not a file or directory", dst).
				WithProperty(pathProperty, dst)
		}
	} else {
		dstParent = filepath.Dir(dst)
		dstFileName = filepath.Base(dst)
	}

	// Ensure dstParent exists and is a directory
	info, exists, err := m.PathExists(dstParent)
	if err != nil {
		return FileSystemError.New("destination parent path is not a valid path: %s", dstParent).WithUnderlyingErrors(err)
	} else if !exists {
		return FileNotFound.New("destination parent path %q not found", dstParent).WithProperty(pathProperty, dstParent)
	} else if !info.Mode().IsDir() {
		return FileTypeError.New("destination parent path %q is not a directory", dstParent).
			WithProperty(pathProperty, dstParent)
	}

	return m.copyFileContents(src, filepath.Join(dstParent, dstFileName))
}

func (m *unixManager) CopyTree(src string, dst string) error {
	sfi, exists, err := m.PathExists(src)
	if err != nil || !exists {
		return FileNotFound.New("source directory %q not found", src).
			WithProperty(pathProperty, src).
			WithUnderlyingErrors(err)
	}

	// a symbolic link is mirrored as a link
	if !sfi.IsDir() && sfi.Mode()&os.ModeSymlink == 0 {
		return FileTypeError.New("source path %q is not a directory", src).WithProperty(pathProperty, src)
	}

	err = cp.Copy(src, dst, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          m.syncWrites,
	})
	if err != nil {
		return FileSystemError.New("failed to mirror %q to %q", src, dst).
			WithProperty(pathProperty, src).
			WithUnderlyingErrors(err)
	}

	return nil
}

func (m *unixManager) Move(src string, dst string, overwrite bool) error {
	sfi, exists, err := m.PathExists(src)
	if err != nil {
		return FileSystemError.New("source path is not a valid path: %s", src).WithUnderlyingErrors(err)
	}

	if !exists {
		return FileNotFound.New("source path %q not found", src).WithProperty(pathProperty, src)
	}

	if err = m.checkAndOverwritePath(dst, overwrite); err != nil {
		return err
	}

	err = m.rename(src, dst)
	if err == nil {
		return nil
	}

	if !errors.Is(err, unix.EXDEV) {
		return FileSystemError.New("failed to move %q to %q", src, dst).
			WithProperty(pathProperty, src).
			WithUnderlyingErrors(err)
	}

	// rename(2) cannot cross devices; copy the content over and drop the source
	switch {
	case sfi.IsDir():
		err = m.CopyTree(src, dst)
	case sfi.Mode()&os.ModeSymlink != 0:
		err = moveSymlink(src, dst)
	default:
		var perms fs.FileMode
		if perms, err = m.ReadPermissions(src); err == nil {
			if err = m.copyFileContents(src, dst); err == nil {
				err = m.WritePermissions(dst, perms, false)
			}
		}
	}

	if err != nil {
		return err
	}

	if err = os.RemoveAll(src); err != nil {
		return FileSystemError.New("failed to remove %q after moving it to %q", src, dst).
			WithProperty(pathProperty, src).
			WithUnderlyingErrors(err)
	}

	return nil
}

// ReadPermissions follows symbolic links.
func (m *unixManager) ReadPermissions(path string) (fs.FileMode, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return 0, FileSystemError.New("failed to stat path; %s", path).
			WithProperty(pathProperty, path).
			WithUnderlyingErrors(err)
	}

	return fileInfo.Mode().Perm(), nil
}

// WritePermissions updates the permissions of the given path.
// A symbolic link at path is followed and its target is changed. Links met while walking recursively are skipped.
func (m *unixManager) WritePermissions(path string, perms fs.FileMode, recursive bool) error {
	if err := os.Chmod(path, perms); err != nil {
		return NewPermissionChangeError(err, path, uint(perms), recursive)
	}

	if recursive {
		stat, err := os.Lstat(path)
		if err != nil {
			return FileSystemError.New("failed to stat path: %s", path).WithUnderlyingErrors(err)
		}

		if stat.IsDir() {
			err = filepath.WalkDir(path, func(nameAndPath string, d fs.DirEntry, err error) error {
				if err == nil && !m.IsSymbolicLink(nameAndPath) { // we cannot change permission of a symlink
					err = os.Chmod(nameAndPath, perms)
				}

				return err
			})

			if err != nil {
				return NewPermissionChangeError(err, path, uint(perms), recursive)
			}
		}
	}

	return nil
}

func (m *unixManager) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return FileSystemError.New("failed to remove %q", path).
			WithProperty(pathProperty, path).
			WithUnderlyingErrors(err)
	}

	return nil
}

func (m *unixManager) checkAndOverwritePath(path string, overwrite bool) error {
	_, exists, err := m.PathExists(path)
	if err != nil {
		return FileSystemError.New("destination path is not a valid path: %s", path).WithUnderlyingErrors(err)
	}

	if exists {
		if overwrite {
			if err := os.Remove(path); err != nil {
				if err := os.RemoveAll(path); err != nil {
					return FileSystemError.
						New("failed to remove existing path: %s", path).
						WithProperty(pathProperty, path).
						WithUnderlyingErrors(err)
				}
			}
		} else {
			return FileAlreadyExists.New("destination path %q already exists, overwrite is disabled", path).
				WithProperty(pathProperty, path)
		}
	}

	return nil
}

func (m *unixManager) copyFileContents(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return FileSystemError.New("failed to open the source file: %s", src).WithUnderlyingErrors(err)
	}
	defer Close(srcFile)

	dstFile, err := os.Create(dst)
	if err != nil {
		return FileSystemError.New("failed to create the destination file: %s", dst).
			WithProperty(pathProperty, dst).
			WithUnderlyingErrors(err)
	}
	defer Close(dstFile)

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		return FileSystemError.New("failed to copy the file contents: %s", src).WithUnderlyingErrors(err)
	}

	if m.syncWrites {
		err = dstFile.Sync()
		if err != nil {
			return FileSystemError.New("failed to sync the destination file: %s", dst).WithUnderlyingErrors(err)
		}
	}

	return nil
}

func moveSymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return FileSystemError.New("failed to read symlink %q", src).WithUnderlyingErrors(err)
	}

	if err = os.Symlink(target, dst); err != nil {
		return FileSystemError.New("failed to create symlink: %s", dst).WithUnderlyingErrors(err)
	}

	return nil
}
