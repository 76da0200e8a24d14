// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	assertions "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func setupTest(t *testing.T) (*assertions.Assertions, Manager) {
	t.Helper()
	assert := assertions.New(t)

	manager, err := NewManager(WithSyncWrites(false))
	require.NoError(t, err)

	return assert, manager
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestNewManager(t *testing.T) {
	assert, manager := setupTest(t)
	assert.NotNil(manager)
	assert.IsType(&unixManager{}, manager)
}

func TestUnixManager_PathExists(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	fi, exists, err := manager.PathExists(tmpDir)
	assert.NoError(err)
	assert.True(exists)
	assert.NotNil(fi)

	fi, exists, err = manager.PathExists(filepath.Join(tmpDir, "non-existent"))
	assert.NoError(err)
	assert.False(exists)
	assert.Nil(fi)
}

func TestUnixManager_IsDirectoryAndFile(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "index.php")
	writeFile(t, file, "<?php")

	assert.True(manager.IsDirectory(tmpDir))
	assert.False(manager.IsDirectory(file))
	assert.False(manager.IsDirectory(filepath.Join(tmpDir, "non-existent")))
	assert.False(manager.IsDirectory(""))

	assert.True(manager.IsRegularFile(file))
	assert.False(manager.IsRegularFile(tmpDir))
	assert.False(manager.IsRegularFile(""))
}

func TestUnixManager_IsSymbolicLink(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	writeFile(t, file, "x")
	require.NoError(t, os.Symlink(file, link))

	assert.True(manager.IsSymbolicLink(link))
	assert.False(manager.IsSymbolicLink(file))
}

func TestUnixManager_TypeChecksFollowSymbolicLinks(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "config-dist.php")
	dir := filepath.Join(tmpDir, "shared-image")
	writeFile(t, file, "x")
	require.NoError(t, os.Mkdir(dir, 0755))

	fileLink := filepath.Join(tmpDir, "config-link")
	dirLink := filepath.Join(tmpDir, "image")
	dangling := filepath.Join(tmpDir, "download")
	require.NoError(t, os.Symlink(file, fileLink))
	require.NoError(t, os.Symlink(dir, dirLink))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), dangling))

	assert.True(manager.IsRegularFile(fileLink))
	assert.False(manager.IsDirectory(fileLink))
	assert.True(manager.IsDirectory(dirLink))
	assert.False(manager.IsRegularFile(dirLink))
	assert.False(manager.IsRegularFile(dangling))
	assert.False(manager.IsDirectory(dangling))
}

func TestUnixManager_ListDirectories(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "upload"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "docs"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0755))
	writeFile(t, filepath.Join(tmpDir, "license.txt"), "GPL")

	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(tmpDir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "license.txt"), filepath.Join(tmpDir, "license-link")))

	dirs, err := manager.ListDirectories(tmpDir)
	assert.NoError(err)
	assert.Equal([]string{".git", "docs", "linked", "upload"}, dirs)
}

func TestUnixManager_ListDirectories_Errors(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	writeFile(t, file, "x")

	_, err := manager.ListDirectories(filepath.Join(tmpDir, "missing"))
	assert.True(errorx.IsOfType(err, FileNotFound))

	_, err = manager.ListDirectories(file)
	assert.True(errorx.IsOfType(err, FileTypeError))
}

func TestUnixManager_CreateDirectory(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	nested := filepath.Join(tmpDir, "a", "b", "c")
	err := manager.CreateDirectory(nested, false)
	assert.True(errorx.IsOfType(err, FileNotFound))

	assert.NoError(manager.CreateDirectory(nested, true))
	assert.True(manager.IsDirectory(nested))

	// existing directory is a no-op
	assert.NoError(manager.CreateDirectory(nested, false))

	file := filepath.Join(tmpDir, "file")
	writeFile(t, file, "x")
	err = manager.CreateDirectory(file, true)
	assert.True(errorx.IsOfType(err, FileTypeError))
}

func TestUnixManager_CopyFile(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "config-dist.php")
	dst := filepath.Join(tmpDir, "config.php")
	writeFile(t, src, "dist")

	assert.NoError(manager.CopyFile(src, dst, true))
	assert.Equal("dist", readFile(t, dst))

	writeFile(t, dst, "live")
	err := manager.CopyFile(src, dst, false)
	assert.True(errorx.IsOfType(err, FileAlreadyExists))
	assert.Equal("live", readFile(t, dst))

	assert.NoError(manager.CopyFile(src, dst, true))
	assert.Equal("dist", readFile(t, dst))

	// copy into an existing directory keeps the source name
	dir := filepath.Join(tmpDir, "admin")
	require.NoError(t, os.Mkdir(dir, 0755))
	assert.NoError(manager.CopyFile(src, dir, false))
	assert.Equal("dist", readFile(t, filepath.Join(dir, "config-dist.php")))

	// copying a file onto itself is a no-op
	assert.NoError(manager.CopyFile(src, src, false))
}

func TestUnixManager_CopyFile_FromSymbolicLink(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "shared", "config-dist.php")
	writeFile(t, target, "<?php // dist")
	src := filepath.Join(tmpDir, "config-dist.php")
	require.NoError(t, os.Symlink(target, src))

	dst := filepath.Join(tmpDir, "config.php")
	assert.NoError(manager.CopyFile(src, dst, true))
	assert.Equal("<?php // dist", readFile(t, dst))
	assert.False(manager.IsSymbolicLink(dst))

	// a dangling link has nothing to copy
	dangling := filepath.Join(tmpDir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), dangling))
	err := manager.CopyFile(dangling, filepath.Join(tmpDir, "other.php"), true)
	assert.True(errorx.IsOfType(err, FileNotFound))
}

func TestUnixManager_CopyFile_Errors(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	err := manager.CopyFile(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "dst"), true)
	assert.True(errorx.IsOfType(err, FileNotFound))

	err = manager.CopyFile(tmpDir, filepath.Join(tmpDir, "dst"), true)
	assert.True(errorx.IsOfType(err, errorx.IllegalArgument))

	src := filepath.Join(tmpDir, "src")
	writeFile(t, src, "x")
	err = manager.CopyFile(src, filepath.Join(tmpDir, "no", "such", "dir", "dst"), true)
	assert.True(errorx.IsOfType(err, FileNotFound))
}

func TestUnixManager_CopyTree(t *testing.T) {
	assert, manager := setupTest(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")

	writeFile(t, filepath.Join(src, "catalog", "logo.png"), "png")
	writeFile(t, filepath.Join(src, "cache", "a", "b.txt"), "b")
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty"), 0755))

	assert.NoError(manager.CopyTree(src, dst))
	assert.Equal("png", readFile(t, filepath.Join(dst, "catalog", "logo.png")))
	assert.Equal("b", readFile(t, filepath.Join(dst, "cache", "a", "b.txt")))
	assert.True(manager.IsDirectory(filepath.Join(dst, "empty")))

	// mirroring onto an existing tree overwrites files and keeps extra ones
	writeFile(t, filepath.Join(dst, "extra.txt"), "extra")
	writeFile(t, filepath.Join(src, "catalog", "logo.png"), "png2")
	assert.NoError(manager.CopyTree(src, dst))
	assert.Equal("png2", readFile(t, filepath.Join(dst, "catalog", "logo.png")))
	assert.Equal("extra", readFile(t, filepath.Join(dst, "extra.txt")))
}

func TestUnixManager_CopyTree_KeepsSymlinks(t *testing.T) {
	assert, manager := setupTest(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")

	writeFile(t, filepath.Join(src, "catalog", "logo.png"), "png")
	require.NoError(t, os.Symlink("catalog/logo.png", filepath.Join(src, "logo")))

	assert.NoError(manager.CopyTree(src, dst))
	assert.True(manager.IsSymbolicLink(filepath.Join(dst, "logo")))

	target, err := os.Readlink(filepath.Join(dst, "logo"))
	assert.NoError(err)
	assert.Equal("catalog/logo.png", target)
}

func TestUnixManager_CopyTree_Errors(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	err := manager.CopyTree(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "dst"))
	assert.True(errorx.IsOfType(err, FileNotFound))

	file := filepath.Join(tmpDir, "file")
	writeFile(t, file, "x")
	err = manager.CopyTree(file, filepath.Join(tmpDir, "dst"))
	assert.True(errorx.IsOfType(err, FileTypeError))
}

func TestUnixManager_Move(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "logs")
	writeFile(t, filepath.Join(src, "error.log"), "boom")

	dst := filepath.Join(tmpDir, "moved")
	assert.NoError(manager.Move(src, dst, false))
	assert.False(manager.IsDirectory(src))
	assert.Equal("boom", readFile(t, filepath.Join(dst, "error.log")))

	// refuse to overwrite without the flag
	other := filepath.Join(tmpDir, "other")
	writeFile(t, filepath.Join(other, "keep.txt"), "keep")
	err := manager.Move(other, dst, false)
	assert.True(errorx.IsOfType(err, FileAlreadyExists))
	assert.True(manager.IsRegularFile(filepath.Join(other, "keep.txt")))

	// a non-empty destination directory is replaced with overwrite
	assert.NoError(manager.Move(other, dst, true))
	assert.Equal("keep", readFile(t, filepath.Join(dst, "keep.txt")))
	_, exists, err := manager.PathExists(filepath.Join(dst, "error.log"))
	assert.NoError(err)
	assert.False(exists)

	err = manager.Move(filepath.Join(tmpDir, "missing"), dst, true)
	assert.True(errorx.IsOfType(err, FileNotFound))
}

func TestUnixManager_MoveFile(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "saved")
	dst := filepath.Join(tmpDir, "config.php")
	writeFile(t, src, "user")
	writeFile(t, dst, "fresh")

	assert.NoError(manager.Move(src, dst, true))
	assert.Equal("user", readFile(t, dst))
	assert.False(manager.IsRegularFile(src))
}

func TestUnixManager_Move_CrossDevice(t *testing.T) {
	var renames []string
	crossDevice := func(oldpath, newpath string) error {
		renames = append(renames, oldpath)
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: unix.EXDEV}
	}

	manager, err := NewManager(WithSyncWrites(false), withRename(crossDevice))
	require.NoError(t, err)

	t.Run("directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "image")
		writeFile(t, filepath.Join(src, "catalog", "logo.png"), "png")
		require.NoError(t, os.Symlink("catalog/logo.png", filepath.Join(src, "logo")))
		require.NoError(t, os.Chmod(filepath.Join(src, "catalog", "logo.png"), 0600))
		require.NoError(t, os.Chmod(filepath.Join(src, "catalog"), 0750))

		dst := filepath.Join(tmpDir, "restored")
		require.NoError(t, manager.Move(src, dst, false))

		_, exists, err := manager.PathExists(src)
		require.NoError(t, err)
		assertions.False(t, exists)
		assertions.Equal(t, "png", readFile(t, filepath.Join(dst, "catalog", "logo.png")))

		perms, err := manager.ReadPermissions(filepath.Join(dst, "catalog"))
		require.NoError(t, err)
		assertions.Equal(t, os.FileMode(0750), perms)
		perms, err = manager.ReadPermissions(filepath.Join(dst, "catalog", "logo.png"))
		require.NoError(t, err)
		assertions.Equal(t, os.FileMode(0600), perms)

		link, err := os.Readlink(filepath.Join(dst, "logo"))
		require.NoError(t, err)
		assertions.Equal(t, "catalog/logo.png", link)
	})

	t.Run("file", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "saved")
		dst := filepath.Join(tmpDir, "config.php")
		writeFile(t, src, "user")
		require.NoError(t, os.Chmod(src, 0640))
		writeFile(t, dst, "fresh")

		require.NoError(t, manager.Move(src, dst, true))

		_, exists, err := manager.PathExists(src)
		require.NoError(t, err)
		assertions.False(t, exists)
		assertions.Equal(t, "user", readFile(t, dst))

		perms, err := manager.ReadPermissions(dst)
		require.NoError(t, err)
		assertions.Equal(t, os.FileMode(0640), perms)
	})

	t.Run("symbolic link", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "shared-image")
		require.NoError(t, os.Mkdir(target, 0755))
		src := filepath.Join(tmpDir, "saved-image")
		require.NoError(t, os.Symlink(target, src))

		dst := filepath.Join(tmpDir, "image")
		require.NoError(t, manager.Move(src, dst, false))

		_, exists, err := manager.PathExists(src)
		require.NoError(t, err)
		assertions.False(t, exists)
		assertions.True(t, manager.IsSymbolicLink(dst))
		link, err := os.Readlink(dst)
		require.NoError(t, err)
		assertions.Equal(t, target, link)

		// the link target is untouched
		assertions.True(t, manager.IsDirectory(target))
	})

	assertions.Len(t, renames, 3)
}

func TestUnixManager_Move_RenameFailure(t *testing.T) {
	manager, err := NewManager(WithSyncWrites(false), withRename(func(string, string) error {
		return &os.LinkError{Op: "rename", Err: unix.EACCES}
	}))
	require.NoError(t, err)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "config.php")
	writeFile(t, src, "x")

	err = manager.Move(src, filepath.Join(tmpDir, "moved.php"), false)
	assertions.True(t, errorx.IsOfType(err, FileSystemError))
	// nothing is copied when the failure is not a device mismatch
	assertions.Equal(t, "x", readFile(t, src))
	assertions.False(t, manager.IsRegularFile(filepath.Join(tmpDir, "moved.php")))
}

func TestUnixManager_WritePermissions_FollowsSymbolicLink(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "shared-image")
	require.NoError(t, os.Mkdir(target, 0700))
	require.NoError(t, os.Chmod(target, 0700))
	link := filepath.Join(tmpDir, "image")
	require.NoError(t, os.Symlink(target, link))

	assert.NoError(manager.WritePermissions(link, 0755, false))

	perms, err := manager.ReadPermissions(target)
	assert.NoError(err)
	assert.Equal(os.FileMode(0755), perms)
	perms, err = manager.ReadPermissions(link)
	assert.NoError(err)
	assert.Equal(os.FileMode(0755), perms)
	assert.True(manager.IsSymbolicLink(link))
}

func TestUnixManager_Permissions(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	dir := filepath.Join(tmpDir, "cache")
	child := filepath.Join(dir, "entry")
	writeFile(t, child, "x")
	require.NoError(t, os.Chmod(child, 0600))

	assert.NoError(manager.WritePermissions(dir, 0750, false))
	perms, err := manager.ReadPermissions(dir)
	assert.NoError(err)
	assert.Equal(os.FileMode(0750), perms)

	// non-recursive chmod leaves the contents alone
	perms, err = manager.ReadPermissions(child)
	assert.NoError(err)
	assert.Equal(os.FileMode(0600), perms)

	assert.NoError(manager.WritePermissions(dir, 0755, true))
	perms, err = manager.ReadPermissions(child)
	assert.NoError(err)
	assert.Equal(os.FileMode(0755), perms)

	err = manager.WritePermissions(filepath.Join(tmpDir, "missing"), 0644, false)
	assert.True(errorx.IsOfType(err, PermissionChangeError))

	_, err = manager.ReadPermissions(filepath.Join(tmpDir, "missing"))
	assert.True(errorx.IsOfType(err, FileSystemError))
}

func TestUnixManager_RemoveAll(t *testing.T) {
	assert, manager := setupTest(t)
	tmpDir := t.TempDir()

	dir := filepath.Join(tmpDir, "image")
	writeFile(t, filepath.Join(dir, "cache", "x.png"), "x")

	assert.NoError(manager.RemoveAll(dir))
	assert.False(manager.IsDirectory(dir))

	// removing a missing path is not an error
	assert.NoError(manager.RemoveAll(dir))
}
