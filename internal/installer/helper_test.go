// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencart-tools/ocinstaller/pkg/fsx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mgr       Manager
	root      string
	stashRoot string
	logs      *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "shop")
	stashRoot := filepath.Join(base, "tmp")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.MkdirAll(stashRoot, 0755))

	fm, err := fsx.NewManager(fsx.WithSyncWrites(false))
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)

	all := append([]Option{
		WithFileSystemManager(fm),
		WithLogger(&logger),
		WithTempRoot(stashRoot),
	}, opts...)

	mgr, err := NewManager(all...)
	require.NoError(t, err)

	return &fixture{mgr: mgr, root: root, stashRoot: stashRoot, logs: logs}
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(t *testing.T, rel string, content string) {
	t.Helper()
	p := f.path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func (f *fixture) mkdir(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(f.path(rel), 0755))
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	b, err := os.ReadFile(f.path(rel))
	require.NoError(t, err)
	return string(b)
}

func (f *fixture) exists(rel string) bool {
	_, err := os.Lstat(f.path(rel))
	return err == nil
}

func (f *fixture) mode(t *testing.T, rel string) os.FileMode {
	t.Helper()
	fi, err := os.Lstat(f.path(rel))
	require.NoError(t, err)
	return fi.Mode().Perm()
}

// tree lists every entry under the install root, relative and slash separated, in walk order.
func (f *fixture) tree(t *testing.T) []string {
	t.Helper()
	var entries []string
	err := filepath.WalkDir(f.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == f.root {
			return nil
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return entries
}
