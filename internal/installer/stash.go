// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/joomcode/errorx"
)

// Stash maps live paths to their saved copies under a shared temporary root.
//
// The saved copy of a path lives at <root>/<md5 hex of the absolute path>. The mapping is deterministic, which lets a
// later process find what an earlier one saved without any extra bookkeeping.
type Stash struct {
	root string
}

// NewStash returns a Stash rooted at root. An empty root selects the system temporary directory.
func NewStash(root string) (*Stash, error) {
	if root == "" {
		root = os.TempDir()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errorx.IllegalArgument.Wrap(err, "failed to resolve stash root %q", root)
	}

	return &Stash{root: abs}, nil
}

// Root returns the absolute stash root.
func (s *Stash) Root() string {
	return s.root
}

// Key returns the stash key for an absolute path.
func (s *Stash) Key(path string) string {
	sum := md5.Sum([]byte(filepath.Clean(path)))
	return hex.EncodeToString(sum[:])
}

// PathFor returns where the saved copy of path lives.
func (s *Stash) PathFor(path string) string {
	return filepath.Join(s.root, s.Key(path))
}
