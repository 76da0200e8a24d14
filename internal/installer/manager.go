// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"io/fs"

	"github.com/google/uuid"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/pkg/fsx"
	"github.com/rs/zerolog"
)

// Record describes a preserved target and where its saved copy lives.
type Record struct {
	Entry   string `yaml:"entry" json:"entry"`
	Target  string `yaml:"target" json:"target"`
	Stashed string `yaml:"stashed" json:"stashed"`
	IsDir   bool   `yaml:"isDir" json:"isDir"`
}

// PermissionChange describes a chmod applied to a target.
type PermissionChange struct {
	Entry    string      `yaml:"entry" json:"entry"`
	Path     string      `yaml:"path" json:"path"`
	Previous fs.FileMode `yaml:"previous" json:"previous"`
	Perms    fs.FileMode `yaml:"perms" json:"perms"`
	IsDir    bool        `yaml:"isDir" json:"isDir"`
}

// Manager prepares an OpenCart installation tree for use and carries site state across re-installs.
//
// All operations take the install path as given by the caller. Trailing separators are ignored. Missing targets are
// logged and skipped; anything else that goes wrong on the filesystem aborts the operation with an error.
type Manager interface {
	// RotateInstalledFiles collapses a single wrapper directory left behind by archive extraction into the install
	// root. It returns true when the tree was rotated.
	RotateInstalledFiles(installPath string) (bool, error)
	// SaveModifiedFiles copies every existing preserved target into the stash.
	SaveModifiedFiles(installPath string) ([]Record, error)
	// RestoreModifiedFiles moves every saved copy back over its live path, replacing what is there.
	RestoreModifiedFiles(installPath string) ([]Record, error)
	// SetPermissions applies basePerms to each chmod target, adding the execute bits on directories.
	SetPermissions(installPath string, basePerms fs.FileMode) ([]PermissionChange, error)
	// CopyConfigFiles materializes <base>.php from <base>-dist.php for each config template, overwriting.
	CopyConfigFiles(installPath string) ([]string, error)
	// InspectSaved lists the preserved targets which currently have a saved copy.
	InspectSaved(installPath string) ([]Record, error)
	// PurgeSaved removes the saved copies of every preserved target.
	PurgeSaved(installPath string) ([]Record, error)
	// Stash returns the stash used to store saved copies.
	Stash() *Stash
}

type manager struct {
	logger          *zerolog.Logger
	fm              fsx.Manager
	stash           *Stash
	chmodTargets    []string
	preserved       []string
	configTemplates []string
	newToken        func() string
}

type Option func(*manager) error

func WithFileSystemManager(fm fsx.Manager) Option {
	return func(m *manager) error {
		if fm == nil {
			return errorx.IllegalArgument.New("file system manager cannot be nil")
		}
		m.fm = fm
		return nil
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(m *manager) error {
		if logger == nil {
			return errorx.IllegalArgument.New("logger cannot be nil")
		}
		m.logger = logger
		return nil
	}
}

func WithStash(stash *Stash) Option {
	return func(m *manager) error {
		if stash == nil {
			return errorx.IllegalArgument.New("stash cannot be nil")
		}
		m.stash = stash
		return nil
	}
}

// WithTempRoot is a shorthand for WithStash(NewStash(root)).
func WithTempRoot(root string) Option {
	return func(m *manager) error {
		stash, err := NewStash(root)
		if err != nil {
			return err
		}
		m.stash = stash
		return nil
	}
}

func WithChmodTargets(targets []string) Option {
	return func(m *manager) error {
		if err := ValidateTargets("chmod target", targets); err != nil {
			return err
		}
		m.chmodTargets = append([]string(nil), targets...)
		return nil
	}
}

func WithPreservedTargets(targets []string) Option {
	return func(m *manager) error {
		if err := ValidateTargets("preserved target", targets); err != nil {
			return err
		}
		m.preserved = append([]string(nil), targets...)
		return nil
	}
}

func WithConfigTemplates(templates []string) Option {
	return func(m *manager) error {
		if err := ValidateTargets("config template", templates); err != nil {
			return err
		}
		m.configTemplates = append([]string(nil), templates...)
		return nil
	}
}

// WithTokenGenerator overrides how the unique suffix of the rotation scratch directory is generated.
func WithTokenGenerator(gen func() string) Option {
	return func(m *manager) error {
		if gen == nil {
			return errorx.IllegalArgument.New("token generator cannot be nil")
		}
		m.newToken = gen
		return nil
	}
}

// NewManager creates an installer Manager. Without options it works on the real filesystem, uses the system
// temporary directory as stash root and the stock OpenCart target lists.
func NewManager(opts ...Option) (Manager, error) {
	nop := zerolog.Nop()
	m := &manager{
		logger:          &nop,
		chmodTargets:    DefaultChmodTargets(),
		preserved:       DefaultPreservedTargets(),
		configTemplates: DefaultConfigTemplates(),
		newToken:        uuid.NewString,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.fm == nil {
		fm, err := fsx.NewManager()
		if err != nil {
			return nil, errorx.InternalError.Wrap(err, "failed to create file system manager for installer")
		}
		m.fm = fm
	}

	if m.stash == nil {
		stash, err := NewStash("")
		if err != nil {
			return nil, err
		}
		m.stash = stash
	}

	return m, nil
}

func (m *manager) Stash() *Stash {
	return m.stash
}
