// SPDX-License-Identifier: Apache-2.0

package plock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joomcode/errorx"
)

const IdentifierSeparator = ":"

// Info defines the data model to describe a plock
// Primary purpose of this is to have a serializable data model of the plock
type Info struct {
	Name         string     `yaml:"name" json:"name"`
	PID          int        `yaml:"pid" json:"pid"`
	WorkDir      string     `yaml:"workDir" json:"workDir"`
	LockFilePath string     `yaml:"lockFilePath" json:"lockFilePath"`
	ActivatedAt  *time.Time `yaml:"activatedAt,omitempty" json:"activatedAt,omitempty"`
}

// String returns string representation of the Info
// The representation is formatted to be self-descriptive with format as below:
// {name}:{PID}:{ActivatedAt}:{lockFilePath}
func (pli *Info) String() string {
	activatedAt := "-"
	if pli.ActivatedAt != nil {
		activatedAt = pli.ActivatedAt.Format(time.RFC3339)
	}

	return strings.Join([]string{
		pli.Name,
		strconv.Itoa(pli.PID),
		activatedAt,
		pli.LockFilePath,
	}, IdentifierSeparator)
}

// ReadInfo reads the pid recorded in a lock file. A lock file without a pid yields PID 0.
func ReadInfo(lockFilePath string) (*Info, error) {
	b, err := os.ReadFile(lockFilePath)
	if err != nil {
		return nil, LockFailure.Wrap(err, "failed to read lock file %q", lockFilePath)
	}

	info := &Info{
		Name:         strings.TrimSuffix(filepath.Base(lockFilePath), lockFileExt),
		WorkDir:      filepath.Dir(lockFilePath),
		LockFilePath: lockFilePath,
	}

	s := strings.TrimSpace(string(b))
	if s == "" {
		return info, nil
	}

	pid, err := strconv.Atoi(s)
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "lock file %q does not contain a pid", lockFilePath)
	}
	info.PID = pid

	return info, nil
}
