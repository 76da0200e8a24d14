// SPDX-License-Identifier: Apache-2.0

package plock

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
)

const (
	lockFileExt = ".plock"

	// DefaultRetryDelay is how often a blocked TryAcquire polls the lock.
	DefaultRetryDelay = 100 * time.Millisecond
)

var (
	ErrorsNamespace = errorx.NewNamespace("plock")
	LockTimeout     = ErrorsNamespace.NewType("lock_timeout", errorx.Timeout())
	LockFailure     = ErrorsNamespace.NewType("lock_failure")

	lockPathProperty = errorx.RegisterPrintableProperty("lock_path")
)

// Lock is an advisory process lock backed by flock(2) on a file in a work directory.
//
// The lock is released automatically by the kernel when the holding process dies, so there is no stale lock to
// clean up after a crash.
type Lock interface {
	// TryAcquire waits up to timeout for the lock. A zero timeout tries exactly once.
	TryAcquire(ctx context.Context, timeout time.Duration) error
	// Release releases the acquired lock. Releasing a lock that is not held is a no-op.
	Release() error
	// Info returns information about the lock
	Info() *Info
	// IsAcquired returns if the lock is acquired or not
	IsAcquired() bool
}

type plock struct {
	name        string
	path        string
	fl          *flock.Flock
	activatedAt *time.Time
}

// NameFor derives a lock name from a filesystem path so that every caller working on the same path contends for
// the same lock.
func NameFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	sum := md5.Sum([]byte(abs))
	return "oci-" + hex.EncodeToString(sum[:])
}

// NewLock returns a lock named lockName inside workDir. The work directory is created if needed.
func NewLock(lockName string, workDir string) (Lock, error) {
	if lockName == "" || strings.ContainsAny(lockName, `/\`) {
		return nil, errorx.IllegalArgument.New("invalid lock name %q", lockName)
	}

	if workDir == "" {
		workDir = os.TempDir()
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, LockFailure.Wrap(err, "failed to create lock directory %q", workDir)
	}

	path := filepath.Join(workDir, lockName+lockFileExt)
	return &plock{
		name: lockName,
		path: path,
		fl:   flock.New(path),
	}, nil
}

func (pl *plock) TryAcquire(ctx context.Context, timeout time.Duration) error {
	if pl.fl.Locked() {
		return nil
	}

	var (
		ok  bool
		err error
	)

	if timeout <= 0 {
		ok, err = pl.fl.TryLock()
	} else {
		tctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		ok, err = pl.fl.TryLockContext(tctx, DefaultRetryDelay)
	}

	if !ok {
		holder := ""
		if info, rerr := ReadInfo(pl.path); rerr == nil && info.PID > 0 {
			holder = " held by pid " + strconv.Itoa(info.PID)
		}

		e := LockTimeout.New("failed to acquire lock %q within %s%s", pl.path, timeout, holder).
			WithProperty(lockPathProperty, pl.path)
		if err != nil {
			e = e.WithUnderlyingErrors(err)
		}

		return e
	}

	now := time.Now()
	pl.activatedAt = &now

	// the pid is informational, the flock itself is what excludes other processes
	if werr := os.WriteFile(pl.path, []byte(strconv.Itoa(os.Getpid())), 0644); werr != nil {
		_ = pl.fl.Unlock()
		pl.activatedAt = nil
		return LockFailure.Wrap(werr, "failed to record pid in lock file %q", pl.path).
			WithProperty(lockPathProperty, pl.path)
	}

	return nil
}

func (pl *plock) Release() error {
	if !pl.fl.Locked() {
		return nil
	}

	// clear the pid while still holding the lock
	_ = os.Truncate(pl.path, 0)

	if err := pl.fl.Unlock(); err != nil {
		return LockFailure.Wrap(err, "failed to release lock %q", pl.path).
			WithProperty(lockPathProperty, pl.path)
	}

	pl.activatedAt = nil
	return nil
}

func (pl *plock) Info() *Info {
	info := &Info{
		Name:         pl.name,
		WorkDir:      filepath.Dir(pl.path),
		LockFilePath: pl.path,
		ActivatedAt:  pl.activatedAt,
	}

	if pl.fl.Locked() {
		info.PID = os.Getpid()
	}

	return info
}

func (pl *plock) IsAcquired() bool {
	return pl.fl.Locked()
}
