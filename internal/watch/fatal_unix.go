// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatal reports whether an fsnotify error means inotify resources are
// exhausted: the watch limit (ENOSPC) or a file descriptor limit
// (EMFILE, ENFILE).
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
