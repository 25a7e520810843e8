// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

// MustChdir changes the current working directory to dir and restores the
// original directory when the test ends.
// The test fails immediately if the directory change fails.
func MustChdir(t testing.TB, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("failed to restore directory to %s: %v", originalWd, err)
		}
	})
}

// SetHomeDir points the platform home directory variable at dir for the
// rest of the test:
//   - Windows: USERPROFILE, with APPDATA cleared
//   - Linux/macOS: HOME, with XDG_CONFIG_HOME cleared
func SetHomeDir(t *testing.T, dir string) {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
		t.Setenv("APPDATA", "")
	default:
		t.Setenv("HOME", dir)
		t.Setenv("XDG_CONFIG_HOME", "")
	}
}
