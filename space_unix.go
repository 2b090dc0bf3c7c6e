//go:build unix

package cloudzcrypt

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func osFreeSpace(path string) (uint64, bool) {
	dir := nearestExistingDir(path)
	if dir == "" {
		return 0, false
	}
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, false
	}
	return st.Bavail * uint64(st.Bsize), true
}

// nearestExistingDir walks up from path until it finds a directory that
// exists, so preflight works for destinations that have not been created yet.
func nearestExistingDir(path string) string {
	dir := path
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
