//go:build windows

package cloudzcrypt

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func osFreeSpace(path string) (uint64, bool) {
	dir := nearestExistingDir(path)
	if dir == "" {
		return 0, false
	}
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, false
	}
	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(p, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return 0, false
	}
	return freeBytesAvailable, true
}

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
