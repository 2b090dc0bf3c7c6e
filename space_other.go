//go:build !unix && !windows

package cloudzcrypt

// Free space is unknown on platforms without a statfs equivalent; the
// preflight check is skipped there.
func osFreeSpace(path string) (uint64, bool) {
	return 0, false
}
