package cloudzcrypt

// SpaceChecker reports the free space available for writing at a path.
// The second return value is false when free space cannot be determined;
// callers treat that as "skip the check" rather than a failure.
type SpaceChecker interface {
	FreeSpace(path string) (uint64, bool)
}

// OSSpaceChecker queries the operating system for the free space on the
// volume containing a path. Paths that do not exist yet are resolved by
// walking up to the nearest existing parent directory.
type OSSpaceChecker struct{}

// FreeSpace returns the available bytes on the volume holding path
func (OSSpaceChecker) FreeSpace(path string) (uint64, bool) {
	return osFreeSpace(path)
}
