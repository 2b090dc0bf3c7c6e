package cloudzcrypt

import (
	"sort"
	"strings"

	"github.com/absfs/absfs"
)

// walkEntry is one regular file found during enumeration
type walkEntry struct {
	relPath string // relative to the walk root, separator-joined
	size    int64
}

// walkFiles lists all regular files under root, recursively, with paths
// relative to root. Entries are sorted within each directory so enumeration
// order is stable across runs.
func walkFiles(fsys absfs.FileSystem, root string) ([]walkEntry, error) {
	sep := string(fsys.Separator())
	var entries []walkEntry
	if err := walkDir(fsys, root, "", sep, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func walkDir(fsys absfs.FileSystem, root, rel, sep string, entries *[]walkEntry) error {
	dir := root
	if rel != "" {
		dir = joinPath(sep, root, rel)
	}

	f, err := fsys.Open(dir)
	if err != nil {
		return err
	}
	infos, err := f.Readdir(-1)
	f.Close()
	if err != nil {
		return err
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, info := range infos {
		childRel := info.Name()
		if rel != "" {
			childRel = joinPath(sep, rel, info.Name())
		}
		if info.IsDir() {
			if err := walkDir(fsys, root, childRel, sep, entries); err != nil {
				return err
			}
			continue
		}
		*entries = append(*entries, walkEntry{relPath: childRel, size: info.Size()})
	}
	return nil
}

// joinPath joins path elements with the filesystem separator, collapsing
// duplicate separators at the seams.
func joinPath(sep string, elems ...string) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		if t := strings.Trim(e, sep); t != "" {
			parts = append(parts, t)
		}
	}
	joined := strings.Join(parts, sep)
	if len(elems) > 0 && strings.HasPrefix(elems[0], sep) {
		return sep + joined
	}
	return joined
}

// dirOf returns the parent of a separator-joined path, or "" at the root
func dirOf(path, sep string) string {
	trimmed := strings.TrimRight(path, sep)
	idx := strings.LastIndex(trimmed, sep)
	if idx < 0 {
		return ""
	}
	if idx == 0 {
		return sep
	}
	return trimmed[:idx]
}

// splitSegments splits a relative path into its segments
func splitSegments(rel, sep string) []string {
	return strings.Split(strings.Trim(rel, sep), sep)
}
