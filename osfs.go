package cloudzcrypt

import (
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"
)

// OSFS is a minimal absfs.FileSystem over the host operating system,
// rooted at an arbitrary directory ("/" for the whole filesystem). It is
// what the CLI hands to the orchestrator; tests use memfs instead.
type OSFS struct {
	root string
	cwd  string
}

// NewOSFS creates an OS-backed filesystem rooted at root
func NewOSFS(root string) *OSFS {
	return &OSFS{root: root}
}

func (f *OSFS) resolve(name string) string {
	return filepath.Join(f.root, filepath.FromSlash(name))
}

func (f *OSFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	return os.OpenFile(f.resolve(name), flag, perm)
}

func (f *OSFS) Open(name string) (absfs.File, error) {
	return f.OpenFile(name, os.O_RDONLY, 0)
}

func (f *OSFS) Create(name string) (absfs.File, error) {
	return f.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func (f *OSFS) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(f.resolve(name), perm)
}

func (f *OSFS) MkdirAll(name string, perm os.FileMode) error {
	return os.MkdirAll(f.resolve(name), perm)
}

func (f *OSFS) Remove(name string) error {
	return os.Remove(f.resolve(name))
}

func (f *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(f.resolve(path))
}

func (f *OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(f.resolve(oldpath), f.resolve(newpath))
}

func (f *OSFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(f.resolve(name))
}

func (f *OSFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(f.resolve(name), mode)
}

func (f *OSFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(f.resolve(name), atime, mtime)
}

func (f *OSFS) Chown(name string, uid, gid int) error {
	return os.Chown(f.resolve(name), uid, gid)
}

func (f *OSFS) Truncate(name string, size int64) error {
	return os.Truncate(f.resolve(name), size)
}

func (f *OSFS) Separator() uint8 {
	return '/'
}

func (f *OSFS) ListSeparator() uint8 {
	return os.PathListSeparator
}

func (f *OSFS) Chdir(dir string) error {
	f.cwd = dir
	return nil
}

func (f *OSFS) Getwd() (string, error) {
	if f.cwd == "" {
		return "/", nil
	}
	return f.cwd, nil
}

func (f *OSFS) TempDir() string {
	return os.TempDir()
}
