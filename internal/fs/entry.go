package fs

import (
	iofs "io/fs"
	"os"
	"time"
)

// Entry represents a single file or directory discovered during traversal.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// NewEntry builds an Entry from a path and the metadata read for it.
// Size is only recorded for regular files.
func NewEntry(fullPath string, info iofs.FileInfo) Entry {
	entry := Entry{
		Name:      info.Name(),
		FullPath:  fullPath,
		IsDir:     info.IsDir(),
		IsSymlink: info.Mode()&os.ModeSymlink != 0,
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}
	if info.Mode().IsRegular() {
		entry.Size = info.Size()
	}
	return entry
}

// IsDotName reports whether name follows the Unix hidden-name convention.
// A lone "." is the current directory, not a hidden entry.
func IsDotName(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
