package search

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

// walker enumerates the tree below root breadth-first. Entries come out in
// directory order (os.ReadDir sorts by name), which keeps phase 1 of the
// parallel executor deterministic.
type walker struct {
	root           string
	filter         *Filter
	token          *Token
	followSymlinks bool
	logger         *slog.Logger
	visited        map[uint64]struct{}
}

func newWalker(root string, filter *Filter, opts Options, token *Token, logger *slog.Logger) *walker {
	return &walker{
		root:           root,
		filter:         filter,
		token:          token,
		followSymlinks: opts.FollowSymlinks,
		logger:         logger,
	}
}

// walk calls visit for every entry the filter admits. The root itself is never
// visited. Returning false from visit stops the walk.
func (w *walker) walk(visit func(entry FileEntry) bool) {
	if w.followSymlinks {
		w.visited = make(map[uint64]struct{})
		w.markVisited(w.root)
	}

	queue := []string{w.root}
	for len(queue) > 0 {
		if w.token.Cancelled() {
			return
		}

		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.reportError(dir, err)
			continue
		}

		for _, d := range entries {
			if w.token.Cancelled() {
				return
			}

			fullPath := filepath.Join(dir, d.Name())
			info, err := w.entryInfo(fullPath, d)
			if err != nil {
				w.reportError(fullPath, err)
				continue
			}

			if !w.filter.Include(fullPath, info) {
				continue
			}

			entry := fsutil.NewEntry(fullPath, info)
			entry.IsSymlink = d.Type()&fs.ModeSymlink != 0

			// A directory reached again through a link is still reported but
			// its contents are only walked once.
			if entry.IsDir {
				if w.followSymlinks && !w.markVisited(fullPath) {
					w.logger.Debug("directory already walked", "path", fullPath)
				} else {
					queue = append(queue, fullPath)
				}
			}

			if !visit(entry) {
				return
			}
		}
	}
}

func (w *walker) entryInfo(fullPath string, d fs.DirEntry) (fs.FileInfo, error) {
	if w.followSymlinks && d.Type()&fs.ModeSymlink != 0 {
		return os.Stat(fullPath)
	}
	return d.Info()
}

// markVisited records the real path of dir and reports whether it was new.
func (w *walker) markVisited(dir string) bool {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		real = dir
	}
	key := xxhash.Sum64String(real)
	if _, seen := w.visited[key]; seen {
		return false
	}
	w.visited[key] = struct{}{}
	return true
}

// reportError drops permission errors silently and logs everything else.
func (w *walker) reportError(path string, err error) {
	if errors.Is(err, fs.ErrPermission) {
		return
	}
	w.logger.Warn("traversal error", "path", path, "err", err)
}
