package search

import (
	"io/fs"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

// shouldHideFromListingFn mirrors fs.ShouldHideFromListing for test overrides.
var shouldHideFromListingFn = fsutil.ShouldHideFromListing

// Filter is the traversal predicate. It is evaluated before a directory is
// descended into, so a rejected directory prunes its whole subtree.
type Filter struct {
	opts          Options
	includeHidden bool
	token         *Token
}

// NewFilter combines the per-call hidden flag with the configured policy.
func NewFilter(opts Options, includeHidden bool, token *Token) *Filter {
	return &Filter{
		opts:          opts,
		includeHidden: includeHidden || opts.IncludeHidden,
		token:         token,
	}
}

// Include reports whether the entry is visible to the search.
func (f *Filter) Include(fullPath string, info fs.FileInfo) bool {
	if f.token.Cancelled() {
		return false
	}

	name := info.Name()
	if shouldHideFromListingFn(fullPath, name) {
		return false
	}

	if !f.includeHidden && fsutil.IsHidden(fullPath, name) {
		return false
	}

	if f.opts.IgnoresDirectory(name) || f.opts.IgnoresFile(name) {
		return false
	}

	if f.opts.MaxFileSizeBytes > 0 && info.Mode().IsRegular() && info.Size() > f.opts.MaxFileSizeBytes {
		return false
	}

	return true
}
