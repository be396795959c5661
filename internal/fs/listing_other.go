//go:build !windows

package fs

// ShouldHideFromListing never hides entries outside Windows; dot names are
// handled by the hidden-entry policy instead.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
