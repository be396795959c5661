//go:build windows

package fs

// ShouldHideFromListing reports whether an entry must never be traversed,
// even when hidden files are included (e.g., Windows compatibility junctions).
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}

	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}

	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
