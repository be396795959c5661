//go:build windows

package fs

// IsHidden checks if a file is hidden on this platform (Windows).
// Dot-prefixed names are hidden everywhere; the hidden attribute is consulted otherwise.
func IsHidden(fullPath string, name string) bool {
	if IsDotName(name) {
		return true
	}
	if fullPath == "" && name == "" {
		return false
	}

	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	return attrs&fileAttributeHidden != 0
}
