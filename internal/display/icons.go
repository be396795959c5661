package display

import (
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/ff/internal/search"
)

const (
	directoryIcon   = "📁"
	defaultFileIcon = "📄"
)

// fileIcons maps a lower-case extension without the dot to its icon.
var fileIcons = map[string]string{
	// programming
	"rs":    "🦀",
	"js":    "📜",
	"ts":    "📜",
	"py":    "🐍",
	"java":  "☕",
	"cpp":   "💠",
	"cxx":   "💠",
	"cc":    "💠",
	"c":     "🔵",
	"h":     "📘",
	"hpp":   "📘",
	"go":    "🐹",
	"rb":    "💎",
	"php":   "🐘",
	"sh":    "🐚",
	"bash":  "🐚",
	"swift": "🍎",
	"kt":    "🤖",
	"kts":   "🤖",
	"cs":    "🎯",

	// data and config
	"json": "📋",
	"yaml": "⚙️",
	"yml":  "⚙️",
	"toml": "🛠️",
	"ini":  "📑",
	"csv":  "📊",
	"xml":  "🗂️",

	// documents
	"md":   "📝",
	"txt":  "📄",
	"html": "🌐",
	"htm":  "🌐",
	"css":  "🎨",
	"pdf":  "📕",

	// media
	"png":  "🖼️",
	"jpg":  "🖼️",
	"jpeg": "🖼️",
	"gif":  "🖼️",
	"bmp":  "🖼️",
	"svg":  "🖼️",
	"ico":  "🔖",
	"mp4":  "🎬",
	"mkv":  "🎬",
	"avi":  "🎬",
	"mov":  "🎬",
	"webm": "🎬",
	"mp3":  "🎵",
	"wav":  "🎵",
	"flac": "🎵",
	"ogg":  "🎵",
	"m4a":  "🎵",

	// archives and binaries
	"zip":  "📦",
	"tar":  "📦",
	"gz":   "📦",
	"bz2":  "📦",
	"xz":   "📦",
	"7z":   "📦",
	"exe":  "⚙️",
	"bin":  "⚙️",
	"dll":  "⚙️",
	"lock": "🔒",
	"log":  "📜",
}

// Icon returns the category icon for a result.
func Icon(result search.SearchResult) string {
	if result.Entry.IsDir {
		return directoryIcon
	}
	return IconForName(result.Entry.Name)
}

// IconForName looks up the icon for a file name by extension.
func IconForName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if icon, ok := fileIcons[ext]; ok {
		return icon
	}
	return defaultFileIcon
}
