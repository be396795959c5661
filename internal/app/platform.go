package app

import (
	"path"
	"path/filepath"
	"strings"
)

type lookPathFunc func(string) (string, error)

func detectClipboardInternal(goos string, lookPath lookPathFunc) ([]string, bool) {
	trySingle := func(candidates ...string) ([]string, bool) {
		for _, candidate := range candidates {
			if resolved, err := lookPath(candidate); err == nil && resolved != "" {
				return []string{resolved}, true
			}
		}
		return nil, false
	}

	if strings.EqualFold(goos, "windows") {
		if cmd, ok := trySingle("clip.exe", "clip"); ok {
			return cmd, true
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if resolved, err := lookPath(ps); err == nil && resolved != "" {
				return []string{resolved, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	if strings.EqualFold(goos, "darwin") {
		if cmd, ok := trySingle("pbcopy"); ok {
			return cmd, true
		}
	}

	if resolved, err := lookPath("wl-copy"); err == nil && resolved != "" {
		return []string{resolved}, true
	}
	if resolved, err := lookPath("xclip"); err == nil && resolved != "" {
		return []string{resolved, "-selection", "clipboard"}, true
	}
	if resolved, err := lookPath("xsel"); err == nil && resolved != "" {
		return []string{resolved, "--clipboard", "--input"}, true
	}
	return trySingle("pbcopy")
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		return strings.ReplaceAll(filepath.Clean(inputPath), "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

// terminalCandidates lists, in preference order, the commands that open a new
// terminal window in dir on goos.
func terminalCandidates(goos, dir string) [][]string {
	switch strings.ToLower(goos) {
	case "windows":
		return [][]string{
			{"wt", "-d", dir},
			{"cmd", "/C", "start", "/D", dir, "cmd"},
		}
	case "darwin":
		script := `tell application "Terminal" to do script "cd " & quoted form of "` +
			appleScriptEscape(dir) + `" & " && clear"`
		return [][]string{
			{"osascript", "-e", script, "-e", `tell application "Terminal" to activate`},
			{"open", "-a", "Terminal", dir},
		}
	default:
		return [][]string{
			{"gnome-terminal", "--working-directory=" + dir},
			{"konsole", "--workdir", dir},
			{"xfce4-terminal", "--working-directory=" + dir},
			{"alacritty", "--working-directory", dir},
			{"kitty", "--directory", dir},
			{"wezterm", "start", "--cwd", dir},
		}
	}
}

func appleScriptEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
