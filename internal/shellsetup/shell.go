package shellsetup

import (
	"os"
	"path"
	"runtime"
	"strings"
)

// ParentShellFunc reports the executable name of the parent process.
type ParentShellFunc func() string

// DetectShell returns the canonical name of the user's interactive shell:
// bash, zsh, fish, pwsh, cmd and so on.
func DetectShell() string {
	return detectShellInternal(runtime.GOOS, os.Getenv, DetectParentShellName)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell == "cmd" || shell == "pwsh" {
			return shell
		}
		return "pwsh"
	}
	return "bash"
}

// CdCommand renders the command that changes into dir for shell. It is
// printed when no terminal window could be opened.
func CdCommand(shell, dir string) string {
	switch canonicalShellName(normalizeShellName(shell)) {
	case "cmd":
		return `cd /d "` + dir + `"`
	case "pwsh":
		return "Set-Location -LiteralPath '" + strings.ReplaceAll(dir, "'", "''") + "'"
	case "fish":
		return "cd " + singleQuote(dir, `\'`)
	default:
		return "cd " + singleQuote(dir, `'\''`)
	}
}

func singleQuote(s, escapedQuote string) string {
	if !strings.ContainsAny(s, " \t'\"$`\\*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", escapedQuote) + "'"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	case "-bash", "-zsh", "-sh":
		return strings.TrimPrefix(name, "-")
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	return executableBase(value)
}

// executableBase reduces a Unix or Windows executable path to its lower-cased
// name without the .exe suffix.
func executableBase(exe string) string {
	exe = strings.ReplaceAll(strings.Trim(exe, `"'`), "\\", "/")
	base := strings.ToLower(path.Base(exe))
	return strings.TrimSpace(strings.TrimSuffix(base, ".exe"))
}

// extractExecutable strips arguments from a command line, honouring a leading
// quoted path.
func extractExecutable(value string) string {
	if value == "" {
		return ""
	}
	for _, quote := range []string{`"`, `'`} {
		if rest, ok := strings.CutPrefix(value, quote); ok {
			if idx := strings.Index(rest, quote); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
