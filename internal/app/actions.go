package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrClipboardUnavailable = errors.New("no clipboard command found")
	ErrNoTerminal           = errors.New("no terminal emulator could be started")
)

// Actions are the side effects available for a selected result.
type Actions interface {
	CopyToClipboard(text string) error
	OpenShellAt(path string) error
}

// systemActions shells out to platform tools. The function fields are
// replaced in tests.
type systemActions struct {
	goos     string
	lookPath lookPathFunc
	run      func(args []string, stdin string) error
	start    func(args []string) error
	stat     func(string) (os.FileInfo, error)
}

// NewActions returns the Actions implementation for goos.
func NewActions(goos string) Actions {
	return &systemActions{
		goos:     goos,
		lookPath: exec.LookPath,
		run:      runWithInput,
		start:    startDetached,
		stat:     os.Stat,
	}
}

func (a *systemActions) CopyToClipboard(text string) error {
	cmd, ok := detectClipboardInternal(a.goos, a.lookPath)
	if !ok {
		return ErrClipboardUnavailable
	}
	if err := a.run(cmd, normalizeClipboardPath(text, a.goos)); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(cmd[0]), err)
	}
	return nil
}

// OpenShellAt opens a terminal window in path, or in its parent directory
// when path is a file.
func (a *systemActions) OpenShellAt(path string) error {
	dir := a.targetDir(path)

	var errs []error
	for _, candidate := range terminalCandidates(a.goos, dir) {
		resolved, err := a.lookPath(candidate[0])
		if err != nil || resolved == "" {
			continue
		}
		args := append([]string{resolved}, candidate[1:]...)
		if err := a.start(args); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", candidate[0], err))
			continue
		}
		return nil
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNoTerminal}, errs...)...)
	}
	return ErrNoTerminal
}

func (a *systemActions) targetDir(path string) string {
	return targetDirWith(a.stat, path)
}

// TargetDir is the directory OpenShellAt opens for path.
func TargetDir(path string) string {
	return targetDirWith(os.Stat, path)
}

func targetDirWith(stat func(string) (os.FileInfo, error), path string) string {
	if info, err := stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func runWithInput(args []string, stdin string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

func startDetached(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
