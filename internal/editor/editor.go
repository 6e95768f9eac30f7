// Package editor provides utilities for interactive editing with $EDITOR.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	internalstrings "github.com/amonks/kanban/internal/strings"
	"golang.org/x/term"
)

// ErrNoCommand is returned when the editor command is blank.
var ErrNoCommand = errors.New("no editor command")

// ErrNotInteractive is returned when no editor is configured and stdin is
// not a terminal, so the vi fallback would have nothing to talk to.
var ErrNotInteractive = errors.New("stdin is not a terminal; set $EDITOR or [editor] command")

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Editor runs an external program to edit text.
type Editor struct {
	// Command is the program to run, optionally with arguments. When empty,
	// $EDITOR is used, then vi.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive reports whether a person is at the terminal. Nil means yes.
	Interactive func() bool
}

// New returns an editor for command that is attached to the process's stdio.
func New(command string) *Editor {
	return &Editor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,

		Interactive: IsInteractive,
	}
}

// ResolveCommand returns the command line that will be run.
func (e *Editor) ResolveCommand() string {
	if command := strings.TrimSpace(e.Command); command != "" {
		return command
	}
	if env := strings.TrimSpace(os.Getenv("EDITOR")); env != "" {
		return env
	}
	return fallbackCommand
}

const fallbackCommand = "vi"

func (e *Editor) configured() bool {
	return strings.TrimSpace(e.Command) != "" || strings.TrimSpace(os.Getenv("EDITOR")) != ""
}

// Edit opens the given file in the editor and waits for it to exit.
// Returns nil if the editor exits with status 0, otherwise returns an error.
func (e *Editor) Edit(path string) error {
	parts := strings.Fields(e.ResolveCommand())
	if len(parts) == 0 {
		return ErrNoCommand
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}

// EditText writes text to a temporary file, opens it in the editor, and
// returns the saved contents without trailing whitespace.
func (e *Editor) EditText(text string) (string, error) {
	if !e.configured() && e.Interactive != nil && !e.Interactive() {
		return "", ErrNotInteractive
	}

	file, err := os.CreateTemp("", "kanban-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	_, err = file.WriteString(text + "\n")
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := e.Edit(path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	return internalstrings.TrimTrailingWhitespace(string(edited)), nil
}
