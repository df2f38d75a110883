package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vibary/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// Command returns an exec.Cmd for editing path.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if len(editor) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	args := append(editor[1:], path)
	cmd := exec.Command(editor[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// Available reports whether an editor could be found
func (o *Opener) Available() bool {
	return len(o.findEditor()) > 0
}

// findEditor returns the editor command line to use
func (o *Opener) findEditor() []string {
	// Check $EDITOR first
	if editor := strings.Fields(o.getenv("EDITOR")); len(editor) > 0 {
		return editor
	}

	// Check $VISUAL
	if visual := strings.Fields(o.getenv("VISUAL")); len(visual) > 0 {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
