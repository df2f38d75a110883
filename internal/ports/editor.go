package ports

import "os/exec"

// EditorOpener opens a scratch file in the user's editor so long
// refinement instructions can be composed outside the single-line prompt
type EditorOpener interface {
	// Command returns an exec.Cmd for editing path, suitable for tea.ExecProcess
	Command(path string) (*exec.Cmd, error)

	// Available reports whether an editor could be found
	Available() bool
}
