// Package browser opens exported artifacts with the system viewer.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"

	"vibary/internal/ports"
)

// Opener implements ports.ArtifactOpener
type Opener struct {
	goos string
	run  func(*exec.Cmd) error
}

// Ensure Opener implements ArtifactOpener
var _ ports.ArtifactOpener = (*Opener)(nil)

// NewOpener creates an opener for the running platform
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run:  func(c *exec.Cmd) error { return c.Start() },
	}
}

// Open shows the file at path in the default browser
func (o *Opener) Open(path string) error {
	uri, err := BuildURI(path)
	if err != nil {
		return err
	}
	cmd, err := o.command(uri)
	if err != nil {
		return err
	}
	return o.run(cmd)
}

// BuildURI constructs the file:// URI for path
func BuildURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if filepath.VolumeName(abs) != "" {
		// Windows drive paths need a leading slash
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

func (o *Opener) command(uri string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.Command("open", uri), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", uri), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", uri), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
