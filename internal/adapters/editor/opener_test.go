package editor

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func fakeOpener(env map[string]string, installed ...string) *Opener {
	return &Opener{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, i := range installed {
				if i == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "editor with flags",
			env:      map[string]string{"EDITOR": "code --wait"},
			wantArgs: []string{"code", "--wait", "/tmp/x.md"},
		},
		{
			name:     "visual fallback",
			env:      map[string]string{"VISUAL": "hx"},
			wantArgs: []string{"hx", "/tmp/x.md"},
		},
		{
			name:      "installed editor",
			installed: []string{"nano"},
			wantArgs:  []string{"/usr/bin/nano", "/tmp/x.md"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fakeOpener(tt.env, tt.installed...)
			cmd, err := o.Command("/tmp/x.md")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if o.Available() == tt.wantErr {
				t.Errorf("Available() = %v", o.Available())
			}
			if tt.wantErr {
				return
			}
			if strings.Join(cmd.Args, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestDraft(t *testing.T) {
	path, err := NewDraft("make chapter two *louder*")
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	defer os.Remove(path)

	got, err := ReadDraft(path)
	if err != nil {
		t.Fatalf("ReadDraft() error = %v", err)
	}
	if got != "make chapter two *louder*" {
		t.Errorf("ReadDraft() = %q", got)
	}

	if err := os.WriteFile(path, []byte("# only comments\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, _ := ReadDraft(path); got != "" {
		t.Errorf("ReadDraft() of comments = %q, want empty", got)
	}
}
