package browser

import (
	"os/exec"
	"strings"
	"testing"
)

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "simple path",
			path: "/home/reader/dune_vibary.html",
			want: "file:///home/reader/dune_vibary.html",
		},
		{
			name: "path with spaces",
			path: "/home/reader/My Books/moby_dick_vibary.html",
			want: "file:///home/reader/My%20Books/moby_dick_vibary.html",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURI(tt.path)
			if err != nil {
				t.Fatalf("BuildURI() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpener_Open(t *testing.T) {
	tests := []struct {
		goos     string
		wantBin  string
		wantFail bool
	}{
		{goos: "darwin", wantBin: "open"},
		{goos: "linux", wantBin: "xdg-open"},
		{goos: "windows", wantBin: "cmd"},
		{goos: "plan9", wantFail: true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var ran *exec.Cmd
			o := &Opener{goos: tt.goos, run: func(c *exec.Cmd) error { ran = c; return nil }}

			err := o.Open("/tmp/book_vibary.html")
			if (err != nil) != tt.wantFail {
				t.Fatalf("Open() error = %v, wantFail %v", err, tt.wantFail)
			}
			if tt.wantFail {
				return
			}
			if ran == nil || ran.Args[0] != tt.wantBin {
				t.Fatalf("ran %v, want %s", ran, tt.wantBin)
			}
			if last := ran.Args[len(ran.Args)-1]; !strings.HasPrefix(last, "file://") {
				t.Errorf("uri = %q", last)
			}
		})
	}
}
