package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Recents {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "nested", "recents.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return r
}

func TestRecents_Empty(t *testing.T) {
	r := openTest(t)
	last, err := r.Last(context.Background())
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last != "" {
		t.Errorf("Last() = %q, want empty", last)
	}
}

func TestRecents_RememberAndList(t *testing.T) {
	ctx := context.Background()
	r := openTest(t)

	for _, title := range []string{"Dune", "Emma", "  ", "dune"} {
		if err := r.Remember(ctx, title); err != nil {
			t.Fatalf("Remember(%q) error = %v", title, err)
		}
	}

	last, err := r.Last(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if last != "dune" {
		t.Errorf("Last() = %q, want latest casing %q", last, "dune")
	}

	list, err := r.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %d entries, want 2 (case-insensitive dedup, blank skipped)", len(list))
	}
	if list[0].Title != "dune" || list[1].Title != "Emma" {
		t.Errorf("List() order = [%s %s], want [dune Emma]", list[0].Title, list[1].Title)
	}
	if !list[0].SubmittedAt.After(list[1].SubmittedAt) {
		t.Error("timestamps not descending")
	}

	one, err := r.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 {
		t.Errorf("List(1) = %d entries", len(one))
	}
}

func TestRecents_Prunes(t *testing.T) {
	ctx := context.Background()
	r := openTest(t)
	r.keep = 3

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		if err := r.Remember(ctx, title); err != nil {
			t.Fatal(err)
		}
	}
	list, err := r.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].Title != "e" || list[2].Title != "c" {
		t.Errorf("List() after prune = %+v", list)
	}
}

func TestRecents_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recents.db")

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Remember(ctx, "Middlemarch"); err != nil {
		t.Fatal(err)
	}
	r.Close()

	r, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if last, _ := r.Last(ctx); last != "Middlemarch" {
		t.Errorf("Last() after reopen = %q", last)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", "vibary", "recents.db") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
