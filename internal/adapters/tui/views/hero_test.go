package views

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vibary/internal/adapters/tui/i18n"
	"vibary/internal/application"
	"vibary/internal/domain"
)

func newHero() *HeroModel {
	m := NewHeroModel(i18n.Default())
	m.SetSize(80, 24)
	return m
}

func TestHero_SubmitTitle(t *testing.T) {
	m := newHero()
	m.Update(keyMsg("Dune"))
	_, cmd := m.Update(keyMsg("enter"))

	msg, ok := run(cmd).(SubmitTitleMsg)
	if !ok {
		t.Fatalf("expected SubmitTitleMsg, got %T", run(cmd))
	}
	if msg.Title != "Dune" {
		t.Errorf("Title = %q, want %q", msg.Title, "Dune")
	}
}

func TestHero_SubmitFile(t *testing.T) {
	m := newHero()
	m.Update(keyMsg("tab"))
	m.Update(keyMsg("/tmp/book.pdf"))
	_, cmd := m.Update(keyMsg("enter"))

	msg, ok := run(cmd).(SubmitFileMsg)
	if !ok {
		t.Fatalf("expected SubmitFileMsg, got %T", run(cmd))
	}
	if msg.Path != "/tmp/book.pdf" {
		t.Errorf("Path = %q, want %q", msg.Path, "/tmp/book.pdf")
	}
}

func TestHero_EmptySubmitIsIgnored(t *testing.T) {
	m := newHero()
	if _, cmd := m.Update(keyMsg("enter")); cmd != nil {
		t.Errorf("expected no command for an empty title, got %T", run(cmd))
	}
}

func TestHero_IgnoresInputWhileWorking(t *testing.T) {
	m := newHero()
	if cmd := m.SetState(domain.StateCheckingKnowledge, nil); cmd == nil {
		t.Error("expected a spinner tick when work starts")
	}
	m.Update(keyMsg("Dune"))
	if got := m.form.Value(fieldTitle); got != "" {
		t.Errorf("title = %q while working, want empty", got)
	}
	if !strings.Contains(m.View(), i18n.Default().LoadingConsult) {
		t.Error("expected the consulting text while checking a title")
	}

	m.SetState(domain.StateAnalyzing, nil)
	if !strings.Contains(m.View(), i18n.Default().LoadingDirect) {
		t.Error("expected the directing text while analyzing")
	}
}

func TestHero_Prefill(t *testing.T) {
	m := newHero()
	m.Prefill("Dune")
	if got := m.form.Value(fieldTitle); got != "Dune" {
		t.Errorf("Prefill set %q, want %q", got, "Dune")
	}

	m.form.SetValue(fieldTitle, "Emma")
	m.Prefill("Dune")
	if got := m.form.Value(fieldTitle); got != "Emma" {
		t.Errorf("Prefill overwrote typed title: %q", got)
	}
}

func TestHero_Describe(t *testing.T) {
	text := i18n.Default()
	m := NewHeroModel(text)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not recognized", application.ErrNotRecognized, text.NotRecognized},
		{"timeout", &application.TimeoutError{Op: "check title"}, "took too long"},
		{"validation", &application.ValidationError{Field: "title", Message: "title is required"}, "title is required"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.describe(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("describe() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestHero_ShowsFailure(t *testing.T) {
	m := newHero()
	m.SetState(domain.StateError, application.ErrNotRecognized)
	if !strings.Contains(m.View(), i18n.Default().NotRecognized) {
		t.Error("expected the not recognized message in the error state")
	}
}

func TestInputForm_Value(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	form := NewInputForm(
		NewInputField("title", "", 0),
		NewPathField("file", ""),
	)

	tests := []struct {
		name  string
		field int
		value string
		want  string
	}{
		{"title is trimmed", 0, "  Dune  ", "Dune"},
		{"title keeps tilde", 0, "~Dune", "~Dune"},
		{"path expands home", 1, "~/books/dune.pdf", filepath.Join(home, "books/dune.pdf")},
		{"absolute path unchanged", 1, "/srv/dune.pdf", "/srv/dune.pdf"},
		{"other users untouched", 1, "~bob/dune.pdf", "~bob/dune.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form.SetValue(tt.field, tt.value)
			if got := form.Value(tt.field); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputForm_TabCyclesFocus(t *testing.T) {
	form := NewInputForm(NewInputField("a", "", 0), NewInputField("b", "", 0))

	for _, want := range []int{1, 0, 1} {
		handled, _ := form.Update(keyMsg("tab"))
		if !handled {
			t.Fatal("expected tab to be handled")
		}
		if form.Focused() != want {
			t.Errorf("Focused() = %d, want %d", form.Focused(), want)
		}
	}
}
