package lineinput

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestModelUpdate_TypeAndSubmit(t *testing.T) {
	m := typeRunes(t, NewModel("query> "), "go maps")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected quit command on enter")
	}
	if !m.Submitted() || m.Cancelled() {
		t.Fatalf("expected submitted model, got %+v", m)
	}
	if m.Value() != "go maps" {
		t.Fatalf("unexpected value %q", m.Value())
	}
	if m.View() != "query> go maps\n" {
		t.Fatalf("unexpected final view %q", m.View())
	}
}

func TestModelUpdate_Backspace(t *testing.T) {
	m := typeRunes(t, NewModel(">> "), "hepl")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeRunes(t, updated.(Model), "lp")
	if m.Value() != "help" {
		t.Fatalf("unexpected value %q", m.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := updated.(Model).Value(); got != "" {
		t.Fatalf("expected cleared line, got %q", got)
	}
}

func TestModelUpdate_BackspaceOnEmptyLine(t *testing.T) {
	updated, cmd := NewModel(">> ").Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if cmd != nil || updated.(Model).Value() != "" {
		t.Fatal("backspace on an empty line should do nothing")
	}
}

func TestModelUpdate_Cancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD} {
		updated, cmd := NewModel(">> ").Update(tea.KeyMsg{Type: key})
		if cmd == nil || !updated.(Model).Cancelled() {
			t.Fatalf("key %v should cancel the prompt", key)
		}
	}
}

func TestModelUpdate_CtrlDWithTextKeepsEditing(t *testing.T) {
	m := typeRunes(t, NewModel(">> "), "abc")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil || updated.(Model).Cancelled() {
		t.Fatal("ctrl+d with pending text must not cancel")
	}
}

func TestModelView_ShowsPromptAndCursor(t *testing.T) {
	m := typeRunes(t, NewModel("tags> "), "go")
	view := m.View()
	if !strings.HasPrefix(view, "tags> go") {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestScanner_ReadLine(t *testing.T) {
	var out bytes.Buffer
	s := NewScanner(strings.NewReader("search  go\r\n\nquit\n"), &out)

	for _, want := range []string{"search  go", "", "quit"} {
		got, err := s.ReadLine(">> ")
		if err != nil {
			t.Fatalf("ReadLine returned error: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, err := s.ReadLine(">> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != ">> >> >> >> \n" {
		t.Fatalf("unexpected prompt output %q", out.String())
	}
}

func TestScanner_LeavesUnreadLinesInSharedReader(t *testing.T) {
	shared := bufio.NewReader(strings.NewReader("search go\ngo\nn\nb\n"))
	s := NewScanner(shared, io.Discard)

	for _, want := range []string{"search go", "go"} {
		got, err := s.ReadLine(">> ")
		if err != nil || got != want {
			t.Fatalf("got %q, %v, want %q", got, err, want)
		}
	}
	rest, err := io.ReadAll(shared)
	if err != nil {
		t.Fatalf("read rest: %v", err)
	}
	if string(rest) != "n\nb\n" {
		t.Fatalf("scanner consumed input beyond its lines: %q", rest)
	}
}
