package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeClient struct {
	submitted []string
	maxLines  int
	forced    bool
}

func (f *fakeClient) GetUsername() string { return "Steve" }
func (f *fakeClient) GetAddress() string  { return "127.0.0.1:25565" }
func (f *fakeClient) GetMaxLogLines() int { return f.maxLines }
func (f *fakeClient) Disconnect(force bool) error {
	f.forced = force
	return nil
}

func (f *fakeClient) Submit(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	f.submitted = append(f.submitted, line)
	return true
}

func TestSubmitRequiresInput(t *testing.T) {
	fc := &fakeClient{}
	ui := New(fc)
	ui.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	ui.textInput.SetValue("hello")
	ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(fc.submitted) != 0 {
		t.Fatalf("submitted %q before input was enabled", fc.submitted)
	}

	ui.Update(EnableInputMsg{})
	ui.textInput.SetValue("  list ")
	ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(fc.submitted) != 1 || fc.submitted[0] != "list" {
		t.Fatalf("submitted = %q, want [list]", fc.submitted)
	}
	if ui.textInput.Value() != "" {
		t.Errorf("input not cleared: %q", ui.textInput.Value())
	}
	if !strings.Contains(ui.renderLogs(), "> list") {
		t.Errorf("logs = %q, want echoed input", ui.renderLogs())
	}

	ui.textInput.SetValue("   ")
	ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(fc.submitted) != 1 {
		t.Errorf("blank line was submitted: %q", fc.submitted)
	}
}

func TestLogTrimming(t *testing.T) {
	fc := &fakeClient{maxLines: 2}
	ui := New(fc)
	for _, line := range []string{"a", "b", "c"} {
		ui.Update(LogMsg(line))
	}
	if got := ui.renderLogs(); got != "b\nc" {
		t.Errorf("logs = %q, want b and c", got)
	}
}

func TestQuitKey(t *testing.T) {
	fc := &fakeClient{}
	ui := New(fc)
	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !fc.forced {
		t.Error("Ctrl+C did not force a disconnect")
	}
	if cmd == nil {
		t.Fatal("Ctrl+C returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C did not quit the program")
	}
}

func TestViewBeforeReady(t *testing.T) {
	if got := New(&fakeClient{}).View(); got != "Initializing..." {
		t.Errorf("View = %q", got)
	}
}
