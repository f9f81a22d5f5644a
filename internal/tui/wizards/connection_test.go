package wizards

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/relload/pkg/relload"
)

type mockTester struct {
	info string
	err  error
	seen []relload.ConnectionConfig
}

func (m *mockTester) TestConnection(_ context.Context, cfg relload.ConnectionConfig) (string, error) {
	m.seen = append(m.seen, cfg)
	return m.info, m.err
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestConnectionWizard_DefaultsPrefilled(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})

	if got := w.fields[fieldHost].Value(); got != relload.DefaultHost {
		t.Errorf("host = %q, want %q", got, relload.DefaultHost)
	}
	if got := w.fields[fieldPort].Value(); got != "5432" {
		t.Errorf("port = %q, want 5432", got)
	}
	if got := w.fields[fieldDatabase].Value(); got != relload.DefaultDatabase {
		t.Errorf("database = %q, want %q", got, relload.DefaultDatabase)
	}
}

func TestConnectionWizard_GivenDefaultsWin(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{Host: "db.example.com", Port: 5433})

	if got := w.fields[fieldHost].Value(); got != "db.example.com" {
		t.Errorf("host = %q, want db.example.com", got)
	}
	if got := w.fields[fieldPort].Value(); got != "5433" {
		t.Errorf("port = %q, want 5433", got)
	}
}

func TestConnectionWizard_EscCancels(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})

	_, cmd := w.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if !w.Result().Cancelled {
		t.Error("Expected cancelled result")
	}
}

func TestConnectionWizard_AuthSelection(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})

	w.Update(keyMsg("down"))
	w.Update(keyMsg("enter"))

	if w.step != stepFields {
		t.Fatalf("step = %d, want stepFields", w.step)
	}
	if w.authChoice.AuthMethod != relload.AuthMethodAzureEntraID {
		t.Errorf("auth method = %v, want Azure Entra ID", w.authChoice.AuthMethod)
	}
	if !strings.Contains(w.View(), "Azure tenant ID") {
		t.Errorf("Expected tenant field label, got view:\n%s", w.View())
	}
}

func TestConnectionWizard_BuildConfig_Standard(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})
	w.authChoice = authOptions[0]

	config, err := w.buildConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Host != relload.DefaultHost || config.Port != relload.DefaultPort {
		t.Errorf("Unexpected config: %+v", config)
	}
	if config.Password != relload.DefaultPassword {
		t.Errorf("Empty password entry must fall back to the default, got %q", config.Password)
	}
	if config.SSLMode != relload.DefaultSSLMode {
		t.Errorf("sslmode = %q, want %q", config.SSLMode, relload.DefaultSSLMode)
	}
}

func TestConnectionWizard_BuildConfig_BadPort(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})
	w.authChoice = authOptions[0]
	w.fields[fieldPort].SetValue("abc")

	_, err := w.buildConfig()
	if err == nil {
		t.Fatal("Expected error for non-numeric port")
	}
	if !strings.Contains(err.Error(), "abc") {
		t.Errorf("Expected port value in error, got: %v", err)
	}
}

func TestConnectionWizard_BuildConfig_GoogleInstance(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{})
	w.authChoice = authOptions[3]
	w.fields[fieldExtra].SetValue("proj:region:instance")

	config, err := w.buildConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.AuthMethod != relload.AuthMethodGoogleIAM {
		t.Errorf("auth method = %v, want Google IAM", config.AuthMethod)
	}
	if config.GoogleInstance != "proj:region:instance" {
		t.Errorf("instance = %q", config.GoogleInstance)
	}
}

func TestConnectionWizard_TestFlow(t *testing.T) {
	tester := &mockTester{info: "PostgreSQL 16.2"}
	w := NewConnectionWizard(relload.ConnectionConfig{}, WithTester(tester))
	w.authChoice = authOptions[0]
	w.step = stepFields
	w.focused = fieldExtra

	_, cmd := w.Update(keyMsg("enter"))
	if w.step != stepTesting {
		t.Fatalf("step = %d, want stepTesting", w.step)
	}
	if cmd == nil {
		t.Fatal("Expected test command")
	}

	w.Update(testResultMsg{info: "PostgreSQL 16.2"})
	if w.step != stepDone {
		t.Fatalf("step = %d, want stepDone", w.step)
	}
	result := w.Result()
	if !result.Tested {
		t.Error("Expected tested result")
	}
	if result.Config.Host != relload.DefaultHost {
		t.Errorf("Unexpected config host %q", result.Config.Host)
	}
	if !strings.Contains(w.View(), "PostgreSQL 16.2") {
		t.Errorf("Expected version in view, got:\n%s", w.View())
	}
}

func TestConnectionWizard_TestFailureShown(t *testing.T) {
	w := NewConnectionWizard(relload.ConnectionConfig{}, WithTester(&mockTester{err: fmt.Errorf("refused")}))
	w.authChoice = authOptions[0]
	w.step = stepTesting

	w.Update(testResultMsg{err: fmt.Errorf("refused")})
	if w.Result().Tested {
		t.Error("Expected untested result on failure")
	}
	if !strings.Contains(w.View(), "refused") {
		t.Errorf("Expected error in view, got:\n%s", w.View())
	}
}
