package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/relload/pkg/relload"
)

func testConnConfig() *relload.ConnectionConfig {
	return &relload.ConnectionConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "venture_db",
		Username: "postgres",
		Password: "secret",
	}
}

func TestWritePgpassEntry_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pgpass")
	t.Setenv("PGPASSFILE", path)

	if err := writePgpassEntry(testConnConfig()); err != nil {
		t.Fatalf("writePgpassEntry failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read .pgpass: %v", err)
	}
	if string(data) != "localhost:5432:venture_db:postgres:secret\n" {
		t.Errorf("Unexpected .pgpass content: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestWritePgpassEntry_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pgpass")
	t.Setenv("PGPASSFILE", path)
	writeFile(t, path, "localhost:5432:venture_db:postgres:old\nother:5432:db:u:pw\n")

	if err := writePgpassEntry(testConnConfig()); err != nil {
		t.Fatalf("writePgpassEntry failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "localhost:5432:venture_db:postgres:secret") {
		t.Errorf("Expected updated entry, got: %q", content)
	}
	if strings.Contains(content, ":old") {
		t.Errorf("Old entry must be replaced, got: %q", content)
	}
	if !strings.Contains(content, "other:5432:db:u:pw") {
		t.Errorf("Unrelated entries must survive, got: %q", content)
	}
}

func TestEscapePgpass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with:colon", `with\:colon`},
		{`back\slash`, `back\\slash`},
		{`both:\`, `both\:\\`},
	}
	for _, tt := range tests {
		if got := escapePgpass(tt.in); got != tt.want {
			t.Errorf("escapePgpass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPgpassPath_HonorsEnvOverride(t *testing.T) {
	t.Setenv("PGPASSFILE", "/custom/pgpass")
	if got := pgpassPath(); got != "/custom/pgpass" {
		t.Errorf("pgpassPath() = %q, want /custom/pgpass", got)
	}
}
