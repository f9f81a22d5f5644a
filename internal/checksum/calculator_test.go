package checksum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSHA256CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "empty content",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "csv header",
			content:  "RBID,COMPANY_NAME\n",
			expected: "899c28bb31558a99e1e686f91231f9fce78d1a12affd73e0576bf3f260f0185a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateRaw([]byte(tt.content))
			if got != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestSHA256CalculateRawDiffers(t *testing.T) {
	calc := New()
	a := calc.CalculateRaw([]byte("a,b\n1,2\n"))
	b := calc.CalculateRaw([]byte("a,b\n1,3\n"))
	if a == b {
		t.Error("different content produced equal checksums")
	}
}

func TestSHA256CalculateFile(t *testing.T) {
	calc := New()

	path := filepath.Join(t.TempDir(), "data.csv")
	content := []byte("RBID,COMPANY_NAME\nr1,acme\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := calc.CalculateFile(path)
	if err != nil {
		t.Fatalf("CalculateFile: %v", err)
	}
	if fromFile != calc.CalculateRaw(content) {
		t.Error("CalculateFile disagrees with CalculateRaw for the same bytes")
	}
}

func TestSHA256CalculateFileMissing(t *testing.T) {
	calc := New()
	if _, err := calc.CalculateFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
