package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `# database settings
DATABASE_URL=postgres://user:pass@db:5432/shop

WAIT_HOSTS="db:5432,redis:6379"
SECRET_KEY='s3cret'
EMPTY=
SPACED = padded value
`
	vars, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"DATABASE_URL": "postgres://user:pass@db:5432/shop",
		"WAIT_HOSTS":   "db:5432,redis:6379",
		"SECRET_KEY":   "s3cret",
		"EMPTY":        "",
		"SPACED":       "padded value",
	}
	if len(vars) != len(want) {
		t.Fatalf("parsed %d vars, want %d: %v", len(vars), len(want), vars)
	}
	for key, value := range want {
		if vars[key] != value {
			t.Fatalf("vars[%q] = %q, want %q", key, vars[key], value)
		}
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("NOT A PAIR\n"))
	if err == nil {
		t.Fatal("expected error for line without =")
	}
}

func TestLoadRealEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "FROM_FILE=file\nALREADY_SET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("ALREADY_SET", "environment")
	// FROM_FILE must not leak into later tests.
	t.Setenv("FROM_FILE", "")
	os.Unsetenv("FROM_FILE")

	if err := Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("FROM_FILE"); got != "file" {
		t.Fatalf("FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("ALREADY_SET"); got != "environment" {
		t.Fatalf("ALREADY_SET = %q, want environment", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
