package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite_CreatesFileWithContent(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	if err := fs.AtomicWrite(path, []byte(`{"workspace":{}}`), 0644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != `{"workspace":{}}` {
		t.Errorf("content = %q, want %q", data, `{"workspace":{}}`)
	}
}

func TestAtomicWrite_OverwritesExisting(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "f.json")

	if err := fs.AtomicWrite(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fs.AtomicWrite(path, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry in dir, got %d", len(entries))
	}
}

func TestExists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("expected missing path to not exist")
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	exists, err = fs.Exists(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected present path to exist")
	}
}

func TestValidateRelPath(t *testing.T) {
	fs := NewRealFS()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"apps/api", false},
		{"packages/web-app", false},
		{".", true},
		{"", true},
		{"/abs/path", true},
		{"../escape", true},
		{"apps/../../escape", true},
	}

	for _, tt := range tests {
		err := fs.ValidateRelPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRelPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	fs := NewRealFS()

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"setup-ci", false},
		{"dockerize", false},
		{"", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{"a\\b", true},
	}

	for _, tt := range tests {
		err := fs.ValidateIdentifier(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
