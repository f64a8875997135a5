package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/remedyhq/remedy/internal/fsops"
)

const manifestYAML = `id: setup-ci
title: Set up CI
level: workspace
ecosystems:
  - id: node
    default_variant: github-actions
    variants:
      - id: github-actions
        title: GitHub Actions
provides:
  - ci.configured
requires:
  - key: workspace.is_monorepo
    equals: "true"
prompt: prompt.md
`

func writeManifest(t *testing.T, recipesDir, id, content string) {
	t.Helper()
	dir := filepath.Join(recipesDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileRepo_LoadParsesManifest(t *testing.T) {
	recipesDir := t.TempDir()
	writeManifest(t, recipesDir, "setup-ci", manifestYAML)

	repo := NewFileRepo(fsops.NewRealFS(), recipesDir)
	rec, err := repo.Load("setup-ci")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rec.ID != "setup-ci" || rec.Level != LevelWorkspace {
		t.Errorf("unexpected recipe: %+v", rec)
	}
	if len(rec.Requires) != 1 || rec.Requires[0].Key != "workspace.is_monorepo" {
		t.Errorf("requires = %+v", rec.Requires)
	}
	if rec.DefaultVariant("node") != "github-actions" {
		t.Errorf("default variant = %q", rec.DefaultVariant("node"))
	}
}

func TestFileRepo_LoadMissing(t *testing.T) {
	repo := NewFileRepo(fsops.NewRealFS(), t.TempDir())

	_, err := repo.Load("nope")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFileRepo_LoadRejectsIDMismatch(t *testing.T) {
	recipesDir := t.TempDir()
	writeManifest(t, recipesDir, "renamed-dir", manifestYAML)

	repo := NewFileRepo(fsops.NewRealFS(), recipesDir)
	_, err := repo.Load("renamed-dir")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for id/directory mismatch, got %v", err)
	}
}

func TestFileRepo_List(t *testing.T) {
	recipesDir := t.TempDir()
	writeManifest(t, recipesDir, "setup-ci", manifestYAML)
	// Directory without a manifest is not a recipe
	if err := os.MkdirAll(filepath.Join(recipesDir, "scratch"), 0755); err != nil {
		t.Fatal(err)
	}

	repo := NewFileRepo(fsops.NewRealFS(), recipesDir)
	ids, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "setup-ci" {
		t.Errorf("List = %v, want [setup-ci]", ids)
	}
}

func TestFileRepo_ListEmptyWhenDirMissing(t *testing.T) {
	repo := NewFileRepo(fsops.NewRealFS(), filepath.Join(t.TempDir(), "never-created"))

	ids, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List = %v, want empty", ids)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("id: [broken"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	_, err := Parse([]byte("id: x\nlevel: nowhere\necosystems:\n  - id: node\n    default_variant: v\n    variants:\n      - id: v\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad level, got %v", err)
	}
}
