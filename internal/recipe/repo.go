package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/remedyhq/remedy/internal/fsops"
)

// ManifestFileName is the manifest file inside each installed recipe directory.
const ManifestFileName = "recipe.yaml"

// Repo provides an interface for the installed recipe catalog.
type Repo interface {
	// List returns all installed recipe IDs.
	List() ([]string, error)

	// Exists checks if a recipe with the given ID is installed.
	Exists(id string) (bool, error)

	// Load parses and validates the recipe with the given ID.
	Load(id string) (*Recipe, error)

	// Dir returns the directory of an installed recipe.
	Dir(id string) string
}

// FileRepo implements Repo over ~/.remedy/recipes/<id>/recipe.yaml.
type FileRepo struct {
	fs         fsops.FS
	recipesDir string
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(fs fsops.FS, recipesDir string) *FileRepo {
	return &FileRepo{
		fs:         fs,
		recipesDir: recipesDir,
	}
}

// List returns all installed recipe IDs.
func (r *FileRepo) List() ([]string, error) {
	entries, err := r.fs.ReadDir(r.recipesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read recipes directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest := filepath.Join(r.recipesDir, entry.Name(), ManifestFileName)
		if ok, _ := r.fs.Exists(manifest); ok {
			ids = append(ids, entry.Name())
		}
	}

	return ids, nil
}

// Exists checks if a recipe with the given ID is installed.
func (r *FileRepo) Exists(id string) (bool, error) {
	if err := r.fs.ValidateIdentifier(id); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return r.fs.Exists(filepath.Join(r.Dir(id), ManifestFileName))
}

// Load parses and validates the recipe with the given ID.
func (r *FileRepo) Load(id string) (*Recipe, error) {
	if err := r.fs.ValidateIdentifier(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	data, err := r.fs.ReadFile(filepath.Join(r.Dir(id), ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("recipe %q is not installed: %w", id, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read recipe manifest: %w", err)
	}

	rec, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if rec.ID != id {
		return nil, fmt.Errorf("%w: manifest id %q does not match directory %q", ErrInvalid, rec.ID, id)
	}

	return rec, nil
}

// Dir returns the directory of an installed recipe.
func (r *FileRepo) Dir(id string) string {
	return filepath.Join(r.recipesDir, id)
}

// Parse unmarshals and validates a recipe manifest.
func Parse(data []byte) (*Recipe, error) {
	var rec Recipe
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}
