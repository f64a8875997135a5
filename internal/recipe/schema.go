// Package recipe defines the recipe schema and the dotted-key model used by
// the applicability engine. Recipes are declarative bundles: metadata, the
// ecosystems they support, the facts they require, and the facts they provide.
package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid indicates a structurally invalid recipe manifest.
var ErrInvalid = errors.New("invalid recipe")

// Level is a recipe's declared granularity.
type Level string

const (
	// LevelWorkspace runs the recipe once against the workspace root only.
	LevelWorkspace Level = "workspace"

	// LevelProject runs the recipe against each eligible project.
	LevelProject Level = "project"

	// LevelWorkspacePreferred runs at the workspace when eligible, and
	// additionally at divergent projects.
	LevelWorkspacePreferred Level = "workspace_preferred"
)

// AppliedKeySuffix is the reserved suffix marking a recipe application.
const AppliedKeySuffix = ".applied"

// Dependency is a {key, equals} precondition. The key is either a reserved
// characteristic key or a state key provided by another recipe; equals is
// compared as a string.
type Dependency struct {
	Key    string `yaml:"key" json:"key"`
	Equals string `yaml:"equals" json:"equals"`
}

// Variant is one concrete flavor of a recipe within an ecosystem.
type Variant struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Ecosystem declares recipe support for one package ecosystem.
type Ecosystem struct {
	ID             string    `yaml:"id" json:"id"`
	DefaultVariant string    `yaml:"default_variant" json:"defaultVariant"`
	Variants       []Variant `yaml:"variants" json:"variants"`
}

// Recipe is an immutable, parsed recipe manifest.
type Recipe struct {
	ID         string       `yaml:"id" json:"id"`
	Title      string       `yaml:"title,omitempty" json:"title,omitempty"`
	Level      Level        `yaml:"level" json:"level"`
	Ecosystems []Ecosystem  `yaml:"ecosystems" json:"ecosystems"`
	Provides   []string     `yaml:"provides" json:"provides"`
	Requires   []Dependency `yaml:"requires" json:"requires"`

	// Prompt is the fix-instruction file name, opaque to the engine.
	Prompt string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// AppliedKey returns the reserved state key marking this recipe as applied.
func (r *Recipe) AppliedKey() string {
	return r.ID + AppliedKeySuffix
}

// SupportsEcosystem reports whether the recipe declares support for the
// given ecosystem id. An empty id never matches.
func (r *Recipe) SupportsEcosystem(id string) bool {
	if id == "" {
		return false
	}
	for _, eco := range r.Ecosystems {
		if eco.ID == id {
			return true
		}
	}
	return false
}

// EcosystemByID returns the declared ecosystem with the given id.
func (r *Recipe) EcosystemByID(id string) (*Ecosystem, bool) {
	for i := range r.Ecosystems {
		if r.Ecosystems[i].ID == id {
			return &r.Ecosystems[i], true
		}
	}
	return nil, false
}

// DefaultVariant returns the default variant id for the given ecosystem,
// or empty when the ecosystem is not declared.
func (r *Recipe) DefaultVariant(ecosystemID string) string {
	eco, ok := r.EcosystemByID(ecosystemID)
	if !ok {
		return ""
	}
	return eco.DefaultVariant
}

// Validate checks the recipe for structural errors. All violations are
// reported as ErrInvalid.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}

	switch r.Level {
	case LevelWorkspace, LevelProject, LevelWorkspacePreferred:
	default:
		return fmt.Errorf("%w: unknown level %q", ErrInvalid, r.Level)
	}

	if len(r.Ecosystems) == 0 {
		return fmt.Errorf("%w: recipe %s declares no ecosystems", ErrInvalid, r.ID)
	}
	for _, eco := range r.Ecosystems {
		if eco.ID == "" {
			return fmt.Errorf("%w: recipe %s has an ecosystem without an id", ErrInvalid, r.ID)
		}
		if eco.DefaultVariant == "" {
			return fmt.Errorf("%w: ecosystem %s has no default variant", ErrInvalid, eco.ID)
		}
		found := false
		for _, v := range eco.Variants {
			if v.ID == eco.DefaultVariant {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: ecosystem %s default variant %q not among variants", ErrInvalid, eco.ID, eco.DefaultVariant)
		}
	}

	for _, p := range r.Provides {
		if !strings.Contains(p, ".") {
			return fmt.Errorf("%w: provide %q is not a dotted key", ErrInvalid, p)
		}
	}

	for _, req := range r.Requires {
		if req.Key == "" {
			return fmt.Errorf("%w: recipe %s has a requirement without a key", ErrInvalid, r.ID)
		}
	}

	return nil
}
