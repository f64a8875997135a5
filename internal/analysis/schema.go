// Package analysis provides the workspace analysis snapshot consumed by the
// recipe engine. The snapshot is produced by the external analyzer and cached
// at .remedy/analysis.json in the workspace root; this package only reads it
// and resolves reserved characteristic keys against it.
package analysis

import "strconv"

// WorkspaceAnalysis is the immutable per-run snapshot of a workspace.
type WorkspaceAnalysis struct {
	// IsMonorepo indicates the workspace contains multiple projects
	IsMonorepo bool `json:"isMonorepo"`

	// HasWorkspacePackageManager indicates a root-level package manager config
	HasWorkspacePackageManager bool `json:"hasWorkspacePackageManager"`

	// WorkspaceEcosystem is the dominant ecosystem of the workspace root
	WorkspaceEcosystem string `json:"workspaceEcosystem"`

	// CICD is the detected CI provider, empty when none was found
	CICD string `json:"cicd,omitempty"`

	// Projects lists the analyzed sub-projects, in discovery order
	Projects []ProjectAnalysis `json:"projects"`
}

// ProjectAnalysis describes a single sub-project of the workspace.
type ProjectAnalysis struct {
	// Path is the project path relative to the workspace root
	Path string `json:"path"`

	// Language is the primary implementation language
	Language string `json:"language"`

	// Ecosystem is the project's package ecosystem (empty when undetected)
	Ecosystem string `json:"ecosystem"`

	// Type classifies the project (e.g., "api_server", "web_app", "library")
	Type string `json:"type"`

	// Framework is the detected framework, if any
	Framework string `json:"framework,omitempty"`

	// Dependencies lists declared dependency names
	Dependencies []string `json:"dependencies"`

	// HasPackageManager indicates the project has its own package manager config
	HasPackageManager bool `json:"hasPackageManager"`

	// Dockerized indicates the project carries a Dockerfile
	Dockerized bool `json:"dockerized,omitempty"`
}

// Reserved workspace characteristic keys.
const (
	KeyWorkspaceIsMonorepo        = "workspace.is_monorepo"
	KeyWorkspaceHasPackageManager = "workspace.has_workspace_package_manager"
	KeyWorkspaceEcosystem         = "workspace.ecosystem"
	KeyWorkspaceCICD              = "workspace.cicd"
)

// Reserved project characteristic keys.
const (
	KeyProjectLanguage          = "project.language"
	KeyProjectType              = "project.type"
	KeyProjectFramework         = "project.framework"
	KeyProjectEcosystem         = "project.ecosystem"
	KeyProjectHasPackageManager = "project.has_package_manager"
	KeyProjectDockerized        = "project.dockerized"
)

// Characteristic resolves a reserved workspace.* key against the snapshot.
// Booleans coerce to "true"/"false". The second return is false for unknown
// keys and for known keys with no detected value.
func (a *WorkspaceAnalysis) Characteristic(key string) (string, bool) {
	switch key {
	case KeyWorkspaceIsMonorepo:
		return strconv.FormatBool(a.IsMonorepo), true
	case KeyWorkspaceHasPackageManager:
		return strconv.FormatBool(a.HasWorkspacePackageManager), true
	case KeyWorkspaceEcosystem:
		if a.WorkspaceEcosystem == "" {
			return "", false
		}
		return a.WorkspaceEcosystem, true
	case KeyWorkspaceCICD:
		if a.CICD == "" {
			return "", false
		}
		return a.CICD, true
	}
	return "", false
}

// Characteristic resolves a reserved project.* key against a single project.
func (p *ProjectAnalysis) Characteristic(key string) (string, bool) {
	switch key {
	case KeyProjectLanguage:
		if p.Language == "" {
			return "", false
		}
		return p.Language, true
	case KeyProjectType:
		if p.Type == "" {
			return "", false
		}
		return p.Type, true
	case KeyProjectFramework:
		if p.Framework == "" {
			return "", false
		}
		return p.Framework, true
	case KeyProjectEcosystem:
		if p.Ecosystem == "" {
			return "", false
		}
		return p.Ecosystem, true
	case KeyProjectHasPackageManager:
		return strconv.FormatBool(p.HasPackageManager), true
	case KeyProjectDockerized:
		return strconv.FormatBool(p.Dockerized), true
	}
	return "", false
}
