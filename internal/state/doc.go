// Package state manages workspace state persistence.
//
// Workspace state is the authoritative record of which facts recipes have
// asserted about a workspace and its projects. It is a single JSON document
// per workspace, keyed by a workspace ID derived from the repository
// fingerprint, stored under ~/.remedy/workspaces.
//
// Key concepts:
//   - WorkspaceState: dotted-key fact maps for the workspace and each project
//   - Value: a state scalar that may be a JSON string or boolean
//   - StateStore: interface for persisting and loading workspace state
//
// A key ending in ".applied" is reserved: it is set exactly once per
// successful application of the recipe named by its prefix.
package state
