package state

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a single state fact. The persisted JSON form may be either a
// string or a boolean; both compare as strings (booleans coerce to
// "true"/"false").
type Value struct {
	str    string
	b      bool
	isBool bool
}

// StringValue creates a string-typed Value.
func StringValue(s string) Value {
	return Value{str: s}
}

// BoolValue creates a boolean-typed Value.
func BoolValue(b bool) Value {
	return Value{b: b, isBool: true}
}

// String returns the value coerced to its string form.
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.b)
	}
	return v.str
}

// Truthy reports whether the value is boolean true or the string "true".
func (v Value) Truthy() bool {
	if v.isBool {
		return v.b
	}
	return v.str == "true"
}

// MarshalJSON marshals the value in its original JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.b)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts a JSON string or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}

	return fmt.Errorf("state values must be strings or booleans, got %s", data)
}

// WorkspaceState represents the persisted facts for a workspace.
// Every key is a dotted string; values are recipe-asserted facts.
type WorkspaceState struct {
	// Workspace holds workspace-level facts
	Workspace map[string]Value `json:"workspace"`

	// Projects holds per-project facts, keyed by project relative path
	Projects map[string]map[string]Value `json:"projects"`
}

// NewWorkspaceState creates a new empty WorkspaceState.
func NewWorkspaceState() *WorkspaceState {
	return &WorkspaceState{
		Workspace: make(map[string]Value),
		Projects:  make(map[string]map[string]Value),
	}
}

// Scope returns the fact map for the given project path, or the workspace
// map when projectPath is empty. Returns nil if the project has no state yet.
func (s *WorkspaceState) Scope(projectPath string) map[string]Value {
	if projectPath == "" {
		return s.Workspace
	}
	return s.Projects[projectPath]
}

// Lookup resolves a key in the given scope. The second return is false when
// the key (or the whole scope) is absent.
func (s *WorkspaceState) Lookup(projectPath, key string) (Value, bool) {
	scope := s.Scope(projectPath)
	if scope == nil {
		return Value{}, false
	}
	v, ok := scope[key]
	return v, ok
}

// Set records a fact in the given scope, creating the project map if needed.
func (s *WorkspaceState) Set(projectPath, key string, v Value) {
	if projectPath == "" {
		if s.Workspace == nil {
			s.Workspace = make(map[string]Value)
		}
		s.Workspace[key] = v
		return
	}

	if s.Projects == nil {
		s.Projects = make(map[string]map[string]Value)
	}
	scope, ok := s.Projects[projectPath]
	if !ok {
		scope = make(map[string]Value)
		s.Projects[projectPath] = scope
	}
	scope[key] = v
}
