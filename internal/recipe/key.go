package recipe

import "strings"

// KeyKind classifies a dotted requirement key. It is a closed enumeration so
// the validator and scope resolver switch over kinds instead of re-deriving
// string prefixes.
type KeyKind int

const (
	// KindState is a fact asserted by another recipe's provides, looked up
	// in persisted workspace state.
	KindState KeyKind = iota

	// KindWorkspace is a reserved workspace.* characteristic resolved from
	// the analysis snapshot.
	KindWorkspace

	// KindProject is a reserved project.* characteristic requiring a bound
	// project analysis.
	KindProject
)

// Key is a parsed dotted key.
type Key struct {
	Kind KeyKind

	// Name is the full dotted key as written in the recipe.
	Name string
}

// ParseKey classifies a dotted key. Any key ending in ".applied" is a state
// key regardless of prefix, since applied markers live in state, never in
// the analysis snapshot.
func ParseKey(s string) Key {
	if strings.HasSuffix(s, AppliedKeySuffix) {
		return Key{Kind: KindState, Name: s}
	}
	if strings.HasPrefix(s, "workspace.") {
		return Key{Kind: KindWorkspace, Name: s}
	}
	if strings.HasPrefix(s, "project.") {
		return Key{Kind: KindProject, Name: s}
	}
	return Key{Kind: KindState, Name: s}
}
