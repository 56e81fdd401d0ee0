package lint

import "github.com/shadowplay-lint/shadowplay/internal/location"

// VariableUsage tracks one variable's lifecycle within a Scope, per spec
// §3's "Lint context" data model.
type VariableUsage struct {
	DefinedAt  location.Range
	IsArgument bool
	IsPhantom  bool // "name"/"title"/"facts"/"trusted"/"server_facts": always considered defined
	UseCount   int
}

// Scope owns a mapping from variable name to usage record and links to a
// parent, per spec §3: "scopes are linked into a parent chain."
type Scope struct {
	parent *Scope
	vars   map[string]*VariableUsage
}

// NewScope opens a new scope nested inside parent. parent is nil for a
// file's root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*VariableUsage)}
}

func (s *Scope) Parent() *Scope { return s.parent }

// Define registers name as defined in this scope. A phantom registration
// (e.g. "title") never overwrites a real definition already present.
func (s *Scope) Define(name string, rng location.Range, isArgument, isPhantom bool) {
	if existing, ok := s.vars[name]; ok && isPhantom && !existing.IsPhantom {
		return
	}
	s.vars[name] = &VariableUsage{DefinedAt: rng, IsArgument: isArgument, IsPhantom: isPhantom}
}

// Lookup walks this scope and its ancestors for name, per spec §3's
// "scope-chain lookup." Returns the owning scope and usage record, or
// (nil, nil) if name is undefined anywhere in the chain.
func (s *Scope) Lookup(name string) (*Scope, *VariableUsage) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return cur, v
		}
	}
	return nil, nil
}

// Use records a read of name, incrementing the use count in the nearest
// enclosing scope that defines it. Reports whether such a scope was found.
func (s *Scope) Use(name string) bool {
	_, v := s.Lookup(name)
	if v == nil {
		return false
	}
	v.UseCount++
	return true
}

// Own returns the variables defined directly in this scope (not its
// ancestors) — what UnusedVariables walks when a scope closes.
func (s *Scope) Own() map[string]*VariableUsage {
	return s.vars
}
