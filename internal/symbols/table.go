package symbols

import "dada/internal/source"

// Table aggregates the scope and symbol arenas plus the shared identifier
// interner for one compilation unit.
type Table struct {
	Scopes      *Scopes
	Symbols     *Symbols
	Identifiers *Identifiers

	fileRoot map[source.FileID]ScopeID
}

// NewTable builds an empty table. If ids is nil, a fresh Identifiers is
// allocated.
func NewTable(ids *Identifiers) *Table {
	if ids == nil {
		ids = NewIdentifiers(nil)
	}
	return &Table{
		Scopes:      NewScopes(),
		Symbols:     NewSymbols(),
		Identifiers: ids,
		fileRoot:    make(map[source.FileID]ScopeID),
	}
}

// FileRoot returns (creating if needed) the file-level scope for file.
func (t *Table) FileRoot(file source.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeFile, NoScopeID, span)
	t.fileRoot[file] = scope
	return scope
}

// Declare binds name to sym in scope. Returns the new SymbolID and true, or
// an existing conflicting SymbolID and false when name is already bound
// directly in scope (callers decide how to report DuplicateDefinition,
// since the tie-breaking order — class > function > use — is call-site
// specific).
func (t *Table) Declare(scope ScopeID, name source.StringID, sym Symbol) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID, false
	}
	if existing := s.NameIndex[name]; len(existing) > 0 {
		return existing[0], false
	}
	sym.Name = name
	sym.Scope = scope
	id := t.Symbols.New(sym)
	s.NameIndex[name] = append(s.NameIndex[name], id)
	s.Symbols = append(s.Symbols, id)
	return id, true
}

// DeclareShadowing binds name to sym in scope even if already bound,
// appending to the name's candidate list (used for locals that legally
// shadow an outer binding of the same name within a nested block).
func (t *Table) DeclareShadowing(scope ScopeID, name source.StringID, sym Symbol) SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID
	}
	sym.Name = name
	sym.Scope = scope
	id := t.Symbols.New(sym)
	s.NameIndex[name] = append(s.NameIndex[name], id)
	s.Symbols = append(s.Symbols, id)
	return id
}

// Lookup walks scope and its ancestors (innermost to outermost) for a symbol
// bound to name.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			break
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		cur = s.Parent
	}
	return NoSymbolID, false
}

// LookupLocal looks up name directly in scope, without walking to parents.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID, false
	}
	if ids := s.NameIndex[name]; len(ids) > 0 {
		return ids[len(ids)-1], true
	}
	return NoSymbolID, false
}

// PushScope opens a new nested scope under parent.
func (t *Table) PushScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, span)
}
