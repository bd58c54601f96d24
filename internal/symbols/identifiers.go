// Package symbols resolves source identifiers to symbols, maintains lexical
// scopes, and binds generic-parameter lists for function signatures (§4.B).
package symbols

import (
	"golang.org/x/text/unicode/norm"

	"dada/internal/source"
)

// Identifiers interns identifier text after NFC normalization, so that two
// byte-distinct but canonically equal source identifiers resolve to the
// same StringID and therefore the same symbol (§3 "Equal identifiers share
// storage", extended here to Unicode identifiers).
type Identifiers struct {
	strings *source.Interner
}

// NewIdentifiers wraps strings (or a fresh interner, if nil) with NFC
// normalization.
func NewIdentifiers(strings *source.Interner) *Identifiers {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Identifiers{strings: strings}
}

// Intern normalizes and interns name, returning its StringID.
func (ids *Identifiers) Intern(name string) source.StringID {
	return ids.strings.Intern(norm.NFC.String(name))
}

// Strings returns the underlying string interner.
func (ids *Identifiers) Strings() *source.Interner { return ids.strings }
