package diag

import "fmt"

// Code identifies the kind of problem a Diagnostic reports. Values are
// grouped by the compiler phase that can emit them so the numeric ranges
// stay stable as new kinds are added; see §7 of the specification for the
// authoritative list of semantic-core kinds.
type Code uint16

const (
	// UnknownCode is the zero value; no component should emit it deliberately.
	UnknownCode Code = 0

	// Name & scope resolution (component B).
	UnresolvedName     Code = 1001
	DuplicateDefinition Code = 1002

	// Generic / signature shape (components B, H).
	KindMismatch  Code = 1101
	ArityMismatch Code = 1102
	LabelMismatch Code = 1103

	// Subtyping & predicates (components E, G).
	SubtypeFailure      Code = 1201
	PredicateFailure    Code = 1202
	ContradictoryInference Code = 1203

	// Inference completion (component F).
	NeedsAnnotation Code = 1301

	// Type declarations (component B / symbols).
	RecursiveType Code = 1401

	// Expression checking (component H).
	InvalidReturnValue Code = 1501
)

var codeDescription = map[Code]string{
	UnknownCode:            "unknown diagnostic",
	UnresolvedName:         "identifier not found in any enclosing scope",
	DuplicateDefinition:    "two items at the same scope level share a name",
	KindMismatch:           "generic argument kind does not match the declared parameter kind",
	ArityMismatch:          "generic or call argument count disagrees with the declaration",
	LabelMismatch:          "call-site argument label disagrees with the parameter name",
	SubtypeFailure:         "required subtype relation could not be established",
	PredicateFailure:       "required copy/move/owned/lent predicate does not hold",
	ContradictoryInference: "inference variable required to satisfy conflicting predicates",
	NeedsAnnotation:        "inference could not determine a value; an explicit annotation is needed",
	RecursiveType:          "declared type depends recursively on itself",
	InvalidReturnValue:     "return expression is not assignable to the declared return type",
}

// ID renders a stable, greppable code string such as "SEM1001".
func (c Code) ID() string {
	return fmt.Sprintf("SEM%04d", uint16(c))
}

// Title returns the human-readable description registered for this code.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
