// Package strtheory implements the decision-procedure integration layer
// for a string-constraint theory inside a host constraint solver.
//
// The package provides the pieces a proof-search host needs to delegate
// string reasoning to an external string model searcher:
//   - A symbol catalogue over a fixed, bounded character alphabet
//     (characters, strings, and an opaque regular-expression sort)
//   - An operator registry associating every string function and
//     predicate, built-in or user-registered, with the automata-level
//     pre-operation the searcher uses to process it
//   - A support classifier and preprocessing gate that record, per
//     solving session, when an unsupported symbol weakens completeness
//   - A goal handler that breaks cyclic word equations, caches decision
//     outcomes in a small LRU cache, and reports contradictions
//   - A model translator turning a found assignment back into host-level
//     equalities
//
// The expensive parts — the string model search itself and the
// compilation of symbolic transducers — sit behind the ModelSearcher and
// TransducerCompiler interfaces. Reference implementations are included
// so the package is runnable end-to-end, but hosts are expected to bring
// production-grade collaborators.
//
// All frozen values (registry, catalogue, compiled transducers) are
// immutable and safe to share across concurrent proof branches. The
// decision cache and the session incompleteness flag are the only
// mutable shared state and are safe for concurrent use.
package strtheory

import (
	"fmt"
)

// Sort identifies the domains terms range over.
type Sort int

const (
	// SortChar is the bounded character sort, the integer interval
	// [0..alphabetSize-1].
	SortChar Sort = iota
	// SortString is the sort of finite character sequences.
	SortString
	// SortRegex is the opaque, uninterpreted regular-expression sort.
	SortRegex
	// SortInt is the host's integer sort, used for string lengths.
	SortInt
)

// String returns a human-readable sort name.
func (s Sort) String() string {
	switch s {
	case SortChar:
		return "Char"
	case SortString:
		return "Str"
	case SortRegex:
		return "RegLan"
	case SortInt:
		return "Int"
	default:
		return "Unknown"
	}
}

// Alphabet carries the process-wide alphabet size. It is fixed when the
// theory is constructed and never changes afterward.
type Alphabet struct {
	size int
}

// NewAlphabet creates an alphabet of the given size. Character codes are
// 0..size-1.
func NewAlphabet(size int) (Alphabet, error) {
	if size < 1 {
		return Alphabet{}, fmt.Errorf("strtheory: alphabet size must be >= 1, got %d", size)
	}
	return Alphabet{size: size}, nil
}

// Size returns the number of characters in the alphabet.
func (a Alphabet) Size() int { return a.size }

// Contains reports whether a character code belongs to the alphabet.
func (a Alphabet) Contains(c int) bool { return c >= 0 && c < a.size }
