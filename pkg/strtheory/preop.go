// PreOps: the automata-level semantic operations the external model
// searcher uses to process atoms. Every predicate in the catalogue has
// exactly one PreOp, carrying the operation identity plus selectors that
// map an atom's argument positions to the terms the operation constrains
// and to its result term.
package strtheory

import (
	"github.com/gitrdm/gostrlogic/internal/automata"
)

// OpKind identifies the semantic operation behind a predicate.
type OpKind int

const (
	// OpEquality is word equality between two string terms.
	OpEquality OpKind = iota
	// OpEmpty constrains the result to the empty word.
	OpEmpty
	// OpCons prepends a character to a string.
	OpCons
	// OpConcat concatenates two strings.
	OpConcat
	// OpLength relates a string to its integer length.
	OpLength
	// OpMembership is regular-language membership.
	OpMembership
	// OpReplace replaces the first occurrence of a pattern.
	OpReplace
	// OpReplaceAll replaces every occurrence of a pattern.
	OpReplaceAll
	// OpRegexBuild constructs a ground regex value from ground arguments.
	OpRegexBuild
	// OpTransduce relates a transducer's input string to its output.
	OpTransduce
	// OpApply evaluates a user-registered function via its concrete
	// word-level evaluator.
	OpApply
)

// String returns a human-readable operation name.
func (k OpKind) String() string {
	switch k {
	case OpEquality:
		return "equality"
	case OpEmpty:
		return "empty"
	case OpCons:
		return "cons"
	case OpConcat:
		return "concat"
	case OpLength:
		return "length"
	case OpMembership:
		return "membership"
	case OpReplace:
		return "replace"
	case OpReplaceAll:
		return "replace-all"
	case OpRegexBuild:
		return "regex-build"
	case OpTransduce:
		return "transduce"
	case OpApply:
		return "apply"
	default:
		return "unknown"
	}
}

// WordFunc is the concrete evaluator of a user-registered function: it
// maps ground argument words to the ground result word. Returning an
// error marks the arguments as outside the function's domain.
type WordFunc func(args [][]int) ([]int, error)

// RegexBuildFunc constructs the ground regex value of a regex
// constructor from its ground arguments.
type RegexBuildFunc func(args []Term) (*automata.Regex, error)

// PreOp is the semantic operation attached to one predicate. PreOps are
// immutable once the registry is frozen and safe to share.
type PreOp struct {
	kind OpKind

	// nArgs is the number of leading atom positions that are operation
	// arguments; the remainder (at most one) is the result term.
	nArgs     int
	hasResult bool

	eval       WordFunc               // OpApply only
	buildRegex RegexBuildFunc         // OpRegexBuild only
	transName  string                 // OpTransduce only
	trans      *automata.Transducer   // attached when operators materialize
}

// Kind returns the operation identity.
func (p *PreOp) Kind() OpKind { return p.kind }

// Args selects the terms the operation constrains from an atom.
// The result is a fresh slice; callers may rewrite it freely.
func (p *PreOp) Args(a Atom) []Term {
	out := make([]Term, p.nArgs)
	copy(out, a.args[:p.nArgs])
	return out
}

// Result selects the atom's result term, if the operation has one.
func (p *PreOp) Result(a Atom) (Term, bool) {
	if !p.hasResult {
		return nil, false
	}
	return a.args[p.nArgs], true
}

// Eval returns the concrete evaluator of a user-registered function, or
// nil for built-in operations.
func (p *PreOp) Eval() WordFunc { return p.eval }

// BuildRegex returns the regex constructor evaluator, or nil.
func (p *PreOp) BuildRegex() RegexBuildFunc { return p.buildRegex }

// TransducerName returns the name of the backing transducer for
// OpTransduce operations.
func (p *PreOp) TransducerName() string { return p.transName }

// Transducer returns the compiled transducer for OpTransduce
// operations. It is non-nil once the registry's operators have been
// materialized.
func (p *PreOp) Transducer() *automata.Transducer { return p.trans }

// withTransducer returns a copy of the PreOp with the compiled
// transducer attached. Used once, inside operator materialization.
func (p *PreOp) withTransducer(t *automata.Transducer) *PreOp {
	cp := *p
	cp.trans = t
	return &cp
}
