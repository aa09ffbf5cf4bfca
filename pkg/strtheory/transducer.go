// Symbolic transducers and the compiler boundary.
//
// Extension code supplies transducers symbolically: states, guarded
// rules over character ranges, and an output action per rule. The
// symbolic form is alphabet-independent (guards may cover "any
// character"); the transducer compiler resolves it against the theory's
// alphabet into a concrete finite-state form exactly once, the first
// time the frozen registry's operators are materialized.
package strtheory

import (
	"fmt"

	"github.com/gitrdm/gostrlogic/internal/automata"
)

// anyChar marks a guard covering the whole alphabet; resolved at
// compile time.
const anyChar = -1

// CharGuard is a symbolic input guard: an inclusive character range or
// the whole alphabet.
type CharGuard struct {
	Lo, Hi int
}

// GuardRange guards an inclusive character range.
func GuardRange(lo, hi int) CharGuard { return CharGuard{Lo: lo, Hi: hi} }

// GuardChar guards a single character.
func GuardChar(c int) CharGuard { return CharGuard{Lo: c, Hi: c} }

// GuardAny guards every character of the alphabet, whatever its size.
func GuardAny() CharGuard { return CharGuard{Lo: anyChar, Hi: anyChar} }

// OutputSpec describes what a symbolic rule emits.
type OutputSpec struct {
	action  automata.OutputAction
	outChar int
}

// OutputCopy emits the consumed character unchanged.
func OutputCopy() OutputSpec { return OutputSpec{action: automata.EmitCopy} }

// OutputChar emits a fixed character.
func OutputChar(c int) OutputSpec { return OutputSpec{action: automata.EmitChar, outChar: c} }

// OutputDrop consumes the character and emits nothing.
func OutputDrop() OutputSpec { return OutputSpec{action: automata.EmitNothing} }

// SymbolicRule is one guarded transition of a symbolic transducer.
type SymbolicRule struct {
	From   int
	Guard  CharGuard
	To     int
	Output OutputSpec
}

// SymbolicTransducer is the algebraic description extension code
// registers. States are 1-based, matching the compiled convention.
type SymbolicTransducer struct {
	NumStates int
	Start     int
	Accept    []int
	Rules     []SymbolicRule
}

// TransducerCompiler translates a symbolic transducer description into
// a concrete finite-state transducer over the theory's alphabet.
// Compilation failures are construction-time errors: a theory cannot be
// built without a valid compiled form for every declared transducer.
type TransducerCompiler interface {
	Compile(name string, sym *SymbolicTransducer, alphabet Alphabet) (*automata.Transducer, error)
}

// RangeCompiler is the reference TransducerCompiler for symbolic
// transducers whose guards are character ranges. It resolves "any
// character" guards against the alphabet and delegates structural
// validation to the automata package.
type RangeCompiler struct{}

// Compile implements TransducerCompiler.
func (RangeCompiler) Compile(name string, sym *SymbolicTransducer, alphabet Alphabet) (*automata.Transducer, error) {
	if sym == nil {
		return nil, fmt.Errorf("strtheory: transducer %q has no symbolic description", name)
	}
	transitions := make([]automata.TransducerTransition, len(sym.Rules))
	for i, r := range sym.Rules {
		lo, hi := r.Guard.Lo, r.Guard.Hi
		if lo == anyChar {
			lo, hi = 0, alphabet.Size()-1
		}
		transitions[i] = automata.TransducerTransition{
			From:    r.From,
			Lo:      lo,
			Hi:      hi,
			To:      r.To,
			Action:  r.Output.action,
			OutChar: r.Output.outChar,
		}
	}
	t, err := automata.NewTransducer(alphabet.Size(), sym.NumStates, sym.Start, sym.Accept, transitions)
	if err != nil {
		return nil, fmt.Errorf("strtheory: compiling transducer %q: %w", name, err)
	}
	return t, nil
}
