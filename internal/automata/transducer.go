// Finite-state transducers over the character alphabet.
//
// A Transducer relates an input word to an output word. It follows the
// same 1-based state convention as DFA. Transitions carry an input
// character range and one of three output actions: copy the consumed
// character, emit a fixed character, or emit nothing.
package automata

import (
	"fmt"
)

// OutputAction describes what a transducer transition emits.
type OutputAction int

const (
	// EmitCopy emits the consumed input character unchanged.
	EmitCopy OutputAction = iota
	// EmitChar emits the transition's fixed OutChar.
	EmitChar
	// EmitNothing consumes the input character and emits nothing.
	EmitNothing
)

// TransducerTransition is one guarded edge of a transducer.
type TransducerTransition struct {
	From    int          // source state, 1-based
	Lo, Hi  int          // inclusive input character range
	To      int          // target state, 1-based
	Action  OutputAction // what the edge emits
	OutChar int          // fixed output character for EmitChar
}

// Transducer is a compiled finite-state transducer. Immutable after
// construction and safe for concurrent use.
type Transducer struct {
	numStates int
	start     int
	accept    []bool // length numStates+1, 1-based
	// byState[s-1] holds outgoing transitions of state s, in declaration
	// order. The first applicable transition wins, which makes Image
	// deterministic even for overlapping guards.
	byState  [][]TransducerTransition
	alphabet int
}

// NewTransducer validates and builds a compiled transducer.
func NewTransducer(alphabet, numStates, start int, acceptStates []int, transitions []TransducerTransition) (*Transducer, error) {
	if alphabet < 1 {
		return nil, fmt.Errorf("Transducer: alphabet must be >= 1, got %d", alphabet)
	}
	if numStates < 1 {
		return nil, fmt.Errorf("Transducer: numStates must be >= 1, got %d", numStates)
	}
	if start < 1 || start > numStates {
		return nil, fmt.Errorf("Transducer: start state %d out of range [1..%d]", start, numStates)
	}
	accept := make([]bool, numStates+1)
	for _, a := range acceptStates {
		if a < 1 || a > numStates {
			return nil, fmt.Errorf("Transducer: accept state %d out of range [1..%d]", a, numStates)
		}
		accept[a] = true
	}
	byState := make([][]TransducerTransition, numStates)
	for i, tr := range transitions {
		if tr.From < 1 || tr.From > numStates {
			return nil, fmt.Errorf("Transducer: transition %d source state %d out of range [1..%d]", i, tr.From, numStates)
		}
		if tr.To < 1 || tr.To > numStates {
			return nil, fmt.Errorf("Transducer: transition %d target state %d out of range [1..%d]", i, tr.To, numStates)
		}
		if tr.Lo < 0 || tr.Hi >= alphabet || tr.Lo > tr.Hi {
			return nil, fmt.Errorf("Transducer: transition %d guard [%d..%d] outside alphabet [0..%d]", i, tr.Lo, tr.Hi, alphabet-1)
		}
		if tr.Action == EmitChar && (tr.OutChar < 0 || tr.OutChar >= alphabet) {
			return nil, fmt.Errorf("Transducer: transition %d output char %d outside alphabet [0..%d]", i, tr.OutChar, alphabet-1)
		}
		byState[tr.From-1] = append(byState[tr.From-1], tr)
	}
	return &Transducer{
		numStates: numStates,
		start:     start,
		accept:    accept,
		byState:   byState,
		alphabet:  alphabet,
	}, nil
}

// Alphabet returns the alphabet size.
func (t *Transducer) Alphabet() int { return t.alphabet }

// Image runs the transducer on an input word and returns the output word.
// The second result is false when no accepting run exists. First-match
// transition order makes the result deterministic.
func (t *Transducer) Image(input []int) ([]int, bool) {
	s := t.start
	out := []int{}
	for _, c := range input {
		if c < 0 || c >= t.alphabet {
			return nil, false
		}
		matched := false
		for _, tr := range t.byState[s-1] {
			if c < tr.Lo || c > tr.Hi {
				continue
			}
			switch tr.Action {
			case EmitCopy:
				out = append(out, c)
			case EmitChar:
				out = append(out, tr.OutChar)
			case EmitNothing:
				// consume silently
			}
			s = tr.To
			matched = true
			break
		}
		if !matched {
			return nil, false
		}
	}
	if !t.accept[s] {
		return nil, false
	}
	return out, true
}

// Relates reports whether the transducer maps input to output.
func (t *Transducer) Relates(input, output []int) bool {
	img, ok := t.Image(input)
	if !ok {
		return false
	}
	if len(img) != len(output) {
		return false
	}
	for i := range img {
		if img[i] != output[i] {
			return false
		}
	}
	return true
}
