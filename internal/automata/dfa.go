// Package automata provides the concrete finite-automata values shared by
// the string theory's transducer compiler and its reference model searcher.
//
// Conventions (1-based states):
//   - States are numbered 1..NumStates. State 0 is reserved for "no
//     transition".
//   - Input symbols are character codes 0..alphabet-1, matching the
//     theory's bounded character sort.
//   - Delta rows are stored 0-based internally: Delta[s-1][c] gives the
//     successor of state s on character c, or 0 when no transition exists.
//
// All values in this package are immutable after construction and safe to
// share across concurrent readers.
package automata

import (
	"fmt"
)

// DFA is a deterministic finite automaton over the character alphabet.
type DFA struct {
	numStates int
	start     int
	accept    []bool  // length numStates+1, 1-based indexing
	delta     [][]int // numStates rows, alphabet columns, entry 0 = no transition
	alphabet  int
}

// NewDFA constructs a DFA and validates its shape.
//
// Parameters:
//   - alphabet: number of characters (>=1); symbols are 0..alphabet-1
//   - numStates: number of states (>=1), numbered 1..numStates
//   - start: start state in [1..numStates]
//   - acceptStates: accepting states (each in [1..numStates], may repeat)
//   - delta: numStates rows of alphabet entries; entry 0 denotes no
//     transition, positive entries must be in [1..numStates]
func NewDFA(alphabet, numStates, start int, acceptStates []int, delta [][]int) (*DFA, error) {
	if alphabet < 1 {
		return nil, fmt.Errorf("DFA: alphabet must be >= 1, got %d", alphabet)
	}
	if numStates < 1 {
		return nil, fmt.Errorf("DFA: numStates must be >= 1, got %d", numStates)
	}
	if start < 1 || start > numStates {
		return nil, fmt.Errorf("DFA: start state %d out of range [1..%d]", start, numStates)
	}
	if len(delta) != numStates {
		return nil, fmt.Errorf("DFA: delta must have %d rows, got %d", numStates, len(delta))
	}
	for s := 0; s < numStates; s++ {
		if len(delta[s]) != alphabet {
			return nil, fmt.Errorf("DFA: delta row %d has %d entries, expected %d", s+1, len(delta[s]), alphabet)
		}
		for c := 0; c < alphabet; c++ {
			ns := delta[s][c]
			if ns < 0 || ns > numStates {
				return nil, fmt.Errorf("DFA: delta[%d][%d]=%d out of range [0..%d]", s+1, c, ns, numStates)
			}
		}
	}
	accept := make([]bool, numStates+1)
	for _, a := range acceptStates {
		if a < 1 || a > numStates {
			return nil, fmt.Errorf("DFA: accept state %d out of range [1..%d]", a, numStates)
		}
		accept[a] = true
	}
	return &DFA{
		numStates: numStates,
		start:     start,
		accept:    accept,
		delta:     delta,
		alphabet:  alphabet,
	}, nil
}

// Alphabet returns the alphabet size.
func (d *DFA) Alphabet() int { return d.alphabet }

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return d.numStates }

// Accepts reports whether the DFA accepts the given word.
// Characters outside [0..alphabet-1] are rejected.
func (d *DFA) Accepts(word []int) bool {
	s := d.start
	for _, c := range word {
		if c < 0 || c >= d.alphabet {
			return false
		}
		s = d.delta[s-1][c]
		if s == 0 {
			return false
		}
	}
	return d.accept[s]
}

// IsEmpty reports whether the accepted language is empty.
// Uses forward reachability from the start state.
func (d *DFA) IsEmpty() bool {
	seen := make([]bool, d.numStates+1)
	stack := []int{d.start}
	seen[d.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if d.accept[s] {
			return false
		}
		for c := 0; c < d.alphabet; c++ {
			ns := d.delta[s-1][c]
			if ns != 0 && !seen[ns] {
				seen[ns] = true
				stack = append(stack, ns)
			}
		}
	}
	return true
}

// ShortestAccepted returns a shortest accepted word, preferring the
// smallest character at each step so the result is deterministic.
// Returns false if the language is empty.
func (d *DFA) ShortestAccepted() ([]int, bool) {
	type node struct {
		state int
		word  []int
	}
	seen := make([]bool, d.numStates+1)
	queue := []node{{state: d.start}}
	seen[d.start] = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if d.accept[n.state] {
			return n.word, true
		}
		for c := 0; c < d.alphabet; c++ {
			ns := d.delta[n.state-1][c]
			if ns != 0 && !seen[ns] {
				seen[ns] = true
				w := make([]int, len(n.word)+1)
				copy(w, n.word)
				w[len(n.word)] = c
				queue = append(queue, node{state: ns, word: w})
			}
		}
	}
	return nil, false
}

// AcceptedOfLength returns an accepted word of exactly length n,
// preferring the smallest character at each position. Returns false if no
// such word exists.
//
// Backward reachability (which states can still reach acceptance in the
// remaining i steps) is computed first, then the word is built greedily
// forward, the same two-pass scheme used for DFA filtering in constraint
// propagation.
func (d *DFA) AcceptedOfLength(n int) ([]int, bool) {
	if n < 0 {
		return nil, false
	}
	// live[i][s] = state s can reach an accepting state in exactly i steps
	live := make([][]bool, n+1)
	live[0] = make([]bool, d.numStates+1)
	copy(live[0], d.accept)
	for i := 1; i <= n; i++ {
		live[i] = make([]bool, d.numStates+1)
		for s := 1; s <= d.numStates; s++ {
			for c := 0; c < d.alphabet; c++ {
				ns := d.delta[s-1][c]
				if ns != 0 && live[i-1][ns] {
					live[i][s] = true
					break
				}
			}
		}
	}
	if !live[n][d.start] {
		return nil, false
	}
	word := make([]int, 0, n)
	s := d.start
	for i := n; i >= 1; i-- {
		advanced := false
		for c := 0; c < d.alphabet; c++ {
			ns := d.delta[s-1][c]
			if ns != 0 && live[i-1][ns] {
				word = append(word, c)
				s = ns
				advanced = true
				break
			}
		}
		if !advanced {
			// live[i][s] guaranteed a successor; unreachable
			return nil, false
		}
	}
	return word, true
}

// Intersect returns a DFA accepting the intersection of the two
// languages. Both operands must share an alphabet. The product is
// restricted to pairs reachable from the combined start state.
func Intersect(a, b *DFA) (*DFA, error) {
	if a.alphabet != b.alphabet {
		return nil, fmt.Errorf("DFA: alphabet mismatch %d vs %d", a.alphabet, b.alphabet)
	}
	type pair struct{ sa, sb int }
	index := map[pair]int{}
	order := []pair{}
	startPair := pair{a.start, b.start}
	index[startPair] = 1
	order = append(order, startPair)
	for i := 0; i < len(order); i++ {
		p := order[i]
		for c := 0; c < a.alphabet; c++ {
			na := a.delta[p.sa-1][c]
			nb := b.delta[p.sb-1][c]
			if na == 0 || nb == 0 {
				continue
			}
			np := pair{na, nb}
			if _, ok := index[np]; !ok {
				index[np] = len(order) + 1
				order = append(order, np)
			}
		}
	}
	delta := make([][]int, len(order))
	accept := []int{}
	for i, p := range order {
		row := make([]int, a.alphabet)
		for c := 0; c < a.alphabet; c++ {
			na := a.delta[p.sa-1][c]
			nb := b.delta[p.sb-1][c]
			if na != 0 && nb != 0 {
				row[c] = index[pair{na, nb}]
			}
		}
		delta[i] = row
		if a.accept[p.sa] && b.accept[p.sb] {
			accept = append(accept, i+1)
		}
	}
	// An empty accept list is legal and denotes the empty language.
	return NewDFA(a.alphabet, len(order), 1, accept, delta)
}

// Universal returns a DFA accepting every word over the alphabet.
func Universal(alphabet int) (*DFA, error) {
	row := make([]int, alphabet)
	for c := range row {
		row[c] = 1
	}
	return NewDFA(alphabet, 1, 1, []int{1}, [][]int{row})
}
