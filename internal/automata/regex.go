// Regular-expression values and their compilation to DFAs.
//
// Regex is the opaque payload behind the theory's regex sort. Compilation
// goes through a Thompson-style NFA with epsilon transitions, then subset
// construction, producing a DFA in this package's 1-based convention.
package automata

import (
	"fmt"
	"sort"
	"strings"
)

// RegexKind discriminates the regex node types.
type RegexKind int

const (
	// RegexNone denotes the empty language.
	RegexNone RegexKind = iota
	// RegexEps denotes the language containing only the empty word.
	RegexEps
	// RegexAllChar denotes any single character.
	RegexAllChar
	// RegexRange denotes a single character in [Lo..Hi].
	RegexRange
	// RegexWord denotes exactly one literal word.
	RegexWord
	// RegexCat denotes concatenation of the sub-expressions.
	RegexCat
	// RegexUnion denotes the union of the sub-expressions.
	RegexUnion
	// RegexStar denotes Kleene closure of the single sub-expression.
	RegexStar
)

// Regex is an immutable regular-expression tree over character codes.
type Regex struct {
	Kind   RegexKind
	Lo, Hi int      // RegexRange bounds, inclusive
	Word   []int    // RegexWord payload
	Subs   []*Regex // RegexCat, RegexUnion, RegexStar children
}

// None returns the empty-language regex.
func None() *Regex { return &Regex{Kind: RegexNone} }

// Eps returns the empty-word regex.
func Eps() *Regex { return &Regex{Kind: RegexEps} }

// AnyChar returns the any-single-character regex.
func AnyChar() *Regex { return &Regex{Kind: RegexAllChar} }

// Range returns the single-character range regex [lo..hi].
func Range(lo, hi int) *Regex { return &Regex{Kind: RegexRange, Lo: lo, Hi: hi} }

// Literal returns the regex accepting exactly the given word.
func Literal(word []int) *Regex {
	w := make([]int, len(word))
	copy(w, word)
	return &Regex{Kind: RegexWord, Word: w}
}

// Cat returns the concatenation of the given expressions.
func Cat(subs ...*Regex) *Regex { return &Regex{Kind: RegexCat, Subs: subs} }

// Union returns the union of the given expressions.
func Union(subs ...*Regex) *Regex { return &Regex{Kind: RegexUnion, Subs: subs} }

// Star returns the Kleene closure of the given expression.
func Star(sub *Regex) *Regex { return &Regex{Kind: RegexStar, Subs: []*Regex{sub}} }

// String renders the regex for debugging.
func (r *Regex) String() string {
	switch r.Kind {
	case RegexNone:
		return "∅"
	case RegexEps:
		return "ε"
	case RegexAllChar:
		return "."
	case RegexRange:
		return fmt.Sprintf("[%d-%d]", r.Lo, r.Hi)
	case RegexWord:
		parts := make([]string, len(r.Word))
		for i, c := range r.Word {
			parts[i] = fmt.Sprintf("%d", c)
		}
		return "\"" + strings.Join(parts, ",") + "\""
	case RegexCat, RegexUnion, RegexStar:
		parts := make([]string, len(r.Subs))
		for i, s := range r.Subs {
			parts[i] = s.String()
		}
		switch r.Kind {
		case RegexCat:
			return "(" + strings.Join(parts, "·") + ")"
		case RegexUnion:
			return "(" + strings.Join(parts, "|") + ")"
		default:
			return "(" + parts[0] + ")*"
		}
	default:
		return "?"
	}
}

// nfa is the intermediate Thompson construction: 0-based states, epsilon
// edges, and character-range edges.
type nfa struct {
	next  int
	eps   map[int][]int
	edges map[int][]nfaEdge
}

type nfaEdge struct {
	lo, hi, to int
}

func newNFA() *nfa {
	return &nfa{eps: map[int][]int{}, edges: map[int][]nfaEdge{}}
}

func (n *nfa) state() int {
	s := n.next
	n.next++
	return s
}

func (n *nfa) addEps(from, to int) {
	n.eps[from] = append(n.eps[from], to)
}

func (n *nfa) addRange(from, lo, hi, to int) {
	n.edges[from] = append(n.edges[from], nfaEdge{lo: lo, hi: hi, to: to})
}

// build adds the fragment for r between fresh start/end states and
// returns them.
func (n *nfa) build(r *Regex, alphabet int) (int, int, error) {
	start, end := n.state(), n.state()
	switch r.Kind {
	case RegexNone:
		// no edge between start and end
	case RegexEps:
		n.addEps(start, end)
	case RegexAllChar:
		n.addRange(start, 0, alphabet-1, end)
	case RegexRange:
		if r.Lo < 0 || r.Hi >= alphabet || r.Lo > r.Hi {
			return 0, 0, fmt.Errorf("regex: range [%d..%d] outside alphabet [0..%d]", r.Lo, r.Hi, alphabet-1)
		}
		n.addRange(start, r.Lo, r.Hi, end)
	case RegexWord:
		cur := start
		for _, c := range r.Word {
			if c < 0 || c >= alphabet {
				return 0, 0, fmt.Errorf("regex: literal char %d outside alphabet [0..%d]", c, alphabet-1)
			}
			nxt := n.state()
			n.addRange(cur, c, c, nxt)
			cur = nxt
		}
		n.addEps(cur, end)
	case RegexCat:
		cur := start
		for _, sub := range r.Subs {
			s, e, err := n.build(sub, alphabet)
			if err != nil {
				return 0, 0, err
			}
			n.addEps(cur, s)
			cur = e
		}
		n.addEps(cur, end)
	case RegexUnion:
		for _, sub := range r.Subs {
			s, e, err := n.build(sub, alphabet)
			if err != nil {
				return 0, 0, err
			}
			n.addEps(start, s)
			n.addEps(e, end)
		}
	case RegexStar:
		if len(r.Subs) != 1 {
			return 0, 0, fmt.Errorf("regex: star must have exactly one sub-expression")
		}
		s, e, err := n.build(r.Subs[0], alphabet)
		if err != nil {
			return 0, 0, err
		}
		n.addEps(start, s)
		n.addEps(e, s)
		n.addEps(start, end)
		n.addEps(e, end)
	default:
		return 0, 0, fmt.Errorf("regex: unknown kind %d", r.Kind)
	}
	return start, end, nil
}

// closure expands a state set over epsilon edges in place.
func (n *nfa) closure(set map[int]bool) {
	stack := make([]int, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.eps[s] {
			if !set[t] {
				set[t] = true
				stack = append(stack, t)
			}
		}
	}
}

func setKey(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, s)
	}
	sort.Ints(ids)
	var b strings.Builder
	for _, s := range ids {
		fmt.Fprintf(&b, "%d,", s)
	}
	return b.String()
}

// CompileRegex converts a regex tree into a DFA over the given alphabet.
func CompileRegex(r *Regex, alphabet int) (*DFA, error) {
	if alphabet < 1 {
		return nil, fmt.Errorf("regex: alphabet must be >= 1, got %d", alphabet)
	}
	if r == nil {
		return nil, fmt.Errorf("regex: nil expression")
	}
	n := newNFA()
	start, end, err := n.build(r, alphabet)
	if err != nil {
		return nil, err
	}

	startSet := map[int]bool{start: true}
	n.closure(startSet)

	// Subset construction over closed state sets.
	index := map[string]int{}
	sets := []map[int]bool{startSet}
	index[setKey(startSet)] = 1
	delta := [][]int{}
	accept := []int{}

	for i := 0; i < len(sets); i++ {
		cur := sets[i]
		row := make([]int, alphabet)
		for c := 0; c < alphabet; c++ {
			next := map[int]bool{}
			for s := range cur {
				for _, e := range n.edges[s] {
					if c >= e.lo && c <= e.hi {
						next[e.to] = true
					}
				}
			}
			if len(next) == 0 {
				continue
			}
			n.closure(next)
			key := setKey(next)
			id, ok := index[key]
			if !ok {
				id = len(sets) + 1
				index[key] = id
				sets = append(sets, next)
			}
			row[c] = id
		}
		delta = append(delta, row)
		if cur[end] {
			accept = append(accept, i+1)
		}
	}
	return NewDFA(alphabet, len(sets), 1, accept, delta)
}
