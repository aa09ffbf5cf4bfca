// Term representation for the string theory.
//
// Terms are deliberately minimal: the host solver owns its own term
// language, and this layer only needs enough structure to describe atoms,
// cache them canonically, and hand equalities back. Every Term renders to
// a canonical string; structurally equal terms render identically, which
// is what the decision cache keys on.
package strtheory

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gitrdm/gostrlogic/internal/automata"
)

// Term represents any value appearing in a string-theory atom.
type Term interface {
	// String returns a canonical, human-readable rendering of the term.
	String() string

	// Equal checks structural equality. This is strict equality, not
	// unification.
	Equal(other Term) bool

	// IsVar returns true if this term is a solver variable.
	IsVar() bool
}

// varCounter produces process-unique variable identifiers.
var varCounter int64

// Var is a solver-level variable of string or integer sort.
type Var struct {
	id   int64
	name string
}

// Fresh creates a new variable with a unique identity.
// The name is for debugging only; identity is the numeric id.
func Fresh(name string) *Var {
	return &Var{id: atomic.AddInt64(&varCounter, 1), name: name}
}

// ID returns the variable's unique identifier.
func (v *Var) ID() int64 { return v.id }

// Name returns the debugging name the variable was created with.
func (v *Var) Name() string { return v.name }

// String returns a canonical rendering of the variable.
func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s_%d", v.name, v.id)
	}
	return fmt.Sprintf("_%d", v.id)
}

// Equal checks if two variables are the same variable.
func (v *Var) Equal(other Term) bool {
	o, ok := other.(*Var)
	return ok && o.id == v.id
}

// IsVar always returns true for variables.
func (v *Var) IsVar() bool { return true }

// Word is a literal word: a sequence of character codes.
type Word struct {
	chars []int
}

// NewWord creates a literal word from character codes. The slice is
// copied; Word values are immutable.
func NewWord(chars []int) *Word {
	w := make([]int, len(chars))
	copy(w, chars)
	return &Word{chars: w}
}

// WordFromString creates a literal word from the bytes of a Go string.
// Intended for byte-alphabet theories (alphabet size 256).
func WordFromString(s string) *Word {
	w := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		w[i] = int(s[i])
	}
	return &Word{chars: w}
}

// EmptyWord returns the empty literal word.
func EmptyWord() *Word { return &Word{} }

// Chars returns a copy of the character codes.
func (w *Word) Chars() []int {
	out := make([]int, len(w.chars))
	copy(out, w.chars)
	return out
}

// Len returns the word length.
func (w *Word) Len() int { return len(w.chars) }

// String returns a canonical rendering of the word. Printable byte
// codes render as a quoted string, anything else as a code list.
func (w *Word) String() string {
	printable := true
	for _, c := range w.chars {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if printable {
		var b strings.Builder
		b.WriteByte('"')
		for _, c := range w.chars {
			b.WriteByte(byte(c))
		}
		b.WriteByte('"')
		return b.String()
	}
	parts := make([]string, len(w.chars))
	for i, c := range w.chars {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Equal checks if two words contain the same character sequence.
func (w *Word) Equal(other Term) bool {
	o, ok := other.(*Word)
	if !ok || len(o.chars) != len(w.chars) {
		return false
	}
	for i := range w.chars {
		if w.chars[i] != o.chars[i] {
			return false
		}
	}
	return true
}

// IsVar always returns false for words.
func (w *Word) IsVar() bool { return false }

// IntLit is an integer literal (character codes and lengths).
type IntLit struct {
	value int
}

// NewIntLit creates an integer literal.
func NewIntLit(v int) *IntLit { return &IntLit{value: v} }

// Value returns the literal's value.
func (n *IntLit) Value() int { return n.value }

// String returns the decimal rendering.
func (n *IntLit) String() string { return fmt.Sprintf("%d", n.value) }

// Equal checks numeric equality against another integer literal.
func (n *IntLit) Equal(other Term) bool {
	o, ok := other.(*IntLit)
	return ok && o.value == n.value
}

// IsVar always returns false for integer literals.
func (n *IntLit) IsVar() bool { return false }

// RegexLit is a ground regular-expression value of the opaque regex
// sort. The payload is the automata-level expression tree.
type RegexLit struct {
	re *automata.Regex
}

// NewRegexLit wraps an automata regex as a term.
func NewRegexLit(re *automata.Regex) *RegexLit { return &RegexLit{re: re} }

// Regex returns the underlying expression tree.
func (r *RegexLit) Regex() *automata.Regex { return r.re }

// String returns the rendering of the underlying expression.
func (r *RegexLit) String() string { return r.re.String() }

// Equal compares by rendering; regex terms have canonical renderings.
func (r *RegexLit) Equal(other Term) bool {
	o, ok := other.(*RegexLit)
	return ok && o.re.String() == r.re.String()
}

// IsVar always returns false for regex literals.
func (r *RegexLit) IsVar() bool { return false }
