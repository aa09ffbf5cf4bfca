// Symbol catalogue: the fixed vocabulary of string and regex functions
// and predicates, plus the slots extension code registers into.
//
// Functions are relationally encoded: every function of arity n has a
// companion predicate of arity n+1 whose last argument carries the
// result. Genuine relations — string equality, regex membership, and
// transducer predicates — have no originating function. The catalogue
// keeps an explicit reverse map from predicate to originating function
// instead of recovering it by dynamic dispatch.
package strtheory

import (
	"fmt"
)

// SymbolKind partitions symbols by origin.
type SymbolKind int

const (
	// KindCore marks the predefined string/regex symbols.
	KindCore SymbolKind = iota
	// KindExtra marks user-registered functions such as reverse.
	KindExtra
	// KindTransducer marks binary string relations backed by a named
	// compiled transducer.
	KindTransducer
)

// String returns a human-readable kind name.
func (k SymbolKind) String() string {
	switch k {
	case KindCore:
		return "core"
	case KindExtra:
		return "extra"
	case KindTransducer:
		return "transducer"
	default:
		return "unknown"
	}
}

// Function is a string-domain function symbol with a fixed signature.
type Function struct {
	name string
	args []Sort
	res  Sort
	kind SymbolKind
}

// Name returns the function's symbol name.
func (f *Function) Name() string { return f.name }

// Arity returns the number of arguments.
func (f *Function) Arity() int { return len(f.args) }

// ArgSorts returns a copy of the argument sort signature.
func (f *Function) ArgSorts() []Sort {
	out := make([]Sort, len(f.args))
	copy(out, f.args)
	return out
}

// ResultSort returns the result sort.
func (f *Function) ResultSort() Sort { return f.res }

// Kind returns the symbol's origin category.
func (f *Function) Kind() SymbolKind { return f.kind }

// String returns the signature rendering, e.g. "str.++ : Str×Str→Str".
func (f *Function) String() string {
	return fmt.Sprintf("%s/%d", f.name, len(f.args))
}

// Predicate is a string-domain predicate symbol with a fixed signature.
// Relationally-encoded functions share their function's name.
type Predicate struct {
	name string
	args []Sort
	kind SymbolKind
}

// Name returns the predicate's symbol name.
func (p *Predicate) Name() string { return p.name }

// Arity returns the number of arguments.
func (p *Predicate) Arity() int { return len(p.args) }

// ArgSorts returns a copy of the argument sort signature.
func (p *Predicate) ArgSorts() []Sort {
	out := make([]Sort, len(p.args))
	copy(out, p.args)
	return out
}

// Kind returns the symbol's origin category.
func (p *Predicate) Kind() SymbolKind { return p.kind }

// String returns "name/arity".
func (p *Predicate) String() string {
	return fmt.Sprintf("%s/%d", p.name, len(p.args))
}

// Catalogue is the complete symbol table for one theory instance: the
// predefined vocabulary plus whatever extensions were registered before
// the registry froze. Immutable once the registry is built.
type Catalogue struct {
	alphabet Alphabet

	functions  []*Function
	predicates []*Predicate

	predOf map[*Function]*Predicate
	funOf  map[*Predicate]*Function
	byName map[string]*Predicate

	// Predefined string functions.
	Empty      *Function // str.empty : → Str
	Cons       *Function // str.cons : Char×Str → Str
	Cat        *Function // str.++ : Str×Str → Str
	Len        *Function // str.len : Str → Int
	Replace    *Function // str.replace : Str×Str×Str → Str
	ReplaceAll *Function // str.replace_all : Str×Str×Str → Str

	// Predefined regex constructors.
	ToRE      *Function // str.to_re : Str → RegLan
	ReNone    *Function // re.none : → RegLan
	ReEps     *Function // re.eps : → RegLan
	ReAllChar *Function // re.allchar : → RegLan
	ReRange   *Function // re.range : Char×Char → RegLan
	ReCat     *Function // re.++ : RegLan×RegLan → RegLan
	ReUnion   *Function // re.union : RegLan×RegLan → RegLan
	ReStar    *Function // re.* : RegLan → RegLan

	// Genuine relations.
	StrEq *Predicate // str.= : Str×Str
	InRE  *Predicate // str.in_re : Str×RegLan
}

// newCatalogue builds the predefined vocabulary for an alphabet.
func newCatalogue(alphabet Alphabet) *Catalogue {
	c := &Catalogue{
		alphabet: alphabet,
		predOf:   make(map[*Function]*Predicate),
		funOf:    make(map[*Predicate]*Function),
		byName:   make(map[string]*Predicate),
	}

	c.Empty = c.addFunction("str.empty", nil, SortString, KindCore)
	c.Cons = c.addFunction("str.cons", []Sort{SortChar, SortString}, SortString, KindCore)
	c.Cat = c.addFunction("str.++", []Sort{SortString, SortString}, SortString, KindCore)
	c.Len = c.addFunction("str.len", []Sort{SortString}, SortInt, KindCore)
	c.Replace = c.addFunction("str.replace", []Sort{SortString, SortString, SortString}, SortString, KindCore)
	c.ReplaceAll = c.addFunction("str.replace_all", []Sort{SortString, SortString, SortString}, SortString, KindCore)

	c.ToRE = c.addFunction("str.to_re", []Sort{SortString}, SortRegex, KindCore)
	c.ReNone = c.addFunction("re.none", nil, SortRegex, KindCore)
	c.ReEps = c.addFunction("re.eps", nil, SortRegex, KindCore)
	c.ReAllChar = c.addFunction("re.allchar", nil, SortRegex, KindCore)
	c.ReRange = c.addFunction("re.range", []Sort{SortChar, SortChar}, SortRegex, KindCore)
	c.ReCat = c.addFunction("re.++", []Sort{SortRegex, SortRegex}, SortRegex, KindCore)
	c.ReUnion = c.addFunction("re.union", []Sort{SortRegex, SortRegex}, SortRegex, KindCore)
	c.ReStar = c.addFunction("re.*", []Sort{SortRegex}, SortRegex, KindCore)

	c.StrEq = c.addRelation("str.=", []Sort{SortString, SortString}, KindCore)
	c.InRE = c.addRelation("str.in_re", []Sort{SortString, SortRegex}, KindCore)

	return c
}

// addFunction declares a function and its relationally-encoded
// predicate (result as last argument).
func (c *Catalogue) addFunction(name string, args []Sort, res Sort, kind SymbolKind) *Function {
	f := &Function{name: name, args: args, res: res, kind: kind}
	pargs := make([]Sort, len(args)+1)
	copy(pargs, args)
	pargs[len(args)] = res
	p := &Predicate{name: name, args: pargs, kind: kind}
	c.functions = append(c.functions, f)
	c.predicates = append(c.predicates, p)
	c.predOf[f] = p
	c.funOf[p] = f
	c.byName[name] = p
	return f
}

// addRelation declares a genuine relation with no originating function.
func (c *Catalogue) addRelation(name string, args []Sort, kind SymbolKind) *Predicate {
	p := &Predicate{name: name, args: args, kind: kind}
	c.predicates = append(c.predicates, p)
	c.byName[name] = p
	return p
}

// Alphabet returns the fixed alphabet this catalogue was built for.
func (c *Catalogue) Alphabet() Alphabet { return c.alphabet }

// Functions returns all declared functions in declaration order.
// The returned slice must not be modified.
func (c *Catalogue) Functions() []*Function { return c.functions }

// Predicates returns all declared predicates in declaration order.
// The returned slice must not be modified.
func (c *Catalogue) Predicates() []*Predicate { return c.predicates }

// PredicateOf returns the relationally-encoded predicate of a function.
func (c *Catalogue) PredicateOf(f *Function) *Predicate { return c.predOf[f] }

// FunctionOf returns the originating function of a predicate, if any.
// This is the explicit reverse lookup replacing pattern-match dispatch
// over predicate identity.
func (c *Catalogue) FunctionOf(p *Predicate) (*Function, bool) {
	f, ok := c.funOf[p]
	return f, ok
}

// Lookup returns the declared predicate with the given name, if any.
func (c *Catalogue) Lookup(name string) (*Predicate, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Contains reports whether the predicate belongs to this catalogue.
func (c *Catalogue) Contains(p *Predicate) bool {
	_, ok := c.byName[p.name]
	return ok && c.byName[p.name] == p
}
