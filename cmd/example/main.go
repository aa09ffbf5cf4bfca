// Command example walks through the string-theory integration layer:
// building a theory, deciding goals through the goal handler, breaking
// cyclic word equations, and translating a found model back into
// equalities.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gitrdm/gostrlogic/pkg/strtheory"
)

func main() {
	fmt.Println("=== gostrlogic Examples ===")
	fmt.Println()

	th := buildTheory()
	concatWithLength(th)
	regexMembership(th)
	unsatisfiableGoal(th)
	cyclicEquations(th)
}

// buildTheory constructs a byte-alphabet theory with one extension
// function and one transducer predicate registered before the freeze.
func buildTheory() *strtheory.Theory {
	b, err := strtheory.NewBuilder(256)
	if err != nil {
		log.Fatalf("builder: %v", err)
	}

	// str.reverse as a user extension with a concrete evaluator.
	_, err = b.AddFunction("str.reverse",
		[]strtheory.Sort{strtheory.SortString}, strtheory.SortString,
		func(args [][]int) ([]int, error) {
			in := args[0]
			out := make([]int, len(in))
			for i, c := range in {
				out[len(in)-1-i] = c
			}
			return out, nil
		})
	if err != nil {
		log.Fatalf("register str.reverse: %v", err)
	}

	// str.strip_digits as a transducer predicate: drops 0-9, copies the
	// rest. First matching rule wins.
	_, err = b.AddTransducer("str.strip_digits", &strtheory.SymbolicTransducer{
		NumStates: 1,
		Start:     1,
		Accept:    []int{1},
		Rules: []strtheory.SymbolicRule{
			{From: 1, Guard: strtheory.GuardRange('0', '9'), To: 1, Output: strtheory.OutputDrop()},
			{From: 1, Guard: strtheory.GuardAny(), To: 1, Output: strtheory.OutputCopy()},
		},
	})
	if err != nil {
		log.Fatalf("register str.strip_digits: %v", err)
	}

	th, err := strtheory.NewTheory(strtheory.DefaultConfig(), b.Build(nil))
	if err != nil {
		log.Fatalf("theory: %v", err)
	}
	return th
}

// newHandler wires a fresh session and the reference searcher.
func newHandler(th *strtheory.Theory) *strtheory.GoalHandler {
	session := strtheory.NewSession(th)
	return strtheory.NewGoalHandler(session, strtheory.NewBasicSearcher(th.Config()))
}

// concatWithLength decides x = "ab" ++ y with |x| = 5 and extracts the
// model.
func concatWithLength(th *strtheory.Theory) {
	fmt.Println("1. Concatenation with a length constraint:")
	cat := th.Catalogue()
	h := newHandler(th)

	y := strtheory.Fresh("y")
	x := strtheory.Fresh("x")
	cs := strtheory.NewConstraintSet([]strtheory.Atom{
		strtheory.MustAtom(cat.PredicateOf(cat.Cat), strtheory.WordFromString("ab"), y, x),
		strtheory.MustAtom(cat.PredicateOf(cat.Len), x, strtheory.NewIntLit(5)),
	})
	fmt.Printf("   goal: %s\n", cs)

	actions, err := h.HandleGoal(context.Background(), strtheory.StateFinal, cs)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}
	fmt.Printf("   actions: %v (empty means satisfiable)\n", actions)

	eqs, ok, err := h.ExtractModel(cs, strtheory.NewSetOrdering(x, y), strtheory.LiteralBuilder{})
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	fmt.Printf("   model contributed: %v\n", ok)
	for _, eq := range eqs {
		fmt.Printf("   %s\n", eq)
	}
	fmt.Println()
}

// regexMembership decides membership of a variable in (a|b)* with a
// fixed length.
func regexMembership(th *strtheory.Theory) {
	fmt.Println("2. Regex membership:")
	cat := th.Catalogue()
	h := newHandler(th)

	x := strtheory.Fresh("x")
	lo := strtheory.Fresh("range")
	cs := strtheory.NewConstraintSet([]strtheory.Atom{
		strtheory.MustAtom(cat.PredicateOf(cat.ReRange), strtheory.NewIntLit('a'), strtheory.NewIntLit('b'), lo),
		strtheory.MustAtom(cat.InRE, x, lo),
		strtheory.MustAtom(cat.PredicateOf(cat.Len), x, strtheory.NewIntLit(1)),
	})
	fmt.Printf("   goal: %s\n", cs)

	actions, err := h.HandleGoal(context.Background(), strtheory.StateFinal, cs)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}
	fmt.Printf("   actions: %v\n", actions)

	eqs, _, err := h.ExtractModel(cs, strtheory.NewSetOrdering(x), strtheory.LiteralBuilder{})
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	for _, eq := range eqs {
		fmt.Printf("   %s\n", eq)
	}
	fmt.Println()
}

// unsatisfiableGoal shows the contradiction action.
func unsatisfiableGoal(th *strtheory.Theory) {
	fmt.Println("3. An unsatisfiable goal:")
	cat := th.Catalogue()
	h := newHandler(th)

	x := strtheory.Fresh("x")
	cs := strtheory.NewConstraintSet([]strtheory.Atom{
		strtheory.MustAtom(cat.StrEq, x, strtheory.WordFromString("ab")),
		strtheory.MustAtom(cat.PredicateOf(cat.Len), x, strtheory.NewIntLit(3)),
	})
	fmt.Printf("   goal: %s\n", cs)

	actions, err := h.HandleGoal(context.Background(), strtheory.StateFinal, cs)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}
	fmt.Printf("   actions: %v\n", actions)
	fmt.Println()
}

// cyclicEquations shows cycle breaking taking priority over search.
func cyclicEquations(th *strtheory.Theory) {
	fmt.Println("4. Cyclic word equations:")
	cat := th.Catalogue()
	h := newHandler(th)

	x := strtheory.Fresh("x")
	y := strtheory.Fresh("y")
	z := strtheory.Fresh("z")
	w := strtheory.Fresh("w")
	cs := strtheory.NewConstraintSet([]strtheory.Atom{
		strtheory.MustAtom(cat.PredicateOf(cat.Cat), y, z, x), // x = y ++ z
		strtheory.MustAtom(cat.PredicateOf(cat.Cat), x, w, y), // y = x ++ w
	})
	fmt.Printf("   goal: %s\n", cs)

	actions, err := h.HandleGoal(context.Background(), strtheory.StateFinal, cs)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}
	for _, a := range actions {
		fmt.Printf("   %s\n", a)
	}
	fmt.Println()
}
