package strtheory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// renderAtoms gives a structural view of a snapshot that go-cmp can
// diff without reaching into unexported fields.
func renderAtoms(cs *ConstraintSet) []string {
	out := make([]string, 0, cs.Size())
	for _, a := range cs.Atoms() {
		out = append(out, a.String())
	}
	return out
}

func TestPreprocessSupportedOnlyKeepsSessionComplete(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	s := NewSession(th)

	x := Fresh("x")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, WordFromString("ab"), Fresh("y"), x),
		lenAtom(t, cat, x, NewIntLit(5)),
	})

	got := s.Preprocess(cs)
	if s.Incomplete() {
		t.Fatalf("supported-only constraint set must not raise the incompleteness flag")
	}
	if got != cs {
		t.Fatalf("preprocessing must return the snapshot unchanged")
	}
	if diff := cmp.Diff(renderAtoms(cs), renderAtoms(got)); diff != "" {
		t.Fatalf("preprocessing altered the constraint set (-want +got):\n%s", diff)
	}
}

func TestPreprocessUnsupportedRaisesFlagMonotonically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = LengthOff
	th := newTestTheory(t, cfg)
	cat := th.Catalogue()
	s := NewSession(th)

	withLen := NewConstraintSet([]Atom{lenAtom(t, cat, Fresh("x"), NewIntLit(3))})
	before := renderAtoms(withLen)

	got := s.Preprocess(withLen)
	if !s.Incomplete() {
		t.Fatalf("length atom under LengthOff must raise the incompleteness flag")
	}
	if diff := cmp.Diff(before, renderAtoms(got)); diff != "" {
		t.Fatalf("preprocessing altered the constraint set (-want +got):\n%s", diff)
	}

	// The flag is monotonic: a later supported-only set cannot clear it.
	supported := NewConstraintSet([]Atom{
		catAtom(t, cat, Fresh("u"), Fresh("v"), Fresh("r")),
	})
	s.Preprocess(supported)
	if !s.Incomplete() {
		t.Fatalf("incompleteness flag must stay raised for the session's lifetime")
	}
}

func TestPreprocessFreshSessionStartsComplete(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = LengthOff
	th := newTestTheory(t, cfg)
	cat := th.Catalogue()

	stale := NewSession(th)
	stale.Preprocess(NewConstraintSet([]Atom{lenAtom(t, cat, Fresh("x"), NewIntLit(1))}))
	if !stale.Incomplete() {
		t.Fatalf("setup: expected stale session to be incomplete")
	}

	fresh := NewSession(th)
	if fresh.Incomplete() {
		t.Fatalf("a new session must start with a clear incompleteness flag")
	}
}
