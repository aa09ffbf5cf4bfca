package automata

import "testing"

// buildSwapTransducer maps every 0 to 1 and every 1 to 0 over {0,1}.
func buildSwapTransducer(t *testing.T) *Transducer {
	t.Helper()
	tr, err := NewTransducer(2, 1, 1, []int{1}, []TransducerTransition{
		{From: 1, Lo: 0, Hi: 0, To: 1, Action: EmitChar, OutChar: 1},
		{From: 1, Lo: 1, Hi: 1, To: 1, Action: EmitChar, OutChar: 0},
	})
	if err != nil {
		t.Fatalf("NewTransducer error: %v", err)
	}
	return tr
}

func TestTransducer_Image(t *testing.T) {
	tr := buildSwapTransducer(t)
	out, ok := tr.Image([]int{0, 1, 1})
	if !ok {
		t.Fatalf("swap should accept any input")
	}
	want := []int{1, 0, 0}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}

func TestTransducer_Relates(t *testing.T) {
	tr := buildSwapTransducer(t)
	if !tr.Relates([]int{0, 0}, []int{1, 1}) {
		t.Fatalf("swap should relate 00 to 11")
	}
	if tr.Relates([]int{0, 0}, []int{1, 0}) {
		t.Fatalf("swap must not relate 00 to 10")
	}
}

func TestTransducer_DropAndReject(t *testing.T) {
	// Deletes every 0, copies every 1; accepts only after at least one 1.
	tr, err := NewTransducer(2, 2, 1, []int{2}, []TransducerTransition{
		{From: 1, Lo: 0, Hi: 0, To: 1, Action: EmitNothing},
		{From: 1, Lo: 1, Hi: 1, To: 2, Action: EmitCopy},
		{From: 2, Lo: 0, Hi: 0, To: 2, Action: EmitNothing},
		{From: 2, Lo: 1, Hi: 1, To: 2, Action: EmitCopy},
	})
	if err != nil {
		t.Fatalf("NewTransducer error: %v", err)
	}
	out, ok := tr.Image([]int{0, 1, 0, 1})
	if !ok || len(out) != 2 || out[0] != 1 || out[1] != 1 {
		t.Fatalf("expected output [1 1], got %v (ok=%v)", out, ok)
	}
	if _, ok := tr.Image([]int{0, 0}); ok {
		t.Fatalf("input without a 1 should have no accepting run")
	}
}

func TestTransducer_Validation(t *testing.T) {
	if _, err := NewTransducer(2, 1, 1, []int{1}, []TransducerTransition{
		{From: 1, Lo: 0, Hi: 5, To: 1, Action: EmitCopy},
	}); err == nil {
		t.Fatalf("expected error for guard outside the alphabet")
	}
	if _, err := NewTransducer(2, 1, 2, []int{1}, nil); err == nil {
		t.Fatalf("expected error for out-of-range start state")
	}
}
