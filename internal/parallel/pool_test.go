package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestBatch_RunsAllJobs(t *testing.T) {
	b := NewBatch(4)
	var ran int64
	for i := 0; i < 100; i++ {
		b.Go(func() error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}
	if err := b.Wait(); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if ran != 100 {
		t.Fatalf("expected 100 jobs to run, got %d", ran)
	}
}

func TestBatch_ReportsFirstError(t *testing.T) {
	b := NewBatch(2)
	boom := errors.New("boom")
	var ran int64
	for i := 0; i < 10; i++ {
		i := i
		b.Go(func() error {
			atomic.AddInt64(&ran, 1)
			if i == 3 {
				return boom
			}
			return nil
		})
	}
	err := b.Wait()
	if !errors.Is(err, boom) {
		t.Fatalf("expected the job error, got %v", err)
	}
	if ran != 10 {
		t.Fatalf("remaining jobs should still run, got %d", ran)
	}
}

func TestBatch_DefaultLimit(t *testing.T) {
	b := NewBatch(0)
	b.Go(func() error { return nil })
	if err := b.Wait(); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
}
