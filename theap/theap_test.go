package theap

import "testing"

func TestPopOrdersBySmallestAngle(t *testing.T) {
	q := New(3)
	q.Push(0, 0.5, 1.0)
	q.Push(1, 0.1, 1.0)
	q.Push(2, 0.3, 1.0)

	got, ok := q.Pop()
	if !ok || got != 1 {
		t.Fatalf("expected triangle 1 first, got %d ok=%v", got, ok)
	}
	got, ok = q.Pop()
	if !ok || got != 2 {
		t.Fatalf("expected triangle 2 next, got %d ok=%v", got, ok)
	}
}

func TestInvalidatedEntryIsSkipped(t *testing.T) {
	q := New(2)
	q.Push(0, 0.1, 1.0)
	q.Invalidate(0)
	q.Push(1, 0.9, 1.0)

	got, ok := q.Pop()
	if !ok || got != 1 {
		t.Fatalf("expected triangle 1 (0 invalidated), got %d ok=%v", got, ok)
	}
	_, ok = q.Pop()
	if ok {
		t.Fatalf("expected queue empty after invalidated entry discarded")
	}
}

func TestRepushSupersedesOlderEntry(t *testing.T) {
	q := New(1)
	q.Push(0, 0.9, 1.0)
	q.Push(0, 0.1, 1.0)

	got, ok := q.Pop()
	if !ok || got != 0 {
		t.Fatalf("expected triangle 0, got %d ok=%v", got, ok)
	}
	_, ok = q.Pop()
	if ok {
		t.Fatalf("expected only one live entry for a repushed triangle")
	}
}
