// Package theap implements a lazily-invalidated priority queue of
// triangles, ordered by worst (smallest) minimum angle and, as a
// tiebreak, largest area. It backs Chew-style refinement: triangles
// are re-pushed whenever they change, and stale entries are discarded
// on pop by comparing against a per-triangle timestamp.
package theap

import "container/heap"

// item is one heap entry: the triangle's minimum angle and negated
// area (so heap.Pop naturally returns the triangle with the smallest
// angle, breaking ties in favor of larger area), the triangle index,
// and the timestamp it was pushed with.
type item struct {
	angle     float64
	negArea   float64
	triangle  int
	timestamp int
}

type itemHeap []item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].angle != h[j].angle {
		return h[i].angle < h[j].angle
	}
	return h[i].negArea < h[j].negArea
}
func (h itemHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(item)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// THeap is a priority queue over triangle indices. A triangle may be
// pushed multiple times; only the entry matching the triangle's
// current timestamp is considered live, so updates are O(log n)
// pushes rather than O(log n) decrease-keys.
type THeap struct {
	h          itemHeap
	timestamps []int
}

// New creates an empty THeap sized for n triangles.
func New(n int) *THeap {
	return &THeap{h: make(itemHeap, 0, n), timestamps: make([]int, n)}
}

// Push enqueues triangle t with the given minimum angle and area,
// bumping its timestamp so any earlier entries for t become stale.
func (q *THeap) Push(t int, angle, area float64) {
	for t >= len(q.timestamps) {
		q.timestamps = append(q.timestamps, 0)
	}
	q.timestamps[t]++
	heap.Push(&q.h, item{angle: angle, negArea: -area, triangle: t, timestamp: q.timestamps[t]})
}

// Invalidate bumps t's timestamp without pushing a replacement,
// discarding it from future pops (used when a triangle is deleted).
func (q *THeap) Invalidate(t int) {
	for t >= len(q.timestamps) {
		q.timestamps = append(q.timestamps, 0)
	}
	q.timestamps[t]++
}

// Pop returns the live triangle with the smallest minimum angle
// (largest area breaking ties), discarding stale entries along the
// way. The second return is false when the queue is empty.
func (q *THeap) Pop() (int, bool) {
	for len(q.h) > 0 {
		it := heap.Pop(&q.h).(item)
		if it.triangle < len(q.timestamps) && q.timestamps[it.triangle] == it.timestamp {
			return it.triangle, true
		}
	}
	return -1, false
}

// Len returns the number of entries currently queued, live or stale.
func (q *THeap) Len() int { return len(q.h) }
