package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/sets/hashset"
)

// TracingState is the mutable state of one coverage pass.
//
// A TracingState is owned by exactly one pass (or test) at a time and is discarded when the pass
// completes.  Nothing in it is shared with other passes over the same mesh.
type TracingState struct {
	visited  *hashset.Set      // edges consumed as loop members
	expanded *hashset.Set      // edges whose neighbors have been enqueued
	claimed  *hashset.Set      // vertices owned by an emitted path
	pending  *arrayqueue.Queue // edges awaiting expansion (FIFO)
}

// NewTracingState returns an empty TracingState.
func NewTracingState() *TracingState {
	return &TracingState{
		visited:  hashset.New(),
		expanded: hashset.New(),
		claimed:  hashset.New(),
		pending:  arrayqueue.New(),
	}
}

// Claim marks the given vertices as owned by an emitted path.
func (st *TracingState) Claim(verts ...goloops.VtxIdx) {
	for _, vi := range verts {
		st.claimed.Add(vi)
	}
}

// IsClaimed returns true if v belongs to an emitted path.
func (st *TracingState) IsClaimed(v goloops.VtxIdx) bool {
	return st.claimed.Contains(v)
}

// NumClaimed returns the number of claimed vertices.
func (st *TracingState) NumClaimed() int {
	return st.claimed.Size()
}

// IsVisited returns true if edge e was consumed by a trace.
func (st *TracingState) IsVisited(e goloops.EdgeIdx) bool {
	return st.visited.Contains(e)
}

// IsExpanded returns true if the neighbors of edge e have been enqueued.
func (st *TracingState) IsExpanded(e goloops.EdgeIdx) bool {
	return st.expanded.Contains(e)
}

// NumPending returns the number of edges awaiting expansion.
func (st *TracingState) NumPending() int {
	return st.pending.Size()
}

// Enqueue appends edges to the pending queue.
func (st *TracingState) Enqueue(edges ...goloops.EdgeIdx) {
	for _, ei := range edges {
		st.pending.Enqueue(ei)
	}
}

func (st *TracingState) dequeue() (goloops.EdgeIdx, bool) {
	val, ok := st.pending.Dequeue()
	if !ok {
		return -1, false
	}
	return val.(goloops.EdgeIdx), true
}

func (st *TracingState) markVisited(e goloops.EdgeIdx) {
	st.visited.Add(e)
}

func (st *TracingState) markExpanded(e goloops.EdgeIdx) {
	st.expanded.Add(e)
}

// consume records an edge newly traversed by a trace.
func (st *TracingState) consume(e goloops.EdgeIdx) {
	st.visited.Add(e)
	st.pending.Enqueue(e)
}
