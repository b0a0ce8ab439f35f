package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Trace traces the maximal edge loop through the given seed edge, walking forward from the seed's
// first loop and, after a forward dead end, backward from its other side.
//
// If either endpoint of seed is claimed in st, an empty Path is returned and st is left untouched.
// Otherwise seed is marked visited and every edge newly traversed is marked visited and enqueued
// for expansion.  The returned Path never contains a vertex claimed at call time.
func (lw *LoopWalker) Trace(seed goloops.EdgeIdx, st *TracingState) (goloops.Path, error) {
	if seed < 0 || int(seed) >= lw.mesh.NumEdges() {
		return nil, errors.Wrapf(goloops.ErrBadEdgeIdx, "seed edge %d (mesh has %d edges)", seed, lw.mesh.NumEdges())
	}
	loops := lw.mesh.EdgeLoops(seed)
	if len(loops) == 0 {
		return nil, nil
	}
	return lw.TraceLoop(loops[0], st)
}

// TraceLoop is Trace with an explicit forward direction: the walk starts from loop first and the
// Path starts with first's vertex (unless the backward leg extends its head).
func (lw *LoopWalker) TraceLoop(first goloops.LoopIdx, st *TracingState) (goloops.Path, error) {
	if first < 0 || int(first) >= lw.mesh.NumLoops() {
		return nil, errors.Wrapf(goloops.ErrMalformedMesh, "loop %d out of range (mesh has %d loops)", first, lw.mesh.NumLoops())
	}
	seed := lw.mesh.LoopAt(first).Edge
	va, vb := lw.mesh.EdgeVerts(seed)
	if st.IsClaimed(va) || st.IsClaimed(vb) {
		return nil, nil
	}

	st.markVisited(seed)
	path, err := lw.walkLoop(first, st.IsClaimed, st.consume)
	if err != nil {
		return nil, err
	}
	klog.V(3).Infof("trace from edge %d (loop %d): %d verts, closed=%v", seed, first, len(path), path.IsClosed())
	return path, nil
}

// walkLoop assembles the Path through first's edge.  claimed may be nil; onEdge is called once for
// each edge the walk newly traverses (the seed edge excluded).
func (lw *LoopWalker) walkLoop(
	first goloops.LoopIdx,
	claimed func(goloops.VtxIdx) bool,
	onEdge func(goloops.EdgeIdx),
) (goloops.Path, error) {
	X := lw.mesh
	maxSteps := X.NumEdges() + 1

	verts := doublylinkedlist.New()
	onPath := hashset.New()
	v0 := X.LoopAt(first).Vtx
	verts.Add(v0)
	onPath.Add(v0)

	// A dead-end vertex ends the row unless someone else owns it or the row already passed it
	tryEnd := func(st quadStep, addTo func(values ...interface{})) {
		if st.End != EndClaimed && !onPath.Contains(st.Walked) {
			addTo(st.Walked)
			onPath.Add(st.Walked)
		}
	}

	// Forward
	closed := false
	L := first
	for n := 0; n < maxSteps; n++ {
		st, err := lw.step(L, false, claimed)
		if err != nil {
			return nil, err
		}
		if st.End != StepOK {
			tryEnd(st, verts.Append)
			break
		}
		if st.To == first {
			verts.Append(st.Walked)
			closed = true
			break
		}
		if onPath.Contains(st.Walked) {
			break
		}
		verts.Append(st.Walked)
		onPath.Add(st.Walked)
		onEdge(X.LoopAt(st.To).Edge)
		L = st.To
	}

	// Backward
	if !closed {
		second := goloops.NilLoop
		for _, li := range X.EdgeLoops(X.LoopAt(first).Edge) {
			if li != first && X.LoopAt(li).Vtx != v0 {
				second = li
				break
			}
		}

		L, reverse := second, false
		if second == goloops.NilLoop && lw.opts.WalkBoundaries {
			L, reverse = first, true
		}

		for n := 0; L != goloops.NilLoop && n < maxSteps; n++ {
			st, err := lw.step(L, reverse, claimed)
			if err != nil {
				return nil, err
			}
			if st.End != StepOK {
				tryEnd(st, verts.Prepend)
				break
			}
			if st.To == first || st.To == second {
				break
			}

			// The first backward step crosses the seed's own start vertex
			if n == 0 {
				if st.Walked != v0 {
					break
				}
			} else {
				if onPath.Contains(st.Walked) {
					break
				}
				verts.Prepend(st.Walked)
				onPath.Add(st.Walked)
			}
			onEdge(X.LoopAt(st.To).Edge)
			L = st.To
		}
	}

	path := make(goloops.Path, 0, verts.Size())
	verts.Each(func(_ int, v interface{}) {
		path = append(path, v.(goloops.VtxIdx))
	})
	return path, nil
}
