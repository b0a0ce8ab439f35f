package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/plan-systems/klog"
)

// CoverMesh runs one coverage pass over the mesh and returns the vertex-disjoint paths it traced.
//
// The pass seeds its queue from SelectSeeds and then repeatedly pops an edge, traces it if no earlier
// trace consumed it, and enqueues the edges one row over.  A mesh without seeds yields no paths.
func (lw *LoopWalker) CoverMesh() ([]goloops.Path, error) {
	seeds, err := lw.SelectSeeds()
	if err != nil || len(seeds) == 0 {
		return nil, err
	}

	st := NewTracingState()
	for _, seed := range seeds {
		st.Enqueue(seed.Edge)
	}
	return lw.Cover(st)
}

// Cover drains the pending queue of st, tracing and expanding as CoverMesh does.
// It lets a caller seed a pass by hand (see TracingState.Enqueue and Claim).
func (lw *LoopWalker) Cover(st *TracingState) ([]goloops.Path, error) {
	var paths []goloops.Path
	popped := 0

	for {
		edge, ok := st.dequeue()
		if !ok {
			break
		}
		popped++
		if st.IsExpanded(edge) {
			continue
		}

		if !st.IsVisited(edge) {
			path, err := lw.Trace(edge, st)
			if err != nil {
				return nil, err
			}
			if len(path) >= goloops.MinPathLen {
				paths = append(paths, path)
				st.Claim(path...)
			}
		}

		next, err := lw.NeighborsOf(edge)
		if err != nil {
			return nil, err
		}
		st.Enqueue(next...)
		st.markExpanded(edge)
	}

	klog.V(2).Infof("coverage: %d paths, %d verts claimed, %d edges popped", len(paths), st.NumClaimed(), popped)
	return paths, nil
}
