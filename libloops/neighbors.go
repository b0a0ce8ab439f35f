package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/pkg/errors"
)

// NeighborsOf proposes the edges one row over from e, on either side, as new seeds.
//
// A manifold-interior edge yields, for each of its quads, the edge opposite e in the quad across
// from it.  A candidate must itself be manifold-interior unless boundary walking is on, in which
// case rim edges qualify and a rim edge also proposes the opposite edge of its own quad.
func (lw *LoopWalker) NeighborsOf(e goloops.EdgeIdx) ([]goloops.EdgeIdx, error) {
	X := lw.mesh
	if e < 0 || int(e) >= X.NumEdges() {
		return nil, errors.Wrapf(goloops.ErrBadEdgeIdx, "edge %d (mesh has %d edges)", e, X.NumEdges())
	}

	loops := X.EdgeLoops(e)
	var out []goloops.EdgeIdx

	if X.EdgeFaceCount(e) == 1 && len(loops) == 1 {
		if !lw.opts.WalkBoundaries {
			return nil, nil
		}
		l := loops[0]
		if X.FaceSize(X.LoopAt(l).Face) == 4 {
			opp := X.LoopAt(X.LoopNext(X.LoopNext(l))).Edge
			if lw.isRowEdge(opp) {
				out = append(out, opp)
			}
		}
		return out, nil
	}

	if X.EdgeFaceCount(e) != 2 || len(loops) > 2 {
		return nil, nil
	}

	for _, l := range loops {
		if X.FaceSize(X.LoopAt(l).Face) != 4 {
			continue
		}
		r := X.LoopRadial(l)
		if r == goloops.NilLoop {
			return nil, errors.Wrapf(goloops.ErrMalformedMesh, "edge %d has 2 faces but loop %d has no radial neighbor", e, l)
		}
		opp := X.LoopAt(X.LoopNext(X.LoopNext(r)))
		if X.FaceSize(opp.Face) != 4 {
			continue
		}
		if lw.isRowEdge(opp.Edge) {
			out = append(out, opp.Edge)
		}
	}
	return out, nil
}

// isRowEdge returns true if a trace may be seeded from e.
func (lw *LoopWalker) isRowEdge(e goloops.EdgeIdx) bool {
	switch lw.mesh.EdgeFaceCount(e) {
	case 2:
		return true
	case 1:
		return lw.opts.WalkBoundaries
	}
	return false
}
