package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/pkg/errors"
)

// StepEnd names how a quad step ended.
type StepEnd byte

const (
	StepOK      StepEnd = iota // landed on the next loop of the row
	EndClaimed                 // walked vertex already belongs to an emitted path
	EndPole                    // walked vertex has irregular valence
	EndBoundary                // rung edge is not manifold-interior
	EndNonQuad                 // a face on either side of the rung is not a quad
	EndWinding                 // adjacent face is wound the opposite way
)

func (end StepEnd) String() string {
	return [...]string{"ok", "claimed", "pole", "boundary", "non-quad", "winding"}[end]
}

// quadStep is the outcome of advancing one edge-loop step from a loop.
type quadStep struct {
	Walked goloops.VtxIdx  // vertex the step passes through
	To     goloops.LoopIdx // landing loop (valid when End == StepOK)
	End    StepEnd
}

// isRegular returns true if the edge loop may pass straight through v.
func (lw *LoopWalker) isRegular(v goloops.VtxIdx) bool {
	deg := lw.mesh.VtxDegree(v)
	if lw.opts.WalkBoundaries && lw.mesh.VtxOnBoundary(v) {
		return deg == goloops.RimValence
	}
	return deg == goloops.QuadValence
}

// step advances one quad from L: next(radial(next(L))) when reverse is false, otherwise
// prev(radial(prev(L))).  A forward step walks through the far end of L's edge and a reverse step
// walks through L's start vertex; either way the landing loop's edge continues the row on the
// other side of the walked vertex.
//
// claimed may be nil.  Structural dead ends are reported in quadStep.End; only adjacency that
// contradicts itself returns an error.
func (lw *LoopWalker) step(L goloops.LoopIdx, reverse bool, claimed func(goloops.VtxIdx) bool) (quadStep, error) {
	X := lw.mesh
	adv := X.LoopNext
	if reverse {
		adv = X.LoopPrev
	}

	var st quadStep
	from := X.LoopAt(L)

	a := adv(L)
	if a == goloops.NilLoop {
		return st, errors.Wrapf(goloops.ErrMalformedMesh, "loop %d (face %d) has no face neighbor", L, from.Face)
	}
	rung := X.LoopAt(a)
	if reverse {
		st.Walked = from.Vtx
	} else {
		st.Walked = rung.Vtx
	}

	switch {
	case X.FaceSize(from.Face) != 4:
		st.End = EndNonQuad
	case claimed != nil && claimed(st.Walked):
		st.End = EndClaimed
	case !lw.isRegular(st.Walked):
		st.End = EndPole
	case X.EdgeFaceCount(rung.Edge) != 2:
		st.End = EndBoundary
	}
	if st.End != StepOK {
		return st, nil
	}

	b := X.LoopRadial(a)
	if b == goloops.NilLoop {
		return st, errors.Wrapf(goloops.ErrMalformedMesh, "edge %d has 2 faces but loop %d has no radial neighbor", rung.Edge, a)
	}
	across := X.LoopAt(b)
	if across.Edge != rung.Edge {
		return st, errors.Wrapf(goloops.ErrMalformedMesh, "loop %d is radial to loop %d but runs along edge %d (expected %d)", b, a, across.Edge, rung.Edge)
	}
	if X.FaceSize(across.Face) != 4 {
		st.End = EndNonQuad
		return st, nil
	}

	// A consistently wound neighbor runs the rung the opposite way
	if (across.Vtx == st.Walked) == !reverse {
		st.End = EndWinding
		return st, nil
	}

	c := adv(b)
	if c == goloops.NilLoop {
		return st, errors.Wrapf(goloops.ErrMalformedMesh, "loop %d (face %d) has no face neighbor", b, across.Face)
	}
	st.To = c
	return st, nil
}
