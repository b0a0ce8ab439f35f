package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"
)

type vtxRec struct {
	pos      r3.Vec
	degree   int32
	boundary bool
}

type edgeRec struct {
	va, vb goloops.VtxIdx // va < vb
	loops  []goloops.LoopIdx
}

type faceRec struct {
	loop0 goloops.LoopIdx // first loop; a face's loops are contiguous
	size  int32
}

type loopRec struct {
	goloops.Loop
	next   goloops.LoopIdx
	prev   goloops.LoopIdx
	radial goloops.LoopIdx
}

// Mesh is an arena-backed goloops.Mesh built from a vertex list and a face list.
//
// Faces are given as vertex index cycles; winding should be consistent across the mesh.
// Edges with more than two incident faces are kept but have no radial neighbors, so traces
// treat them like boundary edges.
type Mesh struct {
	verts []vtxRec
	edges []edgeRec
	faces []faceRec
	loops []loopRec
}

func makeEdgeKey(a, b goloops.VtxIdx) uint64 {
	if a > b {
		a, b = b, a
	}
	return (uint64(uint32(a)) << 32) | uint64(uint32(b))
}

// NewMesh builds a Mesh from vertex positions and faces (each face a cycle of >= 3 vertex indices).
func NewMesh(positions []r3.Vec, faces [][]goloops.VtxIdx) (*Mesh, error) {
	X := &Mesh{
		verts: make([]vtxRec, len(positions)),
		faces: make([]faceRec, 0, len(faces)),
	}
	for vi, pos := range positions {
		X.verts[vi].pos = pos
	}

	numLoops := 0
	for _, face := range faces {
		numLoops += len(face)
	}
	X.loops = make([]loopRec, 0, numLoops)
	edgeLookup := make(map[uint64]goloops.EdgeIdx, numLoops/2+1)
	Nv := goloops.VtxIdx(len(positions))

	for fi, face := range faces {
		N := len(face)
		if N < 3 {
			return nil, errors.Wrapf(goloops.ErrBadFace, "face %d has %d vertices", fi, N)
		}
		for i, vi := range face {
			if vi < 0 || vi >= Nv {
				return nil, errors.Wrapf(goloops.ErrBadVtxIdx, "face %d references vertex %d (mesh has %d)", fi, vi, Nv)
			}
			if vj := face[(i+1)%N]; vi == vj {
				return nil, errors.Wrapf(goloops.ErrBadFace, "face %d repeats vertex %d", fi, vi)
			}
		}

		loop0 := goloops.LoopIdx(len(X.loops))
		X.faces = append(X.faces, faceRec{
			loop0: loop0,
			size:  int32(N),
		})

		for i, vi := range face {
			vj := face[(i+1)%N]
			key := makeEdgeKey(vi, vj)
			ei, exists := edgeLookup[key]
			if !exists {
				ei = goloops.EdgeIdx(len(X.edges))
				edgeLookup[key] = ei
				va, vb := vi, vj
				if va > vb {
					va, vb = vb, va
				}
				X.edges = append(X.edges, edgeRec{va: va, vb: vb})
				X.verts[vi].degree++
				X.verts[vj].degree++
			}

			li := loop0 + goloops.LoopIdx(i)
			X.edges[ei].loops = append(X.edges[ei].loops, li)
			X.loops = append(X.loops, loopRec{
				Loop: goloops.Loop{
					Face: goloops.FaceIdx(fi),
					Edge: ei,
					Vtx:  vi,
				},
				next:   loop0 + goloops.LoopIdx((i+1)%N),
				prev:   loop0 + goloops.LoopIdx((i+N-1)%N),
				radial: goloops.NilLoop,
			})
		}
	}

	nonManifold := 0
	for ei := range X.edges {
		e := &X.edges[ei]
		switch len(e.loops) {
		case 2:
			X.loops[e.loops[0]].radial = e.loops[1]
			X.loops[e.loops[1]].radial = e.loops[0]
		case 1:
			X.verts[e.va].boundary = true
			X.verts[e.vb].boundary = true
		default:
			nonManifold++
			X.verts[e.va].boundary = true
			X.verts[e.vb].boundary = true
		}
	}
	if nonManifold > 0 {
		klog.Warningf("mesh has %d non-manifold edges (treated as boundary)", nonManifold)
	}

	return X, nil
}

func (X *Mesh) NumVerts() int { return len(X.verts) }
func (X *Mesh) NumEdges() int { return len(X.edges) }
func (X *Mesh) NumFaces() int { return len(X.faces) }
func (X *Mesh) NumLoops() int { return len(X.loops) }

func (X *Mesh) VtxPos(v goloops.VtxIdx) r3.Vec {
	return X.verts[v].pos
}

func (X *Mesh) VtxDegree(v goloops.VtxIdx) int {
	return int(X.verts[v].degree)
}

func (X *Mesh) VtxOnBoundary(v goloops.VtxIdx) bool {
	return X.verts[v].boundary
}

func (X *Mesh) EdgeVerts(e goloops.EdgeIdx) (a, b goloops.VtxIdx) {
	rec := &X.edges[e]
	return rec.va, rec.vb
}

func (X *Mesh) EdgeFaceCount(e goloops.EdgeIdx) int {
	return len(X.edges[e].loops)
}

func (X *Mesh) EdgeLoops(e goloops.EdgeIdx) []goloops.LoopIdx {
	return X.edges[e].loops
}

func (X *Mesh) FaceSize(f goloops.FaceIdx) int {
	return int(X.faces[f].size)
}

func (X *Mesh) LoopAt(l goloops.LoopIdx) goloops.Loop {
	return X.loops[l].Loop
}

func (X *Mesh) LoopNext(l goloops.LoopIdx) goloops.LoopIdx {
	return X.loops[l].next
}

func (X *Mesh) LoopPrev(l goloops.LoopIdx) goloops.LoopIdx {
	return X.loops[l].prev
}

func (X *Mesh) LoopRadial(l goloops.LoopIdx) goloops.LoopIdx {
	return X.loops[l].radial
}

// FindEdge returns the edge joining va and vb, if any.
func (X *Mesh) FindEdge(va, vb goloops.VtxIdx) (goloops.EdgeIdx, bool) {
	if va > vb {
		va, vb = vb, va
	}
	for ei := range X.edges {
		e := &X.edges[ei]
		if e.va == va && e.vb == vb {
			return goloops.EdgeIdx(ei), true
		}
	}
	return -1, false
}

// FaceVerts appends the vertices of face f to dst in winding order.
func (X *Mesh) FaceVerts(f goloops.FaceIdx, dst []goloops.VtxIdx) []goloops.VtxIdx {
	face := X.faces[f]
	for i := int32(0); i < face.size; i++ {
		dst = append(dst, X.loops[face.loop0+goloops.LoopIdx(i)].Vtx)
	}
	return dst
}
