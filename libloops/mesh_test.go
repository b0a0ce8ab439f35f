package libloops_test

import (
	"testing"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustGrid(t *testing.T, nx, ny int) *libloops.Mesh {
	t.Helper()
	X, err := libloops.NewGridMesh(nx, ny)
	require.NoError(t, err)
	return X
}

func mustWalker(t *testing.T, X goloops.Mesh, walkBoundaries bool) *libloops.LoopWalker {
	t.Helper()
	opts := goloops.DefaultOpts()
	opts.WalkBoundaries = walkBoundaries
	lw, err := libloops.NewLoopWalker(X, opts)
	require.NoError(t, err)
	return lw
}

func gridEdge(t *testing.T, X *libloops.Mesh, nx, i0, j0, i1, j1 int) goloops.EdgeIdx {
	t.Helper()
	ei, ok := X.FindEdge(libloops.GridVtx(nx, i0, j0), libloops.GridVtx(nx, i1, j1))
	require.True(t, ok, "no edge (%d,%d)-(%d,%d)", i0, j0, i1, j1)
	return ei
}

func TestGridAdjacency(t *testing.T) {
	X := mustGrid(t, 4, 4)

	require.Equal(t, 25, X.NumVerts())
	require.Equal(t, 16, X.NumFaces())
	require.Equal(t, 40, X.NumEdges())
	require.Equal(t, 64, X.NumLoops())

	require.Equal(t, 2, X.VtxDegree(libloops.GridVtx(4, 0, 0)))
	require.Equal(t, 3, X.VtxDegree(libloops.GridVtx(4, 2, 0)))
	require.Equal(t, 4, X.VtxDegree(libloops.GridVtx(4, 2, 2)))
	require.True(t, X.VtxOnBoundary(libloops.GridVtx(4, 4, 3)))
	require.False(t, X.VtxOnBoundary(libloops.GridVtx(4, 1, 1)))

	inner := gridEdge(t, X, 4, 1, 1, 2, 1)
	rim := gridEdge(t, X, 4, 1, 0, 2, 0)
	require.Equal(t, 2, X.EdgeFaceCount(inner))
	require.Equal(t, 1, X.EdgeFaceCount(rim))

	for li := 0; li < X.NumLoops(); li++ {
		l := goloops.LoopIdx(li)
		require.Equal(t, l, X.LoopPrev(X.LoopNext(l)))
		require.Equal(t, X.LoopAt(l).Face, X.LoopAt(X.LoopNext(l)).Face)

		// Loops chain head to tail around a face
		a, b := X.EdgeVerts(X.LoopAt(l).Edge)
		next := X.LoopAt(X.LoopNext(l)).Vtx
		require.True(t, (a == X.LoopAt(l).Vtx && b == next) || (b == X.LoopAt(l).Vtx && a == next))

		r := X.LoopRadial(l)
		if X.EdgeFaceCount(X.LoopAt(l).Edge) == 2 {
			require.NotEqual(t, goloops.NilLoop, r)
			require.Equal(t, l, X.LoopRadial(r))
			require.Equal(t, X.LoopAt(l).Edge, X.LoopAt(r).Edge)
			require.Equal(t, X.LoopAt(X.LoopNext(l)).Vtx, X.LoopAt(r).Vtx)
		} else {
			require.Equal(t, goloops.NilLoop, r)
		}
	}

	verts := X.FaceVerts(0, nil)
	require.Equal(t, []goloops.VtxIdx{0, 1, 6, 5}, verts)
}

func TestTorusIsClosed(t *testing.T) {
	X, err := libloops.NewTorusMesh(6, 4, 3, 1)
	require.NoError(t, err)
	require.Equal(t, 24, X.NumVerts())
	require.Equal(t, 48, X.NumEdges())
	for vi := 0; vi < X.NumVerts(); vi++ {
		require.Equal(t, 4, X.VtxDegree(goloops.VtxIdx(vi)))
		require.False(t, X.VtxOnBoundary(goloops.VtxIdx(vi)))
	}
}

func TestBadMeshInput(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}}

	_, err := libloops.NewMesh(pos, [][]goloops.VtxIdx{{0, 1}})
	require.True(t, errors.Is(err, goloops.ErrBadFace))

	_, err = libloops.NewMesh(pos, [][]goloops.VtxIdx{{0, 1, 3}})
	require.True(t, errors.Is(err, goloops.ErrBadVtxIdx))

	_, err = libloops.NewMesh(pos, [][]goloops.VtxIdx{{0, 1, 1}})
	require.True(t, errors.Is(err, goloops.ErrBadFace))

	_, err = libloops.NewGridMesh(0, 3)
	require.Error(t, err)
}

func TestNonManifoldEdge(t *testing.T) {
	// Three triangles hinged on edge 0-1
	pos := []r3.Vec{{}, {X: 1}, {Y: 1}, {Y: -1}, {Z: 1}}
	X, err := libloops.NewMesh(pos, [][]goloops.VtxIdx{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
	require.NoError(t, err)

	ei, ok := X.FindEdge(0, 1)
	require.True(t, ok)
	require.Equal(t, 3, X.EdgeFaceCount(ei))
	for _, l := range X.EdgeLoops(ei) {
		require.Equal(t, goloops.NilLoop, X.LoopRadial(l))
	}
	require.True(t, X.VtxOnBoundary(0))
}

func TestFingerprint(t *testing.T) {
	A := mustGrid(t, 3, 2)
	B := mustGrid(t, 3, 2)
	C := mustGrid(t, 2, 3)
	require.Equal(t, libloops.Fingerprint(A), libloops.Fingerprint(B))
	require.NotEqual(t, libloops.Fingerprint(A), libloops.Fingerprint(C))
}
