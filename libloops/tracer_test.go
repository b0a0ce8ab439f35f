package libloops_test

import (
	"math"
	"testing"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// loopRunning returns the loop running va -> vb.
func loopRunning(t *testing.T, X *libloops.Mesh, va, vb goloops.VtxIdx) goloops.LoopIdx {
	t.Helper()
	ei, ok := X.FindEdge(va, vb)
	require.True(t, ok)
	for _, l := range X.EdgeLoops(ei) {
		if X.LoopAt(l).Vtx == va {
			return l
		}
	}
	t.Fatalf("no loop runs %d -> %d", va, vb)
	return goloops.NilLoop
}

func gridRow(nx, i0, i1, j int) goloops.Path {
	var row goloops.Path
	step := 1
	if i1 < i0 {
		step = -1
	}
	for i := i0; ; i += step {
		row = append(row, libloops.GridVtx(nx, i, j))
		if i == i1 {
			break
		}
	}
	return row
}

func TestTraceDirectionInvariant(t *testing.T) {
	const N = 5
	X := mustGrid(t, N, 2)
	v := func(i, j int) goloops.VtxIdx { return libloops.GridVtx(N, i, j) }

	for _, walk := range []bool{false, true} {
		lw := mustWalker(t, X, walk)
		A := loopRunning(t, X, v(2, 1), v(3, 1))
		B := loopRunning(t, X, v(3, 1), v(2, 1))

		fromA, err := lw.TraceLoop(A, libloops.NewTracingState())
		require.NoError(t, err)
		fromB, err := lw.TraceLoop(B, libloops.NewTracingState())
		require.NoError(t, err)

		require.Equal(t, gridRow(N, 0, N, 1), fromA)
		require.Equal(t, gridRow(N, N, 0, 1), fromB)
		require.Len(t, fromA, N+1)
		require.False(t, fromA.IsClosed())
	}
}

func TestTraceState(t *testing.T) {
	const N = 5
	X := mustGrid(t, N, 2)
	lw := mustWalker(t, X, false)
	seed := gridEdge(t, X, N, 2, 1, 3, 1)

	// Claimed endpoint: nothing happens
	st := libloops.NewTracingState()
	st.Claim(libloops.GridVtx(N, 3, 1))
	path, err := lw.Trace(seed, st)
	require.NoError(t, err)
	require.Empty(t, path)
	require.False(t, st.IsVisited(seed))
	require.Equal(t, 0, st.NumPending())

	// Claimed vertex further along the row ends the trace before it
	st = libloops.NewTracingState()
	st.Claim(libloops.GridVtx(N, 4, 1))
	path, err = lw.TraceLoop(loopRunning(t, X, libloops.GridVtx(N, 2, 1), libloops.GridVtx(N, 3, 1)), st)
	require.NoError(t, err)
	require.Equal(t, gridRow(N, 0, 3, 1), path)
	require.True(t, st.IsVisited(seed))
	require.True(t, st.IsVisited(gridEdge(t, X, N, 0, 1, 1, 1)))
	require.True(t, st.IsVisited(gridEdge(t, X, N, 3, 1, 4, 1)))
	require.False(t, st.IsVisited(gridEdge(t, X, N, 4, 1, 5, 1)))
	require.Equal(t, 3, st.NumPending())

	// Unclaimed: every row edge but the seed is enqueued
	st = libloops.NewTracingState()
	path, err = lw.Trace(seed, st)
	require.NoError(t, err)
	require.Len(t, path, N+1)
	require.Equal(t, N-1, st.NumPending())
	for i := 0; i < N; i++ {
		require.True(t, st.IsVisited(gridEdge(t, X, N, i, 1, i+1, 1)))
	}
	require.False(t, st.IsExpanded(seed))

	_, err = lw.Trace(goloops.EdgeIdx(X.NumEdges()), st)
	require.ErrorIs(t, err, goloops.ErrBadEdgeIdx)
}

func TestTraceRim(t *testing.T) {
	X := mustGrid(t, 4, 4)
	seed := gridEdge(t, X, 4, 1, 0, 2, 0)

	path, err := mustWalker(t, X, true).Trace(seed, libloops.NewTracingState())
	require.NoError(t, err)
	require.Equal(t, gridRow(4, 0, 4, 0), path)

	// Rim vertices are poles when boundary walking is off
	path, err = mustWalker(t, X, false).Trace(seed, libloops.NewTracingState())
	require.NoError(t, err)
	require.Equal(t, gridRow(4, 1, 2, 0), path)
}

func TestTraceCycle(t *testing.T) {
	const N = 8
	X, err := libloops.NewRingBandMesh(N, 2, 1, 1)
	require.NoError(t, err)
	lw := mustWalker(t, X, false)

	st := libloops.NewTracingState()
	path, err := lw.TraceLoop(loopRunning(t, X, N+0, N+1), st)
	require.NoError(t, err)
	require.True(t, path.IsClosed())
	require.Len(t, path, N+1)
	require.Equal(t, N, path.NumDistinct())
	require.Equal(t, goloops.VtxIdx(N), path[0])
	require.Equal(t, N-1, st.NumPending())
}

// slitRingBand returns a 2-row ring band whose first inner quad is a pentagon.
func slitRingBand(t *testing.T, n int) *libloops.Mesh {
	t.Helper()
	idx := func(k, c int) goloops.VtxIdx { return goloops.VtxIdx(c*n + k%n) }

	pos := make([]r3.Vec, 0, 3*n+1)
	for c := 0; c < 3; c++ {
		for k := 0; k < n; k++ {
			a := 2 * math.Pi * float64(k) / float64(n)
			pos = append(pos, r3.Vec{X: float64(1+c) * math.Cos(a), Y: float64(1+c) * math.Sin(a)})
		}
	}
	slit := goloops.VtxIdx(len(pos))
	a := math.Pi / float64(n)
	pos = append(pos, r3.Vec{X: math.Cos(a), Y: math.Sin(a)})

	var faces [][]goloops.VtxIdx
	for c := 0; c < 2; c++ {
		for k := 0; k < n; k++ {
			if k == 0 && c == 0 {
				faces = append(faces, []goloops.VtxIdx{idx(0, 0), slit, idx(1, 0), idx(1, 1), idx(0, 1)})
				continue
			}
			faces = append(faces, []goloops.VtxIdx{idx(k, c), idx(k+1, c), idx(k+1, c+1), idx(k, c+1)})
		}
	}
	X, err := libloops.NewMesh(pos, faces)
	require.NoError(t, err)
	return X
}

func TestTraceBackwardClosure(t *testing.T) {
	const N = 8
	X := slitRingBand(t, N)
	lw := mustWalker(t, X, false)

	// From the outer side the ring closes going forward
	outer := loopRunning(t, X, N+0, N+1)
	path, err := lw.TraceLoop(outer, libloops.NewTracingState())
	require.NoError(t, err)
	require.True(t, path.IsClosed())
	require.Len(t, path, N+1)

	// From the pentagon side the forward leg dies at once and the backward leg runs the ring,
	// stopping on the seed without repeating the closing vertex.
	inner := loopRunning(t, X, N+1, N+0)
	path, err = lw.TraceLoop(inner, libloops.NewTracingState())
	require.NoError(t, err)
	require.False(t, path.IsClosed())
	require.Len(t, path, N)
	require.Equal(t, goloops.VtxIdx(N+N-1), path[0])
	require.Equal(t, goloops.VtxIdx(N+0), path[N-1])
}

func TestTraceMalformed(t *testing.T) {
	X := mustGrid(t, 3, 3)
	lw := mustWalker(t, brokenRadial{X}, true)
	_, err := lw.Trace(gridEdge(t, X, 3, 0, 1, 1, 1), libloops.NewTracingState())
	require.ErrorIs(t, err, goloops.ErrMalformedMesh)
}

// brokenRadial loses every radial link while still reporting two faces per inner edge.
type brokenRadial struct {
	*libloops.Mesh
}

func (X brokenRadial) LoopRadial(l goloops.LoopIdx) goloops.LoopIdx {
	return goloops.NilLoop
}
