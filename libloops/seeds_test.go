package libloops_test

import (
	"testing"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/stretchr/testify/require"
)

func TestSeedsGrid(t *testing.T) {
	X := mustGrid(t, 4, 4)

	seeds, err := mustWalker(t, X, true).SelectSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	require.Equal(t, goloops.EdgeIdx(0), seeds[0].Edge)
	require.Equal(t, gridRow(4, 0, 4, 0), seeds[0].Path)

	// Without boundary walking the rim is all poles, so the first full run is a column
	seeds, err = mustWalker(t, X, false).SelectSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	require.Len(t, seeds[0].Path, 5)
	for j, vi := range seeds[0].Path {
		require.Equal(t, libloops.GridVtx(4, 1, j), vi)
	}
}

func TestSeedsRingBand(t *testing.T) {
	const N = 8
	X, err := libloops.NewRingBandMesh(N, 2, 1, 1)
	require.NoError(t, err)

	seeds, err := mustWalker(t, X, false).SelectSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	require.True(t, seeds[0].Path.IsCycle())
	require.Len(t, seeds[0].Path, N+1)
	require.Equal(t, N, seeds[0].Path.NumDistinct())
	for _, vi := range seeds[0].Path {
		require.True(t, vi >= N && vi < 2*N, "vertex %d is not on the middle ring", vi)
	}

	// Both rims close too when boundary walking is on
	seeds, err = mustWalker(t, X, true).SelectSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 3)
	for _, seed := range seeds {
		require.True(t, seed.Path.IsCycle())
	}
}

func TestSeedsTorus(t *testing.T) {
	X, err := libloops.NewTorusMesh(6, 4, 3, 1)
	require.NoError(t, err)

	seeds, err := mustWalker(t, X, true).SelectSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 6+4)

	lengths := map[int]int{}
	for _, seed := range seeds {
		require.True(t, seed.Path.IsCycle())
		lengths[seed.Path.NumDistinct()]++
	}
	require.Equal(t, map[int]int{6: 4, 4: 6}, lengths)
}

func TestSeedsNone(t *testing.T) {
	fan, err := libloops.NewTriFanMesh(8)
	require.NoError(t, err)
	seeds, err := mustWalker(t, fan, true).SelectSeeds()
	require.NoError(t, err)
	require.Nil(t, seeds)

	// A single quad has no run of 3
	quad := mustGrid(t, 1, 1)
	seeds, err = mustWalker(t, quad, true).SelectSeeds()
	require.NoError(t, err)
	require.Nil(t, seeds)
}
