package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/2x3systems/goloops/libloops/catalog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCurvesEncoding(t *testing.T) {
	curves := []goloops.Curve{
		{
			Points: []goloops.CurvePoint{
				{Co: r3.Vec{X: 1, Y: -2, Z: 3.25}, HandleLeft: r3.Vec{X: 0.5}, HandleRight: r3.Vec{X: 1.5}},
				{Co: r3.Vec{X: -1e-9, Y: 1e9}},
			},
		},
		{Cyclic: true, Points: []goloops.CurvePoint{{}, {}, {}}},
		{},
	}

	enc := catalog.EncodeCurves(curves)
	got, err := catalog.DecodeCurves(enc)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, curves[0], got[0])
	require.Equal(t, curves[1], got[1])
	require.Empty(t, got[2].Points)
	require.False(t, got[2].Cyclic)

	_, err = catalog.DecodeCurves(enc[:len(enc)-3])
	require.ErrorIs(t, err, goloops.ErrBadEncoding)

	_, err = catalog.DecodeCurves(nil)
	require.ErrorIs(t, err, goloops.ErrBadEncoding)

	_, err = catalog.DecodeCurves([]byte{7, 0})
	require.ErrorIs(t, err, goloops.ErrBadEncoding)
}

func TestCatalogInMemory(t *testing.T) {
	cat, err := catalog.OpenCatalog(goloops.CatalogOpts{})
	require.NoError(t, err)
	require.False(t, cat.IsReadOnly())
	require.Equal(t, int64(0), cat.NumEntries())

	X, err := libloops.NewGridMesh(4, 4)
	require.NoError(t, err)
	opts := goloops.DefaultOpts()

	key := libloops.CurveKeyOf(X, opts)
	_, found, err := cat.Fetch(key)
	require.NoError(t, err)
	require.False(t, found)

	curves, err := catalog.GuideCurves(cat, X, opts)
	require.NoError(t, err)
	require.Len(t, curves, 5)
	require.Equal(t, int64(1), cat.NumEntries())

	cached, found, err := cat.Fetch(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, curves, cached)

	// A second request is served from the catalog
	again, err := catalog.GuideCurves(cat, X, opts)
	require.NoError(t, err)
	require.Equal(t, curves, again)
	require.Equal(t, int64(1), cat.NumEntries())

	// Different options are a different entry
	opts.WalkBoundaries = false
	_, err = catalog.GuideCurves(cat, X, opts)
	require.NoError(t, err)
	require.Equal(t, int64(2), cat.NumEntries())

	require.NoError(t, cat.Close())
	_, _, err = cat.Fetch(key)
	require.ErrorIs(t, err, goloops.ErrCatalogClosed)
	require.ErrorIs(t, cat.Store(key, nil), goloops.ErrCatalogClosed)
}

func TestCatalogOnDisk(t *testing.T) {
	dir, err := os.MkdirTemp("", "goloops*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := goloops.CatalogOpts{
		DbPathName: path.Join(dir, "TestCatalogOnDisk"),
	}
	X, err := libloops.NewTorusMesh(6, 4, 3, 1)
	require.NoError(t, err)
	key := libloops.CurveKeyOf(X, goloops.DefaultOpts())

	cat, err := catalog.OpenCatalog(opts)
	require.NoError(t, err)
	curves, err := catalog.GuideCurves(cat, X, goloops.DefaultOpts())
	require.NoError(t, err)
	require.NoError(t, cat.Close())

	// Reopen read-only and find the same curves
	opts.ReadOnly = true
	cat, err = catalog.OpenCatalog(opts)
	require.NoError(t, err)
	defer cat.Close()
	require.Equal(t, int64(1), cat.NumEntries())

	cached, found, err := cat.Fetch(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, curves, cached)
}

func TestCatalogParams(t *testing.T) {
	_, err := catalog.OpenCatalog(goloops.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, goloops.ErrBadCatalogParam)

	// No catalog at all still works
	X, err := libloops.NewGridMesh(2, 2)
	require.NoError(t, err)
	curves, err := catalog.GuideCurves(nil, X, goloops.DefaultOpts())
	require.NoError(t, err)
	require.Len(t, curves, 3)

	// Without boundary walking only the middle row is traced
	curves, err = catalog.GuideCurves(nil, X, goloops.Opts{})
	require.NoError(t, err)
	require.Len(t, curves, 1)
	require.Len(t, curves[0].Points, 3)

	_, err = catalog.GuideCurves(nil, X, goloops.Opts{TargetCurves: -1})
	require.ErrorIs(t, err, goloops.ErrBadOpts)
}
