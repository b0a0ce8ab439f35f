package libloops

import (
	"math"

	"github.com/2x3systems/goloops/goloops"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// GridVtx returns the vertex index of grid point (i, j) in a mesh made by NewGridMesh(nx, ...).
func GridVtx(nx, i, j int) goloops.VtxIdx {
	return goloops.VtxIdx(j*(nx+1) + i)
}

// NewGridMesh returns a flat nx by ny grid of unit quads in the z=0 plane.
// Vertex (i, j) sits at (i, j, 0); see GridVtx.
func NewGridMesh(nx, ny int) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, errors.Wrapf(goloops.ErrBadFace, "grid needs at least 1x1 quads (got %dx%d)", nx, ny)
	}
	pos := make([]r3.Vec, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			pos = append(pos, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	faces := make([][]goloops.VtxIdx, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			faces = append(faces, []goloops.VtxIdx{
				GridVtx(nx, i, j),
				GridVtx(nx, i+1, j),
				GridVtx(nx, i+1, j+1),
				GridVtx(nx, i, j+1),
			})
		}
	}
	return NewMesh(pos, faces)
}

// NewTorusMesh returns a closed nu by nv quad torus with major radius R and minor radius r.
// Every vertex has degree 4; vertex (u, v) has index v*nu + u.
func NewTorusMesh(nu, nv int, R, r float64) (*Mesh, error) {
	if nu < 3 || nv < 3 {
		return nil, errors.Wrapf(goloops.ErrBadFace, "torus needs at least 3x3 quads (got %dx%d)", nu, nv)
	}
	idx := func(u, v int) goloops.VtxIdx {
		return goloops.VtxIdx((v%nv)*nu + (u % nu))
	}

	pos := make([]r3.Vec, 0, nu*nv)
	for v := 0; v < nv; v++ {
		b := 2 * math.Pi * float64(v) / float64(nv)
		for u := 0; u < nu; u++ {
			a := 2 * math.Pi * float64(u) / float64(nu)
			rr := R + r*math.Cos(b)
			pos = append(pos, r3.Vec{X: rr * math.Cos(a), Y: rr * math.Sin(a), Z: r * math.Sin(b)})
		}
	}
	faces := make([][]goloops.VtxIdx, 0, nu*nv)
	for v := 0; v < nv; v++ {
		for u := 0; u < nu; u++ {
			faces = append(faces, []goloops.VtxIdx{idx(u, v), idx(u+1, v), idx(u+1, v+1), idx(u, v+1)})
		}
	}
	return NewMesh(pos, faces)
}

// NewRingBandMesh returns a flat annulus of n segments and the given number of quad rows.
// Vertex k of circle c (c = 0 is the inner rim) has index c*n + k.
func NewRingBandMesh(n, rows int, innerRadius, rowWidth float64) (*Mesh, error) {
	if n < 3 || rows < 1 {
		return nil, errors.Wrapf(goloops.ErrBadFace, "ring band needs >= 3 segments and >= 1 row (got %d, %d)", n, rows)
	}
	idx := func(k, c int) goloops.VtxIdx {
		return goloops.VtxIdx(c*n + k%n)
	}

	pos := make([]r3.Vec, 0, n*(rows+1))
	for c := 0; c <= rows; c++ {
		rad := innerRadius + float64(c)*rowWidth
		for k := 0; k < n; k++ {
			a := 2 * math.Pi * float64(k) / float64(n)
			pos = append(pos, r3.Vec{X: rad * math.Cos(a), Y: rad * math.Sin(a)})
		}
	}
	faces := make([][]goloops.VtxIdx, 0, n*rows)
	for c := 0; c < rows; c++ {
		for k := 0; k < n; k++ {
			faces = append(faces, []goloops.VtxIdx{idx(k, c), idx(k+1, c), idx(k+1, c+1), idx(k, c+1)})
		}
	}
	return NewMesh(pos, faces)
}

// NewTriFanMesh returns a disc of n triangles sharing a center vertex (index 0).
func NewTriFanMesh(n int) (*Mesh, error) {
	if n < 3 {
		return nil, errors.Wrapf(goloops.ErrBadFace, "fan needs >= 3 triangles (got %d)", n)
	}
	pos := make([]r3.Vec, 0, n+1)
	pos = append(pos, r3.Vec{})
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		pos = append(pos, r3.Vec{X: math.Cos(a), Y: math.Sin(a)})
	}
	faces := make([][]goloops.VtxIdx, 0, n)
	for k := 0; k < n; k++ {
		faces = append(faces, []goloops.VtxIdx{0, goloops.VtxIdx(1 + k), goloops.VtxIdx(1 + (k+1)%n)})
	}
	return NewMesh(pos, faces)
}
