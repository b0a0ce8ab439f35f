package libloops

import (
	"encoding/binary"
	"math"

	"github.com/2x3systems/goloops/goloops"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit hash of a mesh's positions and loop adjacency.
// Two meshes with equal fingerprints yield the same guide curves for the same Opts.
func Fingerprint(X goloops.Mesh) uint64 {
	var scrap [8 * 4]byte
	digest := xxhash.New()

	put := func(vals ...uint64) {
		buf := scrap[:0]
		for _, v := range vals {
			buf = binary.LittleEndian.AppendUint64(buf, v)
		}
		digest.Write(buf)
	}

	put(uint64(X.NumVerts()), uint64(X.NumEdges()), uint64(X.NumFaces()), uint64(X.NumLoops()))
	for vi := 0; vi < X.NumVerts(); vi++ {
		pos := X.VtxPos(goloops.VtxIdx(vi))
		put(math.Float64bits(pos.X), math.Float64bits(pos.Y), math.Float64bits(pos.Z))
	}
	for li := 0; li < X.NumLoops(); li++ {
		l := goloops.LoopIdx(li)
		rec := X.LoopAt(l)
		put(uint64(uint32(rec.Vtx))<<32|uint64(uint32(rec.Edge)), uint64(uint32(rec.Face)),
			uint64(uint32(X.LoopNext(l))), uint64(uint32(X.LoopRadial(l))))
	}
	return digest.Sum64()
}

// CurveKeyOf returns the catalog key for the curves GuideCurves(X, opts) generates.
func CurveKeyOf(X goloops.Mesh, opts goloops.Opts) goloops.CurveKey {
	target := opts.TargetCurves
	if target <= 0 {
		target = goloops.DefaultTargetCurves
	}
	return goloops.CurveKey{
		MeshID:       Fingerprint(X),
		TargetCurves: int32(target),
		Walk:         opts.WalkBoundaries,
	}
}
