package goloops

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// IsClosed returns true if this Path starts and ends on the same vertex.
func (path Path) IsClosed() bool {
	N := len(path)
	return N > 1 && path[0] == path[N-1]
}

// NumDistinct returns the number of vertices this Path visits (the closing vertex of a cycle counts once).
func (path Path) NumDistinct() int {
	if path.IsClosed() {
		return len(path) - 1
	}
	return len(path)
}

// IsCycle returns true if this Path is a closed cycle long enough to seed coverage.
func (path Path) IsCycle() bool {
	return path.IsClosed() && len(path) >= MinCycleLen
}

// IsOpenRun returns true if this Path is open and long enough to be kept.
func (path Path) IsOpenRun() bool {
	return !path.IsClosed() && len(path) >= MinPathLen
}

// NumSegments returns the number of cubic segments spanned by this Curve.
func (C *Curve) NumSegments() int {
	N := len(C.Points)
	if N < 2 {
		return 0
	}
	if C.Cyclic {
		return N
	}
	return N - 1
}

// Eval evaluates cubic segment si (0 <= si < NumSegments()) at t in [0,1].
func (C *Curve) Eval(si int, t float64) r3.Vec {
	N := len(C.Points)
	p0 := C.Points[si]
	p1 := C.Points[(si+1)%N]

	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t

	out := r3.Scale(b0, p0.Co)
	out = r3.Add(out, r3.Scale(b1, p0.HandleRight))
	out = r3.Add(out, r3.Scale(b2, p1.HandleLeft))
	out = r3.Add(out, r3.Scale(b3, p1.Co))
	return out
}

// PrintOpts specifies how curves and paths are written as text.
type PrintOpts struct {
	Label   string // prefixes each line when set
	Handles bool   // also write each point's handles
	Prec    int    // decimal places for coordinates; 0 denotes 4
}

// DefaultPrintOpts writes positions only.
var DefaultPrintOpts = PrintOpts{
	Prec: 4,
}

func (opts PrintOpts) writeVec(b *strings.Builder, v r3.Vec) {
	prec := opts.Prec
	if prec <= 0 {
		prec = 4
	}
	fmt.Fprintf(b, "(%.*f %.*f %.*f)", prec, v.X, prec, v.Y, prec, v.Z)
}

// WriteCurves writes one line per curve.
func WriteCurves(out io.Writer, curves []Curve, opts PrintOpts) error {
	b := strings.Builder{}
	b.Grow(256)

	for ci := range curves {
		C := &curves[ci]
		if len(opts.Label) > 0 {
			b.WriteString(opts.Label)
			b.WriteByte(',')
		}
		kind := "open"
		if C.Cyclic {
			kind = "cyclic"
		}
		fmt.Fprintf(&b, "%04d,%s,%d,", ci, kind, len(C.Points))
		for pi, pt := range C.Points {
			if pi > 0 {
				b.WriteByte(' ')
			}
			opts.writeVec(&b, pt.Co)
			if opts.Handles {
				b.WriteByte('<')
				opts.writeVec(&b, pt.HandleLeft)
				opts.writeVec(&b, pt.HandleRight)
				b.WriteByte('>')
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(out, b.String()); err != nil {
			return err
		}
		b.Reset()
	}
	return nil
}

// WritePaths writes one line per path listing its vertex indices.
func WritePaths(out io.Writer, paths []Path, opts PrintOpts) error {
	b := strings.Builder{}
	b.Grow(256)

	for pi, path := range paths {
		if len(opts.Label) > 0 {
			b.WriteString(opts.Label)
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%04d,%d,", pi, len(path))
		for i, vi := range path {
			if i > 0 {
				b.WriteByte('-')
			}
			fmt.Fprintf(&b, "%d", vi)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(out, b.String()); err != nil {
			return err
		}
		b.Reset()
	}
	return nil
}

// CurveKeySz is the byte length of a marshalled CurveKey.
const CurveKeySz = 13

// Marshal appends the big-endian encoding of this key to in, so keys of the same mesh sort together.
func (key CurveKey) Marshal(in []byte) []byte {
	walk := byte(0)
	if key.Walk {
		walk = 1
	}
	return append(in,
		byte(key.MeshID>>56),
		byte(key.MeshID>>48),
		byte(key.MeshID>>40),
		byte(key.MeshID>>32),
		byte(key.MeshID>>24),
		byte(key.MeshID>>16),
		byte(key.MeshID>>8),
		byte(key.MeshID),
		byte(key.TargetCurves>>24),
		byte(key.TargetCurves>>16),
		byte(key.TargetCurves>>8),
		byte(key.TargetCurves),
		walk,
	)
}

// Unmarshal reads a key written by Marshal.
func (key *CurveKey) Unmarshal(in []byte) error {
	if len(in) < CurveKeySz {
		*key = CurveKey{}
		return ErrBadEncoding
	}
	var id uint64
	for _, b := range in[:8] {
		id = (id << 8) | uint64(b)
	}
	key.MeshID = id
	key.TargetCurves = int32(uint32(in[8])<<24 | uint32(in[9])<<16 | uint32(in[10])<<8 | uint32(in[11]))
	key.Walk = in[12] != 0
	return nil
}

func (key CurveKey) String() string {
	return fmt.Sprintf("%016x-%d-%v", key.MeshID, key.TargetCurves, key.Walk)
}
