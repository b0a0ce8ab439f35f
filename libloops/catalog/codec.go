package catalog

import (
	"math"

	"github.com/2x3systems/goloops/goloops"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

const (
	curvesEncodingVers = 1

	flagCyclic = 0x01

	// fixed64 fields per CurvePoint: Co, HandleLeft, HandleRight
	pointFloats = 9
	pointSz     = 8 * pointFloats
)

// EncodeCurves returns the catalog value encoding of the given curves.
func EncodeCurves(curves []goloops.Curve) []byte {
	numPoints := 0
	for _, C := range curves {
		numPoints += len(C.Points)
	}
	buf := proto.NewBuffer(make([]byte, 0, 8+4*len(curves)+pointSz*numPoints))

	buf.EncodeVarint(curvesEncodingVers)
	buf.EncodeVarint(uint64(len(curves)))
	for _, C := range curves {
		flags := uint64(0)
		if C.Cyclic {
			flags |= flagCyclic
		}
		buf.EncodeVarint(flags)
		buf.EncodeVarint(uint64(len(C.Points)))
		for _, pt := range C.Points {
			for _, v := range [...]float64{
				pt.Co.X, pt.Co.Y, pt.Co.Z,
				pt.HandleLeft.X, pt.HandleLeft.Y, pt.HandleLeft.Z,
				pt.HandleRight.X, pt.HandleRight.Y, pt.HandleRight.Z,
			} {
				buf.EncodeFixed64(math.Float64bits(v))
			}
		}
	}
	return buf.Bytes()
}

// DecodeCurves reads curves written by EncodeCurves.
func DecodeCurves(val []byte) ([]goloops.Curve, error) {
	buf := proto.NewBuffer(val)

	vers, err := buf.DecodeVarint()
	if err != nil {
		return nil, errors.Wrap(goloops.ErrBadEncoding, "missing header")
	}
	if vers != curvesEncodingVers {
		return nil, errors.Wrapf(goloops.ErrBadEncoding, "unsupported curve encoding version %d", vers)
	}
	numCurves, err := buf.DecodeVarint()
	if err != nil || numCurves > uint64(len(val)) {
		return nil, errors.Wrap(goloops.ErrBadEncoding, "bad curve count")
	}

	curves := make([]goloops.Curve, numCurves)
	for ci := range curves {
		flags, err := buf.DecodeVarint()
		if err != nil {
			return nil, errors.Wrapf(goloops.ErrBadEncoding, "curve %d: %v", ci, err)
		}
		numPoints, err := buf.DecodeVarint()
		if err != nil || numPoints > uint64(len(val)/pointSz) {
			return nil, errors.Wrapf(goloops.ErrBadEncoding, "curve %d: bad point count", ci)
		}

		C := &curves[ci]
		C.Cyclic = flags&flagCyclic != 0
		C.Points = make([]goloops.CurvePoint, numPoints)

		var f [pointFloats]float64
		for pi := range C.Points {
			for i := range f {
				bits, err := buf.DecodeFixed64()
				if err != nil {
					return nil, errors.Wrapf(goloops.ErrBadEncoding, "curve %d point %d: %v", ci, pi, err)
				}
				f[i] = math.Float64frombits(bits)
			}
			pt := &C.Points[pi]
			pt.Co.X, pt.Co.Y, pt.Co.Z = f[0], f[1], f[2]
			pt.HandleLeft.X, pt.HandleLeft.Y, pt.HandleLeft.Z = f[3], f[4], f[5]
			pt.HandleRight.X, pt.HandleRight.Y, pt.HandleRight.Z = f[6], f[7], f[8]
		}
	}
	return curves, nil
}
