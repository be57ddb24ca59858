package bulletproofs

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

var two = (&curve25519.PrivateKeyBytes{2}).Scalar()

var twoScalarVectorPowers = AppendScalarVectorPowers(nil, two, CommitmentBits)

func TwoScalarVectorPowers() ScalarVector {
	return twoScalarVectorPowers
}

func AppendScalarVectorPowers(out ScalarVector, x *curve25519.Scalar, size int) ScalarVector {
	if size == 0 {
		return out
	}
	n := len(out)
	out = append(out, *(&curve25519.PrivateKeyBytes{1}).Scalar(), *x)
	var tmp curve25519.Scalar
	for i := 2; i < size; i++ {
		out = append(out, *tmp.Multiply(&out[i-1+n], x))
	}
	return out[:size+n]
}

type ScalarVector []curve25519.Scalar

func (v ScalarVector) Split() (a, b ScalarVector) {
	if len(v) <= 1 || len(v)%2 != 0 {
		panic("unreachable")
	}

	return v[:len(v)/2], v[len(v)/2:]
}

func (v ScalarVector) Sum() (out curve25519.Scalar) {
	for i := range v {
		out.Add(&out, &v[i])
	}
	return out
}

// InnerProduct Returns sum(v * o)
func (v ScalarVector) InnerProduct(o ScalarVector) (out curve25519.Scalar) {
	if len(o) != len(v) {
		panic("len mismatch")
	}
	for i := range v {
		out.MultiplyAdd(&v[i], &o[i], &out)
	}
	return out
}

func (v ScalarVector) Add(s *curve25519.Scalar) ScalarVector {
	for i := range v {
		v[i].Add(&v[i], s)
	}
	return v
}

func (v ScalarVector) Subtract(s *curve25519.Scalar) ScalarVector {
	for i := range v {
		v[i].Subtract(&v[i], s)
	}
	return v
}

func (v ScalarVector) Multiply(s *curve25519.Scalar) ScalarVector {
	for i := range v {
		v[i].Multiply(&v[i], s)
	}
	return v
}

func (v ScalarVector) AddVec(o ScalarVector) ScalarVector {
	if len(o) != len(v) {
		panic("len mismatch")
	}
	for i := range v {
		v[i].Add(&v[i], &o[i])
	}
	return v
}

func (v ScalarVector) MultiplyVec(o ScalarVector) ScalarVector {
	if len(o) != len(v) {
		panic("len mismatch")
	}
	for i := range v {
		v[i].Multiply(&v[i], &o[i])
	}
	return v
}

func (v ScalarVector) MultiplyPoints(dst *curve25519.Point, points []*curve25519.Point) *curve25519.Point {
	if len(points) != len(v) {
		panic("len mismatch")
	}
	scalars := make([]*curve25519.Scalar, len(v))
	for i := range v {
		scalars[i] = &v[i]
	}
	return multiScalarMultVarTime(dst, scalars, points)
}

type PointVector []curve25519.Point

func (v PointVector) Split() (a, b PointVector) {
	if len(v) <= 1 || len(v)%2 != 0 {
		panic("unreachable")
	}

	return v[:len(v)/2], v[len(v)/2:]
}

func (v PointVector) MultiplyVec(o ScalarVector) PointVector {
	if len(o) != len(v) {
		panic("len mismatch")
	}
	for i := range v {
		v[i].VarTimeScalarMult(&o[i], &v[i])
	}
	return v
}

func (v PointVector) MultiplyScalars(dst *curve25519.Point, scalars ScalarVector) *curve25519.Point {
	if len(scalars) != len(v) {
		panic("len mismatch")
	}
	points := make([]*curve25519.Point, len(v))
	for i := range v {
		points[i] = &v[i]
	}
	return scalars.MultiplyPoints(dst, points)
}

func multiScalarMultVarTime(dst *curve25519.Point, scalars []*curve25519.Scalar, points []*curve25519.Point) *curve25519.Point {
	if len(scalars) >= 190 {
		return dst.VarTimeMultiScalarMultPippenger(scalars, points)
	}
	return dst.VarTimeMultiScalarMult(scalars, points)
}
