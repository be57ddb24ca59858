package curve25519

import (
	"bytes"
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/edwards25519/field"
)

type Point = edwards25519.Point

// DecodeMontgomeryPoint
// Constant time
func DecodeMontgomeryPoint(r *Point, u *field.Element, sign int) *Point {
	if u == nil || u.Equal(_NEGATIVE_ONE) == 1 {
		return nil
	}

	var tmp1, tmp2 field.Element

	// The birational map is y = (u-1)/(u+1).
	y := u.Multiply(
		tmp1.Subtract(u, _ONE),
		tmp2.Invert(tmp2.Add(u, _ONE)),
	)

	var yBytes [32]byte
	copy(yBytes[:], y.Bytes())
	yBytes[31] ^= byte(sign << 7)

	return DecodeCompressedPoint(r, yBytes)
}

// DecodeCompressedPoint Decompress a canonically-encoded Ed25519 point.
//
// Ed25519 is of order `8 * basepointOrder`. This function ensures each of
// those points has a singular encoding by checking points aren't encoded with
// an unreduced field element, and aren't negative when the negative is
// equivalent (0 == -0).
//
// Torsioned points do have a canonical encoding; to verify the prime-order
// subgroup use Point.IsTorsionFree / IsTorsionFreeVarTime.
func DecodeCompressedPoint[S ~[PublicKeySize]byte](r *Point, buf S) *Point {
	if r == nil {
		return nil
	}

	_, err := r.SetBytes(buf[:])
	if err != nil {
		return nil
	}

	// Ban points which are either unreduced or -0
	if !bytes.Equal(r.Bytes(), buf[:]) {
		return nil
	}
	return r
}

func elementFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)

	e, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return e
}

var (
	_ONE          = new(field.Element).One()
	_NEGATIVE_ONE = new(field.Element).Negate(_ONE)
	_A            = elementFromUint64(486662)
	_NEGATIVE_A   = new(field.Element).Negate(_A)
)

var identityPoint = edwards25519.NewIdentityPoint()

// IsIdentity Whether p is the identity element I
func IsIdentity(p *Point) bool {
	return p.Equal(identityPoint) == 1
}
