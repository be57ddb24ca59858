package bulletproofs

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// BatchVerifier Accumulates weighted terms from any number of proofs into a
// single multi-exponentiation that sums to the identity for honest provers.
type BatchVerifier struct {
	G     curve25519.Scalar
	H     curve25519.Scalar
	GBold []curve25519.Scalar
	HBold []curve25519.Scalar
	Other []ScalarPointPair
}

type ScalarPointPair struct {
	S curve25519.Scalar
	P curve25519.Point
}

func (bv *BatchVerifier) Grow(ipRows int) {
	for len(bv.GBold) < ipRows {
		bv.GBold = append(bv.GBold, curve25519.Scalar{})
		bv.HBold = append(bv.HBold, curve25519.Scalar{})
	}
}

func (bv *BatchVerifier) Verify() bool {
	capacity := 2 + len(bv.GBold) + len(bv.HBold) + len(bv.Other)
	scalars := make([]*curve25519.Scalar, 0, capacity)
	points := make([]*curve25519.Point, 0, capacity)

	scalars = append(scalars, &bv.G)
	points = append(points, crypto.GeneratorG.Point)

	scalars = append(scalars, &bv.H)
	points = append(points, crypto.GeneratorH.Point)

	for i := range bv.GBold {
		scalars = append(scalars, &bv.GBold[i])
		points = append(points, Generator.G[i])
	}

	for i := range bv.HBold {
		scalars = append(scalars, &bv.HBold[i])
		points = append(points, Generator.H[i])
	}

	for i := range bv.Other {
		scalars = append(scalars, &bv.Other[i].S)
		points = append(points, &bv.Other[i].P)
	}

	return curve25519.IsIdentity(multiScalarMultVarTime(new(curve25519.Point), scalars, points))
}
