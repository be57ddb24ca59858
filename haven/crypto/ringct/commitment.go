package ringct

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// Commitment A mask and the amount it hides
type Commitment struct {
	Mask   curve25519.Scalar
	Amount uint64
}

// Commit genC: C = mask G + amount H
func Commit(dst *curve25519.Point, amount uint64, mask *curve25519.Scalar) *curve25519.Point {
	var amountK curve25519.Scalar
	crypto.AmountToScalar(&amountK, amount)

	dst.VarTimeScalarMultPrecomputed(&amountK, crypto.GeneratorH.Table)
	return dst.Add(dst, new(curve25519.Point).ScalarBaseMult(mask))
}

// CalculateCommitment C = c.Mask G + c.Amount H
func CalculateCommitment(dst *curve25519.Point, c Commitment) *curve25519.Point {
	return Commit(dst, c.Amount, &c.Mask)
}

// CommitToH scalarmultH: amount H, the commitment of a public amount such as
// a fee (zero mask)
func CommitToH(dst *curve25519.Point, amount uint64) *curve25519.Point {
	var amountK curve25519.Scalar
	crypto.AmountToScalar(&amountK, amount)
	return dst.VarTimeScalarMultPrecomputed(&amountK, crypto.GeneratorH.Table)
}

// ScalarMult8 8 P, clearing torsion on decoded commitments. Commitments are
// published as C/8 and restored with this on read.
func ScalarMult8(dst *curve25519.Point, p *curve25519.Point) *curve25519.Point {
	return dst.MultByCofactor(p)
}
