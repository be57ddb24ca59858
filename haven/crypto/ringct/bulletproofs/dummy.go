package bulletproofs

import (
	"git.gammaspectra.live/P2Pool/edwards25519"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// MakeDummy A proof of correct shape but invalid content: A, S, T1, T2, L and
// R are the identity and the scalars are zero. V is not the identity: it holds
// the output commitments INV_EIGHT G + amount/8 H. Used by watch-only
// transaction simulation to skip the expensive prover; the verifier must
// never accept one.
//
// The returned masks are all one so decoy outputs still carry plausible
// commitments, matching the historic fake-transaction construction.
func MakeDummy(amounts []uint64) (proof *Proof, masks []curve25519.Scalar) {
	nrl := 0
	for (1 << nrl) < len(amounts) {
		nrl++
	}
	nrl += LogCommitmentBits

	identity := edwards25519.NewIdentityPoint()

	point := func() (p curve25519.Point) {
		p.Set(identity)
		return p
	}

	proof = &Proof{
		V: make([]curve25519.Point, len(amounts)),
		L: make([]curve25519.Point, nrl),
		R: make([]curve25519.Point, nrl),
	}
	proof.A = point()
	proof.S = point()
	proof.T1 = point()
	proof.T2 = point()

	masks = make([]curve25519.Scalar, len(amounts))
	for i := range amounts {
		masks[i].Set(scalarOne)

		var amountK curve25519.Scalar
		crypto.AmountToScalar(&amountK, amounts[i])
		amountK.Multiply(&amountK, crypto.InvEight)

		// INV_EIGHT G + amount/8 H
		proof.V[i].VarTimeScalarMultPrecomputed(&amountK, crypto.GeneratorH.Table)
		proof.V[i].Add(&proof.V[i], new(curve25519.Point).VarTimeScalarBaseMult(crypto.InvEight))
	}
	for i := range nrl {
		proof.L[i] = point()
		proof.R[i] = point()
	}

	return proof, masks
}
