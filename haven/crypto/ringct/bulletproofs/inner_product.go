package bulletproofs

import (
	"errors"
	"slices"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// InnerProductStatement The Bulletproofs Inner-Product statement.
//
// This is for usage with Protocol 2 from the Bulletproofs paper.
type InnerProductStatement struct {
	// HBoldWeights Weights for h_bold
	HBoldWeights ScalarVector
	// U The discrete logarithm of u with respect to H (u = U*H)
	U curve25519.Scalar
}

func (ips InnerProductStatement) TranscriptLR(transcript curve25519.Scalar, L, R *curve25519.Point) (out curve25519.Scalar) {
	crypto.ScalarDeriveLegacy(&out, transcript.Bytes(), L.Bytes(), R.Bytes())
	return out
}

// Prove for this Inner-Product statement.
func (ips InnerProductStatement) Prove(transcript curve25519.Scalar, witness InnerProductWitness) (proof InnerProductProof, err error) {
	GBoldSlice := Generator.G[:len(witness.A)]
	HBoldSlice := Generator.H[:len(witness.A)]

	var u curve25519.Point
	u.VarTimeScalarMultPrecomputed(&ips.U, crypto.GeneratorH.Table)

	if len(ips.HBoldWeights) != len(HBoldSlice) {
		return InnerProductProof{}, errors.New("incorrect amount of weights")
	}

	GBold := make(PointVector, len(GBoldSlice))
	for i := range GBold {
		GBold[i] = *GBoldSlice[i]
	}
	HBold := make(PointVector, len(HBoldSlice))
	for i := range HBold {
		HBold[i] = *HBoldSlice[i]
	}
	HBold.MultiplyVec(ips.HBoldWeights)

	a := ScalarVector(slices.Clone(witness.A))
	b := ScalarVector(slices.Clone(witness.B))

	var LSlice, RSlice []curve25519.Point
	var L, R curve25519.Point

	// `else: (n > 1)` case, lines 18-35 of the Bulletproofs paper
	// This interprets `g_bold.len()` as `n`
	for len(GBold) > 1 {
		// Split a, b, g_bold, h_bold as needed for lines 20-24
		a1, a2 := a.Split()
		b1, b2 := b.Split()

		GBold1, GBold2 := GBold.Split()
		HBold1, HBold2 := HBold.Split()

		// cl, cr, lines 21-22
		cl := ScalarVector(slices.Clone(a1)).InnerProduct(b2)
		cr := ScalarVector(slices.Clone(a2)).InnerProduct(b1)

		{
			L.Add(GBold2.MultiplyScalars(new(curve25519.Point), a1), HBold1.MultiplyScalars(new(curve25519.Point), b2))
			L.Add(&L, new(curve25519.Point).VarTimeScalarMult(&cl, &u))
			L.VarTimeScalarMult(crypto.InvEight, &L)
		}
		LSlice = append(LSlice, L)

		{
			R.Add(GBold1.MultiplyScalars(new(curve25519.Point), a2), HBold2.MultiplyScalars(new(curve25519.Point), b1))
			R.Add(&R, new(curve25519.Point).VarTimeScalarMult(&cr, &u))
			R.VarTimeScalarMult(crypto.InvEight, &R)
		}
		RSlice = append(RSlice, R)

		// Now that we've calculated L, R, transcript them to receive x (26-27)
		transcript = ips.TranscriptLR(transcript, &LSlice[len(LSlice)-1], &RSlice[len(RSlice)-1])

		x := transcript
		xInv := crypto.InvertScalar(new(curve25519.Scalar), &x)

		// The prover and verifier now calculate the following (28-31)
		next := make(PointVector, 0, len(GBold1))
		for i := range GBold1 {
			next = append(next, *new(curve25519.Point).VarTimeDoubleScalarMult(xInv, &GBold1[i], &x, &GBold2[i]))
		}
		GBold = next
		next = make(PointVector, 0, len(HBold1))
		for i := range HBold1 {
			next = append(next, *new(curve25519.Point).VarTimeDoubleScalarMult(&x, &HBold1[i], xInv, &HBold2[i]))
		}
		HBold = next

		// 32-34
		a = ScalarVector(slices.Clone(a1)).Multiply(&x).AddVec(ScalarVector(slices.Clone(a2)).Multiply(xInv))
		b = ScalarVector(slices.Clone(b1)).Multiply(xInv).AddVec(ScalarVector(slices.Clone(b2)).Multiply(&x))
	}

	// `if n = 1` case from line 14-17
	return InnerProductProof{
		L: LSlice,
		R: RSlice,
		A: a[0],
		B: b[0],
	}, nil
}

var ErrIncorrectAmountOfGenerators = errors.New("incorrect amount of generators")
var ErrDifferingLRLengths = errors.New("differing LR lengths")

func (ips InnerProductStatement) Verify(verifier *BatchVerifier, ipRows int, transcript, verifierWeight curve25519.Scalar, proof InnerProductProof) (err error) {
	GBoldSlice := Generator.G[:ipRows]
	HBoldSlice := Generator.H[:ipRows]

	// Verify the L/R lengths
	{
		// Calculate the discrete log w.r.t. 2 for the amount of generators present
		lrLen := 0
		for (1 << lrLen) < len(GBoldSlice) {
			lrLen++
		}

		// This proof has less/more terms than the passed in generators are for
		if len(proof.L) != lrLen {
			return ErrIncorrectAmountOfGenerators
		}

		if len(proof.L) != len(proof.R) {
			return ErrDifferingLRLengths
		}
	}

	// Again, we start with the `else: (n > 1)` case
	// We need x, x_inv per lines 25-27 for lines 28-31
	xs := make([]curve25519.Scalar, 0, len(proof.L))
	for i := range proof.L {
		transcript = ips.TranscriptLR(transcript, &proof.L[i], &proof.R[i])
		xs = append(xs, transcript)
	}

	xInvs := slices.Clone(xs)
	for i := range xInvs {
		crypto.InvertScalar(&xInvs[i], &xs[i])
	}

	// Now, with x and x_inv, we need to calculate g_bold', h_bold', P'
	//
	// For the sake of performance, we solely want to calculate all of these in
	// terms of scalings for g_bold, h_bold, P, and don't want to actually
	// perform intermediary scalings of the points.
	//
	// L and R are easy, as it's simply x**2, x**-2
	//
	// For the series of g_bold, h_bold, we use the challenge products

	challenges := make([][2]curve25519.Scalar, 0, len(proof.L))

	for i := range xs {
		x := xs[i]
		xInv := xInvs[i]
		L := proof.L[i]
		R := proof.R[i]

		challenges = append(challenges, [2]curve25519.Scalar{x, xInv})

		L.MultByCofactor(&L)
		R.MultByCofactor(&R)

		verifier.Other = append(verifier.Other, ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&verifierWeight, new(curve25519.Scalar).Multiply(&x, &x)), P: L})
		verifier.Other = append(verifier.Other, ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&verifierWeight, new(curve25519.Scalar).Multiply(&xInv, &xInv)), P: R})
	}

	productCache := ChallengeProducts(challenges)

	// And now for the `if n = 1` case
	c := new(curve25519.Scalar).Multiply(&proof.A, &proof.B)

	// The multiexp of these terms equate to the final permutation of P
	// We now add terms for a * g_bold' + b * h_bold' + c * u, with the scalars
	// negative such that the terms sum to 0 for an honest prover

	// The g_bold * a term case from line 16
	for i := range GBoldSlice {
		verifier.GBold[i].Subtract(&verifier.GBold[i], new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&verifierWeight, &productCache[i]), &proof.A))
	}
	// The h_bold * b term case from line 16
	for i := range HBoldSlice {
		verifier.HBold[i].Subtract(&verifier.HBold[i], new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&verifierWeight, &productCache[len(productCache)-1-i]), new(curve25519.Scalar).Multiply(&ips.HBoldWeights[i], &proof.B)))
	}
	// The c * u term case from line 16
	verifier.H.Subtract(&verifier.H, new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&verifierWeight, c), &ips.U))

	return nil
}

type InnerProductWitness struct {
	A ScalarVector
	B ScalarVector
}

func NewInnerProductWitness(a, b ScalarVector) InnerProductWitness {
	if len(a) == 0 || len(a) != len(b) {
		panic("invalid arguments")
	}

	if PaddedPowerOfTwo(len(a)) != len(a) {
		panic("invalid arguments")
	}
	return InnerProductWitness{
		A: a,
		B: b,
	}
}

type InnerProductProof struct {
	L []curve25519.Point
	R []curve25519.Point
	A curve25519.Scalar
	B curve25519.Scalar
}
