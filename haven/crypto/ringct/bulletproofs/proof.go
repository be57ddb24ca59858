package bulletproofs

import (
	"errors"
	"io"
	"slices"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// Proof An aggregated Bulletproof over one to MaxOutputs commitments.
//
// V carries the commitments scaled by INV_EIGHT, as published on chain.
type Proof struct {
	V    []curve25519.Point
	A    curve25519.Point
	S    curve25519.Point
	T1   curve25519.Point
	T2   curve25519.Point
	TauX curve25519.Scalar
	Mu   curve25519.Scalar
	L    []curve25519.Point
	R    []curve25519.Point
	Aa   curve25519.Scalar
	Bb   curve25519.Scalar
	T    curve25519.Scalar
}

var ErrTooManyOutputs = errors.New("too many outputs for a single bulletproof")
var ErrInvalidProofLengths = errors.New("invalid bulletproof lengths")

// Amounts The total amount of commitments proven for across all proofs.
// Returns 0 on any malformed proof.
func Amounts(proofs []*Proof) (n int) {
	for _, p := range proofs {
		if len(p.V) == 0 || len(p.V) > MaxOutputs {
			return 0
		}
		if len(p.L) != LogCommitmentBits+log2(PaddedPowerOfTwo(len(p.V))) {
			return 0
		}
		n += len(p.V)
	}
	return n
}

func log2(n int) (l int) {
	for (1 << l) < n {
		l++
	}
	return l
}

var generatorHInvEight = new(curve25519.Point).VarTimeScalarMult(crypto.InvEight, crypto.GeneratorH.Point)
var generatorGInvEight = new(curve25519.Point).VarTimeScalarMult(crypto.InvEight, crypto.GeneratorG.Point)

func initialTranscript(V []curve25519.Point) (transcript curve25519.Scalar) {
	buf := make([]byte, 0, len(V)*curve25519.PublicKeySize)
	for i := range V {
		buf = append(buf, V[i].Bytes()...)
	}
	crypto.ScalarDeriveLegacy(&transcript, buf)
	return transcript
}

func transcriptAS(transcript curve25519.Scalar, A, S *curve25519.Point) (y, z curve25519.Scalar) {
	crypto.ScalarDeriveLegacy(&y, transcript.Bytes(), A.Bytes(), S.Bytes())
	crypto.ScalarDeriveLegacy(&z, y.Bytes())
	return y, z
}

func transcriptT12(transcript curve25519.Scalar, T1, T2 *curve25519.Point) (t12 curve25519.Scalar) {
	tBytes := transcript.Bytes()
	crypto.ScalarDeriveLegacy(&t12, tBytes, tBytes, T1.Bytes(), T2.Bytes())
	return t12
}

func transcriptTauXMuTHat(transcript curve25519.Scalar, TauX, Mu, THat *curve25519.Scalar) (t curve25519.Scalar) {
	tBytes := transcript.Bytes()
	crypto.ScalarDeriveLegacy(&t, tBytes, tBytes, TauX.Bytes(), Mu.Bytes(), THat.Bytes())
	return t
}

var scalarOne = (&curve25519.PrivateKeyBytes{1}).Scalar()

// Prove Produces an aggregated proof that every amount lies in [0, 2^64),
// committed with the given masks. The aggregation is padded to the next
// power of two with zero amounts.
func Prove(amounts []uint64, masks []curve25519.Scalar, randomReader io.Reader) (proof *Proof, err error) {
	if len(amounts) == 0 || len(amounts) != len(masks) {
		return nil, ErrInvalidProofLengths
	}
	if len(amounts) > MaxOutputs {
		return nil, ErrTooManyOutputs
	}

	paddedPowOf2 := PaddedPowerOfTwo(len(amounts))

	V := make([]curve25519.Point, len(amounts))
	for i := range amounts {
		var amountK, maskK curve25519.Scalar
		crypto.AmountToScalar(&amountK, amounts[i])
		amountK.Multiply(&amountK, crypto.InvEight)
		maskK.Multiply(&masks[i], crypto.InvEight)
		// mask/8 G + amount/8 H
		V[i].VarTimeScalarMultPrecomputed(&amountK, crypto.GeneratorH.Table)
		V[i].Add(&V[i], new(curve25519.Point).VarTimeScalarBaseMult(&maskK))
	}

	transcript := initialTranscript(V)

	var aL ScalarVector
	for _, amount := range amounts {
		aL = append(aL, Decompose(amount)...)
	}
	for range (paddedPowOf2 - len(amounts)) * CommitmentBits {
		aL = append(aL, amountScalarBit[0])
	}
	aR := ScalarVector(slices.Clone(aL)).Subtract(scalarOne)

	var alpha curve25519.Scalar
	curve25519.RandomScalar(&alpha, randomReader)

	var A, S curve25519.Point
	{
		A.Add(aL.MultiplyPoints(new(curve25519.Point), Generator.G[:len(aL)]), aR.MultiplyPoints(new(curve25519.Point), Generator.H[:len(aR)]))
		A.Add(&A, new(curve25519.Point).ScalarBaseMult(&alpha))
		A.VarTimeScalarMult(crypto.InvEight, &A)
	}

	sL := make(ScalarVector, paddedPowOf2*CommitmentBits)
	sR := make(ScalarVector, paddedPowOf2*CommitmentBits)
	for i := range paddedPowOf2 * CommitmentBits {
		curve25519.RandomScalar(&sL[i], randomReader)
		curve25519.RandomScalar(&sR[i], randomReader)
	}
	var rho curve25519.Scalar
	curve25519.RandomScalar(&rho, randomReader)
	{
		S.Add(sL.MultiplyPoints(new(curve25519.Point), Generator.G[:len(sL)]), sR.MultiplyPoints(new(curve25519.Point), Generator.H[:len(sR)]))
		S.Add(&S, new(curve25519.Point).ScalarBaseMult(&rho))
		S.VarTimeScalarMult(crypto.InvEight, &S)
	}

	var y curve25519.Scalar
	y, transcript = transcriptAS(transcript, &A, &S)
	z := AppendScalarVectorPowers(make(ScalarVector, 0, 3+paddedPowOf2), &transcript, 3+paddedPowOf2)
	twos := TwoScalarVectorPowers()

	l0 := ScalarVector(slices.Clone(aL)).Subtract(&z[1])
	l1 := sL

	yPowN := AppendScalarVectorPowers(make(ScalarVector, 0, len(aR)), &y, len(aR))

	r0 := ScalarVector(slices.Clone(aR)).Add(&z[1]).MultiplyVec(yPowN)
	r1 := ScalarVector(slices.Clone(sR)).MultiplyVec(yPowN)
	{
		for j := range paddedPowOf2 {
			for i := range CommitmentBits {
				r0[(j*CommitmentBits)+i].Add(&r0[(j*CommitmentBits)+i], new(curve25519.Scalar).Multiply(&z[2+j], &twos[i]))
			}
		}
	}

	var t1, t2, tau1, tau2 curve25519.Scalar
	{
		var tmp1, tmp2 curve25519.Scalar
		tmp1 = l0.InnerProduct(r1)
		tmp2 = r0.InnerProduct(l1)
		t1.Add(&tmp1, &tmp2)
		t2 = l1.InnerProduct(r1)
	}
	curve25519.RandomScalar(&tau1, randomReader)
	curve25519.RandomScalar(&tau2, randomReader)

	var T1, T2 curve25519.Point
	T1.VarTimeDoubleScalarMult(&t1, generatorHInvEight, &tau1, generatorGInvEight)
	T2.VarTimeDoubleScalarMult(&t2, generatorHInvEight, &tau2, generatorGInvEight)

	transcript = transcriptT12(transcript, &T1, &T2)
	x := transcript
	l := l0.AddVec(ScalarVector(slices.Clone(l1)).Multiply(&x))
	r := r0.AddVec(ScalarVector(slices.Clone(r1)).Multiply(&x))

	THat := l.InnerProduct(r)
	TauX := new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Add(new(curve25519.Scalar).Multiply(&tau2, &x), &tau1), &x)
	for i := range masks {
		TauX.Add(TauX, new(curve25519.Scalar).Multiply(&z[2+i], &masks[i]))
	}
	mu := new(curve25519.Scalar).Add(&alpha, new(curve25519.Scalar).Multiply(&rho, &x))

	yInvPowN := AppendScalarVectorPowers(make(ScalarVector, 0, len(l)), crypto.InvertScalar(new(curve25519.Scalar), &y), len(l))

	transcript = transcriptTauXMuTHat(transcript, TauX, mu, &THat)
	xIp := transcript

	ips := InnerProductStatement{
		HBoldWeights: yInvPowN,
		U:            xIp,
	}
	ip, err := ips.Prove(transcript, NewInnerProductWitness(l, r))
	if err != nil {
		return nil, err
	}

	// wipe the nonces tied to the masks
	curve25519.WipeScalar(&alpha)
	curve25519.WipeScalar(&rho)
	curve25519.WipeScalar(&tau1)
	curve25519.WipeScalar(&tau2)

	return &Proof{
		V:    V,
		A:    A,
		S:    S,
		T1:   T1,
		T2:   T2,
		TauX: *TauX,
		Mu:   *mu,
		L:    ip.L,
		R:    ip.R,
		Aa:   ip.A,
		Bb:   ip.B,
		T:    THat,
	}, nil
}

// VerifyInto Accumulates this proof into the batch verifier. Returns false on
// malformed proofs. A proof rejected by the final inner-product length check
// has already added its terms, so the verifier is not reusable after false.
func (p *Proof) VerifyInto(verifier *BatchVerifier, randomReader io.Reader) bool {
	if len(p.V) == 0 || len(p.V) > MaxOutputs {
		return false
	}
	if len(p.L) != len(p.R) {
		return false
	}

	// Find out the padded amount of commitments
	paddedPowOf2 := PaddedPowerOfTwo(len(p.V))

	ipRows := paddedPowOf2 * CommitmentBits

	verifier.Grow(ipRows)

	transcript := initialTranscript(p.V)

	commitments := make([]curve25519.Point, len(p.V))
	for i := range p.V {
		commitments[i].MultByCofactor(&p.V[i])
	}

	y, transcript := transcriptAS(transcript, &p.A, &p.S)
	z := AppendScalarVectorPowers(nil, &transcript, 3+paddedPowOf2)
	transcript = transcriptT12(transcript, &p.T1, &p.T2)
	x := transcript
	transcript = transcriptTauXMuTHat(transcript, &p.TauX, &p.Mu, &p.T)

	xIp := transcript

	var A, S, T1, T2 curve25519.Point
	A.MultByCofactor(&p.A)
	S.MultByCofactor(&p.S)
	T1.MultByCofactor(&p.T1)
	T2.MultByCofactor(&p.T2)

	yPowN := AppendScalarVectorPowers(nil, &y, ipRows)
	yInvPowN := AppendScalarVectorPowers(nil, crypto.InvertScalar(new(curve25519.Scalar), &y), ipRows)

	twos := TwoScalarVectorPowers()

	// 65
	{
		var weight curve25519.Scalar
		curve25519.RandomScalar(&weight, randomReader)
		verifier.H.Add(&verifier.H, new(curve25519.Scalar).Multiply(&weight, &p.T))
		verifier.G.Add(&verifier.G, new(curve25519.Scalar).Multiply(&weight, &p.TauX))

		// Now that we've accumulated the lhs, negate the weight and accumulate
		// the rhs. These will now sum to 0 if equal
		weight.Negate(&weight)

		yPowNSum := yPowN.Sum()
		verifier.H.Add(&verifier.H, new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&weight, new(curve25519.Scalar).Subtract(&z[1], &z[2])), &yPowNSum))

		for i := range commitments {
			verifier.Other = append(verifier.Other, ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&weight, &z[2+i]), P: commitments[i]})
		}

		twosSum := twos.Sum()
		for i := range paddedPowOf2 {
			verifier.H.Subtract(&verifier.H, new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&weight, &z[3+i]), &twosSum))
		}

		verifier.Other = append(verifier.Other,
			ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&weight, &x), P: T1},
			ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&weight, new(curve25519.Scalar).Multiply(&x, &x)), P: T2},
		)
	}

	var ipWeight curve25519.Scalar
	curve25519.RandomScalar(&ipWeight, randomReader)

	// 66
	verifier.Other = append(verifier.Other,
		ScalarPointPair{S: ipWeight, P: A},
		ScalarPointPair{S: *new(curve25519.Scalar).Multiply(&ipWeight, &x), P: S},
	)

	ipZ := new(curve25519.Scalar).Multiply(&ipWeight, &z[1])
	for i := range ipRows {
		verifier.HBold[i].Add(&verifier.HBold[i], ipZ)
	}
	negIpZ := new(curve25519.Scalar).Negate(ipZ)
	for i := range ipRows {
		verifier.GBold[i].Add(&verifier.GBold[i], negIpZ)
	}
	for j := range paddedPowOf2 {
		for i := range CommitmentBits {
			fullI := (j * CommitmentBits) + i

			verifier.HBold[fullI].Add(&verifier.HBold[fullI], new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&ipWeight, &yInvPowN[fullI]), new(curve25519.Scalar).Multiply(&z[2+j], &twos[i])))
		}
	}
	verifier.H.Add(&verifier.H, new(curve25519.Scalar).Multiply(new(curve25519.Scalar).Multiply(&ipWeight, &xIp), &p.T))

	// 67, 68
	verifier.G.Add(&verifier.G, new(curve25519.Scalar).Multiply(&ipWeight, new(curve25519.Scalar).Negate(&p.Mu)))

	return (&InnerProductStatement{
		HBoldWeights: yInvPowN,
		U:            xIp,
	}).Verify(verifier, ipRows, transcript, ipWeight, InnerProductProof{
		L: p.L,
		R: p.R,
		A: p.Aa,
		B: p.Bb,
	}) == nil
}

// Verify A single proof on its own. Batch with VerifyBatch instead where
// several proofs are at hand.
func (p *Proof) Verify(randomReader io.Reader) bool {
	var verifier BatchVerifier
	if !p.VerifyInto(&verifier, randomReader) {
		return false
	}
	return verifier.Verify()
}

// VerifyBatch Verification of a batch of independent proofs equals the
// conjunction of individual verifications, in a single multi-exponentiation.
func VerifyBatch(proofs []*Proof, randomReader io.Reader) bool {
	if len(proofs) == 0 {
		return true
	}
	var verifier BatchVerifier
	for _, p := range proofs {
		if !p.VerifyInto(&verifier, randomReader) {
			return false
		}
	}
	return verifier.Verify()
}
