package clsag

import (
	"errors"
	"io"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
)

// Domain separators, zero-padded to a full transcript slot.
// Consensus critical.
const (
	hashKeyRound = "CLSAG_round"
	hashKeyAgg0  = "CLSAG_agg_0"
	hashKeyAgg1  = "CLSAG_agg_1"
)

var ErrInvalidRing = errors.New("invalid CLSAG ring")
var ErrInvalidIndex = errors.New("invalid CLSAG signing index")
var ErrInvalidS = errors.New("invalid CLSAG S")
var ErrInvalidD = errors.New("invalid CLSAG D")
var ErrInvalidC1 = errors.New("invalid CLSAG C1")
var ErrInvalidImage = errors.New("invalid CLSAG key image")
var ErrInvalidMember = errors.New("invalid CLSAG ring member")
var ErrInvalidMultisig = errors.New("invalid CLSAG multisig data")

// Signature A concise linkable spontaneous anonymous group signature over a
// ring of (output key, commitment) pairs.
type Signature struct {
	// S The responses for each ring member
	S []curve25519.Scalar

	// C1 The first challenge in the ring
	C1 curve25519.Scalar

	// D The difference of the commitment randomnesses scaling the key image
	// generator, published divided by eight
	D curve25519.PublicKeyBytes

	// I The key image of the signing key
	I curve25519.PublicKeyBytes
}

// KLRKI A pre-committed multisig nonce share: the nonce k, its images
// L = k G and R = k H_p(P), and the aggregate key image.
type KLRKI struct {
	K  curve25519.Scalar
	L  curve25519.PublicKeyBytes
	R  curve25519.PublicKeyBytes
	KI curve25519.PublicKeyBytes
}

// MultisigOut Data cosigners need to complete their response shares
type MultisigOut struct {
	// C The challenge at the signing index
	C curve25519.Scalar
	// MuP The key aggregation coefficient
	MuP curve25519.Scalar
}

// aggregationHashes mu_P and mu_C over
// [domain, P.., C_nonzero.., I, D/8, C_offset]
func aggregationHashes(muP, muC *curve25519.Scalar, P, CNonzero []curve25519.PublicKeyBytes, I, D, COffset *curve25519.PublicKeyBytes) {
	n := len(P)
	buf := make([]byte, 0, (2*n+4)*curve25519.PublicKeySize)
	buf = append(buf, hashKeyAgg0...)
	buf = append(buf, make([]byte, curve25519.PublicKeySize-len(hashKeyAgg0))...)
	for i := range P {
		buf = append(buf, P[i][:]...)
	}
	for i := range CNonzero {
		buf = append(buf, CNonzero[i][:]...)
	}
	buf = append(buf, I[:]...)
	buf = append(buf, D[:]...)
	buf = append(buf, COffset[:]...)

	crypto.ScalarDeriveLegacy(muP, buf)

	// mu_C differs only in the domain slot
	buf[len(hashKeyAgg0)-1] = '1'
	crypto.ScalarDeriveLegacy(muC, buf)
}

// roundTranscript the static prefix of the round hash
// [domain, P.., C_nonzero.., C_offset, message], with L and R appended per round
func roundTranscript(P, CNonzero []curve25519.PublicKeyBytes, COffset *curve25519.PublicKeyBytes, message types.Hash) []byte {
	n := len(P)
	buf := make([]byte, 0, (2*n+5)*curve25519.PublicKeySize)
	buf = append(buf, hashKeyRound...)
	buf = append(buf, make([]byte, curve25519.PublicKeySize-len(hashKeyRound))...)
	for i := range P {
		buf = append(buf, P[i][:]...)
	}
	for i := range CNonzero {
		buf = append(buf, CNonzero[i][:]...)
	}
	buf = append(buf, COffset[:]...)
	buf = append(buf, message[:]...)
	return buf
}

// Generate Produces a CLSAG signature at secret index l.
//
// The keys are set as follows:
//
//	P[l] == p*G
//	C_nonzero[i] - C_offset == z*G at index l (the amounts cancel out)
//
// kLRki, when present, injects a pre-committed multisig nonce; msout then
// receives the challenge and aggregation coefficient cosigners need.
func Generate(message types.Hash, P []curve25519.PublicKeyBytes, p *curve25519.Scalar, z *curve25519.Scalar, CNonzero []curve25519.PublicKeyBytes, COffset curve25519.PublicKeyBytes, l int, kLRki *KLRKI, msout *MultisigOut, randomReader io.Reader) (sig Signature, err error) {
	n := len(P)
	if n == 0 || len(CNonzero) != n {
		return sig, ErrInvalidRing
	}
	if l < 0 || l >= n {
		return sig, ErrInvalidIndex
	}
	if (kLRki == nil) != (msout == nil) {
		return sig, ErrInvalidMultisig
	}

	// Key image generator
	var H curve25519.Point
	crypto.BiasedHashToPoint(&H, P[l][:])

	// Auxiliary key image for the commitment line
	var D curve25519.Point
	D.ScalarMult(z, &H)

	var I curve25519.Point
	if kLRki != nil {
		if curve25519.DecodeCompressedPoint(&I, kLRki.KI) == nil {
			return sig, ErrInvalidMultisig
		}
	} else {
		I.ScalarMult(p, &H)
	}
	sig.I = curve25519.PublicKeyBytes(I.Bytes())

	// Offset key image
	sig.D = curve25519.PublicKeyBytes(new(curve25519.Point).ScalarMult(crypto.InvEight, &D).Bytes())

	var muP, muC curve25519.Scalar
	aggregationHashes(&muP, &muC, P, CNonzero, &sig.I, &sig.D, &COffset)

	// Initial commitment
	var a curve25519.Scalar
	var aG, aH curve25519.Point
	if kLRki != nil {
		a.Set(&kLRki.K)
		if curve25519.DecodeCompressedPoint(&aG, kLRki.L) == nil || curve25519.DecodeCompressedPoint(&aH, kLRki.R) == nil {
			return sig, ErrInvalidMultisig
		}
	} else {
		curve25519.RandomScalar(&a, randomReader)
		aG.ScalarBaseMult(&a)
		aH.ScalarMult(&a, &H)
	}

	transcript := roundTranscript(P, CNonzero, &COffset, message)
	prefixLen := len(transcript)

	var c curve25519.Scalar
	transcript = append(transcript, aG.Bytes()...)
	transcript = append(transcript, aH.Bytes()...)
	crypto.ScalarDeriveLegacy(&c, transcript)

	if (l+1)%n == 0 {
		sig.C1.Set(&c)
	}

	// Ring members needed by the decoy rounds
	COffsetPoint := COffset.Point()
	if COffsetPoint == nil {
		return sig, ErrInvalidMember
	}

	sig.S = make([]curve25519.Scalar, n)

	var cP, cC curve25519.Scalar
	var L, R, PH, Pi, Ci curve25519.Point

	for i := (l + 1) % n; i != l; i = (i + 1) % n {
		curve25519.RandomScalar(&sig.S[i], randomReader)

		cP.Multiply(&muP, &c)
		cC.Multiply(&muC, &c)

		if curve25519.DecodeCompressedPoint(&Pi, P[i]) == nil {
			return sig, ErrInvalidMember
		}
		if curve25519.DecodeCompressedPoint(&Ci, CNonzero[i]) == nil {
			return sig, ErrInvalidMember
		}
		Ci.Subtract(&Ci, COffsetPoint)

		// L = s_i G + (mu_P c) P_i + (mu_C c) C_i
		L.VarTimeDoubleScalarBaseMult(&cP, &Pi, &sig.S[i])
		L.Add(&L, new(curve25519.Point).VarTimeScalarMult(&cC, &Ci))

		// R = s_i H_p(P_i) + (mu_P c) I + (mu_C c) D
		crypto.BiasedHashToPoint(&PH, P[i][:])
		R.VarTimeScalarMult(&sig.S[i], &PH)
		R.Add(&R, new(curve25519.Point).VarTimeDoubleScalarMult(&cP, &I, &cC, &D))

		transcript = transcript[:prefixLen]
		transcript = append(transcript, L.Bytes()...)
		transcript = append(transcript, R.Bytes()...)
		crypto.ScalarDeriveLegacy(&c, transcript)

		if (i+1)%n == 0 {
			sig.C1.Set(&c)
		}
	}

	// Close the ring: s_l = a - c (mu_P p + mu_C z)
	var closing curve25519.Scalar
	closing.Multiply(&muP, p)
	closing.MultiplyAdd(&muC, z, &closing)
	closing.Multiply(&c, &closing)
	sig.S[l].Subtract(&a, &closing)

	if msout != nil {
		msout.C.Set(&c)
		msout.MuP.Set(&muP)
	}

	// Scrub the nonce and derived secrets before returning
	curve25519.WipeScalar(&a)
	curve25519.WipeScalar(&closing)

	return sig, nil
}

// Verify Walks the full ring from C1 and accepts iff the challenge closes
// back onto C1. P and CNonzero come from the mix-ring, COffset is the
// pseudo-output commitment of this input.
func (sig *Signature) Verify(message types.Hash, P []curve25519.PublicKeyBytes, CNonzero []curve25519.PublicKeyBytes, COffset curve25519.PublicKeyBytes) error {
	n := len(P)
	if n == 0 || len(CNonzero) != n {
		return ErrInvalidRing
	}
	if len(sig.S) != n {
		return ErrInvalidS
	}

	var I curve25519.Point
	if curve25519.DecodeCompressedPoint(&I, sig.I) == nil || curve25519.IsIdentity(&I) {
		return ErrInvalidImage
	}

	// D without torsion
	var D8 curve25519.Point
	if curve25519.DecodeCompressedPoint(&D8, sig.D) == nil {
		return ErrInvalidD
	}
	D8.MultByCofactor(&D8)
	if curve25519.IsIdentity(&D8) {
		return ErrInvalidD
	}

	COffsetPoint := COffset.Point()
	if COffsetPoint == nil {
		return ErrInvalidMember
	}

	var muP, muC curve25519.Scalar
	aggregationHashes(&muP, &muC, P, CNonzero, &sig.I, &sig.D, &COffset)

	transcript := roundTranscript(P, CNonzero, &COffset, message)
	prefixLen := len(transcript)

	var c curve25519.Scalar
	c.Set(&sig.C1)

	var zero curve25519.Scalar
	var cP, cC curve25519.Scalar
	var L, R, PH, Pi, Ci curve25519.Point

	for i := 0; i < n; i++ {
		cP.Multiply(&muP, &c)
		cC.Multiply(&muC, &c)

		if curve25519.DecodeCompressedPoint(&Pi, P[i]) == nil {
			return ErrInvalidMember
		}
		if curve25519.DecodeCompressedPoint(&Ci, CNonzero[i]) == nil {
			return ErrInvalidMember
		}
		Ci.Subtract(&Ci, COffsetPoint)

		L.VarTimeDoubleScalarBaseMult(&cP, &Pi, &sig.S[i])
		L.Add(&L, new(curve25519.Point).VarTimeScalarMult(&cC, &Ci))

		crypto.BiasedHashToPoint(&PH, P[i][:])
		R.VarTimeScalarMult(&sig.S[i], &PH)
		R.Add(&R, new(curve25519.Point).VarTimeDoubleScalarMult(&cP, &I, &cC, &D8))

		transcript = transcript[:prefixLen]
		transcript = append(transcript, L.Bytes()...)
		transcript = append(transcript, R.Bytes()...)
		crypto.ScalarDeriveLegacy(&c, transcript)

		if c.Equal(&zero) == 1 {
			return ErrInvalidC1
		}
	}

	if c.Equal(&sig.C1) == 0 {
		return ErrInvalidC1
	}

	return nil
}
