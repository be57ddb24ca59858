package borromean

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

const Elements = 64

// Signatures 64 Borromean ring signatures, as needed for a 64-bit range proof.
//
// Scalars are kept unreduced: historic signatures exist on chain with
// non-canonical values and the original verifier accepted them.
type Signatures struct {
	S0 [Elements]curve25519.UnreducedScalar
	S1 [Elements]curve25519.UnreducedScalar
	EE curve25519.Scalar
}

func (s *Signatures) Verify(A, B *[Elements]curve25519.Point) bool {
	var LL, LV curve25519.Point
	var tmpScalar, LLScalar curve25519.Scalar

	var transcript [curve25519.PublicKeySize * Elements]byte

	for i := range Elements {
		LL.VarTimeDoubleScalarBaseMult(&s.EE, &A[i], s.S0[i].VarTimeScalar(&tmpScalar))
		crypto.ScalarDeriveLegacy(&LLScalar, LL.Bytes())
		LV.VarTimeDoubleScalarBaseMult(&LLScalar, &B[i], s.S1[i].VarTimeScalar(&tmpScalar))

		copy(transcript[i*curve25519.PublicKeySize:], LV.Bytes())
	}
	return crypto.ScalarDeriveLegacy(&tmpScalar, transcript[:]).Equal(&s.EE) == 1
}
