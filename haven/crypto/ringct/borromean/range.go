package borromean

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// Range A range proof premised on Borromean ring signatures. Retained to
// verify historic pre-Bulletproof outputs.
type Range struct {
	Signatures Signatures
	// Ci Bit commitments, summing to the output commitment
	Ci [Elements]curve25519.PublicKeyBytes
}

// Verify Checks sum(Ci) == commitment and that each Ci commits to 0 or 2^i
func (s *Range) Verify(commitment *curve25519.Point) bool {
	var commitments, commitmentsSubOne [Elements]curve25519.Point

	var sum curve25519.Point
	for i := range s.Ci {
		if curve25519.DecodeCompressedPoint(&commitments[i], s.Ci[i]) == nil {
			return false
		}
		commitmentsSubOne[i].Subtract(&commitments[i], generatorHPow2[i])
		if i == 0 {
			sum.Set(&commitments[0])
		} else {
			sum.Add(&sum, &commitments[i])
		}
	}
	if sum.Equal(commitment) == 0 {
		return false
	}

	return s.Signatures.Verify(&commitments, &commitmentsSubOne)
}
