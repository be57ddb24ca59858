package curve25519

import (
	"io"

	"git.gammaspectra.live/Haven/consensus/utils"
)

// RandomScalar Unbiased scalar sampling, equivalent to random32_unbiased
func RandomScalar(k *Scalar, r io.Reader) *Scalar {
	var buf [PrivateKeySize]byte
	for {
		if _, err := utils.ReadNoEscape(r, buf[:]); err != nil {
			return nil
		}

		if !ScalarIsLimit32(buf) {
			continue
		}
		BytesToScalar32(k, buf)

		if k.Equal(zeroScalar) == 0 {
			return k
		}
	}
}

// RandomPoint Equivalent to rctOps pkGen
// Use for testing
func RandomPoint(k *Point, r io.Reader) *Point {
	return k.ScalarBaseMult(RandomScalar(new(Scalar), r))
}
