package mlsag

import (
	"errors"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
)

// MinRingSize MLSAG signatures require more than one ring member
const MinRingSize = 2

var ErrInvalidMatrix = errors.New("invalid MLSAG matrix")
var ErrInvalidSS = errors.New("invalid MLSAG SS")
var ErrInvalidCC = errors.New("invalid MLSAG CC")
var ErrInvalidKeyImage = errors.New("invalid MLSAG key image")

// Signature A multilayered linkable spontaneous anonymous group signature,
// retained to verify historic transactions.
type Signature struct {
	SS [][]curve25519.Scalar
	CC curve25519.Scalar

	// II Key images for the linkable rows
	II []curve25519.PublicKeyBytes
}

// Verify Walks the matrix columns recomputing the challenge chain.
//
// pk is indexed [cols][rows]; the first dsRows rows are linkable (spend keys)
// and carry key images, the remainder are commitment rows.
func (s *Signature) Verify(message types.Hash, pk [][]curve25519.PublicKeyBytes, dsRows int) error {
	cols := len(pk)
	if cols < MinRingSize {
		return ErrInvalidMatrix
	}
	rows := len(pk[0])
	if rows < 1 {
		return ErrInvalidMatrix
	}
	for i := 1; i < cols; i++ {
		if len(pk[i]) != rows {
			return ErrInvalidMatrix
		}
	}
	if len(s.II) != dsRows {
		return ErrInvalidKeyImage
	}
	if len(s.SS) != cols {
		return ErrInvalidSS
	}
	for i := range s.SS {
		if len(s.SS[i]) != rows {
			return ErrInvalidSS
		}
	}
	if dsRows > rows {
		return ErrInvalidMatrix
	}

	images := make([]curve25519.Point, dsRows)
	for i := range s.II {
		if curve25519.DecodeCompressedPoint(&images[i], s.II[i]) == nil || curve25519.IsIdentity(&images[i]) {
			return ErrInvalidKeyImage
		}
	}

	buf := make([]byte, 0, types.HashSize+(3*dsRows+2*(rows-dsRows))*curve25519.PublicKeySize)
	buf = append(buf, message[:]...)

	var c, cOld curve25519.Scalar
	cOld.Set(&s.CC)

	var zero curve25519.Scalar
	var L, R, P, PH curve25519.Point

	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			if curve25519.DecodeCompressedPoint(&P, pk[i][j]) == nil {
				return ErrInvalidMatrix
			}

			// L = s G + c pk
			L.VarTimeDoubleScalarBaseMult(&cOld, &P, &s.SS[i][j])

			buf = append(buf, pk[i][j][:]...)
			buf = append(buf, L.Bytes()...)

			// linkable rows additionally carry R = s H_p(pk) + c I
			if j < dsRows {
				crypto.BiasedHashToPoint(&PH, pk[i][j][:])
				R.VarTimeDoubleScalarMult(&s.SS[i][j], &PH, &cOld, &images[j])
				buf = append(buf, R.Bytes()...)
			}
		}

		crypto.ScalarDeriveLegacy(&c, buf)
		if c.Equal(&zero) == 1 {
			return ErrInvalidCC
		}
		cOld.Set(&c)
		// keep the message in the buffer
		buf = buf[:types.HashSize]
	}

	if cOld.Equal(&s.CC) == 0 {
		return ErrInvalidCC
	}

	return nil
}
