package ringct

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/mlsag"
	"git.gammaspectra.live/Haven/consensus/haven/pricing"
	"git.gammaspectra.live/Haven/consensus/types"
)

// signMGSimple A minimal legacy MLSAG signer over the simple two-row matrix,
// enough to exercise the frozen verification column.
func signMGSimple(t *testing.T, rng io.Reader, message types.Hash, pubs CtKeyV, pseudoOut curve25519.PublicKeyBytes, destSecret, maskDelta *curve25519.Scalar, l int) mlsag.Signature {
	t.Helper()

	cols := len(pubs)
	const rows = 2
	secrets := [rows]*curve25519.Scalar{destSecret, maskDelta}

	C := pseudoOut.Point()
	require.NotNil(t, C)

	matrix := make([][]curve25519.PublicKeyBytes, cols)
	var offset curve25519.Point
	for i := range pubs {
		mask := pubs[i].Mask.Point()
		require.NotNil(t, mask)
		offset.Subtract(mask, C)
		matrix[i] = []curve25519.PublicKeyBytes{pubs[i].Dest, curve25519.PublicKeyBytes(offset.Bytes())}
	}

	sig := mlsag.Signature{
		SS: make([][]curve25519.Scalar, cols),
	}
	for i := range sig.SS {
		sig.SS[i] = make([]curve25519.Scalar, rows)
	}

	var H, image curve25519.Point
	crypto.BiasedHashToPoint(&H, matrix[l][0][:])
	image.ScalarMult(secrets[0], &H)
	sig.II = []curve25519.PublicKeyBytes{curve25519.PublicKeyBytes(image.Bytes())}

	var alpha [rows]curve25519.Scalar
	for j := range alpha {
		require.NotNil(t, curve25519.RandomScalar(&alpha[j], rng))
	}

	buf := make([]byte, 0, types.HashSize+5*curve25519.PublicKeySize)
	buf = append(buf, message[:]...)

	var L, R, P curve25519.Point
	appendColumn := func(i int, c *curve25519.Scalar) {
		for j := 0; j < rows; j++ {
			require.NotNil(t, curve25519.DecodeCompressedPoint(&P, matrix[i][j]))
			if i == l {
				L.ScalarBaseMult(&alpha[j])
			} else {
				L.VarTimeDoubleScalarBaseMult(c, &P, &sig.SS[i][j])
			}
			buf = append(buf, matrix[i][j][:]...)
			buf = append(buf, L.Bytes()...)

			if j == 0 {
				crypto.BiasedHashToPoint(&H, matrix[i][j][:])
				if i == l {
					R.ScalarMult(&alpha[j], &H)
				} else {
					R.VarTimeDoubleScalarMult(&sig.SS[i][j], &H, c, &image)
				}
				buf = append(buf, R.Bytes()...)
			}
		}
	}

	var c curve25519.Scalar
	appendColumn(l, nil)
	crypto.ScalarDeriveLegacy(&c, buf)
	buf = buf[:types.HashSize]

	for step := 1; step < cols; step++ {
		i := (l + step) % cols
		if i == 0 {
			sig.CC.Set(&c)
		}
		for j := range sig.SS[i] {
			require.NotNil(t, curve25519.RandomScalar(&sig.SS[i][j], rng))
		}
		appendColumn(i, &c)
		crypto.ScalarDeriveLegacy(&c, buf)
		buf = buf[:types.HashSize]
	}
	if l == 0 {
		sig.CC.Set(&c)
	}

	for j := range secrets {
		sig.SS[l][j].Multiply(&c, secrets[j])
		sig.SS[l][j].Subtract(&alpha[j], &sig.SS[l][j])
	}

	return sig
}

// buildLegacyTx A single-input Bulletproof2-era transfer signed with MLSAG
func buildLegacyTx(t *testing.T, rng io.Reader) *Sig {
	t.Helper()

	const amount = 5 * haven.COIN
	const ringSize = 4

	in, pk := makeInput(t, rng, amount)
	ring, realIndex := populateFromBlockchainSimple(t, rng, pk, ringSize-1)

	var outMask, pseudoMask curve25519.Scalar
	require.NotNil(t, curve25519.RandomScalar(&outMask, rng))
	pseudoMask.Set(&outMask)

	proof, err := bulletproofs.Prove([]uint64{amount}, []curve25519.Scalar{outMask}, rng)
	require.NoError(t, err)

	var commitment curve25519.Point
	ScalarMult8(&commitment, &proof.V[0])

	var pseudoOut curve25519.Point
	Commit(&pseudoOut, amount, &pseudoMask)

	sig := &Sig{
		SigBase: SigBase{
			Type:    TypeBulletproof2,
			Message: types.Hash{0x77},
			MixRing: CtKeyM{ring},
			EcdhInfo: []EcdhTuple{{}},
			OutPk: CtKeyV{{
				Dest: randomDestination(t, rng),
				Mask: curve25519.PublicKeyBytes(commitment.Bytes()),
			}},
			OutPkUsd:    CtKeyV{{Mask: identityKey}},
			OutPkXAsset: CtKeyV{{Mask: identityKey}},
		},
	}
	sig.P.Bulletproofs = []*bulletproofs.Proof{proof}
	sig.P.PseudoOuts = []curve25519.PublicKeyBytes{curve25519.PublicKeyBytes(pseudoOut.Bytes())}

	message, err := GetPreMLSAGHash(sig, NewSoftwareDevice())
	require.NoError(t, err)

	var maskDelta curve25519.Scalar
	maskDelta.Subtract(&in.secret.Mask, &pseudoMask)
	sig.P.MGs = []mlsag.Signature{
		signMGSimple(t, rng, message, ring, sig.P.PseudoOuts[0], &in.secret.Dest, &maskDelta, realIndex),
	}

	return sig
}

func TestLegacyMLSAGTransfer(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	sig := buildLegacyTx(t, rng)

	assert.True(t, VerifySemanticsSimple(sig, &pricing.Record{}, TxTypeTransfer, haven.AssetXHV, haven.AssetXHV))
	assert.True(t, VerifyNonSemanticsSimple(sig))

	// tampering with the scalar matrix breaks the frozen column
	var one curve25519.Scalar
	crypto.AmountToScalar(&one, 1)
	sig.P.MGs[0].SS[1][0].Add(&sig.P.MGs[0].SS[1][0], &one)
	assert.False(t, VerifyNonSemanticsSimple(sig))
}
