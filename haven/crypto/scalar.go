package crypto

import (
	"encoding/binary"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
	"git.gammaspectra.live/Haven/consensus/utils"
)

// ScalarDeriveLegacy The consensus hash-to-scalar H_s: Keccak-256 reduced mod l
func ScalarDeriveLegacy(c *curve25519.Scalar, data ...[]byte) *curve25519.Scalar {
	h := newKeccak256()
	var hash types.Hash
	for _, b := range data {
		_, _ = utils.WriteNoEscape(h, b)
	}
	_, _ = utils.ReadNoEscape(h, hash[:])
	curve25519.BytesToScalar32(c, hash)
	return c
}

var scalarOne = (&curve25519.PrivateKeyBytes{1}).Scalar()
var zeroScalar = curve25519.ZeroPrivateKeyBytes.Scalar()

// InvEight The inverse of 8 over l, the order of the Ed25519 basepoint
var InvEight = new(curve25519.Scalar).Invert((&curve25519.PrivateKeyBytes{8}).Scalar())

// InvertScalar x^-1 over l. The x*x^-1 == 1 self-check is consensus
// mandated: it catches both arithmetic regressions and silent scalar
// corruption, and a failure is a process-fatal internal invariant.
func InvertScalar(out, x *curve25519.Scalar) *curve25519.Scalar {
	var inv curve25519.Scalar
	inv.Invert(x)
	if new(curve25519.Scalar).Multiply(&inv, x).Equal(scalarOne) == 0 {
		utils.Panicf("scalar inversion failed")
	}
	out.Set(&inv)
	return out
}

// AmountToScalar d2h: a uint64 amount as a canonical scalar
func AmountToScalar(c *curve25519.Scalar, amount uint64) *curve25519.Scalar {
	var amountBytes curve25519.PrivateKeyBytes
	binary.LittleEndian.PutUint64(amountBytes[:], amount)

	// no reduction is necessary: amountBytes is always lesser than l
	_, _ = c.SetCanonicalBytes(amountBytes[:])
	return c
}

// ScalarToAmount h2d: the low 64 bits of a scalar
func ScalarToAmount(c *curve25519.Scalar) uint64 {
	return binary.LittleEndian.Uint64(c.Bytes())
}

// DeterministicScalar consensus way of generating a deterministic scalar from given entropy
func DeterministicScalar(entropy []byte) *curve25519.Scalar {

	var counter uint32
	var nonce [4]byte

	h := newKeccak256()
	var hash types.Hash

	scalar := new(curve25519.Scalar)

	for {
		counter++
		binary.LittleEndian.PutUint32(nonce[:], counter)
		_, _ = utils.WriteNoEscape(h, entropy)
		_, _ = utils.WriteNoEscape(h, nonce[:])
		_, _ = utils.ReadNoEscape(h, hash[:])
		if !curve25519.ScalarIsLimit32(hash) {
			utils.ResetNoEscape(h)
			continue
		}
		curve25519.BytesToScalar32(scalar, hash)

		if scalar.Equal(zeroScalar) == 0 {
			return scalar
		}
		utils.ResetNoEscape(h)
	}
}
