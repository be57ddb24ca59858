package ringct

import (
	"encoding/binary"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/utils"
)

var ecdhAmountKey = []byte("amount")
var commitmentMaskKey = []byte("commitment_mask")

// GenCommitmentMask The deterministic mask derived from a per-output amount
// key, so range proofs can be recomputed by the signing device
func GenCommitmentMask(amountKey curve25519.PrivateKeyBytes) (mask curve25519.Scalar) {
	crypto.ScalarDeriveLegacy(&mask, commitmentMaskKey, amountKey[:])
	return mask
}

// ecdhKeystream The 8-byte keystream XORed onto short amounts
func ecdhKeystream(amountKey curve25519.PrivateKeyBytes) (key [haven.EncryptedAmountSize]byte) {
	h := crypto.NewKeccak256()
	_, _ = utils.WriteNoEscape(h, ecdhAmountKey)
	_, _ = utils.WriteNoEscape(h, amountKey[:])
	_, _ = utils.ReadNoEscape(h, key[:])
	return key
}

// EcdhEncode Seals a (mask, amount) tuple under the per-output amount key.
//
// Modern epochs (shortAmount) publish no mask (it's derived) and XOR the
// amount down to 8 bytes; legacy epochs blind both scalars additively with
// the hash-to-scalar keystream.
func EcdhEncode(tuple *EcdhTuple, amountKey curve25519.PrivateKeyBytes, shortAmount bool) {
	if shortAmount {
		key := ecdhKeystream(amountKey)
		amount := binary.LittleEndian.Uint64(tuple.Amount[:])
		tuple.Amount = curve25519.PrivateKeyBytes{}
		binary.LittleEndian.PutUint64(tuple.Amount[:], amount^binary.LittleEndian.Uint64(key[:]))
		tuple.Mask = curve25519.ZeroPrivateKeyBytes
		return
	}

	var first, second curve25519.Scalar
	crypto.ScalarDeriveLegacy(&first, amountKey[:])
	crypto.ScalarDeriveLegacy(&second, first.Bytes())

	var mask, amount curve25519.Scalar
	curve25519.BytesToScalar32(&mask, tuple.Mask)
	curve25519.BytesToScalar32(&amount, tuple.Amount)

	mask.Add(&mask, &first)
	amount.Add(&amount, &second)

	copy(tuple.Mask[:], mask.Bytes())
	copy(tuple.Amount[:], amount.Bytes())
}

// EcdhDecode Opens a sealed (mask, amount) tuple. For short amounts the mask
// is rederived from the amount key.
func EcdhDecode(tuple *EcdhTuple, amountKey curve25519.PrivateKeyBytes, shortAmount bool) {
	if shortAmount {
		key := ecdhKeystream(amountKey)
		amount := binary.LittleEndian.Uint64(tuple.Amount[:])
		tuple.Amount = curve25519.PrivateKeyBytes{}
		binary.LittleEndian.PutUint64(tuple.Amount[:], amount^binary.LittleEndian.Uint64(key[:]))

		mask := GenCommitmentMask(amountKey)
		copy(tuple.Mask[:], mask.Bytes())
		return
	}

	var first, second curve25519.Scalar
	crypto.ScalarDeriveLegacy(&first, amountKey[:])
	crypto.ScalarDeriveLegacy(&second, first.Bytes())

	var mask, amount curve25519.Scalar
	curve25519.BytesToScalar32(&mask, tuple.Mask)
	curve25519.BytesToScalar32(&amount, tuple.Amount)

	mask.Subtract(&mask, &first)
	amount.Subtract(&amount, &second)

	copy(tuple.Mask[:], mask.Bytes())
	copy(tuple.Amount[:], amount.Bytes())
}
