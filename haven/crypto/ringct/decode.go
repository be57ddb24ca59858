package ringct

import (
	"errors"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

var ErrBadIndex = errors.New("bad output index")
var ErrBadMask = errors.New("bad ECDH mask")
var ErrBadAmount = errors.New("bad ECDH amount")
var ErrAmountMismatch = errors.New("amount decoded incorrectly, will be unable to spend")

// DecodeSimple Opens the i-th output's ECDH blob with the recipient's derived
// amount key and recomputes the commitment. A mismatch means the output is
// unspendable and is an error.
func DecodeSimple(sig *Sig, amountKey curve25519.PrivateKeyBytes, i int, mask *curve25519.Scalar, device *Device) (amount uint64, err error) {
	switch sig.Type {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
	default:
		return 0, ErrUnsupportedType
	}
	if i < 0 || i >= len(sig.EcdhInfo) {
		return 0, ErrBadIndex
	}
	if len(sig.OutPk) != len(sig.EcdhInfo) {
		return 0, ErrInvalidEncoding
	}

	tuple := sig.EcdhInfo[i]
	device.EcdhDecode(&tuple, amountKey, sig.Type.ShortAmount())

	if !curve25519.ScalarIsReduced32(tuple.Mask) {
		return 0, ErrBadMask
	}
	if !curve25519.ScalarIsReduced32(tuple.Amount) {
		return 0, ErrBadAmount
	}

	var maskScalar, amountScalar curve25519.Scalar
	curve25519.BytesToScalar32(&maskScalar, tuple.Mask)
	curve25519.BytesToScalar32(&amountScalar, tuple.Amount)

	// the colour-specific commitment slot the output lives in
	var commitment curve25519.PublicKeyBytes
	if sig.Type == TypeHaven2 || sig.Type == TypeHaven3 {
		if sig.OutPk[i].Mask == identityKey {
			return 0, ErrBadMask
		}
		commitment = sig.OutPk[i].Mask
	} else {
		switch {
		case sig.OutPk[i].Mask != identityKey:
			commitment = sig.OutPk[i].Mask
		case sig.OutPkUsd[i].Mask != identityKey:
			commitment = sig.OutPkUsd[i].Mask
		case sig.OutPkXAsset[i].Mask != identityKey:
			commitment = sig.OutPkXAsset[i].Mask
		default:
			return 0, ErrBadMask
		}
	}

	C := commitment.Point()
	if C == nil {
		return 0, ErrBadMask
	}

	amount = crypto.ScalarToAmount(&amountScalar)
	var Ctmp curve25519.Point
	Commit(&Ctmp, amount, &maskScalar)
	if Ctmp.Equal(C) == 0 {
		return 0, ErrAmountMismatch
	}

	if mask != nil {
		mask.Set(&maskScalar)
	}
	return amount, nil
}
