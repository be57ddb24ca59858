package ringct

import (
	"errors"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
)

var ErrEmptyMixRing = errors.New("empty mix ring")

// GetPreMLSAGHash The message bound into every ring signature:
// H(message || H(serialized base) || H(range proof field elements)),
// run through the device so hardware can display output details.
func GetPreMLSAGHash(sig *Sig, device *Device) (prehash types.Hash, err error) {
	if len(sig.MixRing) == 0 {
		return prehash, ErrEmptyMixRing
	}

	inputs := len(sig.MixRing)
	if !sig.Type.IsBulletproof() && sig.Type == TypeFull {
		inputs = len(sig.MixRing[0])
	}
	outputs := len(sig.EcdhInfo)

	base, err := sig.SigBase.AppendBinary(make([]byte, 0, sig.SigBase.BufferLength(inputs, outputs)), inputs, outputs)
	if err != nil {
		return prehash, err
	}

	var hashes [3]types.Hash
	hashes[0] = sig.Message
	hashes[1] = crypto.Keccak256(base)

	if sig.Type.IsBulletproof() {
		kv := make([]byte, 0, (6+2*12+3)*curve25519.PublicKeySize*len(sig.P.Bulletproofs))
		for _, p := range sig.P.Bulletproofs {
			// V are not hashed as they're expanded from outPk.mask
			// (and thus hashed as part of the base above)
			kv = append(kv, p.A.Bytes()...)
			kv = append(kv, p.S.Bytes()...)
			kv = append(kv, p.T1.Bytes()...)
			kv = append(kv, p.T2.Bytes()...)
			kv = append(kv, p.TauX.Bytes()...)
			kv = append(kv, p.Mu.Bytes()...)
			for i := range p.L {
				kv = append(kv, p.L[i].Bytes()...)
			}
			for i := range p.R {
				kv = append(kv, p.R[i].Bytes()...)
			}
			kv = append(kv, p.Aa.Bytes()...)
			kv = append(kv, p.Bb.Bytes()...)
			kv = append(kv, p.T.Bytes()...)
		}
		hashes[2] = crypto.Keccak256(kv)
	} else {
		kv := make([]byte, 0, (64*3+1)*curve25519.PublicKeySize*len(sig.P.RangeSigs))
		for i := range sig.P.RangeSigs {
			r := &sig.P.RangeSigs[i]
			for n := range r.Signatures.S0 {
				kv = append(kv, r.Signatures.S0[n][:]...)
			}
			for n := range r.Signatures.S1 {
				kv = append(kv, r.Signatures.S1[n][:]...)
			}
			kv = append(kv, r.Signatures.EE.Bytes()...)
			for n := range r.Ci {
				kv = append(kv, r.Ci[n][:]...)
			}
		}
		hashes[2] = crypto.Keccak256(kv)
	}

	if err = device.MlsagPrehash(base, inputs, outputs, hashes[:], sig.OutPk, &prehash); err != nil {
		return prehash, err
	}
	return prehash, nil
}
