package ringct

import (
	"errors"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

var ErrUnsupportedMultisigType = errors.New("unsupported ringct type for multisig")
var ErrInvalidMultisigData = errors.New("invalid multisig data")

// SignMultisigCLSAG Each cosigner contributes a share to the secret-index
// response: s[l] += k - c mu_P share
func SignMultisigCLSAG(sig *Sig, indices []int, k []curve25519.Scalar, msout *MultisigOut, secretKey *curve25519.Scalar) error {
	if !sig.Type.IsCLSAG() {
		return ErrUnsupportedMultisigType
	}
	if len(indices) != len(k) || len(k) != len(sig.P.CLSAGs) || len(k) != len(msout.C) {
		return ErrInvalidMultisigData
	}
	if len(sig.P.MGs) != 0 {
		return ErrInvalidMultisigData
	}
	if len(msout.C) != len(msout.MuP) {
		return ErrInvalidMultisigData
	}
	for n := range indices {
		if indices[n] < 0 || indices[n] >= len(sig.P.CLSAGs[n].S) {
			return ErrInvalidMultisigData
		}
	}

	var share, diff curve25519.Scalar
	for n := range indices {
		share.Multiply(&msout.MuP[n], secretKey)
		share.Multiply(&msout.C[n], &share)
		diff.Subtract(&k[n], &share)
		sig.P.CLSAGs[n].S[indices[n]].Add(&sig.P.CLSAGs[n].S[indices[n]], &diff)
	}
	curve25519.WipeScalar(&share)
	return nil
}

// SignMultisigMLSAG The legacy share: ss[l][0] += k - cc share
func SignMultisigMLSAG(sig *Sig, indices []int, k []curve25519.Scalar, msout *MultisigOut, secretKey *curve25519.Scalar) error {
	if sig.Type.IsCLSAG() || !sig.Type.IsBulletproof() && sig.Type != TypeSimple {
		return ErrUnsupportedMultisigType
	}
	if len(sig.P.CLSAGs) != 0 {
		return ErrInvalidMultisigData
	}
	if len(indices) != len(k) || len(k) != len(sig.P.MGs) || len(k) != len(msout.C) {
		return ErrInvalidMultisigData
	}
	for n := range indices {
		if indices[n] < 0 || indices[n] >= len(sig.P.MGs[n].SS) || len(sig.P.MGs[n].SS[indices[n]]) == 0 {
			return ErrInvalidMultisigData
		}
	}

	var share, diff curve25519.Scalar
	for n := range indices {
		share.Multiply(&msout.C[n], secretKey)
		diff.Subtract(&k[n], &share)
		sig.P.MGs[n].SS[indices[n]][0].Add(&sig.P.MGs[n].SS[indices[n]][0], &diff)
	}
	curve25519.WipeScalar(&share)
	return nil
}

// SignMultisig Dispatches on the epoch's signature scheme
func SignMultisig(sig *Sig, indices []int, k []curve25519.Scalar, msout *MultisigOut, secretKey *curve25519.Scalar) error {
	if sig.Type.IsCLSAG() {
		return SignMultisigCLSAG(sig, indices, k, msout, secretKey)
	}
	return SignMultisigMLSAG(sig, indices, k, msout, secretKey)
}

// AccMultisigCLSAG Accumulates partial responses from every cosigner into
// the received signature, subtracting the designated base share so it is not
// counted twice.
func AccMultisigCLSAG(partial []*Sig, recv *Sig, indices []int) error {
	if !recv.Type.IsCLSAG() {
		return ErrUnsupportedMultisigType
	}
	if len(recv.P.MGs) != 0 {
		return ErrInvalidMultisigData
	}
	if len(partial) < 2 {
		return ErrInvalidMultisigData
	}
	for n := range indices {
		if n >= len(recv.P.CLSAGs) || indices[n] < 0 || indices[n] >= len(recv.P.CLSAGs[n].S) {
			return ErrInvalidMultisigData
		}
	}

	base := partial[0]
	for n := range indices {
		s := &recv.P.CLSAGs[n].S[indices[n]]
		for _, p := range partial[1 : len(partial)-1] {
			s.Add(s, &p.P.CLSAGs[n].S[indices[n]])
			s.Subtract(s, &base.P.CLSAGs[n].S[indices[n]])
		}
	}
	return nil
}

// AccMultisigMLSAG The legacy accumulation over the scalar matrix
func AccMultisigMLSAG(partial []*Sig, recv *Sig, indices []int) error {
	if recv.Type.IsCLSAG() {
		return ErrUnsupportedMultisigType
	}
	if len(partial) < 2 {
		return ErrInvalidMultisigData
	}
	for n := range indices {
		if n >= len(recv.P.MGs) || indices[n] < 0 || indices[n] >= len(recv.P.MGs[n].SS) {
			return ErrInvalidMultisigData
		}
	}

	base := partial[0]
	for n := range indices {
		s := &recv.P.MGs[n].SS[indices[n]][0]
		for _, p := range partial[1 : len(partial)-1] {
			s.Add(s, &p.P.MGs[n].SS[indices[n]][0])
			s.Subtract(s, &base.P.MGs[n].SS[indices[n]][0])
		}
	}
	return nil
}

// AccMultisig Dispatches on the epoch's signature scheme
func AccMultisig(partial []*Sig, recv *Sig, indices []int) error {
	if recv.Type.IsCLSAG() {
		return AccMultisigCLSAG(partial, recv, indices)
	}
	return AccMultisigMLSAG(partial, recv, indices)
}
