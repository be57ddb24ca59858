package ringct

import (
	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/borromean"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/clsag"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/mlsag"
	"git.gammaspectra.live/Haven/consensus/types"
)

// Type The rule epoch a signature was produced under. Verification dispatches
// on this tag; legacy columns stay frozen for replay.
type Type uint8

const (
	TypeNull = Type(iota)
	TypeFull
	TypeSimple
	TypeBulletproof
	TypeBulletproof2
	TypeCLSAG
	TypeCLSAGN
	TypeHaven2
	TypeHaven3
)

// IsBulletproof Whether this epoch ranges outputs with Bulletproofs
func (t Type) IsBulletproof() bool {
	switch t {
	case TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
		return true
	}
	return false
}

// IsCLSAG Whether this epoch signs inputs with CLSAG rather than MLSAG
func (t Type) IsCLSAG() bool {
	switch t {
	case TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
		return true
	}
	return false
}

// ShortAmount Whether ECDH blobs carry the 8-byte amount format
func (t Type) ShortAmount() bool {
	switch t {
	case TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
		return true
	}
	return false
}

// TxType The declared direction of a transaction
type TxType uint8

const (
	TxTypeUnset = TxType(iota)
	TxTypeTransfer
	TxTypeOffshore
	TxTypeOnshore
	TxTypeOffshoreTransfer
	TxTypeXUsdToXAsset
	TxTypeXAssetToXUsd
	TxTypeXAssetTransfer
)

func (t TxType) String() string {
	switch t {
	case TxTypeTransfer:
		return "transfer"
	case TxTypeOffshore:
		return "offshore"
	case TxTypeOnshore:
		return "onshore"
	case TxTypeOffshoreTransfer:
		return "offshore_transfer"
	case TxTypeXUsdToXAsset:
		return "xusd_to_xasset"
	case TxTypeXAssetToXUsd:
		return "xasset_to_xusd"
	case TxTypeXAssetTransfer:
		return "xasset_transfer"
	default:
		return "unset"
	}
}

// IsConversion Whether value crosses colours and the pricing record applies
func (t TxType) IsConversion() bool {
	switch t {
	case TxTypeOffshore, TxTypeOnshore, TxTypeXUsdToXAsset, TxTypeXAssetToXUsd:
		return true
	}
	return false
}

type RangeProofType uint8

const (
	RangeProofBorromean = RangeProofType(iota)
	RangeProofBulletproof
	RangeProofMultiOutputBulletproof
	RangeProofPaddedBulletproof
)

// Config Selects the rule epoch a new signature is assembled under
type Config struct {
	RangeProofType RangeProofType
	BPVersion      int
}

// CtKey A commitment+key pair: a one-time output public key and its
// commitment (in rings and outputs)
type CtKey struct {
	Dest curve25519.PublicKeyBytes
	Mask curve25519.PublicKeyBytes
}

type CtKeyV []CtKey
type CtKeyM []CtKeyV

// CtSecret The privately held counterpart of a CtKey: the output secret key
// and the commitment mask
type CtSecret struct {
	Dest curve25519.Scalar
	Mask curve25519.Scalar
}

// Wipe Zeroes the secret material
func (s *CtSecret) Wipe() {
	curve25519.WipeScalar(&s.Dest)
	curve25519.WipeScalar(&s.Mask)
}

// EcdhTuple The per-output sealed (mask, amount) blob for the recipient
type EcdhTuple struct {
	Mask   curve25519.PrivateKeyBytes
	Amount curve25519.PrivateKeyBytes
}

// OutputEntry One requested output at assembly time
type OutputEntry struct {
	Asset  haven.AssetType
	Amount uint64
	// Collateral Whether this output carries offshore/onshore collateral
	Collateral bool
}

// SigBase The non-prunable part of a RingCT signature
type SigBase struct {
	Type    Type
	Message types.Hash

	MixRing CtKeyM

	// PseudoOuts Per-input rerandomized commitments; in this slot only for
	// the pre-Bulletproof Simple epoch
	PseudoOuts []curve25519.PublicKeyBytes

	EcdhInfo []EcdhTuple

	// OutPk Output commitments. For Haven2 onward every output lives here and
	// its colour is read from the companion transaction output; legacy epochs
	// populate exactly one of the per-colour sequences per output, identity
	// elsewhere.
	OutPk       CtKeyV
	OutPkUsd    CtKeyV
	OutPkXAsset CtKeyV

	TxnFee               uint64
	TxnOffshoreFee       uint64
	TxnFeeUsd            uint64
	TxnOffshoreFeeUsd    uint64
	TxnFeeXAsset         uint64
	TxnOffshoreFeeXAsset uint64

	// MaskSums Published by the prover for conversions under Haven2+:
	// [0] sum of input masks of the converted colour,
	// [1] sum of change-output masks in the source colour,
	// [2] collateral-output masks (Haven3 conversions only)
	MaskSums []curve25519.Scalar
}

// SigPrunable The prunable proof data
type SigPrunable struct {
	RangeSigs    []borromean.Range
	Bulletproofs []*bulletproofs.Proof
	MGs          []mlsag.Signature
	CLSAGs       []clsag.Signature

	// PseudoOuts Per-input rerandomized commitments for Bulletproof epochs
	PseudoOuts []curve25519.PublicKeyBytes
}

// Sig A complete RingCT signature. Constructed once by GenSimple and
// immutable thereafter.
type Sig struct {
	SigBase
	P SigPrunable
}

// PseudoOutsForType The pseudo-output slot active under this epoch
func (s *Sig) PseudoOutsForType() []curve25519.PublicKeyBytes {
	if s.Type.IsBulletproof() {
		return s.P.PseudoOuts
	}
	return s.PseudoOuts
}

// MultisigOut Per-input data cosigners need to complete their shares
type MultisigOut struct {
	C   []curve25519.Scalar
	MuP []curve25519.Scalar
}
