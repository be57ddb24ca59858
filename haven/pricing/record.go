package pricing

import (
	"github.com/goccy/go-json"

	"git.gammaspectra.live/Haven/consensus/haven"
)

// Record A per-block signed pricing record from the oracle. The XHV rates
// (Spot, MA) are the price of one COIN of XHV in XUSD atomic units. Each
// xAsset rate is the amount of that xAsset, in atomic units, that one COIN of
// XUSD converts to.
//
// MA carries the XHV moving average (the wire field is historically named
// unused1), Spot the XHV spot price.
type Record struct {
	Spot    uint64 `json:"xUSD"`
	MA      uint64 `json:"unused1"`
	XAG     uint64 `json:"xAG"`
	XAU     uint64 `json:"xAU"`
	XAUD    uint64 `json:"xAUD"`
	XBTC    uint64 `json:"xBTC"`
	XCAD    uint64 `json:"xCAD"`
	XCHF    uint64 `json:"xCHF"`
	XCNY    uint64 `json:"xCNY"`
	XEUR    uint64 `json:"xEUR"`
	XGBP    uint64 `json:"xGBP"`
	XJPY    uint64 `json:"xJPY"`
	XNOK    uint64 `json:"xNOK"`
	XNZD    uint64 `json:"xNZD"`
	Unused2 uint64 `json:"unused2"`
	Unused3 uint64 `json:"unused3"`

	// Signature Oracle signature over the record. Verified by the caller
	// against the oracle key; the engine treats a non-empty record as valid.
	Signature []byte `json:"signature,omitempty"`
}

// Empty No valid record exists for this block. Conversions must be rejected.
func (r *Record) Empty() bool {
	if r == nil {
		return true
	}
	return r.Spot == 0 && r.MA == 0 &&
		r.XAG == 0 && r.XAU == 0 && r.XAUD == 0 && r.XBTC == 0 &&
		r.XCAD == 0 && r.XCHF == 0 && r.XCNY == 0 && r.XEUR == 0 &&
		r.XGBP == 0 && r.XJPY == 0 && r.XNOK == 0 && r.XNZD == 0 &&
		r.Unused2 == 0 && r.Unused3 == 0 && len(r.Signature) == 0
}

// Rate The record's rate for asset: XUSD atoms per COIN of XHV (spot) for
// XHV, COIN for XUSD, xAsset atoms per COIN of XUSD for an xAsset. Missing
// tags read as 0.
func (r *Record) Rate(asset haven.AssetType) uint64 {
	if r == nil {
		return 0
	}
	switch asset {
	case haven.AssetXHV:
		return r.Spot
	case haven.AssetXUSD:
		return haven.COIN
	case "xAG":
		return r.XAG
	case "xAU":
		return r.XAU
	case "xAUD":
		return r.XAUD
	case "xBTC":
		return r.XBTC
	case "xCAD":
		return r.XCAD
	case "xCHF":
		return r.XCHF
	case "xCNY":
		return r.XCNY
	case "xEUR":
		return r.XEUR
	case "xGBP":
		return r.XGBP
	case "xJPY":
		return r.XJPY
	case "xNOK":
		return r.XNOK
	case "xNZD":
		return r.XNZD
	}
	return 0
}

// MinRate The XHV rate used for offshore conversions. Once the per-output
// unlock fork is active the lesser of moving average and spot applies, which
// is always the attacker-unfavorable direction.
func (r *Record) MinRate(version uint8) uint64 {
	if version >= haven.HardForkPerOutputUnlock {
		return min(r.MA, r.Spot)
	}
	return r.MA
}

// MaxRate The XHV rate used for onshore conversions, greater of moving
// average and spot once the per-output unlock fork is active.
func (r *Record) MaxRate(version uint8) uint64 {
	if version >= haven.HardForkPerOutputUnlock {
		return max(r.MA, r.Spot)
	}
	return r.MA
}

func (r *Record) MarshalJSON() ([]byte, error) {
	type wire Record
	return json.Marshal((*wire)(r))
}

func (r *Record) UnmarshalJSON(buf []byte) error {
	type wire Record
	return json.Unmarshal(buf, (*wire)(r))
}
