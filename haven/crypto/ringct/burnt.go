package ringct

import (
	"lukechampine.com/uint128"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/pricing"
	"git.gammaspectra.live/Haven/consensus/utils"
)

// CheckBurntAndMinted Validates that the destination-colour amount minted by
// a conversion matches the source-colour amount burnt under the pricing
// record. Cross-rate arithmetic runs over 128-bit intermediates.
func CheckBurntAndMinted(sig *Sig, amountBurnt, amountMinted uint64, pr *pricing.Record, src, dest haven.AssetType, version uint8) bool {
	switch {
	case src == haven.AssetXHV && dest == haven.AssetXUSD:
		// offshore: burnt XHV * rate / COIN == minted XUSD
		rate := pr.MinRate(version)
		if rate == 0 {
			utils.Errorf(logPrefix, "minted/burnt verification failed (offshore): no rate")
			return false
		}
		xusd := uint128.From64(amountBurnt).Mul64(rate).Div64(haven.COIN)
		if !xusd.Equals64(amountMinted) {
			utils.Errorf(logPrefix, "minted/burnt verification failed (offshore)")
			return false
		}
	case src == haven.AssetXUSD && dest == haven.AssetXHV:
		// onshore: burnt XUSD * COIN / rate == minted XHV
		rate := pr.MaxRate(version)
		if rate == 0 {
			utils.Errorf(logPrefix, "minted/burnt verification failed (onshore): no rate")
			return false
		}
		xhv := uint128.From64(amountBurnt).Mul64(haven.COIN).Div64(rate)
		// low 64 bits only, matching the historic truncating compare
		if xhv.Lo != amountMinted {
			utils.Errorf(logPrefix, "minted/burnt verification failed (onshore)")
			return false
		}
	case src == haven.AssetXUSD && haven.IsXAsset(dest):
		burnt := uint128.From64(amountBurnt)
		if version < haven.HardForkUseCollateral {
			// the 80% burnt fee rides inside amount_burnt here, and only here
			if version >= haven.HardForkHaven2 {
				burnt = burnt.Sub64(sig.TxnOffshoreFee * 4 / 5)
			} else if version >= haven.HardForkXAssetFeesV2 {
				burnt = burnt.Sub64(sig.TxnOffshoreFeeUsd * 4 / 5)
			}
		}
		rate := pr.Rate(dest)
		if rate == 0 {
			utils.Errorf(logPrefix, "minted/burnt verification failed (xusd_to_xasset): no rate")
			return false
		}
		xasset := burnt.Mul64(rate).Div64(haven.COIN)
		if !xasset.Equals64(amountMinted) {
			utils.Errorf(logPrefix, "minted/burnt verification failed (xusd_to_xasset)")
			return false
		}
	case haven.IsXAsset(src) && dest == haven.AssetXUSD:
		burnt := uint128.From64(amountBurnt)
		if version < haven.HardForkUseCollateral {
			if version >= haven.HardForkHaven2 {
				burnt = burnt.Sub64(sig.TxnOffshoreFee * 4 / 5)
			} else if version >= haven.HardForkXAssetFeesV2 {
				burnt = burnt.Sub64(sig.TxnOffshoreFeeXAsset * 4 / 5)
			}
		}
		rate := pr.Rate(src)
		if rate == 0 {
			utils.Errorf(logPrefix, "minted/burnt verification failed (xasset_to_xusd): no rate")
			return false
		}
		xusd := burnt.Mul64(haven.COIN).Div64(rate)
		// low 64 bits only, matching the historic truncating compare
		if xusd.Lo != amountMinted {
			utils.Errorf(logPrefix, "minted/burnt verification failed (xasset_to_xusd)")
			return false
		}
	default:
		utils.Errorf(logPrefix, "minted/burnt values only valid for conversion transactions")
		return false
	}

	return true
}
