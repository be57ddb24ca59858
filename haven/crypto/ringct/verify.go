package ringct

import (
	"crypto/rand"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/clsag"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/mlsag"
	"git.gammaspectra.live/Haven/consensus/haven/pricing"
	"git.gammaspectra.live/Haven/consensus/types"
	"git.gammaspectra.live/Haven/consensus/utils"
	"lukechampine.com/uint128"
)

const logPrefix = "ringct"

// recoverVerify Deep point or scalar failures on adversarial input surface as
// panics from the lower layers; a verifier reports them as a plain reject.
func recoverVerify(result *bool) {
	if r := recover(); r != nil {
		utils.Errorf(logPrefix, "error during verification: %v", r)
		*result = false
	}
}

// outputCommitment The published commitment of output i: the single slot for
// Haven2 onward, the populated colour slot for legacy epochs.
func (s *Sig) outputCommitment(i int) *curve25519.PublicKeyBytes {
	if !s.Type.legacyColours() {
		return &s.OutPk[i].Mask
	}
	switch {
	case s.OutPk[i].Mask != identityKey:
		return &s.OutPk[i].Mask
	case s.OutPkUsd[i].Mask != identityKey:
		return &s.OutPkUsd[i].Mask
	default:
		return &s.OutPkXAsset[i].Mask
	}
}

// expandBulletproofs V is not serialized: every commitment is expanded from
// the published output commitments, proof by proof.
func expandBulletproofs(sig *Sig) bool {
	if sig.Type.legacyColours() && (len(sig.OutPkUsd) != len(sig.OutPk) || len(sig.OutPkXAsset) != len(sig.OutPk)) {
		return false
	}
	offset := 0
	for _, p := range sig.P.Bulletproofs {
		if len(p.L) < bulletproofs.LogCommitmentBits {
			return false
		}
		capacity := 1 << (len(p.L) - bulletproofs.LogCommitmentBits)
		count := min(capacity, len(sig.OutPk)-offset)
		if count == 0 {
			return false
		}
		p.V = make([]curve25519.Point, count)
		for i := 0; i < count; i++ {
			mask := sig.outputCommitment(offset + i).Point()
			if mask == nil {
				return false
			}
			p.V[i].VarTimeScalarMult(crypto.InvEight, mask)
		}
		offset += count
	}
	return offset == len(sig.OutPk)
}

// VerifySemanticsSimple2 The Haven2/Haven3 semantic predicate: structural
// preconditions, colour-wise balance against the pricing record, the
// burnt/minted equation, collateral equations, and the aggregated range
// proof.
//
// outAssets and inAssets carry the declared colour of each companion
// transaction output and input; a native-colour input on an onshore under
// the collateral fork is a collateral input.
func VerifySemanticsSimple2(
	sig *Sig,
	pr *pricing.Record,
	txType TxType,
	src, dest haven.AssetType,
	amountBurnt uint64,
	outAssets []haven.AssetType,
	inAssets []haven.AssetType,
	version uint8,
	collateralIndices []int,
	amountCollateral uint64,
) (result bool) {
	defer recoverVerify(&result)

	if sig.Type != TypeHaven2 && sig.Type != TypeHaven3 {
		utils.Errorf(logPrefix, "verify semantics called on wrong type %d", sig.Type)
		return false
	}
	if len(sig.P.MGs) != 0 {
		utils.Errorf(logPrefix, "MGs are not empty for CLSAG")
		return false
	}
	if !expandBulletproofs(sig) || bulletproofs.Amounts(sig.P.Bulletproofs) != len(sig.OutPk) {
		utils.Errorf(logPrefix, "mismatched sizes of outPk and bulletproofs")
		return false
	}
	if len(sig.P.PseudoOuts) != len(sig.P.CLSAGs) {
		utils.Errorf(logPrefix, "mismatched sizes of pseudoOuts and CLSAGs")
		return false
	}
	if len(sig.PseudoOuts) != 0 {
		utils.Errorf(logPrefix, "base pseudoOuts are not empty")
		return false
	}
	if len(sig.OutPk) != len(sig.EcdhInfo) {
		utils.Errorf(logPrefix, "mismatched sizes of outPk and ecdhInfo")
		return false
	}
	if len(sig.OutPk) != len(outAssets) || len(sig.P.PseudoOuts) != len(inAssets) {
		utils.Errorf(logPrefix, "mismatched transaction output or input colours")
		return false
	}
	if sig.Type == TypeHaven2 && len(sig.MaskSums) != 2 {
		utils.Errorf(logPrefix, "maskSums size is not 2")
		return false
	}
	if !haven.IsValidAsset(src) || !haven.IsValidAsset(dest) {
		utils.Errorf(logPrefix, "invalid source or dest asset")
		return false
	}
	if txType == TxTypeUnset {
		utils.Errorf(logPrefix, "invalid transaction type")
		return false
	}
	if src != dest {
		if pr.Empty() {
			utils.Errorf(logPrefix, "empty pricing record found for a conversion tx")
			return false
		}
		if amountBurnt == 0 {
			utils.Errorf(logPrefix, "0 amount burnt found for a conversion tx")
			return false
		}
		if sig.Type == TypeHaven3 {
			if len(sig.MaskSums) != 3 {
				utils.Errorf(logPrefix, "maskSums size is not 3")
				return false
			}
			if len(collateralIndices) != 2 {
				utils.Errorf(logPrefix, "collateral indices size is not 2")
				return false
			}
			if (txType == TxTypeOffshore || txType == TxTypeOnshore) && amountCollateral == 0 {
				utils.Errorf(logPrefix, "0 collateral requirement, rejecting tx")
				return false
			}
		}
	}

	// Zi is intentionally initialized off the identity so that a logic slip
	// in the dispatch below can never compare equal by accident
	var Zi curve25519.Point
	CommitToH(&Zi, 1)

	// Outputs summed for each colour, excluding the onshore collateral
	// outputs from the proof-of-value calculation
	sumOutpksC := identityPoint()
	sumOutpksD := identityPoint()
	for i := range sig.OutPk {
		if version >= haven.HardForkUseCollateral && txType == TxTypeOnshore &&
			(i == collateralIndices[0] || i == collateralIndices[1]) {
			continue
		}
		mask := sig.OutPk[i].Mask.Point()
		if mask == nil {
			utils.Errorf(logPrefix, "invalid output commitment")
			return false
		}
		switch outAssets[i] {
		case src:
			sumOutpksC.Add(sumOutpksC, mask)
		case dest:
			sumOutpksD.Add(sumOutpksD, mask)
		default:
			utils.Errorf(logPrefix, "invalid output detected (wrong asset type)")
			return false
		}
	}

	// Fees, always in the source colour
	var txnFeeKey, txnOffshoreFeeKey curve25519.Point
	CommitToH(&txnFeeKey, sig.TxnFee)
	CommitToH(&txnOffshoreFeeKey, sig.TxnOffshoreFee)

	// Inputs: onshore under the collateral fork separates the collateral
	// inputs, identified by their native colour
	sumPseudoOuts := identityPoint()
	sumColIns := identityPoint()
	for i := range sig.P.PseudoOuts {
		p := sig.P.PseudoOuts[i].Point()
		if p == nil {
			utils.Errorf(logPrefix, "invalid pseudo output")
			return false
		}
		if txType == TxTypeOnshore && version >= haven.HardForkUseCollateral && inAssets[i] == haven.AssetXHV {
			sumColIns.Add(sumColIns, p)
		} else {
			sumPseudoOuts.Add(sumPseudoOuts, p)
		}
	}

	// C colour, fees removed
	var sumC curve25519.Point
	sumC.Subtract(sumPseudoOuts, &txnFeeKey)
	sumC.Subtract(&sumC, &txnOffshoreFeeKey)
	sumC.Subtract(&sumC, sumOutpksC)

	// D colour
	var sumD curve25519.Point
	sumD.Subtract(identityPoint(), sumOutpksD)

	var rate, invRate, atomic, invAtomic curve25519.Scalar
	crypto.AmountToScalar(&atomic, haven.COIN)

	switch txType {
	case TxTypeOffshore:
		crypto.AmountToScalar(&rate, pr.MinRate(version))
		crypto.InvertScalar(&invRate, &rate)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&atomic, &sumD)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invRate, DScaled)
		Zi.Add(&sumC, DFinal)
	case TxTypeOnshore:
		crypto.AmountToScalar(&rate, pr.MaxRate(version))
		crypto.InvertScalar(&invAtomic, &atomic)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&rate, &sumD)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invAtomic, DScaled)
		Zi.Add(&sumC, DFinal)
	case TxTypeXUsdToXAsset:
		crypto.AmountToScalar(&rate, pr.Rate(dest))
		crypto.InvertScalar(&invRate, &rate)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&atomic, &sumD)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invRate, DScaled)
		Zi.Add(&sumC, DFinal)
	case TxTypeXAssetToXUsd:
		crypto.AmountToScalar(&rate, pr.Rate(src))
		crypto.InvertScalar(&invAtomic, &atomic)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&rate, &sumD)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invAtomic, DScaled)
		Zi.Add(&sumC, DFinal)
	case TxTypeOffshoreTransfer, TxTypeXAssetTransfer, TxTypeTransfer:
		Zi.Add(&sumC, &sumD)
	default:
		utils.Errorf(logPrefix, "invalid transaction type specified")
		return false
	}

	if !curve25519.IsIdentity(&Zi) {
		utils.Errorf(logPrefix, "sum check failed (Zi)")
		return false
	}

	// Validate the amount burnt/minted for conversions
	if src != dest {
		if version < haven.HardForkUseCollateral && (txType == TxTypeXAssetToXUsd || txType == TxTypeXUsdToXAsset) {
			// Wallets append the burnt fee for xAsset conversions to
			// amount_burnt: 80% of the conversion fee is burned, never
			// converted. Subtract it to validate the conversion mass alone.
			burntFee := uint128.From64(sig.TxnOffshoreFee).Mul64(4).Div64(5)
			amountBurnt -= burntFee.Lo
		}

		// The current sumC is C = xG + aH with x = maskSums[0] - maskSums[1]
		// and a the converted amount. Add the change masks back so the
		// residual represents the full converted mass, then compare against
		// an independent commitment from the published sums.
		var Cn, CBurnt, pseudoCBurnt curve25519.Point
		Commit(&Cn, 0, &sig.MaskSums[1])
		CBurnt.Add(&sumC, &Cn)
		Commit(&pseudoCBurnt, amountBurnt, &sig.MaskSums[0])

		if CBurnt.Equal(&pseudoCBurnt) == 0 {
			utils.Errorf(logPrefix, "tx amount burnt/minted validation failed")
			return false
		}
	}

	// Validate the collateral
	if version >= haven.HardForkUseCollateral {
		if txType == TxTypeOffshore || txType == TxTypeOnshore {
			CCol := sig.OutPk[collateralIndices[0]].Mask.Point()
			if CCol == nil {
				utils.Errorf(logPrefix, "invalid collateral output")
				return false
			}

			var pseudoCCol curve25519.Point
			Commit(&pseudoCCol, amountCollateral, &sig.MaskSums[2])

			if pseudoCCol.Equal(CCol) == 0 {
				utils.Errorf(logPrefix, "%s collateral verification failed", txType)
				return false
			}

			if txType == TxTypeOnshore {
				// collateral inputs must equal collateral outputs
				CCol2 := sig.OutPk[collateralIndices[1]].Mask.Point()
				if CCol2 == nil {
					utils.Errorf(logPrefix, "invalid collateral output")
					return false
				}
				var sumColOut curve25519.Point
				sumColOut.Add(CCol, CCol2)
				if sumColOut.Equal(sumColIns) == 0 {
					utils.Errorf(logPrefix, "onshore collateral inputs != outputs")
					return false
				}
			}
		}
	}

	if !bulletproofs.VerifyBatch(sig.P.Bulletproofs, rand.Reader) {
		utils.Errorf(logPrefix, "aggregate range proof verification failed")
		return false
	}

	return true
}

// VerifySemanticsSimple The legacy (Simple through CLSAGN) semantic
// predicate with per-colour fees and the three-colour balance.
func VerifySemanticsSimple(sig *Sig, pr *pricing.Record, txType TxType, src, dest haven.AssetType) (result bool) {
	defer recoverVerify(&result)

	switch sig.Type {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN:
	default:
		utils.Errorf(logPrefix, "verify semantics called on wrong type %d", sig.Type)
		return false
	}

	bulletproof := sig.Type.IsBulletproof()
	if bulletproof {
		if !expandBulletproofs(sig) || bulletproofs.Amounts(sig.P.Bulletproofs) != len(sig.OutPk) {
			utils.Errorf(logPrefix, "mismatched sizes of outPk and bulletproofs")
			return false
		}
		if sig.Type.IsCLSAG() {
			if len(sig.P.MGs) != 0 {
				utils.Errorf(logPrefix, "MGs are not empty for CLSAG")
				return false
			}
			if len(sig.P.PseudoOuts) != len(sig.P.CLSAGs) {
				utils.Errorf(logPrefix, "mismatched sizes of pseudoOuts and CLSAGs")
				return false
			}
		} else {
			if len(sig.P.CLSAGs) != 0 {
				utils.Errorf(logPrefix, "CLSAGs are not empty for MLSAG")
				return false
			}
			if len(sig.P.PseudoOuts) != len(sig.P.MGs) {
				utils.Errorf(logPrefix, "mismatched sizes of pseudoOuts and MGs")
				return false
			}
		}
		if len(sig.PseudoOuts) != 0 {
			utils.Errorf(logPrefix, "base pseudoOuts are not empty")
			return false
		}
	} else {
		if len(sig.OutPk) != len(sig.P.RangeSigs) {
			utils.Errorf(logPrefix, "mismatched sizes of outPk and rangeSigs")
			return false
		}
		if len(sig.PseudoOuts) != len(sig.P.MGs) {
			utils.Errorf(logPrefix, "mismatched sizes of pseudoOuts and MGs")
			return false
		}
		if len(sig.P.PseudoOuts) != 0 {
			utils.Errorf(logPrefix, "prunable pseudoOuts are not empty")
			return false
		}
	}
	if len(sig.OutPk) != len(sig.EcdhInfo) {
		utils.Errorf(logPrefix, "mismatched sizes of outPk and ecdhInfo")
		return false
	}
	if !haven.IsValidAsset(src) || !haven.IsValidAsset(dest) {
		utils.Errorf(logPrefix, "invalid source or dest asset")
		return false
	}
	if txType == TxTypeUnset {
		utils.Errorf(logPrefix, "invalid transaction type")
		return false
	}
	if src != dest && pr.Empty() {
		utils.Errorf(logPrefix, "empty pricing record found for a conversion tx")
		return false
	}

	pseudoOuts := sig.PseudoOuts
	if bulletproof {
		pseudoOuts = sig.P.PseudoOuts
	}

	var Zi curve25519.Point
	CommitToH(&Zi, 1)

	sumOutpks := identityPoint()
	sumOutpksUsd := identityPoint()
	sumOutpksXAsset := identityPoint()
	for i := range sig.OutPk {
		if decodeAdd(sumOutpks, sig.OutPk[i].Mask) == nil ||
			decodeAdd(sumOutpksUsd, sig.OutPkUsd[i].Mask) == nil ||
			decodeAdd(sumOutpksXAsset, sig.OutPkXAsset[i].Mask) == nil {
			utils.Errorf(logPrefix, "invalid output commitment")
			return false
		}
	}

	var txnFeeKey, txnOffshoreFeeKey, txnFeeKeyUsd, txnOffshoreFeeKeyUsd, txnFeeKeyXAsset, txnOffshoreFeeKeyXAsset curve25519.Point
	CommitToH(&txnFeeKey, sig.TxnFee)
	CommitToH(&txnOffshoreFeeKey, sig.TxnOffshoreFee)
	CommitToH(&txnFeeKeyUsd, sig.TxnFeeUsd)
	CommitToH(&txnOffshoreFeeKeyUsd, sig.TxnOffshoreFeeUsd)
	CommitToH(&txnFeeKeyXAsset, sig.TxnFeeXAsset)
	CommitToH(&txnOffshoreFeeKeyXAsset, sig.TxnOffshoreFeeXAsset)

	sumPseudoOuts := identityPoint()
	sumPseudoOutsUsd := identityPoint()
	sumPseudoOutsXAsset := identityPoint()
	var sumTarget *curve25519.Point
	switch {
	case src == haven.AssetXHV:
		sumTarget = sumPseudoOuts
	case src == haven.AssetXUSD:
		sumTarget = sumPseudoOutsUsd
	default:
		sumTarget = sumPseudoOutsXAsset
	}
	for i := range pseudoOuts {
		if decodeAdd(sumTarget, pseudoOuts[i]) == nil {
			utils.Errorf(logPrefix, "invalid pseudo output")
			return false
		}
	}

	// C colour
	var sumXHV curve25519.Point
	sumXHV.Subtract(sumPseudoOuts, &txnFeeKey)
	sumXHV.Subtract(&sumXHV, &txnOffshoreFeeKey)
	sumXHV.Subtract(&sumXHV, sumOutpks)

	// Variant colour (C or D depending on the direction of the transaction)
	var sumUSD curve25519.Point
	sumUSD.Subtract(sumPseudoOutsUsd, &txnFeeKeyUsd)
	sumUSD.Subtract(&sumUSD, &txnOffshoreFeeKeyUsd)
	sumUSD.Subtract(&sumUSD, sumOutpksUsd)

	// D colour
	var sumXASSET curve25519.Point
	sumXASSET.Subtract(sumPseudoOutsXAsset, &txnFeeKeyXAsset)
	sumXASSET.Subtract(&sumXASSET, &txnOffshoreFeeKeyXAsset)
	sumXASSET.Subtract(&sumXASSET, sumOutpksXAsset)

	var rate, invRate, atomic, invAtomic curve25519.Scalar
	crypto.AmountToScalar(&atomic, haven.COIN)

	switch txType {
	case TxTypeOffshore:
		crypto.AmountToScalar(&rate, pr.MA)
		crypto.InvertScalar(&invRate, &rate)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&atomic, &sumUSD)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invRate, DScaled)
		Zi.Add(&sumXHV, DFinal)
	case TxTypeOnshore:
		crypto.AmountToScalar(&rate, pr.MA)
		crypto.InvertScalar(&invAtomic, &atomic)
		CScaled := new(curve25519.Point).VarTimeScalarMult(&rate, &sumXHV)
		CFinal := new(curve25519.Point).VarTimeScalarMult(&invAtomic, CScaled)
		Zi.Add(CFinal, &sumUSD)
	case TxTypeOffshoreTransfer:
		Zi.Add(&sumXHV, &sumUSD)
	case TxTypeXUsdToXAsset:
		crypto.AmountToScalar(&rate, pr.Rate(dest))
		crypto.InvertScalar(&invRate, &rate)
		DScaled := new(curve25519.Point).VarTimeScalarMult(&atomic, &sumXASSET)
		DFinal := new(curve25519.Point).VarTimeScalarMult(&invRate, DScaled)
		Zi.Add(&sumUSD, DFinal)
	case TxTypeXAssetToXUsd:
		crypto.AmountToScalar(&rate, pr.Rate(src))
		crypto.InvertScalar(&invAtomic, &atomic)
		CScaled := new(curve25519.Point).VarTimeScalarMult(&rate, &sumUSD)
		CFinal := new(curve25519.Point).VarTimeScalarMult(&invAtomic, CScaled)
		Zi.Add(CFinal, &sumXASSET)
	case TxTypeXAssetTransfer:
		Zi.Add(&sumUSD, &sumXASSET)
	case TxTypeTransfer:
		Zi.Add(&sumXHV, &sumUSD)
	default:
		utils.Errorf(logPrefix, "invalid transaction type specified")
		return false
	}

	if !curve25519.IsIdentity(&Zi) {
		utils.Errorf(logPrefix, "sum check failed (Zi)")
		return false
	}

	if bulletproof {
		if !bulletproofs.VerifyBatch(sig.P.Bulletproofs, rand.Reader) {
			utils.Errorf(logPrefix, "aggregate range proof verification failed")
			return false
		}
	} else {
		// one task per range proof
		results := make([]bool, len(sig.P.RangeSigs))
		_ = utils.SplitWork(-2, uint64(len(sig.P.RangeSigs)), func(workIndex uint64, routineIndex int) error {
			mask := sig.OutPk[workIndex].Mask.Point()
			if mask == nil {
				return nil
			}
			results[workIndex] = sig.P.RangeSigs[workIndex].Verify(mask)
			return nil
		}, func(routines, routineIndex int) error {
			return nil
		})
		for i := range results {
			if !results[i] {
				utils.Errorf(logPrefix, "range proof verification failed for proof %d", i)
				return false
			}
		}
	}

	return true
}

func decodeAdd(dst *curve25519.Point, k curve25519.PublicKeyBytes) *curve25519.Point {
	p := k.Point()
	if p == nil {
		return nil
	}
	return dst.Add(dst, p)
}

// VerifyNonSemanticsSimple One ring signature per input against its mix-ring
// and pseudo-output, bound to the pre-MLSAG hash. The ring verifications run
// in parallel; a failing sibling never cancels the others.
func VerifyNonSemanticsSimple(sig *Sig) (result bool) {
	defer recoverVerify(&result)

	switch sig.Type {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
	default:
		utils.Errorf(logPrefix, "verify non semantics called on wrong type %d", sig.Type)
		return false
	}

	pseudoOuts := sig.PseudoOutsForType()
	if len(pseudoOuts) != len(sig.MixRing) {
		utils.Errorf(logPrefix, "mismatched sizes of pseudoOuts and mixRing")
		return false
	}
	if sig.Type.IsCLSAG() {
		if len(sig.P.CLSAGs) != len(sig.MixRing) {
			utils.Errorf(logPrefix, "mismatched sizes of CLSAGs and mixRing")
			return false
		}
	} else if len(sig.P.MGs) != len(sig.MixRing) {
		utils.Errorf(logPrefix, "mismatched sizes of MGs and mixRing")
		return false
	}

	message, err := GetPreMLSAGHash(sig, NewSoftwareDevice())
	if err != nil {
		utils.Errorf(logPrefix, "prehash failed: %s", err)
		return false
	}

	results := make([]bool, len(sig.MixRing))
	_ = utils.SplitWork(-2, uint64(len(sig.MixRing)), func(workIndex uint64, routineIndex int) error {
		if sig.Type.IsCLSAG() {
			results[workIndex] = verifyCLSAGSimple(message, &sig.P.CLSAGs[workIndex], sig.MixRing[workIndex], pseudoOuts[workIndex])
		} else {
			results[workIndex] = verifyMGSimple(message, &sig.P.MGs[workIndex], sig.MixRing[workIndex], pseudoOuts[workIndex])
		}
		return nil
	}, func(routines, routineIndex int) error {
		return nil
	})

	for i := range results {
		if !results[i] {
			utils.Errorf(logPrefix, "ring signature verification failed for input %d", i)
			return false
		}
	}

	return true
}

func verifyCLSAGSimple(message types.Hash, sig *clsag.Signature, pubs CtKeyV, pseudoOut curve25519.PublicKeyBytes) (result bool) {
	defer recoverVerify(&result)

	P := make([]curve25519.PublicKeyBytes, 0, len(pubs))
	C := make([]curve25519.PublicKeyBytes, 0, len(pubs))
	for i := range pubs {
		P = append(P, pubs[i].Dest)
		C = append(C, pubs[i].Mask)
	}

	if err := sig.Verify(message, P, C, pseudoOut); err != nil {
		utils.Debugf(logPrefix, "CLSAG verification: %s", err)
		return false
	}
	return true
}

// verifyMGSimple Legacy per-input MLSAG: a two-row matrix of the ring keys
// and the commitment offsets
func verifyMGSimple(message types.Hash, mg *mlsag.Signature, pubs CtKeyV, pseudoOut curve25519.PublicKeyBytes) (result bool) {
	defer recoverVerify(&result)

	C := pseudoOut.Point()
	if C == nil {
		return false
	}

	matrix := make([][]curve25519.PublicKeyBytes, 0, len(pubs))
	var offset curve25519.Point
	for i := range pubs {
		mask := pubs[i].Mask.Point()
		if mask == nil {
			return false
		}
		offset.Subtract(mask, C)
		matrix = append(matrix, []curve25519.PublicKeyBytes{
			pubs[i].Dest,
			curve25519.PublicKeyBytes(offset.Bytes()),
		})
	}

	if err := mg.Verify(message, matrix, 1); err != nil {
		utils.Debugf(logPrefix, "MLSAG verification: %s", err)
		return false
	}
	return true
}
