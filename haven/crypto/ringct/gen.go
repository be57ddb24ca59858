package ringct

import (
	"errors"
	"io"
	"slices"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/clsag"
	"git.gammaspectra.live/Haven/consensus/haven/pricing"
	"git.gammaspectra.live/Haven/consensus/types"
)

var ErrInvalidParams = errors.New("invalid ringct parameters")
var ErrUnsupportedConfig = errors.New("unsupported ringct config")
var ErrEmptyPricingRecord = errors.New("empty pricing record for a conversion")
var ErrInvalidDirection = errors.New("invalid transaction direction")

// typeForConfig The epoch tag assembled for a bulletproof version
func typeForConfig(config Config) (Type, error) {
	switch config.BPVersion {
	case 0, 6:
		return TypeHaven3, nil
	case 5:
		return TypeHaven2, nil
	case 4:
		return TypeCLSAGN, nil
	case 3:
		return TypeCLSAG, nil
	case 2:
		return TypeBulletproof2, nil
	case 1:
		return TypeBulletproof, nil
	}
	return TypeNull, ErrUnsupportedConfig
}

// GenSimple Builds a complete RingCT signature: commitments, an aggregated
// range proof, ECDH blobs, mask sums and one CLSAG per input.
//
// inSk holds the per-input secrets, index the real position within each
// mix-ring. inColIndices marks which inputs carry onshore collateral.
// Outputs are (colour, amount, collateral) triples in transaction order.
// The per-output secret masks are returned in outSk for the sender's records.
//
// No partial signature is ever returned: any failure is fatal to the call.
func GenSimple(
	message types.Hash,
	inSk []CtSecret,
	destinations []curve25519.PublicKeyBytes,
	inAmounts []uint64,
	inColIndices []int,
	onshoreColAmount uint64,
	inAsset haven.AssetType,
	outputs []OutputEntry,
	txnFee uint64,
	txnOffshoreFee uint64,
	mixRing CtKeyM,
	amountKeys []curve25519.PrivateKeyBytes,
	kLRki []clsag.KLRKI,
	msout *MultisigOut,
	index []int,
	config Config,
	device *Device,
	pr *pricing.Record,
	txVersion uint8,
	randomReader io.Reader,
) (sig *Sig, outSk []CtSecret, err error) {

	// Sanity checks
	if len(inAmounts) == 0 || len(inAmounts) != len(inSk) {
		return nil, nil, ErrInvalidParams
	}
	if len(outputs) == 0 || len(outputs) != len(destinations) {
		return nil, nil, ErrInvalidParams
	}
	if len(amountKeys) != len(destinations) {
		return nil, nil, ErrInvalidParams
	}
	if len(index) != len(inSk) || len(mixRing) != len(inSk) {
		return nil, nil, ErrInvalidParams
	}
	for n := range mixRing {
		if index[n] < 0 || index[n] >= len(mixRing[n]) {
			return nil, nil, ErrInvalidParams
		}
	}
	if kLRki != nil && len(kLRki) != len(inAmounts) {
		return nil, nil, ErrInvalidParams
	}
	if (kLRki == nil) != (msout == nil) {
		return nil, nil, ErrInvalidParams
	}
	if config.RangeProofType != RangeProofPaddedBulletproof {
		return nil, nil, ErrUnsupportedConfig
	}
	if !haven.IsValidAsset(inAsset) {
		return nil, nil, ErrInvalidDirection
	}

	sig = &Sig{}
	if sig.Type, err = typeForConfig(config); err != nil {
		return nil, nil, err
	}
	if !sig.Type.IsCLSAG() {
		// MLSAG epochs are verify-only; nothing assembles them anymore
		return nil, nil, ErrUnsupportedConfig
	}

	// Work out the direction of the transaction from the mix of colours
	xhvSent := inAsset == haven.AssetXHV
	usdSent := inAsset == haven.AssetXUSD
	xassetSent := !xhvSent && !usdSent

	var xhvReceived, usdReceived, xassetReceived bool
	flatAmounts := make([]uint64, 0, len(outputs))
	for _, out := range outputs {
		switch {
		case out.Asset == haven.AssetXHV:
			xhvReceived = true
		case out.Asset == haven.AssetXUSD:
			usdReceived = true
		default:
			xassetReceived = true
		}
		flatAmounts = append(flatAmounts, out.Amount)
	}

	offshore := xhvSent && !usdSent && usdReceived && xhvReceived
	onshore := usdSent && !xhvSent && usdReceived && xhvReceived
	xassetToXusd := xassetSent && xassetReceived && usdReceived
	xusdToXasset := usdSent && xassetReceived && usdReceived
	conversionTx := offshore || onshore || xusdToXasset || xassetToXusd
	useOnshoreCol := onshore && sig.Type == TypeHaven3

	if conversionTx && pr.Empty() {
		return nil, nil, ErrEmptyPricingRecord
	}
	if xassetSent && xhvReceived {
		return nil, nil, ErrInvalidDirection
	}
	if !useOnshoreCol && len(inColIndices) != 0 {
		return nil, nil, ErrInvalidParams
	}

	sig.Message = message
	sig.OutPk = make(CtKeyV, len(destinations))
	sig.OutPkUsd = make(CtKeyV, len(destinations))
	sig.OutPkXAsset = make(CtKeyV, len(destinations))
	sig.EcdhInfo = make([]EcdhTuple, len(destinations))
	for i := range destinations {
		sig.OutPk[i].Dest = destinations[i]
		sig.OutPkUsd[i].Dest = destinations[i]
		sig.OutPkXAsset[i].Dest = destinations[i]
	}

	if sig.Type == TypeHaven3 && conversionTx {
		sig.MaskSums = make([]curve25519.Scalar, 3)
	} else if sig.Type == TypeHaven2 {
		sig.MaskSums = make([]curve25519.Scalar, 2)
	}

	// Range proof over every output amount
	var proof *bulletproofs.Proof
	var masks []curve25519.Scalar
	if device.Mode == DeviceModeTransactionCreateFake {
		// use a fake bulletproof for speed
		proof, masks = bulletproofs.MakeDummy(flatAmounts)
	} else {
		masks = make([]curve25519.Scalar, len(destinations))
		for i := range masks {
			masks[i] = device.GenCommitmentMask(amountKeys[i])
		}
		if proof, err = bulletproofs.Prove(flatAmounts, masks, randomReader); err != nil {
			return nil, nil, err
		}
	}
	sig.P.Bulletproofs = []*bulletproofs.Proof{proof}

	outSk = make([]CtSecret, len(destinations))
	for i := range outputs {
		var committed curve25519.Point
		ScalarMult8(&committed, &proof.V[i])
		committedBytes := curve25519.PublicKeyBytes(committed.Bytes())

		if sig.Type == TypeHaven2 || sig.Type == TypeHaven3 {
			sig.OutPk[i].Mask = committedBytes
			sig.OutPkUsd[i].Mask = identityKey
			sig.OutPkXAsset[i].Mask = identityKey

			// change outputs in the residual colour of the conversion
			if (outputs[i].Asset == haven.AssetXHV && offshore) ||
				(outputs[i].Asset == haven.AssetXUSD && (onshore || xusdToXasset)) ||
				(outputs[i].Asset != haven.AssetXUSD && xassetToXusd) {
				if len(sig.MaskSums) > 1 {
					sig.MaskSums[1].Add(&sig.MaskSums[1], &masks[i])
				}
			}

			if sig.Type == TypeHaven3 {
				// save the collateral output mask for offshore
				if offshore && outputs[i].Collateral {
					sig.MaskSums[2].Add(&sig.MaskSums[2], &masks[i])
				}

				// save the actual collateral output (not change) mask for onshore
				if useOnshoreCol && outputs[i].Collateral && outputs[i].Amount == onshoreColAmount {
					sig.MaskSums[2].Set(&masks[i])
				}
			}
		} else {
			sig.OutPk[i].Mask = identityKey
			sig.OutPkUsd[i].Mask = identityKey
			sig.OutPkXAsset[i].Mask = identityKey
			switch {
			case outputs[i].Asset == haven.AssetXHV:
				sig.OutPk[i].Mask = committedBytes
			case outputs[i].Asset == haven.AssetXUSD:
				sig.OutPkUsd[i].Mask = committedBytes
			default:
				sig.OutPkXAsset[i].Mask = committedBytes
			}
		}
		outSk[i].Mask.Set(&masks[i])
	}

	// Output encryption and scaling of masks into the source colour basis
	var sumout, sumoutOnshoreCol curve25519.Scalar
	var atomic, inverseAtomic curve25519.Scalar
	crypto.AmountToScalar(&atomic, haven.COIN)
	crypto.InvertScalar(&inverseAtomic, &atomic)

	var rate, outSkScaled, tempKey curve25519.Scalar
	for i := range outputs {
		switch {
		case xhvSent:
			if outputs[i].Asset == haven.AssetXUSD {
				// OFFSHORE - convert the output mask to XHV for the balance test
				crypto.AmountToScalar(&rate, pr.MinRate(assemblyForkVersion(txVersion)))
				crypto.InvertScalar(&rate, &rate)
				tempKey.Multiply(&outSk[i].Mask, &atomic)
				outSkScaled.Multiply(&tempKey, &rate)
			} else {
				// output already in XHV
				outSkScaled.Set(&outSk[i].Mask)
			}
		case usdSent:
			if outputs[i].Asset == haven.AssetXUSD {
				// output already in XUSD
				outSkScaled.Set(&outSk[i].Mask)
			} else if outputs[i].Asset == haven.AssetXHV && !outputs[i].Collateral {
				// ONSHORE - convert the output mask to XUSD for the balance test
				crypto.AmountToScalar(&rate, pr.MaxRate(assemblyForkVersion(txVersion)))
				tempKey.Multiply(&outSk[i].Mask, &rate)
				outSkScaled.Multiply(&tempKey, &inverseAtomic)
			} else if haven.IsXAsset(outputs[i].Asset) {
				// xAsset equivalent of OFFSHORE
				crypto.AmountToScalar(&rate, pr.Rate(outputs[i].Asset))
				crypto.InvertScalar(&rate, &rate)
				tempKey.Multiply(&outSk[i].Mask, &atomic)
				outSkScaled.Multiply(&tempKey, &rate)
			} else {
				// onshore collateral output
				outSkScaled.Set(&outSk[i].Mask)
			}
		default:
			if outputs[i].Asset == haven.AssetXUSD {
				// xAsset equivalent of ONSHORE
				crypto.AmountToScalar(&rate, pr.Rate(inAsset))
				tempKey.Multiply(&outSk[i].Mask, &rate)
				outSkScaled.Multiply(&tempKey, &inverseAtomic)
			} else if outputs[i].Asset == haven.AssetXHV {
				return nil, nil, ErrInvalidDirection
			} else {
				// output already in the xAsset
				outSkScaled.Set(&outSk[i].Mask)
			}
		}

		// exclude the onshore collateral outputs (actual + change)
		if useOnshoreCol && outputs[i].Collateral {
			sumoutOnshoreCol.Add(&sumoutOnshoreCol, &outSkScaled)
		} else {
			sumout.Add(&sumout, &outSkScaled)
		}

		// seal amount and mask for the recipient
		copy(sig.EcdhInfo[i].Mask[:], outSk[i].Mask.Bytes())
		var amountK curve25519.Scalar
		crypto.AmountToScalar(&amountK, outputs[i].Amount)
		copy(sig.EcdhInfo[i].Amount[:], amountK.Bytes())
		device.EcdhEncode(&sig.EcdhInfo[i], amountKeys[i], sig.Type.ShortAmount())
	}

	// fees, paid in the source colour only from Haven2 on
	if sig.Type == TypeHaven2 || sig.Type == TypeHaven3 {
		sig.TxnFee = txnFee
		sig.TxnOffshoreFee = txnOffshoreFee
	} else {
		switch {
		case xhvSent:
			sig.TxnFee = txnFee
			sig.TxnOffshoreFee = txnOffshoreFee
		case usdSent:
			sig.TxnFeeUsd = txnFee
			sig.TxnOffshoreFeeUsd = txnOffshoreFee
		default:
			sig.TxnFeeXAsset = txnFee
			sig.TxnOffshoreFeeXAsset = txnOffshoreFee
		}
	}

	sig.MixRing = slices.Clone(mixRing)
	sig.P.PseudoOuts = make([]curve25519.PublicKeyBytes, len(inAmounts))
	sig.P.CLSAGs = make([]clsag.Signature, len(inAmounts))

	// separate the actual and collateral inputs
	var actualIn, colIn []int
	for i := range inAmounts {
		if slices.Contains(inColIndices, i) {
			colIn = append(colIn, i)
		} else {
			actualIn = append(actualIn, i)
		}
	}
	if len(actualIn) == 0 || (useOnshoreCol && len(colIn) == 0) {
		return nil, nil, ErrInvalidParams
	}

	// pseudo-output commitments per input; the last mask closes the sum so
	// that sum(pseudo masks) == sum(scaled output masks) in the source colour
	a := make([]curve25519.Scalar, len(inAmounts))
	var sumpouts curve25519.Scalar
	var pseudoOut curve25519.Point
	for _, inputIdx := range actualIn[:len(actualIn)-1] {
		curve25519.RandomScalar(&a[inputIdx], randomReader)
		sumpouts.Add(&sumpouts, &a[inputIdx])
		Commit(&pseudoOut, inAmounts[inputIdx], &a[inputIdx])
		sig.P.PseudoOuts[inputIdx] = curve25519.PublicKeyBytes(pseudoOut.Bytes())
	}
	last := actualIn[len(actualIn)-1]
	a[last].Subtract(&sumout, &sumpouts)
	Commit(&pseudoOut, inAmounts[last], &a[last])
	sig.P.PseudoOuts[last] = curve25519.PublicKeyBytes(pseudoOut.Bytes())

	// publish the sum of input blinding factors of the converted colour
	if conversionTx && (sig.Type == TypeHaven2 || sig.Type == TypeHaven3) {
		sig.MaskSums[0].Add(&a[last], &sumpouts)
	}

	// and close the collateral ring independently
	if useOnshoreCol {
		curve25519.WipeScalar(&sumpouts)
		for _, inputIdx := range colIn[:len(colIn)-1] {
			curve25519.RandomScalar(&a[inputIdx], randomReader)
			sumpouts.Add(&sumpouts, &a[inputIdx])
			Commit(&pseudoOut, inAmounts[inputIdx], &a[inputIdx])
			sig.P.PseudoOuts[inputIdx] = curve25519.PublicKeyBytes(pseudoOut.Bytes())
		}
		colLast := colIn[len(colIn)-1]
		a[colLast].Subtract(&sumoutOnshoreCol, &sumpouts)
		Commit(&pseudoOut, inAmounts[colLast], &a[colLast])
		sig.P.PseudoOuts[colLast] = curve25519.PublicKeyBytes(pseudoOut.Bytes())
	}

	fullMessage, err := GetPreMLSAGHash(sig, device)
	if err != nil {
		return nil, nil, err
	}

	if msout != nil {
		msout.C = make([]curve25519.Scalar, len(inAmounts))
		msout.MuP = make([]curve25519.Scalar, len(inAmounts))
	}

	// one CLSAG per input against its mix-ring, offset by the pseudo-output
	for i := range inAmounts {
		var perInputKLRKI *clsag.KLRKI
		var perInputMsout *clsag.MultisigOut
		if kLRki != nil {
			perInputKLRKI = &kLRki[i]
			perInputMsout = &clsag.MultisigOut{}
		}

		if sig.P.CLSAGs[i], err = proveCLSAGSimple(fullMessage, sig.MixRing[i], inSk[i], &a[i], sig.P.PseudoOuts[i], perInputKLRKI, perInputMsout, index[i], randomReader); err != nil {
			return nil, nil, err
		}

		if perInputMsout != nil {
			msout.C[i].Set(&perInputMsout.C)
			msout.MuP[i].Set(&perInputMsout.MuP)
		}
	}

	// scrub the pseudo-output masks
	for i := range a {
		curve25519.WipeScalar(&a[i])
	}

	return sig, outSk, nil
}

// assemblyForkVersion Maps the transaction version onto the fork gates
// governing the pricing selectors during assembly
func assemblyForkVersion(txVersion uint8) uint8 {
	if txVersion >= haven.POUTransactionVersion {
		return haven.HardForkPerOutputUnlock
	}
	return haven.HardForkHaven2
}

// proveCLSAGSimple Prepares a single-input CLSAG: the ring splits into key
// and commitment columns, the signing secret combines the output secret with
// the mask delta, and everything sensitive is wiped after the ring closes.
func proveCLSAGSimple(message types.Hash, pubs CtKeyV, inSk CtSecret, a *curve25519.Scalar, pseudoOut curve25519.PublicKeyBytes, kLRki *clsag.KLRKI, msout *clsag.MultisigOut, index int, randomReader io.Reader) (sig clsag.Signature, err error) {
	if len(pubs) == 0 {
		return sig, ErrInvalidParams
	}

	P := make([]curve25519.PublicKeyBytes, 0, len(pubs))
	C := make([]curve25519.PublicKeyBytes, 0, len(pubs))
	for i := range pubs {
		P = append(P, pubs[i].Dest)
		C = append(C, pubs[i].Mask)
	}

	// sk = dest secret || (mask - a)
	var skDest, skMask curve25519.Scalar
	skDest.Set(&inSk.Dest)
	skMask.Subtract(&inSk.Mask, a)

	sig, err = clsag.Generate(message, P, &skDest, &skMask, C, pseudoOut, index, kLRki, msout, randomReader)

	curve25519.WipeScalar(&skDest)
	curve25519.WipeScalar(&skMask)

	return sig, err
}
