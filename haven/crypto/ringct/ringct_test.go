package ringct

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.gammaspectra.live/Haven/consensus/haven"
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/keyimages"
	"git.gammaspectra.live/Haven/consensus/haven/pricing"
	"git.gammaspectra.live/Haven/consensus/types"
)

const testRingSize = 11

func newByteReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}

// keyFromBlockchain A decoy with a random key and commitment, standing in for
// a chain lookup
func keyFromBlockchain(t *testing.T, rng io.Reader) (k CtKey) {
	t.Helper()
	var tmp curve25519.Scalar
	require.NotNil(t, curve25519.RandomScalar(&tmp, rng))
	k.Dest = curve25519.PublicKeyBytes(new(curve25519.Point).ScalarBaseMult(&tmp).Bytes())
	require.NotNil(t, curve25519.RandomScalar(&tmp, rng))
	k.Mask = curve25519.PublicKeyBytes(new(curve25519.Point).ScalarBaseMult(&tmp).Bytes())
	return k
}

// populateFromBlockchainSimple Builds a mix-ring with the real key at a
// pseudo-random index below the explicit bound
func populateFromBlockchainSimple(t *testing.T, rng io.Reader, inPk CtKey, mixin int) (ring CtKeyV, index int) {
	t.Helper()
	var buf [8]byte
	_, err := io.ReadFull(rng, buf[:])
	require.NoError(t, err)
	index = int(buf[0]) % (mixin + 1)

	ring = make(CtKeyV, mixin+1)
	for i := range ring {
		if i == index {
			ring[i] = inPk
		} else {
			ring[i] = keyFromBlockchain(t, rng)
		}
	}
	return ring, index
}

type testInput struct {
	secret CtSecret
	amount uint64
}

func makeInput(t *testing.T, rng io.Reader, amount uint64) (in testInput, pk CtKey) {
	t.Helper()
	in.amount = amount
	require.NotNil(t, curve25519.RandomScalar(&in.secret.Dest, rng))
	require.NotNil(t, curve25519.RandomScalar(&in.secret.Mask, rng))

	pk.Dest = curve25519.PublicKeyBytes(new(curve25519.Point).ScalarBaseMult(&in.secret.Dest).Bytes())
	var c curve25519.Point
	Commit(&c, amount, &in.secret.Mask)
	pk.Mask = curve25519.PublicKeyBytes(c.Bytes())
	return in, pk
}

func randomAmountKey(t *testing.T, rng io.Reader) (k curve25519.PrivateKeyBytes) {
	t.Helper()
	var tmp curve25519.Scalar
	require.NotNil(t, curve25519.RandomScalar(&tmp, rng))
	copy(k[:], tmp.Bytes())
	return k
}

func randomDestination(t *testing.T, rng io.Reader) curve25519.PublicKeyBytes {
	t.Helper()
	var tmp curve25519.Scalar
	require.NotNil(t, curve25519.RandomScalar(&tmp, rng))
	return curve25519.PublicKeyBytes(new(curve25519.Point).ScalarBaseMult(&tmp).Bytes())
}

type testTx struct {
	sig        *Sig
	outSk      []CtSecret
	amountKeys []curve25519.PrivateKeyBytes
	outputs    []OutputEntry
	inAssets   []haven.AssetType
	outAssets  []haven.AssetType
}

func buildTx(
	t *testing.T,
	rng io.Reader,
	config Config,
	inAsset haven.AssetType,
	inputAmounts []uint64,
	inputAssets []haven.AssetType,
	inColIndices []int,
	onshoreColAmount uint64,
	outputs []OutputEntry,
	txnFee, txnOffshoreFee uint64,
	pr *pricing.Record,
	txVersion uint8,
) *testTx {
	t.Helper()

	message := types.Hash{0x42}

	var inSk []CtSecret
	var inAmounts []uint64
	mixRing := make(CtKeyM, 0, len(inputAmounts))
	var index []int
	for _, amount := range inputAmounts {
		in, pk := makeInput(t, rng, amount)
		ring, realIndex := populateFromBlockchainSimple(t, rng, pk, testRingSize-1)
		inSk = append(inSk, in.secret)
		inAmounts = append(inAmounts, in.amount)
		mixRing = append(mixRing, ring)
		index = append(index, realIndex)
	}

	var destinations []curve25519.PublicKeyBytes
	var amountKeys []curve25519.PrivateKeyBytes
	var outAssets []haven.AssetType
	for _, out := range outputs {
		destinations = append(destinations, randomDestination(t, rng))
		amountKeys = append(amountKeys, randomAmountKey(t, rng))
		outAssets = append(outAssets, out.Asset)
	}

	sig, outSk, err := GenSimple(
		message,
		inSk,
		destinations,
		inAmounts,
		inColIndices,
		onshoreColAmount,
		inAsset,
		outputs,
		txnFee,
		txnOffshoreFee,
		mixRing,
		amountKeys,
		nil,
		nil,
		index,
		config,
		NewSoftwareDevice(),
		pr,
		txVersion,
		rng,
	)
	require.NoError(t, err)
	require.Len(t, outSk, len(outputs))

	return &testTx{
		sig:        sig,
		outSk:      outSk,
		amountKeys: amountKeys,
		outputs:    outputs,
		inAssets:   inputAssets,
		outAssets:  outAssets,
	}
}

func haven3Config() Config {
	return Config{RangeProofType: RangeProofPaddedBulletproof, BPVersion: 6}
}

func haven2Config() Config {
	return Config{RangeProofType: RangeProofPaddedBulletproof, BPVersion: 5}
}

func decodeAll(t *testing.T, tx *testTx) {
	t.Helper()
	for i := range tx.outputs {
		var mask curve25519.Scalar
		amount, err := DecodeSimple(tx.sig, tx.amountKeys[i], i, &mask, NewSoftwareDevice())
		require.NoError(t, err)
		assert.Equal(t, tx.outputs[i].Amount, amount)
		assert.Equal(t, 1, mask.Equal(&tx.outSk[i].Mask))
	}
}

func TestSimpleTransfer(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	fee := haven.COIN / 100
	tx := buildTx(t, rng,
		haven3Config(),
		haven.AssetXHV,
		[]uint64{3*haven.COIN + fee},
		[]haven.AssetType{haven.AssetXHV},
		nil, 0,
		[]OutputEntry{
			{Asset: haven.AssetXHV, Amount: 1 * haven.COIN},
			{Asset: haven.AssetXHV, Amount: 2 * haven.COIN},
		},
		fee, 0,
		&pricing.Record{},
		haven.CollateralTransactionVersion,
	)

	assert.True(t, VerifySemanticsSimple2(tx.sig, &pricing.Record{}, TxTypeTransfer, haven.AssetXHV, haven.AssetXHV,
		0, tx.outAssets, tx.inAssets, haven.HardForkUseCollateral, nil, 0))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))

	decodeAll(t, tx)
}

func TestSimpleTransferMultipleInputs(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx := buildTx(t, rng,
		haven3Config(),
		haven.AssetXHV,
		[]uint64{2 * haven.COIN, 3 * haven.COIN},
		[]haven.AssetType{haven.AssetXHV, haven.AssetXHV},
		nil, 0,
		[]OutputEntry{
			{Asset: haven.AssetXHV, Amount: 5 * haven.COIN},
		},
		0, 0,
		&pricing.Record{},
		haven.CollateralTransactionVersion,
	)

	assert.True(t, VerifySemanticsSimple2(tx.sig, &pricing.Record{}, TxTypeTransfer, haven.AssetXHV, haven.AssetXHV,
		0, tx.outAssets, tx.inAssets, haven.HardForkUseCollateral, nil, 0))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))
	decodeAll(t, tx)
}

func offshorePricing() *pricing.Record {
	return &pricing.Record{
		Spot: 500 * haven.COIN,
		MA:   500 * haven.COIN,
	}
}

// offshoreTx 100 XHV in, 90 XHV change, 1 XHV conversion fee, 9 XHV burnt
// at 500 XUSD/XHV into 4500 XUSD
func offshoreTx(t *testing.T, rng io.Reader) (*testTx, *pricing.Record) {
	t.Helper()
	pr := offshorePricing()
	tx := buildTx(t, rng,
		haven2Config(),
		haven.AssetXHV,
		[]uint64{100 * haven.COIN},
		[]haven.AssetType{haven.AssetXHV},
		nil, 0,
		[]OutputEntry{
			{Asset: haven.AssetXHV, Amount: 90 * haven.COIN},
			{Asset: haven.AssetXUSD, Amount: 4500 * haven.COIN},
		},
		0, 1*haven.COIN,
		pr,
		5,
	)
	return tx, pr
}

func TestOffshore(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, pr := offshoreTx(t, rng)
	burnt := uint64(9 * haven.COIN)

	assert.True(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeOffshore, haven.AssetXHV, haven.AssetXUSD,
		burnt, tx.outAssets, tx.inAssets, haven.HardForkHaven2, nil, 0))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))
	decodeAll(t, tx)

	assert.True(t, CheckBurntAndMinted(tx.sig, burnt, 4500*haven.COIN, pr, haven.AssetXHV, haven.AssetXUSD, haven.HardForkHaven2))
	assert.False(t, CheckBurntAndMinted(tx.sig, burnt, 4500*haven.COIN+1, pr, haven.AssetXHV, haven.AssetXUSD, haven.HardForkHaven2))
}

func TestOffshoreBurntMismatch(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, pr := offshoreTx(t, rng)

	// forging one atomic unit of burnt mass fails the burnt/minted equation
	assert.False(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeOffshore, haven.AssetXHV, haven.AssetXUSD,
		9*haven.COIN+1, tx.outAssets, tx.inAssets, haven.HardForkHaven2, nil, 0))
}

func TestOffshoreTampering(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var one curve25519.Scalar
	crypto.AmountToScalar(&one, 1)

	verify := func(tx *testTx, pr *pricing.Record) bool {
		return VerifySemanticsSimple2(tx.sig, pr, TxTypeOffshore, haven.AssetXHV, haven.AssetXUSD,
			9*haven.COIN, tx.outAssets, tx.inAssets, haven.HardForkHaven2, nil, 0) &&
			VerifyNonSemanticsSimple(tx.sig)
	}

	t.Run("Bulletproof", func(t *testing.T) {
		tx, pr := offshoreTx(t, rng)
		tx.sig.P.Bulletproofs[0].TauX.Add(&tx.sig.P.Bulletproofs[0].TauX, &one)
		assert.False(t, verify(tx, pr))
	})
	t.Run("PseudoOuts", func(t *testing.T) {
		tx, pr := offshoreTx(t, rng)
		tx.sig.P.PseudoOuts[0][0] ^= 1
		assert.False(t, verify(tx, pr))
	})
	t.Run("CLSAG", func(t *testing.T) {
		tx, pr := offshoreTx(t, rng)
		tx.sig.P.CLSAGs[0].S[2].Add(&tx.sig.P.CLSAGs[0].S[2], &one)
		assert.False(t, verify(tx, pr))
	})
	t.Run("MaskSums", func(t *testing.T) {
		tx, pr := offshoreTx(t, rng)
		tx.sig.MaskSums[0].Add(&tx.sig.MaskSums[0], &one)
		assert.False(t, verify(tx, pr))
	})
}

// onshore under the collateral rules: 1000 XUSD in, 200 XUSD change,
// 800 XUSD burnt at max(400, 500) = 500 XUSD/XHV into 1.6 XHV, with a
// 2000 XHV collateral input returned through two collateral outputs
func onshoreTx(t *testing.T, rng io.Reader) (*testTx, *pricing.Record, []int) {
	t.Helper()

	pr := &pricing.Record{
		Spot: 500 * haven.COIN,
		MA:   400 * haven.COIN,
	}

	const collateral = 2000 * haven.COIN
	minted := uint64(1600000000000) // 1.6 XHV

	tx := buildTx(t, rng,
		haven3Config(),
		haven.AssetXUSD,
		[]uint64{1000 * haven.COIN, collateral},
		[]haven.AssetType{haven.AssetXUSD, haven.AssetXHV},
		[]int{1}, collateral,
		[]OutputEntry{
			{Asset: haven.AssetXHV, Amount: minted},
			{Asset: haven.AssetXUSD, Amount: 200 * haven.COIN},
			{Asset: haven.AssetXHV, Amount: collateral, Collateral: true},
			{Asset: haven.AssetXHV, Amount: 0, Collateral: true},
		},
		0, 0,
		pr,
		haven.CollateralTransactionVersion,
	)
	return tx, pr, []int{2, 3}
}

func TestOnshoreCollateral(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, pr, colIndices := onshoreTx(t, rng)
	burnt := uint64(800 * haven.COIN)

	assert.True(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeOnshore, haven.AssetXUSD, haven.AssetXHV,
		burnt, tx.outAssets, tx.inAssets, haven.HardForkUseCollateral, colIndices, 2000*haven.COIN))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))
	decodeAll(t, tx)

	assert.True(t, CheckBurntAndMinted(tx.sig, burnt, 1600000000000, pr, haven.AssetXUSD, haven.AssetXHV, haven.HardForkUseCollateral))

	// wrong collateral amount fails the collateral equation
	assert.False(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeOnshore, haven.AssetXUSD, haven.AssetXHV,
		burnt, tx.outAssets, tx.inAssets, haven.HardForkUseCollateral, colIndices, 2001*haven.COIN))
}

func TestOnshorePriceSpreadEnforcement(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, pr, colIndices := onshoreTx(t, rng)
	burnt := uint64(800 * haven.COIN)

	// the transaction was signed under max(MA, spot); a rule set that reads
	// the attacker-favorable moving average alone must reject it
	assert.False(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeOnshore, haven.AssetXUSD, haven.AssetXHV,
		burnt, tx.outAssets, tx.inAssets, haven.HardForkHaven2, colIndices, 2000*haven.COIN))
}

func TestXUsdToXAsset(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	pr := &pricing.Record{
		Spot: 500 * haven.COIN,
		MA:   500 * haven.COIN,
		XBTC: 2 * haven.COIN,
	}

	tx := buildTx(t, rng,
		haven2Config(),
		haven.AssetXUSD,
		[]uint64{100 * haven.COIN},
		[]haven.AssetType{haven.AssetXUSD},
		nil, 0,
		[]OutputEntry{
			{Asset: haven.AssetXUSD, Amount: 50 * haven.COIN},
			{Asset: "xBTC", Amount: 100 * haven.COIN},
		},
		0, 0,
		pr,
		5,
	)

	burnt := uint64(50 * haven.COIN)
	assert.True(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeXUsdToXAsset, haven.AssetXUSD, "xBTC",
		burnt, tx.outAssets, tx.inAssets, haven.HardForkHaven2, nil, 0))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))
	assert.True(t, CheckBurntAndMinted(tx.sig, burnt, 100*haven.COIN, pr, haven.AssetXUSD, "xBTC", haven.HardForkHaven2))
}

func TestXAssetToXUsd(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	pr := &pricing.Record{
		Spot: 500 * haven.COIN,
		MA:   500 * haven.COIN,
		XBTC: 2 * haven.COIN,
	}

	tx := buildTx(t, rng,
		haven2Config(),
		"xBTC",
		[]uint64{30 * haven.COIN},
		[]haven.AssetType{"xBTC"},
		nil, 0,
		[]OutputEntry{
			{Asset: "xBTC", Amount: 20 * haven.COIN},
			{Asset: haven.AssetXUSD, Amount: 5 * haven.COIN},
		},
		0, 0,
		pr,
		5,
	)

	burnt := uint64(10 * haven.COIN)
	assert.True(t, VerifySemanticsSimple2(tx.sig, pr, TxTypeXAssetToXUsd, "xBTC", haven.AssetXUSD,
		burnt, tx.outAssets, tx.inAssets, haven.HardForkHaven2, nil, 0))
	assert.True(t, VerifyNonSemanticsSimple(tx.sig))
	assert.True(t, CheckBurntAndMinted(tx.sig, burnt, 5*haven.COIN, pr, "xBTC", haven.AssetXUSD, haven.HardForkHaven2))
}

func TestDoubleSpendDetection(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	in, pk := makeInput(t, rng, 10*haven.COIN)

	build := func() *Sig {
		ring, realIndex := populateFromBlockchainSimple(t, rng, pk, testRingSize-1)
		sig, _, err := GenSimple(
			types.Hash{0x11},
			[]CtSecret{in.secret},
			[]curve25519.PublicKeyBytes{randomDestination(t, rng)},
			[]uint64{10 * haven.COIN},
			nil, 0,
			haven.AssetXHV,
			[]OutputEntry{{Asset: haven.AssetXHV, Amount: 10 * haven.COIN}},
			0, 0,
			CtKeyM{ring},
			[]curve25519.PrivateKeyBytes{randomAmountKey(t, rng)},
			nil, nil,
			[]int{realIndex},
			haven3Config(),
			NewSoftwareDevice(),
			&pricing.Record{},
			haven.CollateralTransactionVersion,
			rng,
		)
		require.NoError(t, err)
		return sig
	}

	sig1 := build()
	sig2 := build()

	// the key image is a deterministic function of the real spend, not the ring
	assert.Equal(t, sig1.P.CLSAGs[0].I, sig2.P.CLSAGs[0].I)

	set := keyimages.NewSet(16)
	assert.True(t, set.Add(sig1.P.CLSAGs[0].I))
	assert.False(t, set.Add(sig2.P.CLSAGs[0].I))
}

func TestEcdhRoundTrip(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	for _, short := range []bool{false, true} {
		key := randomAmountKey(t, rng)

		var mask curve25519.Scalar
		require.NotNil(t, curve25519.RandomScalar(&mask, rng))

		var tuple EcdhTuple
		copy(tuple.Mask[:], mask.Bytes())
		var amountK curve25519.Scalar
		crypto.AmountToScalar(&amountK, 1234567890)
		copy(tuple.Amount[:], amountK.Bytes())

		EcdhEncode(&tuple, key, short)
		EcdhDecode(&tuple, key, short)

		assert.Equal(t, uint64(1234567890), crypto.ScalarToAmount((&tuple.Amount).Scalar()))
		if !short {
			assert.Equal(t, mask.Bytes(), (&tuple.Mask).Scalar().Bytes())
		}
	}
}

func TestSigBaseSerializationRoundTrip(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, _ := offshoreTx(t, rng)

	inputs := len(tx.sig.MixRing)
	outputs := len(tx.sig.EcdhInfo)

	data, err := tx.sig.SigBase.AppendBinary(nil, inputs, outputs)
	require.NoError(t, err)
	require.Len(t, data, tx.sig.SigBase.BufferLength(inputs, outputs))

	var decoded SigBase
	require.NoError(t, decoded.FromReader(newByteReader(data), inputs, outputs))

	assert.Equal(t, tx.sig.Type, decoded.Type)
	assert.Equal(t, tx.sig.TxnFee, decoded.TxnFee)
	assert.Equal(t, tx.sig.TxnOffshoreFee, decoded.TxnOffshoreFee)
	assert.Equal(t, tx.sig.EcdhInfo[0].Amount[:8], decoded.EcdhInfo[0].Amount[:8])
	assert.Equal(t, tx.sig.OutPk[0].Mask, decoded.OutPk[0].Mask)
	require.Len(t, decoded.MaskSums, len(tx.sig.MaskSums))
	for i := range decoded.MaskSums {
		assert.Equal(t, 1, decoded.MaskSums[i].Equal(&tx.sig.MaskSums[i]))
	}

	// the reencoding is byte exact
	data2, err := decoded.AppendBinary(nil, inputs, outputs)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestBulletproofSerializationRoundTrip(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, _ := offshoreTx(t, rng)
	proof := tx.sig.P.Bulletproofs[0]

	data := AppendBulletproof(nil, proof)
	decoded, err := ReadBulletproof(newByteReader(data))
	require.NoError(t, err)

	assert.Equal(t, proof.A.Bytes(), decoded.A.Bytes())
	assert.Equal(t, 1, proof.TauX.Equal(&decoded.TauX))
	require.Len(t, decoded.L, len(proof.L))
	assert.Equal(t, proof.L[0].Bytes(), decoded.L[0].Bytes())
	assert.Equal(t, 1, proof.T.Equal(&decoded.T))
}

func TestCLSAGSerializationRoundTrip(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	tx, _ := offshoreTx(t, rng)
	sig := &tx.sig.P.CLSAGs[0]

	data := AppendCLSAG(nil, sig)
	decoded, err := ReadCLSAG(newByteReader(data), len(sig.S), sig.I)
	require.NoError(t, err)

	assert.Equal(t, sig.D, decoded.D)
	assert.Equal(t, sig.I, decoded.I)
	assert.Equal(t, 1, sig.C1.Equal(&decoded.C1))
	for i := range sig.S {
		assert.Equal(t, 1, sig.S[i].Equal(&decoded.S[i]))
	}
}

func TestFakeDeviceDummyProof(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	in, pk := makeInput(t, rng, haven.COIN)
	ring, realIndex := populateFromBlockchainSimple(t, rng, pk, testRingSize-1)

	device := NewSoftwareDevice()
	device.Mode = DeviceModeTransactionCreateFake

	sig, _, err := GenSimple(
		types.Hash{0x33},
		[]CtSecret{in.secret},
		[]curve25519.PublicKeyBytes{randomDestination(t, rng)},
		[]uint64{haven.COIN},
		nil, 0,
		haven.AssetXHV,
		[]OutputEntry{{Asset: haven.AssetXHV, Amount: haven.COIN}},
		0, 0,
		CtKeyM{ring},
		[]curve25519.PrivateKeyBytes{randomAmountKey(t, rng)},
		nil, nil,
		[]int{realIndex},
		haven3Config(),
		device,
		&pricing.Record{},
		haven.CollateralTransactionVersion,
		rng,
	)
	require.NoError(t, err)

	// simulation output must never pass verification
	assert.False(t, VerifySemanticsSimple2(sig, &pricing.Record{}, TxTypeTransfer, haven.AssetXHV, haven.AssetXHV,
		0, []haven.AssetType{haven.AssetXHV}, []haven.AssetType{haven.AssetXHV}, haven.HardForkUseCollateral, nil, 0))
}
