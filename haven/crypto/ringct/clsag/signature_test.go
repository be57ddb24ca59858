package clsag

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
)

const ringLength = 11
const amount = uint64(1337)

type testRing struct {
	P        []curve25519.PublicKeyBytes
	CNonzero []curve25519.PublicKeyBytes

	secretKey  curve25519.Scalar
	secretMask curve25519.Scalar
	pseudoMask curve25519.Scalar
	pseudoOut  curve25519.PublicKeyBytes
}

func commit(amount uint64, mask *curve25519.Scalar) curve25519.PublicKeyBytes {
	var amountK curve25519.Scalar
	crypto.AmountToScalar(&amountK, amount)
	p := new(curve25519.Point).VarTimeScalarMultPrecomputed(&amountK, crypto.GeneratorH.Table)
	p.Add(p, new(curve25519.Point).ScalarBaseMult(mask))
	return curve25519.PublicKeyBytes(p.Bytes())
}

func makeTestRing(t *testing.T, rng io.Reader, n, realIndex int) *testRing {
	t.Helper()

	ring := &testRing{}

	for i := range n {
		var dest, mask curve25519.Scalar
		require.NotNil(t, curve25519.RandomScalar(&dest, rng))
		require.NotNil(t, curve25519.RandomScalar(&mask, rng))

		memberAmount := amount
		if i != realIndex {
			memberAmount = uint64(i) * 1000
		} else {
			ring.secretKey.Set(&dest)
			ring.secretMask.Set(&mask)
		}

		ring.P = append(ring.P, curve25519.PublicKeyBytes(new(curve25519.Point).ScalarBaseMult(&dest).Bytes()))
		ring.CNonzero = append(ring.CNonzero, commit(memberAmount, &mask))
	}

	// rerandomized input commitment to the same amount
	require.NotNil(t, curve25519.RandomScalar(&ring.pseudoMask, rng))
	ring.pseudoOut = commit(amount, &ring.pseudoMask)

	return ring
}

func (r *testRing) maskDelta() (z curve25519.Scalar) {
	z.Subtract(&r.secretMask, &r.pseudoMask)
	return z
}

func TestCLSAG(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	for realIndex := range ringLength {
		t.Run(fmt.Sprintf("#%d", realIndex), func(t *testing.T) {
			var prefixHash = types.Hash{1}

			ring := makeTestRing(t, rng, ringLength, realIndex)
			z := ring.maskDelta()

			sig, err := Generate(prefixHash, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, realIndex, nil, nil, rng)
			require.NoError(t, err)

			assert.NoError(t, sig.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))

			// a different bound message must not verify
			assert.Error(t, sig.Verify(types.Hash{2}, ring.P, ring.CNonzero, ring.pseudoOut))
		})
	}
}

func TestCLSAGRingSizeOne(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var prefixHash = types.Hash{3}
	ring := makeTestRing(t, rng, 1, 0)
	z := ring.maskDelta()

	sig, err := Generate(prefixHash, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, 0, nil, nil, rng)
	require.NoError(t, err)
	assert.NoError(t, sig.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))
}

func TestCLSAGKeyImageDeterminism(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	ring := makeTestRing(t, rng, ringLength, 4)
	z := ring.maskDelta()

	sig1, err := Generate(types.Hash{4}, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, 4, nil, nil, rng)
	require.NoError(t, err)
	sig2, err := Generate(types.Hash{5}, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, 4, nil, nil, rng)
	require.NoError(t, err)

	// the key image is a deterministic function of the spend key alone
	assert.Equal(t, sig1.I, sig2.I)
}

func TestCLSAGTampering(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var prefixHash = types.Hash{6}
	ring := makeTestRing(t, rng, ringLength, 7)
	z := ring.maskDelta()

	sig, err := Generate(prefixHash, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, 7, nil, nil, rng)
	require.NoError(t, err)

	var one curve25519.Scalar
	crypto.AmountToScalar(&one, 1)

	t.Run("S", func(t *testing.T) {
		tampered := *sig.copy()
		tampered.S[3].Add(&tampered.S[3], &one)
		assert.Error(t, tampered.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))
	})
	t.Run("C1", func(t *testing.T) {
		tampered := *sig.copy()
		tampered.C1.Add(&tampered.C1, &one)
		assert.Error(t, tampered.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))
	})
	t.Run("D", func(t *testing.T) {
		tampered := *sig.copy()
		tampered.D[0] ^= 1
		assert.Error(t, tampered.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))
	})
	t.Run("I", func(t *testing.T) {
		tampered := *sig.copy()
		tampered.I[1] ^= 1
		assert.Error(t, tampered.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))
	})
}

func (s *Signature) copy() *Signature {
	out := *s
	out.S = append([]curve25519.Scalar(nil), s.S...)
	return &out
}

func TestCLSAGMultisigNonce(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var prefixHash = types.Hash{7}
	const realIndex = 2
	ring := makeTestRing(t, rng, ringLength, realIndex)
	z := ring.maskDelta()

	// pre-commit the nonce the way a cosigner coordinator would
	var k curve25519.Scalar
	require.NotNil(t, curve25519.RandomScalar(&k, rng))

	var H, L, R, I curve25519.Point
	crypto.BiasedHashToPoint(&H, ring.P[realIndex][:])
	L.ScalarBaseMult(&k)
	R.ScalarMult(&k, &H)
	I.ScalarMult(&ring.secretKey, &H)

	kLRki := &KLRKI{
		K:  k,
		L:  curve25519.PublicKeyBytes(L.Bytes()),
		R:  curve25519.PublicKeyBytes(R.Bytes()),
		KI: curve25519.PublicKeyBytes(I.Bytes()),
	}
	var msout MultisigOut

	sig, err := Generate(prefixHash, ring.P, &ring.secretKey, &z, ring.CNonzero, ring.pseudoOut, realIndex, kLRki, &msout, rng)
	require.NoError(t, err)

	// a single cosigner holding the full key completes to a valid signature
	assert.NoError(t, sig.Verify(prefixHash, ring.P, ring.CNonzero, ring.pseudoOut))

	var zero curve25519.Scalar
	assert.Equal(t, 0, msout.C.Equal(&zero))
	assert.Equal(t, 0, msout.MuP.Equal(&zero))
}
