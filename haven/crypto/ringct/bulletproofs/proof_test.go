package bulletproofs

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

func randomMasks(t *testing.T, rng io.Reader, n int) []curve25519.Scalar {
	t.Helper()
	masks := make([]curve25519.Scalar, n)
	for i := range masks {
		require.NotNil(t, curve25519.RandomScalar(&masks[i], rng))
	}
	return masks
}

func TestProveVerify(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	for _, amounts := range [][]uint64{
		{0},
		{1337},
		{^uint64(0)},
		{1, 2},
		{1, 2, 3},
		{0, ^uint64(0), 1 << 32, 5, 6},
		make([]uint64, MaxOutputs),
	} {
		t.Run(fmt.Sprintf("#%d", len(amounts)), func(t *testing.T) {
			masks := randomMasks(t, rng, len(amounts))
			proof, err := Prove(amounts, masks, rng)
			require.NoError(t, err)
			require.Len(t, proof.V, len(amounts))

			assert.True(t, proof.Verify(rng))
		})
	}
}

func TestProveTooManyOutputs(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	amounts := make([]uint64, MaxOutputs+1)
	masks := randomMasks(t, rng, len(amounts))
	_, err := Prove(amounts, masks, rng)
	assert.ErrorIs(t, err, ErrTooManyOutputs)
}

func TestVerifyBatch(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var proofs []*Proof
	for _, amounts := range [][]uint64{{10}, {20, 30}, {1, 2, 3, 4, 5}} {
		masks := randomMasks(t, rng, len(amounts))
		proof, err := Prove(amounts, masks, rng)
		require.NoError(t, err)
		proofs = append(proofs, proof)
	}

	assert.True(t, VerifyBatch(proofs, rng))

	// a batch with one invalid member fails as a whole
	tampered := *proofs[1]
	var one curve25519.Scalar
	crypto.AmountToScalar(&one, 1)
	tampered.TauX.Add(&tampered.TauX, &one)
	assert.False(t, VerifyBatch([]*Proof{proofs[0], &tampered, proofs[2]}, rng))
}

func TestTamperedProof(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	masks := randomMasks(t, rng, 2)
	proof, err := Prove([]uint64{100, 200}, masks, rng)
	require.NoError(t, err)

	var one curve25519.Scalar
	crypto.AmountToScalar(&one, 1)

	t.Run("TauX", func(t *testing.T) {
		p := *proof
		p.TauX.Add(&p.TauX, &one)
		assert.False(t, p.Verify(rng))
	})
	t.Run("Mu", func(t *testing.T) {
		p := *proof
		p.Mu.Add(&p.Mu, &one)
		assert.False(t, p.Verify(rng))
	})
	t.Run("T", func(t *testing.T) {
		p := *proof
		p.T.Add(&p.T, &one)
		assert.False(t, p.Verify(rng))
	})
	t.Run("Aa", func(t *testing.T) {
		p := *proof
		p.Aa.Add(&p.Aa, &one)
		assert.False(t, p.Verify(rng))
	})
}

func TestDummyProofNeverVerifies(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	proof, masks := MakeDummy([]uint64{100, 200})
	require.Len(t, masks, 2)
	assert.False(t, proof.Verify(rng))
}

func TestAmounts(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	masks := randomMasks(t, rng, 3)
	proof, err := Prove([]uint64{1, 2, 3}, masks, rng)
	require.NoError(t, err)

	assert.Equal(t, 3, Amounts([]*Proof{proof}))
}
