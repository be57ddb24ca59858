package bulletproofs

import (
	"math/bits"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

func saturatingSub(a, b uint64) uint64 {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow > 0 {
		diff = 0
	}
	return diff
}

// ChallengeProducts Expands the inner-product challenges into the scalars
// each generator is weighted by during verification.
//
// Takes an iterative approach: do the optimal multiplications across
// challenge column 0 and 1, then across that result and column 2, and so on.
func ChallengeProducts(challenges [][2]curve25519.Scalar) []curve25519.Scalar {
	products := []curve25519.Scalar{
		*crypto.AmountToScalar(new(curve25519.Scalar), 1),
		*crypto.AmountToScalar(new(curve25519.Scalar), 1<<len(challenges)),
	}

	if len(challenges) > 0 {
		products[0] = challenges[0][1]
		products[1] = challenges[0][0]

		products = append(products, make([]curve25519.Scalar, (1<<len(challenges))-2)...)

		for j, challenge := range challenges[1:] {
			slots := uint64((1 << (j + 2)) - 1)
			for slots > 0 {
				products[slots].Multiply(&products[slots/2], &challenge[0])
				products[slots-1].Multiply(&products[slots/2], &challenge[1])

				slots = saturatingSub(slots, 2)
			}
		}

		// Sanity check since if the above failed to populate, it'd be critical
		var zeroScalar curve25519.Scalar
		for _, product := range products {
			if product.Equal(&zeroScalar) == 1 {
				panic("challenge product cannot be zero")
			}
		}
	}
	return products
}

var amountScalarBit = [2]curve25519.Scalar{
	*(&curve25519.PrivateKeyBytes{0}).Scalar(),
	*(&curve25519.PrivateKeyBytes{1}).Scalar(),
}

// Decompose An amount as its 64 bit scalars, little endian
func Decompose(amount uint64) (out ScalarVector) {
	out = make(ScalarVector, 0, CommitmentBits)
	for range CommitmentBits {
		out = append(out, amountScalarBit[amount&1])
		amount >>= 1
	}
	return out
}

func PaddedPowerOfTwo[T int | uint64](i T) T {
	powerOfTwo := T(1)
	for powerOfTwo < i {
		powerOfTwo <<= 1
	}
	return powerOfTwo
}

var LogCommitmentBits = bits.Len(CommitmentBits - 1)
