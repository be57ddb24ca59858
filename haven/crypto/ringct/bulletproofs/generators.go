package bulletproofs

import (
	"encoding/binary"

	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// MaxOutputs The maximum amount of commitments provable for within a single Bulletproof.
const MaxOutputs = 16

// CommitmentBits The amount of bits a value within a commitment may use.
const CommitmentBits = 64

type Generators struct {
	G []*curve25519.Point
	H []*curve25519.Point
}

// Generator The per-bit generator table, domain separated with the
// consensus "bulletproof" exponent key.
var Generator = initGenerators("bulletproof")

func initGenerators[T string | []byte](prefix T) (g Generators) {
	const size = MaxOutputs * CommitmentBits

	preimage := crypto.GeneratorH.Point.Bytes()
	preimage = append(preimage, prefix...)

	g.G = make([]*curve25519.Point, size)
	g.H = make([]*curve25519.Point, size)

	for i := range size {
		i = 2 * i
		preimage = binary.AppendUvarint(preimage, uint64(i))
		// yep, double hash
		h := crypto.Keccak256(preimage)
		g.H[i/2] = crypto.BiasedHashToPoint(new(curve25519.Point), h[:])
		preimage = preimage[:len(prefix)+curve25519.PublicKeySize]

		preimage = binary.AppendUvarint(preimage, uint64(i+1))
		h = crypto.Keccak256(preimage)
		g.G[i/2] = crypto.BiasedHashToPoint(new(curve25519.Point), h[:])
		preimage = preimage[:len(prefix)+curve25519.PublicKeySize]
	}
	return g
}
