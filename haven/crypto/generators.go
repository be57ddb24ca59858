package crypto

import (
	"git.gammaspectra.live/P2Pool/edwards25519"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

var (
	// GeneratorG generator of the prime-order subgroup
	// G = {x, 4/5 mod q}
	GeneratorG = curve25519.NewGenerator(edwards25519.NewGeneratorPoint())

	// GeneratorH H_p^1(G)
	// H = 8*to_point(keccak(G))
	// note: this does not use the Elligator map, instead directly interpreting
	//       the hash as a compressed point (this can fail, so should not be
	//       used generically)
	// note2: to_point(keccak(G)) is known to succeed for the canonical value
	//        of G (it will fail 7/8ths of the time normally)
	//
	// Contrary to convention (`G` for values, `H` for randomness), `H` carries
	// amounts within Pedersen commitments
	GeneratorH = curve25519.NewGenerator(HopefulHashToPoint(new(curve25519.Point), edwards25519.NewGeneratorPoint().Bytes()))
)
