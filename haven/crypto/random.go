package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
	"git.gammaspectra.live/Haven/consensus/utils"
)

// RandomScalar Samples an unbiased non-zero scalar from the system source
func RandomScalar(k *curve25519.Scalar) *curve25519.Scalar {
	return curve25519.RandomScalar(k, rand.Reader)
}

type deterministicGenerator struct {
	h       HashReader
	counter uint64
}

// NewDeterministicTestGenerator A reproducible keystream for tests. Not
// cryptographically safe for anything else.
func NewDeterministicTestGenerator() io.Reader {
	return &deterministicGenerator{h: newKeccak256()}
}

func (g *deterministicGenerator) Read(p []byte) (n int, err error) {
	var block types.Hash
	var nonce [8]byte
	for n < len(p) {
		g.counter++
		binary.LittleEndian.PutUint64(nonce[:], g.counter)
		utils.ResetNoEscape(g.h)
		_, _ = utils.WriteNoEscape(g.h, nonce[:])
		_, _ = utils.ReadNoEscape(g.h, block[:])
		n += copy(p[n:], block[:])
	}
	return n, nil
}
