package crypto

import (
	"hash"
	"io"

	"git.gammaspectra.live/Haven/consensus/types"
	"git.gammaspectra.live/Haven/consensus/utils"
	"git.gammaspectra.live/P2Pool/sha3"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

type HashReader interface {
	hash.Hash
	io.Reader
}

type KeccakHasher struct {
	h HashReader
}

func (k KeccakHasher) Read(p []byte) (n int, err error) {
	return utils.ReadNoEscape(k.h, p)
}

func (k KeccakHasher) Write(p []byte) (n int, err error) {
	return utils.WriteNoEscape(k.h, p)
}

func (k KeccakHasher) Sum(b []byte) []byte {
	return utils.SumNoEscape(k.h, b)
}

func (k KeccakHasher) Reset() {
	k.h.Reset()
}

func (k KeccakHasher) Size() int {
	return k.h.Size()
}

func (k KeccakHasher) BlockSize() int {
	return k.h.BlockSize()
}

//go:nosplit
func NewKeccak256() KeccakHasher {
	return KeccakHasher{h: sha3.NewLegacyKeccak256()}
}

//go:nosplit
func newKeccak256() HashReader {
	return sha3.NewLegacyKeccak256()
}

func Keccak256Var[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := newKeccak256()
	for _, b := range data {
		_, _ = utils.WriteNoEscape(h, []byte(b))
	}
	_, _ = utils.ReadNoEscape(h, result[:types.HashSize])

	return
}

func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	h := newKeccak256()
	_, _ = utils.WriteNoEscape(h, []byte(data))
	_, _ = utils.ReadNoEscape(h, result[:types.HashSize])

	return
}

// HashFastSum sha3.Sum clones the state by allocating memory. prevent that. b must be pre-allocated to the expected size, or larger
//
//go:nosplit
func HashFastSum(hasher HashReader, b []byte) []byte {
	_ = b[31] // bounds check hint to compiler; see golang.org/issue/14808
	_, _ = utils.ReadNoEscape(hasher, b[:types.HashSize])
	return b
}

// HopefulHashToPoint Directly interprets keccak(data) as a compressed point,
// then clears torsion. This can fail, so it should not be used generically;
// it is known to succeed for the canonical encoding of G where it defines the
// amount generator H.
func HopefulHashToPoint(dst *curve25519.Point, data []byte) *curve25519.Point {
	result := curve25519.DecodeCompressedPoint(dst, Keccak256(data))
	if result == nil {
		return nil
	}

	// Ensure this point lies within the prime-order subgroup
	result.MultByCofactor(result)

	return result
}

// BiasedHashToPoint The `hash_to_ec` map used for key images and ring
// transcripts.
//
// This implements Elligator 2 applied once to Curve25519 with the result
// mapped to Ed25519 and multiplied by the cofactor. As Elligator 2 is only
// applied once it's limited to a subset of points where a certain derivative
// of their `u` coordinates are quadratic residues, and biased accordingly.
// Consensus requires this exact bias.
func BiasedHashToPoint(dst *curve25519.Point, data []byte) *curve25519.Point {
	result := curve25519.Elligator2WithUniformBytes(dst, Keccak256(data))

	// Ensure points lie within the prime-order subgroup
	result.MultByCofactor(result)

	return result
}
