package crypto

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

type KeyPair struct {
	PrivateKey curve25519.Scalar
	PublicKey  curve25519.Point
}

func NewKeyPairFromPrivate(privateKey *curve25519.Scalar) *KeyPair {
	k := &KeyPair{}
	k.PrivateKey.Set(privateKey)
	k.PublicKey.ScalarBaseMult(privateKey)
	return k
}

// GetKeyImage I = x * H_p(P), the linkable tag preventing double spends
func GetKeyImage(dst *curve25519.Point, pair *KeyPair) *curve25519.Point {
	BiasedHashToPoint(dst, pair.PublicKey.Bytes())
	return dst.ScalarMult(&pair.PrivateKey, dst)
}
