package ringct

import (
	"git.gammaspectra.live/P2Pool/edwards25519"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

func identityPoint() *curve25519.Point {
	return edwards25519.NewIdentityPoint()
}

// identityKey The identity element as published on the wire
var identityKey = curve25519.PublicKeyBytes(edwards25519.NewIdentityPoint().Bytes())
