package curve25519

import (
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const PublicKeySize = 32

var ZeroPublicKeyBytes = PublicKeyBytes{}

type PublicKeyBytes [PublicKeySize]byte

func (k *PublicKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Point Decompresses into a prime-order-unchecked Ed25519 point.
// Returns nil on a non-canonical or off-curve encoding.
func (k *PublicKeyBytes) Point() *Point {
	return DecodeCompressedPoint(new(Point), *k)
}

func (k *PublicKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PublicKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PublicKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	}
	return nil
}

func (k PublicKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PublicKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PublicKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}
