package types

import (
	"encoding/binary"
	"errors"
	"runtime"
	"unsafe"

	fasthex "github.com/tmthrgd/go-hex"
)

const HashSize = 32

//nolint:recvcheck
type Hash [HashSize]byte

var ZeroHash Hash

func (h Hash) MarshalJSON() ([]byte, error) {
	var buf [HashSize*2 + 2]byte
	buf[0] = '"'
	buf[HashSize*2+1] = '"'
	fasthex.Encode(buf[1:], h[:])
	return buf[:], nil
}

func MustBytes32FromString[T ~[32]byte](s string) T {
	if h, err := Bytes32FromString[T](s); err != nil {
		panic(err)
	} else {
		return h
	}
}

func Bytes32FromString[T ~[32]byte](s string) (T, error) {
	var h T
	if buf, err := fasthex.DecodeString(s); err != nil {
		return h, err
	} else {
		if len(buf) != 32 {
			return h, errors.New("wrong size")
		}
		copy(h[:], buf)
		return h, nil
	}
}

func MustHashFromString(s string) Hash {
	return MustBytes32FromString[Hash](s)
}

func HashFromString(s string) (Hash, error) {
	return Bytes32FromString[Hash](s)
}

func HashFromBytes(buf []byte) (h Hash) {
	if len(buf) != HashSize {
		return
	}
	copy(h[:], buf)
	return
}

// Compare consensus way of comparison
func (h Hash) Compare(other Hash) int {
	//golang might free other otherwise
	defer runtime.KeepAlive(other)
	defer runtime.KeepAlive(h)

	// #nosec G103 -- 32 bytes -> 4 uint64
	a := unsafe.Slice((*uint64)(unsafe.Pointer(&h)), len(h)/int(unsafe.Sizeof(uint64(0))))
	// #nosec G103 -- 32 bytes -> 4 uint64
	b := unsafe.Slice((*uint64)(unsafe.Pointer(&other)), len(other)/int(unsafe.Sizeof(uint64(0))))

	for i := 3; i >= 0; i-- {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}

	return 0
}

func (h Hash) Slice() []byte {
	return h[:]
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

func (h Hash) Uint64() uint64 {
	return binary.LittleEndian.Uint64(h[:])
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != HashSize*2+2 {
		return errors.New("wrong hash size")
	}

	if _, err := fasthex.Decode(h[:], b[1:len(b)-1]); err != nil {
		return err
	}
	return nil
}
