package utils

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestReadCanonicalUvarint(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)} {
		buf := binary.AppendUvarint(nil, v)
		got, err := ReadCanonicalUvarint(bytes.NewReader(buf))
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("got %d, want %d", got, v)
		}
		if UVarInt64Size(v) != len(buf) {
			t.Fatalf("size mismatch for %d", v)
		}
	}
}

func TestReadCanonicalUvarintRejectsPadding(t *testing.T) {
	// 0x80 0x00 is a non-minimal encoding of zero
	_, err := ReadCanonicalUvarint(bytes.NewReader([]byte{0x80, 0x00}))
	if err != ErrNonCanonicalEncoding {
		t.Fatalf("expected ErrNonCanonicalEncoding, got %v", err)
	}
}
