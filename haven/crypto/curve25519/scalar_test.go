package curve25519

import (
	"testing"
)

func TestScalarReduce32(t *testing.T) {
	// l reduces to zero
	buf := basepointOrder
	ScalarReduce32(&buf)
	if buf != [32]byte{} {
		t.Fatalf("l did not reduce to zero: %x", buf)
	}

	// l + 1 reduces to one
	buf = basepointOrder
	buf[0]++
	ScalarReduce32(&buf)
	if buf != [32]byte{1} {
		t.Fatalf("l+1 did not reduce to one: %x", buf)
	}

	// values below l are untouched
	small := [32]byte{42}
	buf = small
	ScalarReduce32(&buf)
	if buf != small {
		t.Fatalf("reduced value changed: %x", buf)
	}
}

func TestScalarIsReduced32(t *testing.T) {
	if ScalarIsReduced32(basepointOrder) {
		t.Fatal("l must not be reduced")
	}
	if !ScalarIsReduced32([32]byte{1}) {
		t.Fatal("1 must be reduced")
	}
	var max [32]byte
	for i := range max {
		max[i] = 0xff
	}
	if ScalarIsReduced32(max) {
		t.Fatal("2^256-1 must not be reduced")
	}
}

func TestDecodeCompressedPointRejectsNonCanonical(t *testing.T) {
	// the field prime with the identity y-coordinate: a non-canonical encoding
	nonCanonical := [32]byte{0xee, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	if DecodeCompressedPoint(new(Point), nonCanonical) != nil {
		t.Fatal("non-canonical point must be rejected")
	}

	identity := [32]byte{1}
	if DecodeCompressedPoint(new(Point), identity) == nil {
		t.Fatal("identity must decode")
	}
}

func TestUnreducedScalarVarTime(t *testing.T) {
	// canonical values round-trip through the slide path
	var u UnreducedScalar
	u[0] = 7

	var out Scalar
	u.VarTimeScalar(&out)

	expected := (&PrivateKeyBytes{7}).Scalar()
	if out.Equal(expected) != 1 {
		t.Fatal("unreduced scalar mismatch")
	}
}
