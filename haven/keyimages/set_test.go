package keyimages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

func TestSet(t *testing.T) {
	s := NewSet(8)

	a := curve25519.PublicKeyBytes{1}
	b := curve25519.PublicKeyBytes{2}

	assert.False(t, s.Has(a))
	assert.True(t, s.Add(a))
	assert.True(t, s.Has(a))

	// spending the same output again is rejected
	assert.False(t, s.Add(a))

	assert.True(t, s.Add(b))
	assert.Equal(t, 2, s.Count())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Has(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, 1, s.Count())
}
