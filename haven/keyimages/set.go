package keyimages

import (
	"sync"

	"github.com/dolthub/swiss"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
)

// Set A spent key-image accumulator. Two transactions spending the same real
// output expose identical key images; chain validation feeds every input's
// image through Add and rejects the transaction when it was already present.
type Set struct {
	lock  sync.RWMutex
	spent *swiss.Map[curve25519.PublicKeyBytes, struct{}]
}

func NewSet(capacity uint32) *Set {
	return &Set{
		spent: swiss.NewMap[curve25519.PublicKeyBytes, struct{}](capacity),
	}
}

// Has Whether the image was already spent
func (s *Set) Has(image curve25519.PublicKeyBytes) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.spent.Has(image)
}

// Add Marks the image spent. Returns false when it was already present,
// which is a double spend.
func (s *Set) Add(image curve25519.PublicKeyBytes) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.spent.Has(image) {
		return false
	}
	s.spent.Put(image, struct{}{})
	return true
}

// Remove Unmarks an image, as happens when a block is popped from the chain
func (s *Set) Remove(image curve25519.PublicKeyBytes) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.spent.Delete(image)
}

func (s *Set) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.spent.Count()
}
