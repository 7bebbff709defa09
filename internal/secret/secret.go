// internal/secret/secret.go
//
// Seals the operator's secret word for a word round.
// The engines never see the plaintext; the session controller only opens the box
// to reveal the word after a failed final guess.
//
// Sealing uses NaCl secretbox (XSalsa20-Poly1305) with a per-process random key and a
// fresh random nonce per box.

package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrOpen = errors.New("secret: box failed authentication")

// Box is a sealed word: nonce || ciphertext. The zero value holds nothing.
type Box []byte

// Empty reports whether the box holds no sealed word.
func (b Box) Empty() bool { return len(b) == 0 }

// Sealer seals and opens boxes with one symmetric key.
type Sealer struct {
	key  [32]byte
	rand io.Reader
}

// NewSealer returns a Sealer with a random key.
func NewSealer() (*Sealer, error) {
	return newSealer(rand.Reader)
}

func newSealer(r io.Reader) (*Sealer, error) {
	s := &Sealer{rand: r}
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, fmt.Errorf("secret: generate key: %w", err)
	}
	return s, nil
}

// Seal encrypts word under a fresh nonce.
func (s *Sealer) Seal(word string) (Box, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(s.rand, nonce[:]); err != nil {
		return nil, fmt.Errorf("secret: generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(word), &nonce, &s.key), nil
}

// Open decrypts a box produced by Seal with the same Sealer.
func (s *Sealer) Open(b Box) (string, error) {
	if len(b) < nonceSize+secretbox.Overhead {
		return "", ErrOpen
	}
	var nonce [nonceSize]byte
	copy(nonce[:], b[:nonceSize])
	plain, ok := secretbox.Open(nil, b[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrOpen
	}
	return string(plain), nil
}
