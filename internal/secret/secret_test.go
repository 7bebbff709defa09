package secret

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpen(t *testing.T) {
	s, err := NewSealer()
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	box, err := s.Seal("tiger")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(box, []byte("tiger")) {
		t.Fatal("box leaks plaintext")
	}
	got, err := s.Open(box)
	if err != nil || got != "tiger" {
		t.Fatalf("open = %q, %v", got, err)
	}
}

func TestOpenRejectsForeignAndTamperedBoxes(t *testing.T) {
	a, _ := NewSealer()
	b, _ := NewSealer()
	box, _ := a.Seal("pizza")

	if _, err := b.Open(box); !errors.Is(err, ErrOpen) {
		t.Fatalf("foreign key: expected ErrOpen, got %v", err)
	}

	tampered := bytes.Clone(box)
	tampered[len(tampered)-1] ^= 0xff
	if _, err := a.Open(tampered); !errors.Is(err, ErrOpen) {
		t.Fatalf("tampered: expected ErrOpen, got %v", err)
	}

	if _, err := a.Open(Box("short")); !errors.Is(err, ErrOpen) {
		t.Fatalf("short: expected ErrOpen, got %v", err)
	}
	if !Box(nil).Empty() {
		t.Fatal("nil box should be empty")
	}
}

func TestNewSealerKeyFailure(t *testing.T) {
	if _, err := newSealer(bytes.NewReader(make([]byte, 4))); err == nil {
		t.Fatal("expected key generation error on short reader")
	}
}
