package security

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass1234")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := h.Compare(hash, "pass1234"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewBcryptHasher(bcrypt.MaxCost + 1); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if err := h.Compare("not-a-hash", "x"); err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected a hash format error, got %v", err)
	}
}
