package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrAccessDenied is returned when the staff access challenge fails.
var ErrAccessDenied = errors.New("access denied")

// Gate is the staff access check: a shared-secret challenge answered before
// the kitchen display is reachable. The secret is hashed once at startup so
// comparisons are constant-time and the plaintext never sits in the struct.
type Gate struct {
	hash []byte
}

// NewGate creates a Gate for the given shared secret.
func NewGate(secret string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: hash}, nil
}

// Check returns ErrAccessDenied unless candidate matches the shared secret.
func (g *Gate) Check(candidate string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)); err != nil {
		return ErrAccessDenied
	}
	return nil
}
