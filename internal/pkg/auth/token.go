package auth

import (
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

// TokenHeader carries the service token on pharmacy order commits.
const TokenHeader = "X-Service-Token"

// ErrInvalidToken is returned for a missing or mismatching service token.
var ErrInvalidToken = errors.New("invalid service token")

// TokenVerifier checks service tokens presented by callers.
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) error
}

// BcryptVerifier compares tokens against a bcrypt hash. Accepted tokens are
// remembered so repeated calls skip the bcrypt work.
type BcryptVerifier struct {
	hash     []byte
	accepted sync.Map
}

// NewBcryptVerifier creates a verifier for hash. An empty hash disables verification.
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: []byte(hash)}
}

// Enabled reports whether a hash is configured.
func (v *BcryptVerifier) Enabled() bool {
	return len(v.hash) > 0
}

// Verify returns ErrInvalidToken unless token matches the configured hash.
func (v *BcryptVerifier) Verify(token string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return ErrInvalidToken
	}
	if _, ok := v.accepted.Load(token); ok {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(token)); err != nil {
		return errors.Mark(errors.Wrap(err, "compare token"), ErrInvalidToken)
	}
	v.accepted.Store(token, struct{}{})
	return nil
}

// HashToken returns the bcrypt hash to configure for token.
func HashToken(token string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
