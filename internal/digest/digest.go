// Package digest turns passwords into one-way credential tokens.
package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBcryptPasswordBytes is the longest password bcrypt accepts, in bytes.
const MaxBcryptPasswordBytes = 72

// ErrPasswordTooLong is returned when a password exceeds what the digest
// can hash.
var ErrPasswordTooLong = errors.New("password too long")

// Digester hashes passwords for storage and checks them later.
type Digester interface {
	// Digest returns the token to store for password.
	Digest(password string) (string, error)

	// Verify reports whether password produces token.
	Verify(password, token string) bool
}

// SHA256 is a deterministic, unsalted digest: the same password always
// yields the same hex token.
type SHA256 struct{}

// Digest implements Digester.
func (SHA256) Digest(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify implements Digester.
func (d SHA256) Verify(password, token string) bool {
	got, _ := d.Digest(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

// Bcrypt is a salted digest. Tokens differ between calls, so comparison goes
// through bcrypt rather than string equality.
type Bcrypt struct {
	Cost int
}

// Digest implements Digester.
func (b Bcrypt) Digest(password string) (string, error) {
	if len(password) > MaxBcryptPasswordBytes {
		return "", fmt.Errorf("%w: %d bytes, bcrypt allows %d", ErrPasswordTooLong, len(password), MaxBcryptPasswordBytes)
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify implements Digester.
func (Bcrypt) Verify(password, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(token), []byte(password)) == nil
}

// New returns the Digester registered under name.
func New(name string, bcryptCost int) (Digester, error) {
	switch name {
	case "", "sha256":
		return SHA256{}, nil
	case "bcrypt":
		if bcryptCost != 0 && (bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return Bcrypt{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown digest %q", name)
	}
}
