package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrEmptyHash        = errors.New("no password hash stored")
)

// PasswordChecker verifies a plaintext password against a stored hash.
type PasswordChecker interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

type bcryptChecker struct {
	cost int
}

// NewBcryptChecker returns a bcrypt backed checker. Out of range costs fall back to bcrypt.DefaultCost.
func NewBcryptChecker(cost int) PasswordChecker {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptChecker{cost: cost}
}

func (b *bcryptChecker) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (b *bcryptChecker) Verify(hash, password string) error {
	if hash == "" {
		return ErrEmptyHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
