package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	EncoderPlain  = "plain"
	EncoderBcrypt = "bcrypt"
)

// PasswordEncoder turns a raw password into its stored form and checks
// candidates against it.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// PlainTextEncoder stores passwords verbatim and compares them for exact
// equality. It is the legacy default.
type PlainTextEncoder struct{}

func (PlainTextEncoder) Encode(raw string) (string, error) { return raw, nil }

func (PlainTextEncoder) Matches(raw, encoded string) bool { return raw == encoded }

// BcryptEncoder hashes passwords with bcrypt.
type BcryptEncoder struct {
	Cost int
}

func (e BcryptEncoder) Encode(raw string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}

// NewPasswordEncoder returns the encoder registered under name.
func NewPasswordEncoder(name string) (PasswordEncoder, error) {
	switch name {
	case "", EncoderPlain:
		return PlainTextEncoder{}, nil
	case EncoderBcrypt:
		return BcryptEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown password encoder %q", name)
	}
}
