// Package auth provides the credential check used by the login gate.
//
// The gate is a fixed-credential check for a single local user, not a
// security boundary.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator reports whether a username/password pair is accepted.
type Authenticator interface {
	Check(username, password string) bool
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(username, password string) bool

func (f AuthenticatorFunc) Check(username, password string) bool { return f(username, password) }

// StaticCredentials accepts exactly one username and password. Only the
// bcrypt hash of the password is retained.
type StaticCredentials struct {
	username string
	hash     []byte
}

// NewStaticCredentials hashes password with bcrypt.
func NewStaticCredentials(username, password string) (*StaticCredentials, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &StaticCredentials{username: username, hash: []byte(hash)}, nil
}

// NewStaticCredentialsFromHash uses an existing bcrypt hash.
func NewStaticCredentialsFromHash(username, hash string) (*StaticCredentials, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, err
	}
	return &StaticCredentials{username: username, hash: []byte(hash)}, nil
}

func (c *StaticCredentials) Check(username, password string) bool {
	if c == nil {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := VerifyPassword(string(c.hash), password)
	return userOK && passOK
}

// VerifyPassword checks if a password matches the hashed version.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
