package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials checks HTTP Basic credentials against a bcrypt hash.
// With no hash configured every check fails.
type AdminCredentials struct {
	user string
	hash []byte
}

func NewAdminCredentials(user, passwordHash string) *AdminCredentials {
	return &AdminCredentials{user: user, hash: []byte(passwordHash)}
}

func (a *AdminCredentials) Enabled() bool {
	return len(a.hash) > 0
}

func (a *AdminCredentials) Check(user, password string) bool {
	if !a.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return userOK && passOK
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
