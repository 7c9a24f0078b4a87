package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of plain. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyOperator checks a login attempt against the configured operator
// name and bcrypt hash. The name comparison is constant time.
func VerifyOperator(wantUser, hash, user, plain string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(user)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	return userOK && passOK
}
