package utils

import "golang.org/x/crypto/bcrypt"

// TokenIssuer is stamped into every app JWT and checked on every request.
const TokenIssuer = "campushire"

// Refresh tokens are stored as bcrypt hashes, never raw.

func HashToken(token string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(b), err
}

func CheckToken(hash, token string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
}
