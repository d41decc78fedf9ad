package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword produces a salted bcrypt hash safe to persist.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored hash.
// A malformed hash is a mismatch, not an error.
func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
