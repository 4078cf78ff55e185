package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt cost for new password hashes. Verification cost is encoded in the
// hash itself.
const hashCost = 10

// HashPassword generates a salted one-way hash of the given plaintext.
// Hashing the same plaintext twice yields different hashes.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePasswordAndHash validates that the given cleartext password
// matches the stored hash. Returns nil on a match.
func ComparePasswordAndHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
