package security

import "golang.org/x/crypto/bcrypt"

// HashPassword salts and hashes pw with the configured cost. The salt is
// generated per call and embedded in the digest.
func HashPassword(pw string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
