package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash using the given cost.  The hashpw
// command uses it to generate the STAFF_PASS_HASH value for the config.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
