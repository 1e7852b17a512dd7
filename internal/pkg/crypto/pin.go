package crypto

import (
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes the decimal rendering of pin with bcrypt. Costs below
// bcrypt.MinCost fall back to bcrypt.DefaultCost.
func HashPIN(pin int, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(pin)), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// CheckPIN reports whether pin matches hash. Equality is numeric, so callers
// parse user input to an int first ("01111" and "1111" are the same PIN).
func CheckPIN(pin int, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strconv.Itoa(pin)))
	return err == nil
}
