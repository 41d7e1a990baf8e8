package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const (
	VERIFICATION_CODE_MIN = 10000
	VERIFICATION_CODE_MAX = 99999

	resetTokenLength = 20 // bytes of entropy, hex encoded in the emailed URL
)

// GenerateVerificationCode returns a random 5 digit code, the first digit is
// never zero.
func GenerateVerificationCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(VERIFICATION_CODE_MAX-VERIFICATION_CODE_MIN+1))
	if err != nil {
		return 0, err
	}
	return VERIFICATION_CODE_MIN + int(n.Int64()), nil
}

// GenerateResetToken returns the opaque secret that goes into the reset
// email and the sha256 hash that is stored on the account. The plain secret
// is never persisted.
func GenerateResetToken() (token string, tokenHash string, err error) {
	buffer := make([]byte, resetTokenLength)
	if _, err = rand.Read(buffer); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buffer)
	return token, HashResetToken(token), nil
}

// HashResetToken maps an incoming reset secret to its stored lookup key.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
