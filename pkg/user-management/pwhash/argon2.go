package pwhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, overridable from the service config at startup
var (
	argonMemory      uint32 = 64 * 1024
	argonIterations  uint32 = 4
	argonParallelism uint8  = 1
)

const (
	saltLength = 16
	keyLength  = 32
)

var ErrUnsupportedHashFormat = errors.New("unsupported password hash format")

func InitArgonParams(memory uint32, iterations uint32, parallelism uint8) {
	if memory > 0 {
		argonMemory = memory
	}
	if iterations > 0 {
		argonIterations = iterations
	}
	if parallelism > 0 {
		argonParallelism = parallelism
	}
}

// HashPassword derives an argon2id hash with a fresh random salt and encodes
// it in the PHC string format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// ComparePasswordWithHash re-derives the key with the parameters stored in
// the encoded hash and compares in constant time.
func ComparePasswordWithHash(encodedHash string, password string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrUnsupportedHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrUnsupportedHashFormat
	}
	if version != argon2.Version {
		return false, ErrUnsupportedHashFormat
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, ErrUnsupportedHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrUnsupportedHashFormat
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrUnsupportedHashFormat
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}
