package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// idAlphabet is the character set used for ID suffixes.
// Lowercase alphanumerics only so IDs stay URL- and log-friendly.
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns an ID of the form "<prefix>_<random>" where the
// random suffix has the requested length and is drawn from crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	suffix := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate random index: %w", err)
		}
		suffix[i] = idAlphabet[n.Int64()]
	}

	return prefix + "_" + string(suffix), nil
}

// ValidateIDFormat reports whether id is a well-formed prefixed ID
// ("<prefix>_<suffix>" with a non-empty lowercase alphanumeric suffix).
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}

	suffix := id[len(want):]
	if suffix == "" {
		return false
	}

	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// HashKey256 returns the hex-encoded HMAC-SHA256 of key under secret.
func HashKey256(key string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
