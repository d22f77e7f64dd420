// FareLens | 2026
// security.go

package core

import (
	"crypto/sha256"
	"crypto/subtle"
)

// CompareSecret compares two secrets in constant time. Used for the
// service-account key on privileged endpoints.
func CompareSecret(provided, expected string) bool {
	providedHash := sha256.Sum256([]byte(provided))
	expectedHash := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(providedHash[:], expectedHash[:]) == 1
}
