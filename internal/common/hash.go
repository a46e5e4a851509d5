package common

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashJSON returns the hex SHA-256 digest of v's JSON encoding. Map keys are
// sorted by encoding/json, so equal values hash equally.
func HashJSON(v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}
