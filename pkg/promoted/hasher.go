package promoted

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"promotedlogger/internal/constants"
)

// Hasher computes deterministic content hashes of user records. JSON
// serialization sorts map keys, so equal records always hash equal.
type Hasher struct {
	algorithm string
}

func NewHasher(algorithm string) *Hasher {
	return &Hasher{algorithm: algorithm}
}

func (h *Hasher) ComputeHash(record interface{}) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record for hashing: %w", err)
	}

	switch h.algorithm {
	case constants.HashAlgorithmMD5:
		sum := md5.Sum(body)
		return hex.EncodeToString(sum[:]), nil
	case constants.HashAlgorithmSHA256:
		sum := sha256.Sum256(body)
		return hex.EncodeToString(sum[:]), nil
	default:
		sum := sha256.Sum256(body)
		return hex.EncodeToString(sum[:]), nil
	}
}
