package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash domains separate hashes of the same bytes used for different
// purposes. The version suffix allows the encoding to change.
const (
	DomainFile   = "arcadejump/jump-file/v1"
	DomainConfig = "arcadejump/config/v1"
	DomainCode   = "arcadejump/generated/v1"
)

// Hash computes SHA256(domain + 0x00 + data) as lowercase hex.
func Hash(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a stable hash of the statement graph. Positions are
// part of the graph, so moving a statement changes the fingerprint.
func Fingerprint(f *File) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return Hash(DomainFile, data), nil
}
