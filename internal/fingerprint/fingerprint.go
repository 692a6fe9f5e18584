// Package fingerprint computes content-addressed keys for clipboard payloads.
// The history store enforces uniqueness on these digests, so identical content
// captured twice is rejected there rather than filtered in the capture path.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Sum returns the lowercase hex SHA-256 digest of the content's exact bytes.
func Sum(content string) string {
	digest := sha256.Sum256([]byte(content))
	return hex.EncodeToString(digest[:])
}

// EncodeFileList serializes a file list to its canonical JSON form. The
// serialized form is both what gets persisted and what gets fingerprinted,
// so the same paths always map to the same digest.
func EncodeFileList(paths []string) (string, error) {
	if paths == nil {
		paths = []string{}
	}
	encoded, err := json.Marshal(paths)
	if err != nil {
		return "", fmt.Errorf("failed to encode file list: %w", err)
	}
	return string(encoded), nil
}
