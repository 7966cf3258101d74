package sync

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Fingerprint returns the hex-encoded SHA-256 digest of content. Two
// documents are the same content iff their fingerprints are equal.
func Fingerprint(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// FingerprintFile hashes a file's current on-disk bytes.
func FingerprintFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
