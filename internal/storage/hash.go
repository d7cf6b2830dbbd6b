package storage

import (
	"bytes"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Digest returns the BLAKE3-256 digest world files record for data.
func Digest(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// DigestHex returns Digest as hex, for logs.
func DigestHex(data []byte) string {
	return hex.EncodeToString(Digest(data))
}

// VerifyDigest reports whether data hashes to expected.
func VerifyDigest(data, expected []byte) bool {
	return bytes.Equal(Digest(data), expected)
}
