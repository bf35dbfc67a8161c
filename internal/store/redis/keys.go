package redis

import "fmt"

const (
	// KeyPrefixBlob is the prefix for blob keys
	KeyPrefixBlob = "tacto:blob:"
	// KeyAllBlobs is the key for the set of all stored blob names
	KeyAllBlobs = "tacto:blobs:all"
)

// BlobKey returns the Redis key for a blob by name
func BlobKey(name string) string {
	return KeyPrefixBlob + name
}

// AllBlobsKey returns the key for the set of all blob names
func AllBlobsKey() string {
	return KeyAllBlobs
}

// ExtractBlobName extracts the blob name from a Redis key
func ExtractBlobName(key string) (string, error) {
	if len(key) <= len(KeyPrefixBlob) || key[:len(KeyPrefixBlob)] != KeyPrefixBlob {
		return "", fmt.Errorf("invalid blob key: %s", key)
	}
	return key[len(KeyPrefixBlob):], nil
}
