package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm changes.
const (
	DomainDescriptor = "blockbind/descriptor/v1"
	DomainContent    = "blockbind/content/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the semantic identity of a descriptor. Two descriptors
// with the same module, block, parameters and signature share a fingerprint
// regardless of the output format they are rendered to.
func Fingerprint(d Descriptor) (string, error) {
	canonical, err := MarshalCanonical(d.canonicalMap())
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDescriptor, canonical), nil
}

// ContentHash hashes rendered file content.
func ContentHash(data []byte) string {
	return hashWithDomain(DomainContent, data)
}
