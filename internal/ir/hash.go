package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainScene prefixes every scene hash. Bump the suffix when the
// canonical form changes.
const DomainScene = "roomsim/scene/v1"

// digest returns hex(sha256(domain 0x00 data)).
func digest(domain string, data []byte) string {
	sum := sha256.Sum256(append(append([]byte(domain), 0), data...))
	return hex.EncodeToString(sum[:])
}

// SceneID computes the content-addressed ID of a scene configuration.
// Byte leaves hash like the equivalent text, and key order does not
// contribute, so a setup loaded from any file format gets the same ID.
func SceneID(cfg *Nested) (string, error) {
	canonical, err := MarshalCanonical(DecodeText(cfg))
	if err != nil {
		return "", fmt.Errorf("scene id: %w", err)
	}
	return digest(DomainScene, canonical), nil
}

// MustSceneID is like SceneID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSceneID(cfg *Nested) string {
	id, err := SceneID(cfg)
	if err != nil {
		panic(err)
	}
	return id
}
