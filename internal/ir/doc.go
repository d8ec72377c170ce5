// Package ir provides the canonical configuration value model for roomsim.
//
// Every scene description moves through this package: entities serialize
// into it, the legacy text parser and the markup loaders produce it, and the
// native engine boundary consumes it. ir imports nothing internal.
//
// Key design constraints:
//   - Value is sealed: Null, Bool, Int, Float, Text, Bytes, List, *Nested
//   - Nested preserves insertion order (field declaration order)
//   - Bytes only appears as an encoded text leaf at the native boundary
//   - Canonical JSON (sorted keys, NFC) is used for hashing only
package ir
