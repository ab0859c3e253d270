// Package ir provides the canonical value representation used for
// content-addressed scenario identity and golden snapshots.
//
// ir imports nothing internal. Key constraints:
//   - NO float values; converted scenario values are never hashed, only tokens
//   - No null values
//   - Object keys are emitted in RFC 8785 order (UTF-16 code units)
//   - Strings are NFC normalized at the serialization boundary
package ir
