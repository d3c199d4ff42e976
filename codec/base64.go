// Package codec provides the mzML numeric-array codec primitives: base64,
// zlib, and zstd. None of these types know anything about mzML CV
// accessions or the binaryDataArray element shape; package binary resolves
// accessions to the right combination of these and package numpress.
package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/sciops/mzml/mzmlerr"
)

// Base64Decode decodes an mzML binary payload. mzML always uses the
// standard (non-URL-safe) RFC 4648 alphabet, with or without padding.
func Base64Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if b2, err2 := base64.RawStdEncoding.DecodeString(s); err2 == nil {
			return b2, nil
		}
		return nil, fmt.Errorf("%w: base64 decode: %v", mzmlerr.ErrFormat, err)
	}

	return b, nil
}

// Base64Encode encodes a byte sequence using the standard RFC 4648 alphabet
// with padding, the form every mzML writer in the wild emits.
func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
