// Package wire implements the big-endian, length-prefixed primitives that
// every signet and keychain record is built from. It has no notion of
// fields or signatures; it only packs and unpacks fixed-width integers and
// bounds-checks every length-prefixed read, per spec.md §4.1 and §9's
// "Unchecked arithmetic on lengths" design note.
package wire

import (
	"github.com/eluv-io/errors-go"
)

// MaxU2 and MaxU3 are the largest values representable in 2 and 3 big-endian
// bytes respectively (spec.md §3, UNSIGNED_MAX_2_BYTE / UNSIGNED_MAX_3_BYTE).
const (
	MaxU1 = 0xFF
	MaxU2 = 0xFFFF
	MaxU3 = 0xFFFFFF
)

// PutU2 appends v, big-endian, as 2 bytes. v must fit in 16 bits.
func PutU2(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>8), byte(v))
}

// PutU3 appends v, big-endian, as 3 bytes. v must fit in 24 bits.
func PutU3(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>16), byte(v>>8), byte(v))
}

// GetU2 reads a 2-byte big-endian integer from b starting at off. It fails
// if the read would run past the end of b.
func GetU2(b []byte, off int) (uint32, error) {
	if off < 0 || off+2 > len(b) {
		return 0, errors.E("read u2", errors.K.Invalid, "reason", "truncated buffer", "offset", off, "len", len(b))
	}
	return uint32(b[off])<<8 | uint32(b[off+1]), nil
}

// GetU3 reads a 3-byte big-endian integer from b starting at off. It fails
// if the read would run past the end of b.
func GetU3(b []byte, off int) (uint32, error) {
	if off < 0 || off+3 > len(b) {
		return 0, errors.E("read u3", errors.K.Invalid, "reason", "truncated buffer", "offset", off, "len", len(b))
	}
	return uint32(b[off])<<16 | uint32(b[off+1])<<8 | uint32(b[off+2]), nil
}

// CheckRemaining fails unless n more bytes are available in b at offset off.
// Every field-record advance in signet.go and keychain/keychain.go
// goes through this check before slicing, so a truncated or malicious buffer
// produces a Format error instead of a panic.
func CheckRemaining(b []byte, off, n int) error {
	if off < 0 || n < 0 || off+n > len(b) {
		return errors.E("check remaining", errors.K.Invalid, "reason", "truncated buffer",
			"offset", off, "need", n, "len", len(b))
	}
	return nil
}
