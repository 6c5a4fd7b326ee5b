// Package signet implements the DIME signet container: the typed,
// length-prefixed, field-tagged binary format that binds names and
// attributes to Ed25519 signing keys and elliptic-curve encryption keys
// (spec.md §1-§4). The identifier-prefix pattern below - a small integer
// Code, a map from Code to a descriptive string, and a package init() that
// self-checks the map - follows the same shape the teacher uses for its
// format/id, format/keys and format/sign "Code" types.
package signet

import (
	"github.com/dimeproject/signet/catalog"
	"github.com/eluv-io/errors-go"
	"github.com/eluv-io/log-go"
)

// Number is the 2-byte DIME magic number that opens every signet and
// keychain file (spec.md §3).
type Number uint16

// The seven DIME numbers spec.md §3 defines. Only the first three
// classify as signets; the core also recognizes the keys numbers (§4.6)
// and the two numbers that belong to the out-of-scope message layer, so
// that a misdirected file produces a precise diagnostic instead of a bare
// "bad magic".
const (
	NumberOrgSignet     Number = 1776
	NumberUserSignet    Number = 1789
	NumberSSR           Number = 1216
	NumberOrgKeys       Number = 1952
	NumberUserKeys      Number = 2013
	NumberMsgTracing    Number = 1837
	NumberEncryptedMsg  Number = 1847
)

var numberNames = map[Number]string{
	NumberOrgSignet:    "org signet",
	NumberUserSignet:   "user signet",
	NumberSSR:          "ssr",
	NumberOrgKeys:      "org keys",
	NumberUserKeys:     "user keys",
	NumberMsgTracing:   "message tracing",
	NumberEncryptedMsg: "encrypted message",
}

func init() {
	for n := range numberNames {
		if n == 0 {
			log.Fatal("invalid DIME number definition", "number", n)
		}
	}
}

// String returns a short human-readable name for the number, or "unknown"
// if it is not one of the seven defined values.
func (n Number) String() string {
	if name, ok := numberNames[n]; ok {
		return name
	}
	return "unknown"
}

// Kind returns the catalog.Kind a signet-like number parses as, and false
// for numbers that do not denote a signet (keys files, message-layer
// numbers).
func (n Number) Kind() (catalog.Kind, bool) {
	switch n {
	case NumberOrgSignet:
		return catalog.KindOrg, true
	case NumberUserSignet:
		return catalog.KindUser, true
	case NumberSSR:
		return catalog.KindSSR, true
	default:
		return catalog.KindUnknown, false
	}
}

// NumberForKind is the inverse of Kind: the DIME number a signet of the
// given kind is serialized under.
func NumberForKind(kind catalog.Kind) (Number, error) {
	switch kind {
	case catalog.KindOrg:
		return NumberOrgSignet, nil
	case catalog.KindUser:
		return NumberUserSignet, nil
	case catalog.KindSSR:
		return NumberSSR, nil
	default:
		return 0, errors.E("number for kind", errors.K.Invalid, "kind", kind)
	}
}

// HeaderSize is the fixed size of the header every signet and keys file
// begins with: a 2-byte DIME number followed by a 3-byte payload length
// (spec.md §3).
const HeaderSize = 5

// MaxSignetSize is the largest a full signet file (header + payload) may
// be: the 3-byte length field's maximum plus the header itself
// (spec.md §6).
const MaxSignetSize = 16777220

// PEMTag is the PEM armor tag a serialized signet is stored under
// (spec.md §6).
const PEMTag = "SIGNET"

// FieldNameMaxSize bounds a named (UNDEFINED) field's name length.
const FieldNameMaxSize = 255
