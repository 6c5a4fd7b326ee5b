package catalog

import "github.com/eluv-io/errors-go"

// SOKPermissions is the one-byte permission bitmask carried in the first
// byte of every org SOK record (original_source/include/signet/general.h,
// sok_permissions_t): what a secondary organizational signing key may be
// used to sign.
type SOKPermissions uint8

const (
	SOKNone     SOKPermissions = 0
	SOKSignet   SOKPermissions = 1 << 0
	SOKMsg      SOKPermissions = 1 << 1
	SOKTLS      SOKPermissions = 1 << 2
	SOKSoftware SOKPermissions = 1 << 3

	sokAllBits = SOKSignet | SOKMsg | SOKTLS | SOKSoftware
)

// Has reports whether perm grants p.
func (perm SOKPermissions) Has(p SOKPermissions) bool {
	return perm&p == p
}

func (perm SOKPermissions) String() string {
	if perm == SOKNone {
		return "none"
	}
	s := ""
	add := func(bit SOKPermissions, name string) {
		if perm.Has(bit) {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(SOKSignet, "signet")
	add(SOKMsg, "msg")
	add(SOKTLS, "tls")
	add(SOKSoftware, "software")
	return s
}

// ParseSOKPermissions extracts and validates the permission byte from a
// 33-byte org SOK record (1 permission byte + 32-byte Ed25519 key), used by
// both catalog-level validation and the CLI's dump output.
func ParseSOKPermissions(data []byte) (SOKPermissions, error) {
	if len(data) != 33 {
		return 0, errors.E("parse sok permissions", errors.K.Invalid, "reason", "wrong SOK record length", "len", len(data))
	}
	perm := SOKPermissions(data[0])
	if perm&^sokAllBits != 0 {
		return 0, errors.E("parse sok permissions", errors.K.Invalid, "reason", "undefined permission bits set", "byte", data[0])
	}
	return perm, nil
}
