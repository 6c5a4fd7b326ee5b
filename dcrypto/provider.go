// Package dcrypto defines the cryptographic capability the signet/keychain
// core is built against. Every cryptographic operation (key generation,
// signing, verification, key encoding, hashing) in this module goes through
// a Provider; other packages only copy, store and wipe raw key bytes.
package dcrypto

import (
	"github.com/eluv-io/errors-go"
)

// Sizes of the fixed-width key and signature material this module pins.
// The format does not support algorithm agility: one signing algorithm
// (Ed25519) and one encryption curve.
const (
	Ed25519PublicKeySize  = 32
	Ed25519PrivateKeySize = 32
	Ed25519SignatureSize  = 64
	ECPublicKeySize       = 33 // compressed point
)

// Ed25519PublicKey is a raw 32-byte Ed25519 verification key.
type Ed25519PublicKey []byte

// Ed25519PrivateKey is a raw 32-byte Ed25519 private scalar.
type Ed25519PrivateKey []byte

// Signature is a raw 64-byte Ed25519 signature.
type Signature []byte

// ECPublicKey is a compressed-point public encryption key.
type ECPublicKey []byte

// ECPrivateKey is an opaque handle to an encryption private key. Concrete
// providers embed whatever scalar representation their curve needs; callers
// never read the field.
type ECPrivateKey interface {
	// Public returns the public key corresponding to this private key.
	Public() ECPublicKey

	// Wipe zeros the private scalar this handle carries, per spec.md §5's
	// "secret-carrying handles zero their buffers before release". Callers
	// must not use the handle afterward.
	Wipe()
}

// Ed25519Keypair bundles a signing key's two halves.
type Ed25519Keypair struct {
	Public  Ed25519PublicKey
	Private Ed25519PrivateKey
}

// ECKeypair bundles an encryption key's two halves.
type ECKeypair struct {
	Public  ECPublicKey
	Private ECPrivateKey
}

// Provider is the injected cryptographic capability. spec.md §2 treats the
// raw primitives as an external collaborator; Provider is the narrow
// interface the rest of the module programs against, following the way the
// original C sources wrap OpenSSL behind dime_ctx_t-style indirection
// (see original_source/include/dime/crypto/encrypt.h) but expressed as an
// ordinary Go interface rather than an opaque pointer.
type Provider interface {
	// Ed25519Generate creates a fresh Ed25519 signing keypair.
	Ed25519Generate() (Ed25519Keypair, error)

	// Ed25519Sign signs msg with priv, returning a 64-byte signature.
	Ed25519Sign(priv Ed25519PrivateKey, msg []byte) (Signature, error)

	// Ed25519Verify reports whether sig is a valid signature of msg under pub.
	Ed25519Verify(pub Ed25519PublicKey, msg []byte, sig Signature) bool

	// ECGenerate creates a fresh encryption keypair on the pinned curve.
	ECGenerate() (ECKeypair, error)

	// ECSerializePrivate encodes priv into the module's private-key wire form.
	ECSerializePrivate(priv ECPrivateKey) ([]byte, error)

	// ECDeserializePrivate parses the wire form produced by ECSerializePrivate.
	ECDeserializePrivate(der []byte) (ECPrivateKey, error)

	// ECDeserializePublic parses a compressed public point.
	ECDeserializePublic(der []byte) (ECPublicKey, error)

	// SHA256 hashes the concatenation of all given byte slices.
	SHA256(data ...[]byte) [32]byte

	// SecureRandom returns n cryptographically random bytes.
	SecureRandom(n int) ([]byte, error)
}

// errBadKeySize is a shared helper for providers to report malformed key
// material with a stable error kind.
func errBadKeySize(op string, want, got int) error {
	return errors.E(op, errors.K.Invalid, "reason", "bad key size", "want", want, "got", got)
}
