package dcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/asn1"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/eluv-io/errors-go"
)

// Default returns the software-only Provider used by the reference CLI and
// by tests: Ed25519 via the standard library, encryption keys on secp256k1
// via github.com/decred/dcrd/dcrec/secp256k1/v4, the curve the wider DIME
// corpus already depends on transitively through go-ethereum.
func Default() Provider {
	return defaultProvider{}
}

type defaultProvider struct{}

func (defaultProvider) Ed25519Generate() (Ed25519Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Ed25519Keypair{}, errors.E("ed25519 generate", errors.K.Other, err)
	}
	// ed25519.PrivateKey is the 64-byte seed||pub form; the wire format only
	// ever stores the 32-byte seed (spec.md §3, "32-byte private scalar").
	seed := priv.Seed()
	return Ed25519Keypair{
		Public:  Ed25519PublicKey(pub),
		Private: Ed25519PrivateKey(seed),
	}, nil
}

func (defaultProvider) Ed25519Sign(priv Ed25519PrivateKey, msg []byte) (Signature, error) {
	if len(priv) != Ed25519PrivateKeySize {
		return nil, errBadKeySize("ed25519 sign", Ed25519PrivateKeySize, len(priv))
	}
	full := ed25519.NewKeyFromSeed(priv)
	return Signature(ed25519.Sign(full, msg)), nil
}

func (defaultProvider) Ed25519Verify(pub Ed25519PublicKey, msg []byte, sig Signature) bool {
	if len(pub) != Ed25519PublicKeySize || len(sig) != Ed25519SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

func (defaultProvider) ECGenerate() (ECKeypair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return ECKeypair{}, errors.E("ec generate", errors.K.Other, err)
	}
	key := secp256k1PrivateKey{priv}
	return ECKeypair{Public: key.Public(), Private: key}, nil
}

func (defaultProvider) ECSerializePrivate(priv ECPrivateKey) ([]byte, error) {
	k, ok := priv.(secp256k1PrivateKey)
	if !ok {
		return nil, errors.E("ec serialize private", errors.K.Invalid, "reason", "foreign private key type")
	}
	// SEC1-style ASN.1 envelope, pinned to the secp256k1 curve (no curve OID
	// or public-key BIT STRING carried - the curve and its companion public
	// key are both implicit, since this format never mixes curves).
	body := ec1PrivateKey{
		Version:    1,
		PrivateKey: k.priv.Serialize(),
	}
	der, err := asn1.Marshal(body)
	if err != nil {
		return nil, errors.E("ec serialize private", errors.K.Other, err)
	}
	return der, nil
}

func (defaultProvider) ECDeserializePrivate(der []byte) (ECPrivateKey, error) {
	var body ec1PrivateKey
	rest, err := asn1.Unmarshal(der, &body)
	if err != nil {
		return nil, errors.E("ec deserialize private", errors.K.Invalid, err)
	}
	if len(rest) != 0 {
		return nil, errors.E("ec deserialize private", errors.K.Invalid, "reason", "trailing bytes")
	}
	if body.Version != 1 {
		return nil, errors.E("ec deserialize private", errors.K.Invalid, "reason", "unsupported version", "version", body.Version)
	}
	if len(body.PrivateKey) != 32 {
		return nil, errBadKeySize("ec deserialize private", 32, len(body.PrivateKey))
	}
	priv := secp256k1.PrivKeyFromBytes(body.PrivateKey)
	return secp256k1PrivateKey{priv}, nil
}

func (defaultProvider) ECDeserializePublic(der []byte) (ECPublicKey, error) {
	if len(der) != ECPublicKeySize {
		return nil, errBadKeySize("ec deserialize public", ECPublicKeySize, len(der))
	}
	if _, err := secp256k1.ParsePubKey(der); err != nil {
		return nil, errors.E("ec deserialize public", errors.K.Invalid, err)
	}
	return ECPublicKey(der), nil
}

func (defaultProvider) SHA256(data ...[]byte) [32]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (defaultProvider) SecureRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.E("secure random", errors.K.Other, err)
	}
	return b, nil
}

// ec1PrivateKey is a minimal SEC1 ECPrivateKey ASN.1 structure (RFC 5915),
// stripped of the optional curve-parameters and public-key fields since this
// module never mixes curves or needs the redundancy.
type ec1PrivateKey struct {
	Version    int
	PrivateKey []byte
}

type secp256k1PrivateKey struct {
	priv *secp256k1.PrivateKey
}

func (k secp256k1PrivateKey) Public() ECPublicKey {
	return ECPublicKey(k.priv.PubKey().SerializeCompressed())
}

// Wipe zeros the underlying scalar via secp256k1.PrivateKey.Zero(), the
// library's own key-wiping hook (decred/dcrd/dcrec/secp256k1/v4), rather
// than reaching into the ModNScalar field this package does not own.
func (k secp256k1PrivateKey) Wipe() {
	k.priv.Zero()
}
