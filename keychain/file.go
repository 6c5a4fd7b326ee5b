package keychain

import (
	"github.com/dimeproject/signet/dcrypto"
	"github.com/dimeproject/signet/wire"
	"github.com/eluv-io/errors-go"
)

// PEM encoding/decoding of the keys file is handled by wire.WritePEMFile /
// wire.ReadPEMFile, which base64-encode the body internally
// (encoding/pem.EncodeToMemory); see original_source's keys_file_create,
// which instead base64-encodes explicitly before a separate PEM write.

// PEMTag is the PEM armor tag a keys file is stored under
// (original_source/include/signet/general.h, SIGNET_PRIVATE_KEYCHAIN).
const PEMTag = "SIGNET PRIVATE KEYCHAIN"

// Create builds a keys file at path holding sign/enc's private halves,
// mirroring keys_file_create: serialize, base64-encode, PEM-armor, write,
// wiping every intermediate buffer along the way including on failure.
func Create(kc *Keychain, crypto dcrypto.Provider, path string) error {
	serial, err := Serialize(kc, crypto)
	if err != nil {
		return errors.E("create keychain file", err)
	}
	defer dcrypto.Wipe(serial)

	if err := wire.WritePEMFile(path, PEMTag, serial); err != nil {
		return errors.E("create keychain file", err)
	}
	return nil
}

// fetch reads and base64/PEM-decodes the keys file at path, wiping the
// intermediate decoded buffer once Parse has extracted what it needs.
func fetch(path string, crypto dcrypto.Provider) (*Keychain, error) {
	body, err := wire.ReadPEMFile(path, PEMTag)
	if err != nil {
		return nil, errors.E("fetch keychain", err)
	}
	defer dcrypto.Wipe(body)

	kc, err := Parse(body, crypto)
	if err != nil {
		return nil, errors.E("fetch keychain", err)
	}
	return kc, nil
}

// FetchSignKey extracts only the private Ed25519 signing key from the keys
// file at path, wiping the encryption key's DER bytes it does not need.
func FetchSignKey(path string, crypto dcrypto.Provider) (dcrypto.Ed25519PrivateKey, error) {
	kc, err := fetch(path, crypto)
	if err != nil {
		return nil, errors.E("fetch sign key", err)
	}
	if kc.EncKey != nil {
		kc.EncKey.Wipe()
	}
	return kc.SignKey, nil
}

// FetchEncKey extracts only the private EC encryption key from the keys
// file at path, wiping the Ed25519 signing key it does not need.
func FetchEncKey(path string, crypto dcrypto.Provider) (dcrypto.ECPrivateKey, error) {
	kc, err := fetch(path, crypto)
	if err != nil {
		return nil, errors.E("fetch enc key", err)
	}
	dcrypto.Wipe(kc.SignKey)
	return kc.EncKey, nil
}
