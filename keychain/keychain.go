// Package keychain implements the private keychain (*_KEYS) file format of
// spec.md §4.6, ground-truthed against
// original_source/libs/signet/keys.c: a 5-byte header (DIME number + 3-byte
// length) followed by a signing-key record fixed at offset 5, followed by a
// length-prefixed encryption-key record.
//
// Every function here treats key material as something to be zeroized the
// moment it is no longer needed, on both the success and failure path -
// keys.c's `_secure_wipe` calls before every `free`, reproduced with
// dcrypto.Wipe/WipeAll.
package keychain

import (
	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/dimeproject/signet/wire"
	"github.com/eluv-io/errors-go"
)

// Field ids within a keys file payload (original_source/include/signet/general.h,
// KEYS_ORG_T / KEYS_USER_T). Unlike the signet catalog these are not part of
// catalog.Table - a keys file is a fixed two-record layout, not an
// extensible field set.
const (
	orgPrivatePOK  = 1
	orgPrivateSOK  = 2
	orgPrivateEnc  = 3
	userPrivateSign = 1
	userPrivateEnc  = 2
)

// signKeyOffset is where the signing-key record must begin: right after the
// 5-byte header. spec.md §4.6: "deviation is fatal."
const signKeyOffset = signet.HeaderSize

// Keychain holds the private Ed25519 signing key and private EC encryption
// key for an org or a user identity.
type Keychain struct {
	Kind    catalog.Kind
	SignKey dcrypto.Ed25519PrivateKey
	EncKey  dcrypto.ECPrivateKey
}

// Close zeros both of kc's private key handles: the raw SignKey bytes via
// dcrypto.WipeAll, and EncKey through its own Wipe hook, since the EC
// private key is an opaque handle whose backing scalar this package does
// not hold directly (spec.md §5, "secret-carrying handles zero their
// buffers before release"). Callers must not use kc after Close.
func (kc *Keychain) Close() {
	dcrypto.WipeAll(kc.SignKey)
	if kc.EncKey != nil {
		kc.EncKey.Wipe()
	}
}

func signFieldID(kind catalog.Kind) (uint8, error) {
	switch kind {
	case catalog.KindOrg:
		return orgPrivatePOK, nil
	case catalog.KindUser:
		return userPrivateSign, nil
	default:
		return 0, errors.E("keychain field id", errors.K.Invalid, "kind", kind)
	}
}

func encFieldID(kind catalog.Kind) (uint8, error) {
	switch kind {
	case catalog.KindOrg:
		return orgPrivateEnc, nil
	case catalog.KindUser:
		return userPrivateEnc, nil
	default:
		return 0, errors.E("keychain field id", errors.K.Invalid, "kind", kind)
	}
}

// Serialize encodes kc into the on-wire keys-file payload (header included).
// The caller is responsible for wiping the returned buffer once it has been
// written out or transmitted.
func Serialize(kc *Keychain, crypto dcrypto.Provider) ([]byte, error) {
	signFID, err := signFieldID(kc.Kind)
	if err != nil {
		return nil, errors.E("serialize keychain", err)
	}
	encFID, err := encFieldID(kc.Kind)
	if err != nil {
		return nil, errors.E("serialize keychain", err)
	}
	if len(kc.SignKey) != dcrypto.Ed25519PrivateKeySize {
		return nil, errors.E("serialize keychain", errors.K.Invalid, "reason", "bad signing key size")
	}

	encDER, err := crypto.ECSerializePrivate(kc.EncKey)
	if err != nil {
		return nil, errors.E("serialize keychain", err)
	}
	defer dcrypto.Wipe(encDER)

	var num signet.Number
	switch kc.Kind {
	case catalog.KindOrg:
		num = signet.NumberOrgKeys
	case catalog.KindUser:
		num = signet.NumberUserKeys
	default:
		return nil, errors.E("serialize keychain", errors.K.Invalid, "kind", kc.Kind)
	}

	payloadLen := 1 + 1 + dcrypto.Ed25519PrivateKeySize + 1 + 2 + len(encDER)
	header, err := signet.Header(num, payloadLen)
	if err != nil {
		return nil, errors.E("serialize keychain", err)
	}

	buf := make([]byte, 0, len(header)+payloadLen)
	buf = append(buf, header...)
	buf = append(buf, signFID, dcrypto.Ed25519PrivateKeySize)
	buf = append(buf, kc.SignKey...)
	buf = append(buf, encFID)
	buf = wire.PutU2(buf, uint32(len(encDER)))
	buf = append(buf, encDER...)

	if len(buf) < signKeyOffset+1 || buf[signKeyOffset] != signFID {
		dcrypto.Wipe(buf)
		return nil, errors.E("serialize keychain", errors.K.Invalid, "reason", "signing key record not at fixed offset")
	}
	return buf, nil
}

// Parse decodes a keys-file payload (header included) produced by
// Serialize, returning its two private keys. The caller must wipe data
// after a successful or failed call, and must wipe the returned SignKey
// once it is no longer needed.
func Parse(data []byte, crypto dcrypto.Provider) (*Keychain, error) {
	if len(data) < signet.HeaderSize {
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "buffer shorter than header")
	}
	magic, _ := wire.GetU2(data, 0)
	num := signet.Number(magic)
	var kind catalog.Kind
	switch num {
	case signet.NumberOrgKeys:
		kind = catalog.KindOrg
	case signet.NumberUserKeys:
		kind = catalog.KindUser
	default:
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "not a keys-file DIME number", "number", num)
	}
	length, _ := wire.GetU3(data, 2)
	payload := data[signet.HeaderSize:]
	if int(length) != len(payload) {
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "length mismatch")
	}

	signFID, err := signFieldID(kind)
	if err != nil {
		return nil, errors.E("parse keychain", err)
	}
	encFID, err := encFieldID(kind)
	if err != nil {
		return nil, errors.E("parse keychain", err)
	}

	if err := wire.CheckRemaining(data, signKeyOffset, 2+dcrypto.Ed25519PrivateKeySize); err != nil {
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "buffer too small for signing key", err)
	}
	if data[signKeyOffset] != signFID {
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "signing key record not at fixed offset")
	}
	if data[signKeyOffset+1] != dcrypto.Ed25519PrivateKeySize {
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "invalid signing key size field")
	}
	signStart := signKeyOffset + 2
	signKey := make(dcrypto.Ed25519PrivateKey, dcrypto.Ed25519PrivateKeySize)
	copy(signKey, data[signStart:signStart+dcrypto.Ed25519PrivateKeySize])

	at := signStart + dcrypto.Ed25519PrivateKeySize
	if err := wire.CheckRemaining(data, at, 1); err != nil {
		dcrypto.Wipe(signKey)
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "no encryption key record", err)
	}
	if data[at] != encFID {
		dcrypto.Wipe(signKey)
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "unexpected field id for encryption key", "got", data[at])
	}
	at++
	if err := wire.CheckRemaining(data, at, 2); err != nil {
		dcrypto.Wipe(signKey)
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "truncated encryption key length", err)
	}
	encLen, _ := wire.GetU2(data, at)
	at += 2
	if err := wire.CheckRemaining(data, at, int(encLen)); err != nil {
		dcrypto.Wipe(signKey)
		return nil, errors.E("parse keychain", errors.K.Invalid, "reason", "invalid encryption key size", err)
	}
	encDER := data[at : at+int(encLen)]

	encKey, err := crypto.ECDeserializePrivate(encDER)
	if err != nil {
		dcrypto.Wipe(signKey)
		return nil, errors.E("parse keychain", err)
	}

	return &Keychain{Kind: kind, SignKey: signKey, EncKey: encKey}, nil
}
