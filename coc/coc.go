// Package coc verifies chain of custody between successive user signets,
// spec.md §4.5: a new signet's COC_SIG must be a valid self-signature by the
// previous signet's signing key, and the new signet's organizational
// signatures must still validate under the same org POK - a user signet
// cannot silently change issuing organizations across a key rotation.
package coc

import (
	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/classify"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/eluv-io/errors-go"
)

// Verify checks that next correctly succeeds prev in a user signing-key
// rotation. orgPOK is the organization's POK both signets are expected to
// carry org signatures under; it is also what classify.User is invoked
// with to confirm next's organizational signatures still hold.
//
// Returns nil if the rotation is valid. A broken COC signature, or a
// rotation to a different org POK, is reported as classify.BrokenCOC via
// the returned error's detail rather than as a distinct error type, so
// callers that already branch on classify.State can treat both uniformly.
func Verify(prev, next *signet.Signet, crypto dcrypto.Provider, orgPOK dcrypto.Ed25519PublicKey) error {
	if prev.Kind() != catalog.KindUser || next.Kind() != catalog.KindUser {
		return errors.E("verify chain of custody", errors.K.Invalid, "reason", "chain of custody only applies to user signets")
	}

	prevSignKey, ok := prev.GetField(catalog.UserSignKey)
	if !ok || len(prevSignKey) != dcrypto.Ed25519PublicKeySize {
		return errors.E("verify chain of custody", errors.K.Invalid, "reason", "previous signet missing signing key")
	}

	cocSig, ok := next.GetField(catalog.UserCOCSig)
	if !ok {
		return errors.E("verify chain of custody", errors.K.NotExist, "reason", "new signet carries no COC_SIG")
	}
	if len(cocSig) != dcrypto.Ed25519SignatureSize {
		return errors.E("verify chain of custody", errors.K.Invalid, "state", classify.BrokenCOC, "reason", "malformed COC_SIG")
	}

	fp, err := next.Fingerprint(crypto, catalog.UserCOCSig)
	if err != nil {
		return errors.E("verify chain of custody", err)
	}
	if !crypto.Ed25519Verify(dcrypto.Ed25519PublicKey(prevSignKey), fp[:], dcrypto.Signature(cocSig)) {
		return errors.E("verify chain of custody", errors.K.Invalid, "state", classify.BrokenCOC, "reason", "COC_SIG does not verify under previous signing key")
	}

	// Same-org-POK-across-rotation: both signets' organizational
	// signatures (CRYPTO_SIG at minimum) must hold under the identical
	// POK passed in, not merely under *some* org.
	if classify.User(prev, crypto, orgPOK) < classify.Crypto {
		return errors.E("verify chain of custody", errors.K.Invalid, "state", classify.BrokenCOC, "reason", "previous signet does not validate under supplied org POK")
	}
	if classify.User(next, crypto, orgPOK) < classify.Crypto {
		return errors.E("verify chain of custody", errors.K.Invalid, "state", classify.BrokenCOC, "reason", "new signet does not validate under the same org POK as the previous one")
	}

	return nil
}
