// Package classify implements the signet state classifier of spec.md §4.4:
// given a parsed signet and the issuing organization's public signing key,
// it walks the signature fields in canonical order and reports the highest
// stage whose signature verifies and whose required fields are present.
//
// The walk mirrors the teacher's preamble/sign packages' habit of treating
// a parse as a sequence of independently-checkable stages rather than one
// monolithic validator.
package classify

import (
	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/dcrypto"
)

// State is a signet's position in the classifier lattice (spec.md §4.4).
type State uint8

const (
	Unknown State = iota
	Malformed
	Overflow
	Incomplete
	BrokenCOC
	Invalid
	SSR
	Crypto
	Full
	ID
)

func (s State) String() string {
	switch s {
	case Malformed:
		return "MALFORMED"
	case Overflow:
		return "OVERFLOW"
	case Incomplete:
		return "INCOMPLETE"
	case BrokenCOC:
		return "BROKEN_COC"
	case Invalid:
		return "INVALID"
	case SSR:
		return "SSR"
	case Crypto:
		return "CRYPTO"
	case Full:
		return "FULL"
	case ID:
		return "ID"
	default:
		return "UNKNOWN"
	}
}

// Org classifies an organizational signet. crypto performs the Ed25519
// verification; the org's own signatures (CRYPTO_SIG, FULL_SIG, ID_SIG) are
// checked against its own POK field - an org signet is self-certifying.
func Org(s *signet.Signet, crypto dcrypto.Provider) State {
	if s.Kind() != catalog.KindOrg {
		return Malformed
	}
	pok, ok := s.GetField(catalog.OrgPOK)
	if !ok || len(pok) != dcrypto.Ed25519PublicKeySize {
		return Incomplete
	}
	if _, ok := s.GetField(catalog.OrgEncKey); !ok {
		return Incomplete
	}

	state := Incomplete
	pubKey := dcrypto.Ed25519PublicKey(pok)

	if sig, ok := s.GetField(catalog.OrgCryptoSig); ok {
		if verifySig(s, crypto, pubKey, catalog.OrgCryptoSig, sig) {
			state = Crypto
		} else {
			return Invalid
		}
	} else {
		return Incomplete
	}

	if sig, ok := s.GetField(catalog.FullSig); ok {
		if verifySig(s, crypto, pubKey, catalog.FullSig, sig) {
			state = Full
		} else {
			return Invalid
		}
	} else {
		return state
	}

	if _, hasID := s.GetField(catalog.ID); hasID {
		if sig, ok := s.GetField(catalog.IDSig); ok {
			if verifySig(s, crypto, pubKey, catalog.IDSig, sig) {
				state = ID
			} else {
				return Invalid
			}
		} else {
			return Invalid
		}
	}

	return state
}

// User classifies a user signet against the issuing organization's POK.
// orgPOK may be nil if only the SSR stage is of interest.
func User(s *signet.Signet, crypto dcrypto.Provider, orgPOK dcrypto.Ed25519PublicKey) State {
	if s.Kind() != catalog.KindUser {
		return Malformed
	}
	signKey, ok := s.GetField(catalog.UserSignKey)
	if !ok || len(signKey) != dcrypto.Ed25519PublicKeySize {
		return Incomplete
	}
	if _, ok := s.GetField(catalog.UserEncKey); !ok {
		return Incomplete
	}
	selfKey := dcrypto.Ed25519PublicKey(signKey)

	if sig, ok := s.GetField(catalog.UserCOCSig); ok {
		if !verifySig(s, crypto, selfKey, catalog.UserCOCSig, sig) {
			return BrokenCOC
		}
	}

	sigSSR, ok := s.GetField(catalog.UserSSRSig)
	if !ok {
		return Incomplete
	}
	if !verifySig(s, crypto, selfKey, catalog.UserSSRSig, sigSSR) {
		return Invalid
	}
	state := SSR

	if orgPOK == nil {
		return state
	}

	sigCrypto, ok := s.GetField(catalog.UserCryptoSig)
	if !ok {
		return state
	}
	if !verifySig(s, crypto, orgPOK, catalog.UserCryptoSig, sigCrypto) {
		return Invalid
	}
	state = Crypto

	sigFull, ok := s.GetField(catalog.FullSig)
	if !ok {
		return state
	}
	if !verifySig(s, crypto, orgPOK, catalog.FullSig, sigFull) {
		return Invalid
	}
	state = Full

	if _, hasID := s.GetField(catalog.ID); hasID {
		sigID, ok := s.GetField(catalog.IDSig)
		if !ok || !verifySig(s, crypto, orgPOK, catalog.IDSig, sigID) {
			return Invalid
		}
		state = ID
	}

	return state
}

// Request classifies an SSR, whose only meaningful state is SSR or Invalid:
// its own SSR_SIG, self-signed by the proposed signing key it carries.
func Request(s *signet.Signet, crypto dcrypto.Provider) State {
	if s.Kind() != catalog.KindSSR {
		return Malformed
	}
	signKey, ok := s.GetField(catalog.SSRSignKey)
	if !ok || len(signKey) != dcrypto.Ed25519PublicKeySize {
		return Incomplete
	}
	if _, ok := s.GetField(catalog.SSREncKey); !ok {
		return Incomplete
	}
	sig, ok := s.GetField(catalog.SSRSSRSig)
	if !ok {
		return Incomplete
	}
	if !verifySig(s, crypto, dcrypto.Ed25519PublicKey(signKey), catalog.SSRSSRSig, sig) {
		return Invalid
	}
	return SSR
}

// verifySig checks that sig is a valid Ed25519 signature, under key, of the
// signet's fingerprint cut off just before field cutoffID - the "everything
// below this signature" rule of spec.md §4.3/§4.4.
func verifySig(s *signet.Signet, crypto dcrypto.Provider, key dcrypto.Ed25519PublicKey, cutoffID uint8, sig []byte) bool {
	if len(sig) != dcrypto.Ed25519SignatureSize {
		return false
	}
	fp, err := s.Fingerprint(crypto, cutoffID)
	if err != nil {
		return false
	}
	return crypto.Ed25519Verify(key, fp[:], dcrypto.Signature(sig))
}
