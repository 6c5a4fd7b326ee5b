package signet

import (
	"github.com/dimeproject/signet/dcrypto"
	"github.com/mr-tron/base58"
)

// DisplayFingerprint renders a signet's fingerprint (spec.md §4.3) as
// base58, for human-facing output such as the CLI's dump and verify
// subcommands. The wire format itself only ever uses base64 (spec.md §6);
// base58 here is purely a display convenience, the same role it plays for
// the teacher's multiformat-prefixed identifiers.
func (s *Signet) DisplayFingerprint(crypto dcrypto.Provider, cutoffID uint8) (string, error) {
	fp, err := s.Fingerprint(crypto, cutoffID)
	if err != nil {
		return "", err
	}
	return base58.Encode(fp[:]), nil
}
