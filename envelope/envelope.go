// Package envelope implements the collaborator-facing text format of
// spec.md §4.7/§6: a tiny newline-delimited block binding a user id, an
// organization id, the org's fingerprint and the user's signet, used by the
// (out-of-scope) message layer to carry origin/destination information.
// The signet core only produces and parses this block; it owns no
// semantics about how the message layer uses it.
package envelope

import (
	"strings"

	"github.com/eluv-io/errors-go"
)

// Chunk is which role a Block plays in a message envelope.
type Chunk uint8

const (
	Origin Chunk = iota
	Destination
)

func (c Chunk) role() string {
	if c == Origin {
		return "Author"
	}
	return "Recipient"
}

func roleToChunk(role string) (Chunk, bool) {
	switch role {
	case "Author":
		return Origin, true
	case "Recipient":
		return Destination, true
	default:
		return 0, false
	}
}

// Block is one parsed or to-be-rendered envelope chunk.
type Block struct {
	Chunk        Chunk
	UserID       string
	OrgID        string
	OrgFingerprintB64 string
	UserSignetB64     string
}

// Render produces the ASCII envelope body for b (spec.md §6):
//
//	<Role>: <user_id>
//	Organization: <org_id>
//	Fingerprint: <org_fingerprint_b64>
//	Signet: <user_signet_b64>
func Render(b Block) string {
	var sb strings.Builder
	sb.WriteString(b.Chunk.role())
	sb.WriteString(": ")
	sb.WriteString(b.UserID)
	sb.WriteString("\nOrganization: ")
	sb.WriteString(b.OrgID)
	sb.WriteString("\nFingerprint: ")
	sb.WriteString(b.OrgFingerprintB64)
	sb.WriteString("\nSignet: ")
	sb.WriteString(b.UserSignetB64)
	sb.WriteString("\n")
	return sb.String()
}

// Parse is the symmetric inverse of Render.
func Parse(text string) (Block, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4 {
		return Block{}, errors.E("parse envelope", errors.K.Invalid, "reason", "expected exactly four lines", "got", len(lines))
	}

	role, userID, ok := splitHeader(lines[0])
	if !ok {
		return Block{}, errors.E("parse envelope", errors.K.Invalid, "reason", "malformed role line", "line", lines[0])
	}
	chunk, ok := roleToChunk(role)
	if !ok {
		return Block{}, errors.E("parse envelope", errors.K.Invalid, "reason", "unknown role", "role", role)
	}

	b := Block{Chunk: chunk, UserID: userID}
	fields := []struct {
		label string
		dest  *string
	}{
		{"Organization", &b.OrgID},
		{"Fingerprint", &b.OrgFingerprintB64},
		{"Signet", &b.UserSignetB64},
	}
	for i, f := range fields {
		label, value, ok := splitHeader(lines[i+1])
		if !ok || label != f.label {
			return Block{}, errors.E("parse envelope", errors.K.Invalid, "reason", "malformed header line", "expected", f.label, "line", lines[i+1])
		}
		*f.dest = value
	}
	return b, nil
}

func splitHeader(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+2:], true
}
