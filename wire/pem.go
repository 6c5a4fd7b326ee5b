package wire

import (
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/eluv-io/errors-go"
)

// EncodePEM base64-encodes body and wraps it in a PEM block tagged tag, the
// textual container every signet and keychain file is stored as
// (spec.md §6: tag "SIGNET" or "SIGNET PRIVATE KEYCHAIN").
func EncodePEM(tag string, body []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  tag,
		Bytes: body,
	})
}

// DecodePEM reads a PEM block from data and returns its decoded body,
// rejecting a block whose Type does not equal the required tag. Mirrors
// _read_pem_data's tag check in the original source, but as a value-
// returning function instead of one that writes through a thread-local
// error stack.
func DecodePEM(tag string, data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.E("decode pem", errors.K.Invalid, "reason", "no PEM block found")
	}
	if block.Type != tag {
		return nil, errors.E("decode pem", errors.K.Invalid, "reason", "unexpected PEM tag",
			"expected", tag, "actual", block.Type)
	}
	return block.Bytes, nil
}

// ReadPEMFile reads and decodes a tagged PEM file from disk.
func ReadPEMFile(path, tag string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E("read pem file", errors.K.IO, err, "path", path)
	}
	body, err := DecodePEM(tag, data)
	if err != nil {
		return nil, errors.E("read pem file", err, "path", path)
	}
	return body, nil
}

// WritePEMFile encodes body as a tagged PEM block and writes it to path.
func WritePEMFile(path, tag string, body []byte) error {
	if err := os.WriteFile(path, EncodePEM(tag, body), 0600); err != nil {
		return errors.E("write pem file", errors.K.IO, err, "path", path)
	}
	return nil
}

// B64Encode is the strict base64 encoding used for the body of a signet or
// keychain PEM block (spec.md §6: "base64 of: magic...fields...").
func B64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// B64Decode strictly decodes b, rejecting anything that is not standard,
// padded base64 - spec.md §4.1: "Base64 decode is strict (no whitespace
// allowance beyond standard PEM line folds)." PEM line folding is already
// removed by encoding/pem before this is ever called.
func B64Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.E("decode base64", errors.K.Invalid, err)
	}
	return b, nil
}
