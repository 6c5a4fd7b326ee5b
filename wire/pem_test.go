package wire

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPEMRoundTrip(t *testing.T) {
	body := []byte{0x06, 0xF0, 0x00, 0x00, 0x05, 1, 2, 3, 4, 5}
	encoded := EncodePEM("SIGNET", body)

	decoded, err := DecodePEM("SIGNET", encoded)
	require.NoError(t, err)
	assert.Equal(t, body, decoded)
}

func TestPEMWrongTagFails(t *testing.T) {
	encoded := EncodePEM("SIGNET", []byte("x"))
	_, err := DecodePEM("SIGNET PRIVATE KEYCHAIN", encoded)
	assert.Error(t, err)
}

func TestPEMFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.pem")
	body := []byte("some signet bytes")

	require.NoError(t, WritePEMFile(path, "SIGNET", body))
	got, err := ReadPEMFile(path, "SIGNET")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestReadPEMFileMissing(t *testing.T) {
	_, err := ReadPEMFile(filepath.Join(t.TempDir(), "missing.pem"), "SIGNET")
	assert.Error(t, err)
}

func TestB64RoundTrip(t *testing.T) {
	b := []byte{1, 2, 3, 255}
	s := B64Encode(b)
	got, err := B64Decode(s)
	assert.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestB64DecodeInvalid(t *testing.T) {
	_, err := B64Decode("not base64!!")
	assert.Error(t, err)
}
