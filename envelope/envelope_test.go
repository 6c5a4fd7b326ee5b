package envelope_test

import (
	"testing"

	"github.com/dimeproject/signet/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderParseRoundTrip(t *testing.T) {
	b := envelope.Block{
		Chunk:             envelope.Origin,
		UserID:            "alice@example.com",
		OrgID:             "example.com",
		OrgFingerprintB64: "ZmluZ2VycHJpbnQ=",
		UserSignetB64:     "c2lnbmV0Ym9keQ==",
	}
	text := envelope.Render(b)
	got, err := envelope.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := envelope.Parse("garbage\nmore garbage")
	assert.Error(t, err)
}

func TestDestinationRole(t *testing.T) {
	b := envelope.Block{Chunk: envelope.Destination, UserID: "bob", OrgID: "org", OrgFingerprintB64: "Zg==", UserSignetB64: "cw=="}
	text := envelope.Render(b)
	assert.Contains(t, text, "Recipient: bob")
	got, err := envelope.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, envelope.Destination, got.Chunk)
}
