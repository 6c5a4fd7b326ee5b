package dcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519RoundTrip(t *testing.T) {
	p := Default()
	kp, err := p.Ed25519Generate()
	require.NoError(t, err)
	assert.Len(t, kp.Public, Ed25519PublicKeySize)
	assert.Len(t, kp.Private, Ed25519PrivateKeySize)

	msg := []byte("hello signet")
	sig, err := p.Ed25519Sign(kp.Private, msg)
	require.NoError(t, err)
	assert.Len(t, sig, Ed25519SignatureSize)
	assert.True(t, p.Ed25519Verify(kp.Public, msg, sig))

	sig[0] ^= 0xff
	assert.False(t, p.Ed25519Verify(kp.Public, msg, sig))
}

func TestECKeypairSerializeRoundTrip(t *testing.T) {
	p := Default()
	kp, err := p.ECGenerate()
	require.NoError(t, err)
	assert.Len(t, kp.Public, ECPublicKeySize)

	der, err := p.ECSerializePrivate(kp.Private)
	require.NoError(t, err)

	priv2, err := p.ECDeserializePrivate(der)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, priv2.Public())

	pub2, err := p.ECDeserializePublic(kp.Public)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, pub2)
}

func TestECDeserializePublicRejectsBadSize(t *testing.T) {
	p := Default()
	_, err := p.ECDeserializePublic([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSHA256IsConcatenation(t *testing.T) {
	p := Default()
	a := p.SHA256([]byte("foo"), []byte("bar"))
	b := p.SHA256([]byte("foobar"))
	assert.Equal(t, a, b)
}

func TestECPrivateKeyWipe(t *testing.T) {
	p := Default()
	kp, err := p.ECGenerate()
	require.NoError(t, err)

	before, err := p.ECSerializePrivate(kp.Private)
	require.NoError(t, err)

	kp.Private.Wipe()

	after, err := p.ECSerializePrivate(kp.Private)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	body, ok := kp.Private.(secp256k1PrivateKey)
	require.True(t, ok)
	for _, b := range body.priv.Serialize() {
		assert.Equal(t, byte(0), b)
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}
