package classify_test

import (
	"testing"

	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/classify"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrgIncomplete(t *testing.T, crypto dcrypto.Provider) *signet.Signet {
	t.Helper()
	kp, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	ec, err := crypto.ECGenerate()
	require.NoError(t, err)

	b, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	require.NoError(t, b.SetField(catalog.OrgPOK, kp.Public))
	require.NoError(t, b.SetField(catalog.OrgEncKey, []byte(ec.Public)))
	s, err := b.Freeze()
	require.NoError(t, err)
	return s
}

func TestOrgIncompleteWithoutCryptoSig(t *testing.T) {
	crypto := dcrypto.Default()
	s := buildOrgIncomplete(t, crypto)
	assert.Equal(t, classify.Incomplete, classify.Org(s, crypto))
}

func buildFullOrg(t *testing.T, crypto dcrypto.Provider) (*signet.Signet, dcrypto.Ed25519Keypair) {
	t.Helper()
	kp, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	ec, err := crypto.ECGenerate()
	require.NoError(t, err)

	b, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	require.NoError(t, b.SetField(catalog.OrgPOK, kp.Public))
	require.NoError(t, b.SetField(catalog.OrgEncKey, []byte(ec.Public)))
	// NAME field (variable UNICODE text)
	require.NoError(t, b.SetField(16 /* OrgName */, []byte("Acme")))
	s0, err := b.Freeze()
	require.NoError(t, err)

	fpCrypto, err := s0.Fingerprint(crypto, catalog.OrgCryptoSig)
	require.NoError(t, err)
	cryptoSig, err := crypto.Ed25519Sign(kp.Private, fpCrypto[:])
	require.NoError(t, err)

	b2, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	require.NoError(t, b2.SetField(catalog.OrgPOK, kp.Public))
	require.NoError(t, b2.SetField(catalog.OrgEncKey, []byte(ec.Public)))
	require.NoError(t, b2.SetField(16, []byte("Acme")))
	require.NoError(t, b2.SetField(catalog.OrgCryptoSig, cryptoSig))
	s1, err := b2.Freeze()
	require.NoError(t, err)

	fpFull, err := s1.Fingerprint(crypto, catalog.FullSig)
	require.NoError(t, err)
	fullSig, err := crypto.Ed25519Sign(kp.Private, fpFull[:])
	require.NoError(t, err)

	b3, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	require.NoError(t, b3.SetField(catalog.OrgPOK, kp.Public))
	require.NoError(t, b3.SetField(catalog.OrgEncKey, []byte(ec.Public)))
	require.NoError(t, b3.SetField(16, []byte("Acme")))
	require.NoError(t, b3.SetField(catalog.OrgCryptoSig, cryptoSig))
	require.NoError(t, b3.SetField(catalog.FullSig, fullSig))
	s2, err := b3.Freeze()
	require.NoError(t, err)

	return s2, kp
}

func TestOrgFullState(t *testing.T) {
	crypto := dcrypto.Default()
	s, _ := buildFullOrg(t, crypto)
	assert.Equal(t, classify.Full, classify.Org(s, crypto))
}

// TestSignatureMonotonicity checks spec.md §8's monotonicity property:
// classifying a FULL signet repeatedly is stable, and adding an ID+ID_SIG
// on top of a FULL signet never drops its classification below FULL.
func TestSignatureMonotonicity(t *testing.T) {
	crypto := dcrypto.Default()
	full, kp := buildFullOrg(t, crypto)

	for i := 0; i < 3; i++ {
		assert.Equal(t, classify.Full, classify.Org(full, crypto))
	}

	// ID_SIG covers every field below it, the ID field included, so sign
	// a signet that already carries ID.
	copyFull := func(b *signet.Builder) {
		for _, fid := range []uint8{catalog.OrgPOK, catalog.OrgEncKey, 16, catalog.OrgCryptoSig, catalog.FullSig} {
			for _, data := range full.Fields(fid) {
				require.NoError(t, b.SetField(fid, data))
			}
		}
		require.NoError(t, b.SetField(catalog.ID, []byte("acme-id-001")))
	}
	bUnsigned, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	copyFull(bUnsigned)
	unsigned, err := bUnsigned.Freeze()
	require.NoError(t, err)
	fpID, err := unsigned.Fingerprint(crypto, catalog.IDSig)
	require.NoError(t, err)
	idSig, err := crypto.Ed25519Sign(kp.Private, fpID[:])
	require.NoError(t, err)

	b, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	copyFull(b)
	require.NoError(t, b.SetField(catalog.IDSig, idSig))
	withID, err := b.Freeze()
	require.NoError(t, err)

	state := classify.Org(withID, crypto)
	assert.Equal(t, classify.ID, state)
	assert.GreaterOrEqual(t, uint8(state), uint8(classify.Full))
}

func TestTamperedFullSignetIsInvalid(t *testing.T) {
	crypto := dcrypto.Default()
	s, _ := buildFullOrg(t, crypto)
	raw, err := s.Serialize()
	require.NoError(t, err)

	// Flip a byte inside the NAME field's data, well before FULL_SIG.
	tampered := append([]byte(nil), raw...)
	for i := signet.HeaderSize; i < len(tampered); i++ {
		if tampered[i] == 'A' {
			tampered[i] ^= 0xFF
			break
		}
	}
	s2, err := signet.Parse(tampered)
	require.NoError(t, err)
	assert.Equal(t, classify.Invalid, classify.Org(s2, crypto))
}
