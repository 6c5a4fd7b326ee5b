package coc_test

import (
	"testing"

	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/coc"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildUser builds a user signet signed up through CRYPTO_SIG by orgKP,
// using signKP as the user's own signing key and ec as its encryption key.
func buildUser(t *testing.T, crypto dcrypto.Provider, signKP dcrypto.Ed25519Keypair, ec dcrypto.ECKeypair, orgKP dcrypto.Ed25519Keypair, cocSig []byte) *signet.Signet {
	t.Helper()

	build := func() *signet.Signet {
		b, err := signet.NewBuilder(catalog.KindUser)
		require.NoError(t, err)
		require.NoError(t, b.SetField(catalog.UserSignKey, signKP.Public))
		require.NoError(t, b.SetField(catalog.UserEncKey, []byte(ec.Public)))
		if cocSig != nil {
			require.NoError(t, b.SetField(catalog.UserCOCSig, cocSig))
		}
		s, err := b.Freeze()
		require.NoError(t, err)
		return s
	}

	// First pass without SSR_SIG/CRYPTO_SIG to compute their fingerprints.
	s0 := build()
	fpSSR, err := s0.Fingerprint(crypto, catalog.UserSSRSig)
	require.NoError(t, err)
	ssrSig, err := crypto.Ed25519Sign(signKP.Private, fpSSR[:])
	require.NoError(t, err)

	buildWithSSR := func() *signet.Signet {
		b, err := signet.NewBuilder(catalog.KindUser)
		require.NoError(t, err)
		require.NoError(t, b.SetField(catalog.UserSignKey, signKP.Public))
		require.NoError(t, b.SetField(catalog.UserEncKey, []byte(ec.Public)))
		if cocSig != nil {
			require.NoError(t, b.SetField(catalog.UserCOCSig, cocSig))
		}
		require.NoError(t, b.SetField(catalog.UserSSRSig, ssrSig))
		s, err := b.Freeze()
		require.NoError(t, err)
		return s
	}
	s1 := buildWithSSR()

	fpCrypto, err := s1.Fingerprint(crypto, catalog.UserCryptoSig)
	require.NoError(t, err)
	cryptoSig, err := crypto.Ed25519Sign(orgKP.Private, fpCrypto[:])
	require.NoError(t, err)

	b2, err := signet.NewBuilder(catalog.KindUser)
	require.NoError(t, err)
	require.NoError(t, b2.SetField(catalog.UserSignKey, signKP.Public))
	require.NoError(t, b2.SetField(catalog.UserEncKey, []byte(ec.Public)))
	if cocSig != nil {
		require.NoError(t, b2.SetField(catalog.UserCOCSig, cocSig))
	}
	require.NoError(t, b2.SetField(catalog.UserSSRSig, ssrSig))
	require.NoError(t, b2.SetField(catalog.UserCryptoSig, cryptoSig))
	s2, err := b2.Freeze()
	require.NoError(t, err)
	return s2
}

func TestCOCSuccess(t *testing.T) {
	crypto := dcrypto.Default()
	orgKP, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	k1, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	k2, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	ec1, err := crypto.ECGenerate()
	require.NoError(t, err)
	ec2, err := crypto.ECGenerate()
	require.NoError(t, err)

	u1 := buildUser(t, crypto, k1, ec1, orgKP, nil)

	// Build U2 without COC_SIG first so its fingerprint-up-to-COC_SIG is
	// computable, then sign that fingerprint with K1 and rebuild with it.
	u2stub := buildUser(t, crypto, k2, ec2, orgKP, nil)
	fp, err := u2stub.Fingerprint(crypto, catalog.UserCOCSig)
	require.NoError(t, err)
	cocSig, err := crypto.Ed25519Sign(k1.Private, fp[:])
	require.NoError(t, err)

	u2 := buildUser(t, crypto, k2, ec2, orgKP, cocSig)

	err = coc.Verify(u1, u2, crypto, orgKP.Public)
	assert.NoError(t, err)
}

func TestCOCWrongOrgRejected(t *testing.T) {
	crypto := dcrypto.Default()
	orgA, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	orgB, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	k1, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	k2, err := crypto.Ed25519Generate()
	require.NoError(t, err)
	ec1, err := crypto.ECGenerate()
	require.NoError(t, err)
	ec2, err := crypto.ECGenerate()
	require.NoError(t, err)

	u1 := buildUser(t, crypto, k1, ec1, orgA, nil)

	u2stub := buildUser(t, crypto, k2, ec2, orgB, nil)
	fp, err := u2stub.Fingerprint(crypto, catalog.UserCOCSig)
	require.NoError(t, err)
	cocSig, err := crypto.Ed25519Sign(k1.Private, fp[:])
	require.NoError(t, err)
	u2 := buildUser(t, crypto, k2, ec2, orgB, cocSig)

	err = coc.Verify(u1, u2, crypto, orgA.Public)
	assert.Error(t, err)
}
