package signet_test

import (
	"testing"

	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderNamedFieldRoundTrip(t *testing.T) {
	b, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)

	pok := make([]byte, 32)
	enc := make([]byte, 33)
	require.NoError(t, b.SetField(catalog.OrgPOK, pok))
	require.NoError(t, b.SetField(catalog.OrgEncKey, enc))
	require.NoError(t, b.SetNamedField(catalog.Undefined, "custom-tag", []byte("hello")))

	s, err := b.Freeze()
	require.NoError(t, err)

	data, ok := s.GetField(catalog.Undefined)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), data)
}

func TestBuilderRejectsWrongFixedLength(t *testing.T) {
	b, err := signet.NewBuilder(catalog.KindOrg)
	require.NoError(t, err)
	err = b.SetField(catalog.OrgPOK, make([]byte, 10))
	assert.Error(t, err)
}

func TestBuilderRemoveField(t *testing.T) {
	b, err := signet.NewBuilder(catalog.KindUser)
	require.NoError(t, err)
	require.NoError(t, b.SetField(catalog.UserAltKey, make([]byte, 5)))
	require.NoError(t, b.SetField(catalog.UserAltKey, make([]byte, 7)))
	require.NoError(t, b.RemoveField(catalog.UserAltKey, 0))

	pub := make([]byte, 32)
	enc := make([]byte, 33)
	require.NoError(t, b.SetField(catalog.UserSignKey, pub))
	require.NoError(t, b.SetField(catalog.UserEncKey, enc))
	sig := make([]byte, 64)
	require.NoError(t, b.SetField(catalog.UserSSRSig, sig))

	s, err := b.Freeze()
	require.NoError(t, err)
	got := s.Fields(catalog.UserAltKey)
	require.Len(t, got, 1)
	assert.Equal(t, 7, len(got[0]))
}
