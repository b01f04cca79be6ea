package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torusresearch/bijson"
)

func TestRegistryIsClosed(t *testing.T) {
	assert.Len(t, Schemes(), 2)
	for _, s := range Schemes() {
		desc, err := Lookup(s)
		require.NoError(t, err)
		assert.Equal(t, s, desc.Scheme)
	}
	_, err := Lookup(Scheme(7))
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestWireDiscriminantsArePinned(t *testing.T) {
	hk, err := Lookup(HyperKzg)
	require.NoError(t, err)
	dd, err := Lookup(DynamicDory)
	require.NoError(t, err)
	assert.Equal(t, byte(0), hk.WireDiscriminant)
	assert.Equal(t, byte(1), dd.WireDiscriminant)
	assert.True(t, hk.EVMCompatiblePlan)
	assert.False(t, dd.EVMCompatiblePlan)
}

func TestParseScheme(t *testing.T) {
	for spelling, want := range map[string]Scheme{
		"hyper-kzg":    HyperKzg,
		"HYPER_KZG":    HyperKzg,
		"HyperKzg":     HyperKzg,
		"dynamic-dory": DynamicDory,
		"DYNAMIC_DORY": DynamicDory,
	} {
		got, err := ParseScheme(spelling)
		require.NoError(t, err, spelling)
		assert.Equal(t, want, got, spelling)
	}
	_, err := ParseScheme("ipa")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSchemeJSONRoundTrip(t *testing.T) {
	raw, err := bijson.Marshal(DynamicDory)
	require.NoError(t, err)
	assert.Equal(t, `"DYNAMIC_DORY"`, string(raw))

	var s Scheme
	require.NoError(t, bijson.Unmarshal([]byte(`"HYPER_KZG"`), &s))
	assert.Equal(t, HyperKzg, s)

	assert.Error(t, bijson.Unmarshal([]byte(`"IPA"`), &s))
}
