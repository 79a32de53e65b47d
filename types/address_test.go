package types

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/ed25519"
	"gopkg.in/yaml.v2"
)

var addrVectors = []struct {
	hexStr string
	b58Str string
}{
	{"B5AD24DD9E5D60E1F0734AF2D819FF9A198A2A38", "HBCckWHh1gtoiWXtyALegeudFPhSwnrwoYhe"},
	{"549C15831315AD56F89C0EDDF9D852B6CB7605E3", "HBCTuGJjbfN7aA13QdhvZR45bQb8UXBMxFNY"},
	{"7FDE0B354783BC8607222CD994C805E303A80BCD", "HBCXqzNwvZGR88XvkccrXEz6c33Za2Da3bBo"},
	{"FEBF0CA4CB4897C9A27A54275E612FEF275752AE", "HBCjQs4nKHHfu5LrznRm3vBbbaeW1ghVw463"},
	{"3BDA7843C6CE02FB1B274DF18F58E04354750EB8", "HBCReN9aTJTErpnT11ZfJxAK6oXPnBgP7d4b"},
}

func TestEmptyAddresses(t *testing.T) {
	require.Equal(t, "", (CUAddress{}).String())

	addr, err := CUAddressFromBase58("")
	require.Nil(t, err)
	require.True(t, addr.Empty())
}

func TestCUAddressFromBase58AndFromHex(t *testing.T) {
	for _, d := range addrVectors {
		fromHex, err := CUAddressFromHex(d.hexStr)
		require.Nil(t, err)
		fromB58, err := CUAddressFromBase58(d.b58Str)
		require.Nil(t, err)
		assert.True(t, fromHex.Equals(fromB58))
		assert.Equal(t, d.b58Str, fromHex.String())
		assert.True(t, fromHex.IsValidAddr())
	}
}

func TestCUAddressFromBase58Error(t *testing.T) {
	cases := []struct {
		b58Str string
		ok     bool
	}{
		{"HBCckWHh1gtoiWXtyALegeudFPhSwnrwoYhe", true},
		{"     ", true},
		{"!", false},
		{"HbcckWHh1gtoiWXtyALegeudFPhSwnrwoYhe", false},
		{"hbcckWHh1gtoiWXtyALegeudFPhSwnrwoYhe", false},
		{"bhcWFpii3MAUrvnw8NFB1SrGKVz7UhCxEpSF", false},
	}
	for _, c := range cases {
		_, err := CUAddressFromBase58(c.b58Str)
		assert.Equal(t, c.ok, err == nil, c.b58Str)
	}
}

func TestCUAddressFromByte(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0}
	assert.False(t, CUAddressFromByte(b).Empty())
	assert.True(t, CUAddressFromByte(b[:3]).Empty())
	assert.True(t, CUAddressFromByte(nil).Empty())
}

func TestCUAddressMarshal(t *testing.T) {
	var pub ed25519.PubKeyEd25519
	for i := 0; i < 20; i++ {
		rand.Read(pub[:])
		addr := CUAddress(pub.Address())

		bz, err := addr.MarshalJSON()
		require.Nil(t, err)
		var res CUAddress
		require.Nil(t, res.UnmarshalJSON(bz))
		require.Equal(t, addr, res)

		hexRes, err := CUAddressFromHex(hex.EncodeToString(addr))
		require.Nil(t, err)
		require.Equal(t, addr, hexRes)
	}
}

func TestYAMLMarshalers(t *testing.T) {
	addr := CUAddress(ed25519.GenPrivKey().PubKey().Address())
	got, err := yaml.Marshal(&addr)
	require.NoError(t, err)
	require.Equal(t, addr.String()+"\n", string(got))

	var res CUAddress
	require.NoError(t, yaml.Unmarshal(got, &res))
	require.Equal(t, addr, res)

	require.Error(t, yaml.Unmarshal([]byte("XYZabc\n"), &res))
}

func TestModuleAddress(t *testing.T) {
	a := ModuleAddress("liquidation_vault")
	require.Len(t, a, AddrLen)
	require.True(t, a.Equals(ModuleAddress("liquidation_vault")))
	require.False(t, a.Equals(ModuleAddress("fee_collector")))
	require.True(t, NewCUAddress().IsValidAddr())
}
