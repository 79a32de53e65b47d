package types

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// public key of the private key 1, the secp256k1 generator
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func mustPublicKey(t *testing.T, s string) BtcPublicKey {
	pk, err := BtcPublicKeyFromHex(s)
	require.NoError(t, err)
	return pk
}

func TestBtcPublicKey(t *testing.T) {
	pk := mustPublicKey(t, generatorHex)
	assert.Equal(t, generatorHex, pk.String())
	assert.False(t, pk.IsEmpty())
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(pk.ToHash()))

	// uncompressed input is stored compressed
	_, pub := btcec.PrivKeyFromBytes([]byte{1})
	fromUncompressed, err := NewBtcPublicKey(pub.SerializeUncompressed())
	require.NoError(t, err)
	assert.Equal(t, pk, fromUncompressed)

	_, err = BtcPublicKeyFromHex("02ff")
	assert.Error(t, err)
	_, err = BtcPublicKeyFromHex("zz")
	assert.Error(t, err)

	assert.True(t, BtcPublicKey{}.IsEmpty())
}

func TestBtcPublicKeyJSON(t *testing.T) {
	pk := mustPublicKey(t, generatorHex)
	bz, err := pk.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"`+generatorHex+`"`, string(bz))

	var decoded BtcPublicKey
	require.NoError(t, decoded.UnmarshalJSON(bz))
	assert.Equal(t, pk, decoded)

	bz, err = BtcPublicKey{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(bz))
	require.NoError(t, decoded.UnmarshalJSON(bz))
	assert.True(t, decoded.IsEmpty())
}

func TestNewDepositPublicKey(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pk, err := NewBtcPublicKey(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)

	var id1, id2 [32]byte
	id1[0] = 1
	id2[0] = 2

	derived1, err := pk.NewDepositPublicKey(id1)
	require.NoError(t, err)
	again, err := pk.NewDepositPublicKey(id1)
	require.NoError(t, err)
	derived2, err := pk.NewDepositPublicKey(id2)
	require.NoError(t, err)

	assert.Equal(t, derived1, again)
	assert.NotEqual(t, derived1, derived2)
	assert.NotEqual(t, pk, derived1)

	// k*(d*G) == (k*d)*G
	var k btcec.ModNScalar
	require.False(t, k.SetByteSlice(chainhash.DoubleHashB(append(pk.Bytes(), id1[:]...))))
	var kd btcec.ModNScalar
	kd.Mul2(&k, &priv.Key)
	kdBytes := kd.Bytes()
	_, expected := btcec.PrivKeyFromBytes(kdBytes[:])
	assert.Equal(t, hex.EncodeToString(expected.SerializeCompressed()), derived1.String())

	_, err = BtcPublicKey{}.NewDepositPublicKey(id1)
	assert.Error(t, err)
}

func TestBtcAddress(t *testing.T) {
	pk := mustPublicKey(t, generatorHex)

	segwit := NewP2WPKHAddress(pk)
	assert.Equal(t, P2WPKHv0, segwit.Kind)
	assert.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", segwit.String())
	script, err := segwit.ScriptPubKey()
	require.NoError(t, err)
	assert.Equal(t, "0014751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(script))

	parsed, err := ParseBtcAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(segwit))

	legacy, err := ParseBtcAddress("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH")
	require.NoError(t, err)
	assert.Equal(t, P2PKH, legacy.Kind)
	assert.Equal(t, segwit.Hash, legacy.Hash)
	assert.False(t, legacy.Equal(segwit))
	assert.Equal(t, -1, legacy.Compare(segwit))
	assert.Equal(t, 1, segwit.Compare(legacy))

	_, err = ParseBtcAddress("not-an-address")
	assert.Error(t, err)

	bad := BtcAddress{Kind: P2WPKHv0, Hash: []byte{1, 2, 3}}
	assert.Error(t, bad.Validate())
	assert.Equal(t, "", bad.String())
	_, err = bad.MarshalJSON()
	assert.Error(t, err)
}

func TestBtcAddressJSON(t *testing.T) {
	addr := NewP2WPKHAddress(mustPublicKey(t, generatorHex))
	bz, err := addr.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"`, string(bz))

	var decoded BtcAddress
	require.NoError(t, decoded.UnmarshalJSON(bz))
	assert.True(t, addr.Equal(decoded))

	assert.Error(t, decoded.UnmarshalJSON([]byte(`"bogus"`)))
}
