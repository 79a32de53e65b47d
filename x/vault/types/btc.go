package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// BtcNetParams selects the bitcoin network used to render and parse deposit addresses.
var BtcNetParams = &chaincfg.MainNetParams

// BtcPublicKeyLen is the length of a compressed secp256k1 public key.
const BtcPublicKeyLen = btcec.PubKeyBytesLenCompressed

// BtcPublicKey is a compressed secp256k1 public key owned by a vault.
type BtcPublicKey [BtcPublicKeyLen]byte

// NewBtcPublicKey parses a serialized (compressed or uncompressed) public key.
func NewBtcPublicKey(bz []byte) (BtcPublicKey, error) {
	var pk BtcPublicKey
	key, err := btcec.ParsePubKey(bz)
	if err != nil {
		return pk, err
	}
	copy(pk[:], key.SerializeCompressed())
	return pk, nil
}

// BtcPublicKeyFromHex parses a hex encoded public key.
func BtcPublicKeyFromHex(s string) (BtcPublicKey, error) {
	bz, err := hex.DecodeString(s)
	if err != nil {
		return BtcPublicKey{}, err
	}
	return NewBtcPublicKey(bz)
}

func (pk BtcPublicKey) Bytes() []byte {
	return pk[:]
}

func (pk BtcPublicKey) IsEmpty() bool {
	return pk == BtcPublicKey{}
}

func (pk BtcPublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// ToHash returns hash160 of the key.
func (pk BtcPublicKey) ToHash() []byte {
	return btcutil.Hash160(pk[:])
}

// NewDepositPublicKey derives the key k*P where k = sha256d(P || secureID).
// Distinct secure ids give distinct keys for the same P.
func (pk BtcPublicKey) NewDepositPublicKey(secureID [32]byte) (BtcPublicKey, error) {
	var derived BtcPublicKey

	key, err := btcec.ParsePubKey(pk[:])
	if err != nil {
		return derived, err
	}

	preimage := make([]byte, 0, BtcPublicKeyLen+len(secureID))
	preimage = append(preimage, pk[:]...)
	preimage = append(preimage, secureID[:]...)

	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(chainhash.DoubleHashB(preimage)); overflow || k.IsZero() {
		return derived, fmt.Errorf("invalid tweak for public key %s", pk)
	}

	var point, result btcec.JacobianPoint
	key.AsJacobian(&point)
	btcec.ScalarMultNonConst(&k, &point, &result)
	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return derived, fmt.Errorf("derived point at infinity for public key %s", pk)
	}
	result.ToAffine()

	copy(derived[:], btcec.NewPublicKey(&result.X, &result.Y).SerializeCompressed())
	return derived, nil
}

func (pk BtcPublicKey) MarshalJSON() ([]byte, error) {
	if pk.IsEmpty() {
		return json.Marshal("")
	}
	return json.Marshal(pk.String())
}

func (pk *BtcPublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*pk = BtcPublicKey{}
		return nil
	}
	parsed, err := BtcPublicKeyFromHex(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

func (pk BtcPublicKey) MarshalYAML() (interface{}, error) {
	return pk.String(), nil
}

// AddressKind is the output script template of a BtcAddress.
type AddressKind uint8

const (
	P2PKH AddressKind = iota
	P2SH
	P2WPKHv0
	P2WSHv0
)

func (k AddressKind) String() string {
	switch k {
	case P2PKH:
		return "p2pkh"
	case P2SH:
		return "p2sh"
	case P2WPKHv0:
		return "p2wpkh"
	case P2WSHv0:
		return "p2wsh"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// BtcAddress is a bitcoin address in script format: the template kind plus its hash.
type BtcAddress struct {
	Kind AddressKind
	Hash []byte
}

func NewP2WPKHAddress(pk BtcPublicKey) BtcAddress {
	return BtcAddress{Kind: P2WPKHv0, Hash: pk.ToHash()}
}

// ParseBtcAddress decodes any encoded address btcutil understands for the configured network.
func ParseBtcAddress(s string) (BtcAddress, error) {
	addr, err := btcutil.DecodeAddress(s, BtcNetParams)
	if err != nil {
		return BtcAddress{}, err
	}
	return btcAddressFromBtcutil(addr)
}

func btcAddressFromBtcutil(addr btcutil.Address) (BtcAddress, error) {
	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return BtcAddress{Kind: P2PKH, Hash: copyBytes(a.Hash160()[:])}, nil
	case *btcutil.AddressPubKey:
		return BtcAddress{Kind: P2PKH, Hash: copyBytes(a.AddressPubKeyHash().Hash160()[:])}, nil
	case *btcutil.AddressScriptHash:
		return BtcAddress{Kind: P2SH, Hash: copyBytes(a.Hash160()[:])}, nil
	case *btcutil.AddressWitnessPubKeyHash:
		return BtcAddress{Kind: P2WPKHv0, Hash: copyBytes(a.WitnessProgram())}, nil
	case *btcutil.AddressWitnessScriptHash:
		return BtcAddress{Kind: P2WSHv0, Hash: copyBytes(a.WitnessProgram())}, nil
	default:
		return BtcAddress{}, fmt.Errorf("unsupported address type %T", addr)
	}
}

func (a BtcAddress) toBtcutil() (btcutil.Address, error) {
	switch a.Kind {
	case P2PKH:
		return btcutil.NewAddressPubKeyHash(a.Hash, BtcNetParams)
	case P2SH:
		return btcutil.NewAddressScriptHashFromHash(a.Hash, BtcNetParams)
	case P2WPKHv0:
		return btcutil.NewAddressWitnessPubKeyHash(a.Hash, BtcNetParams)
	case P2WSHv0:
		return btcutil.NewAddressWitnessScriptHash(a.Hash, BtcNetParams)
	default:
		return nil, fmt.Errorf("unknown address kind %d", a.Kind)
	}
}

// Validate checks the hash length matches the kind.
func (a BtcAddress) Validate() error {
	_, err := a.toBtcutil()
	return err
}

// String renders the address, or an empty string for an invalid one.
func (a BtcAddress) String() string {
	addr, err := a.toBtcutil()
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}

// ScriptPubKey returns the output script paying to the address.
func (a BtcAddress) ScriptPubKey() ([]byte, error) {
	addr, err := a.toBtcutil()
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}

func (a BtcAddress) Equal(other BtcAddress) bool {
	return a.Compare(other) == 0
}

// Compare orders addresses by kind, then by hash.
func (a BtcAddress) Compare(other BtcAddress) int {
	if a.Kind != other.Kind {
		if a.Kind < other.Kind {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Hash, other.Hash)
}

func (a BtcAddress) MarshalJSON() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(a.String())
}

func (a *BtcAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBtcAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a BtcAddress) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

func copyBytes(bz []byte) []byte {
	out := make([]byte, len(bz))
	copy(out, bz)
	return out
}
