package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"gopkg.in/yaml.v2"
)

const (
	// AddrLen defines a valid address length
	AddrLen = 20
)

// The three leading bytes render as "HBC" once base58 encoded.
var (
	AddrBytePrefix = []byte{2, 16, 66}
	AddrStrPrefix  = "HBC"
	AddrPrefixLen  = len(AddrBytePrefix)
)

// addrChecksum is the first four bytes of sha256^2.
func addrChecksum(input []byte) (cksum [4]byte) {
	copy(cksum[:], chainhash.DoubleHashB(input)[:4])
	return
}

var (
	_ yaml.Marshaler   = CUAddress{}
	_ yaml.Unmarshaler = (*CUAddress)(nil)
)

// CUAddress a wrapper around bytes meant to represent a custodian (vault) account.
// When marshaled to a string or JSON, it uses Base58.
type CUAddress []byte

// CUAddressFromHex creates an CUAddress from a hex string.
func CUAddressFromHex(address string) (addr CUAddress, err error) {
	if len(address) == 0 {
		return addr, errors.New("decoding hex address failed: must provide an address")
	}

	bz, err := hex.DecodeString(address)
	if err != nil {
		return nil, err
	}

	return CUAddress(bz), nil
}

// CUAddressFromBase58 creates an CUAddress from a base58 string prefixed with "HBC".
func CUAddressFromBase58(address string) (addr CUAddress, err error) {
	// blank input get CUAddress{} without error
	if len(strings.TrimSpace(address)) == 0 {
		return CUAddress{}, nil
	}

	if len(strings.TrimSpace(address)) < AddrPrefixLen || address[:AddrPrefixLen] != AddrStrPrefix {
		return nil, fmt.Errorf("invalid cuaddress:%v with prefixed !=HBC", address)
	}

	bz, version, err := base58.CheckDecode(address)
	if err != nil {
		return CUAddress{}, err
	}

	if len(bz) != (AddrLen + AddrPrefixLen - 1) {
		return nil, errors.New("Incorrect address length")
	}

	prefix := make([]byte, 0, AddrPrefixLen)
	prefix = append(prefix, version)
	prefix = append(prefix, bz[:AddrPrefixLen-1]...)

	if !bytes.Equal(prefix, AddrBytePrefix) {
		return CUAddress{}, errors.New("string is not prefixed with `HBC`")
	}
	return CUAddress(bz[2:]), nil
}

func CUAddressFromPubKey(pubKey crypto.PubKey) CUAddress {
	return CUAddress(pubKey.Address().Bytes())
}

func CUAddressFromByte(b []byte) CUAddress {
	if len(b) != AddrLen {
		return CUAddress{}
	}
	return CUAddress(b)
}

// Returns boolean for whether CUAddress equal to another address
func (ca CUAddress) Equals(ca2 CUAddress) bool {
	if ca.Empty() && ca2.Empty() {
		return true
	}

	return bytes.Equal(ca.Bytes(), ca2.Bytes())
}

// Returns boolean for whether an CUAddress is empty
func (ca CUAddress) Empty() bool {
	if ca == nil {
		return true
	}

	ca2 := CUAddress{}
	return bytes.Equal(ca.Bytes(), ca2.Bytes())
}

// MarshalJSON marshals to JSON using Base58.
func (ca CUAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(ca.String())
}

// UnmarshalJSON unmarshals from JSON assuming Base58 encoding.
func (ca *CUAddress) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}

	ca2, err := CUAddressFromBase58(s)
	if err != nil {
		return err
	}

	*ca = ca2
	return nil
}

// MarshalYAML marshals to YAML using Base58.
func (ca CUAddress) MarshalYAML() (interface{}, error) {
	return ca.String(), nil
}

// UnmarshalYAML unmarshals from YAML assuming Base58 encoding.
func (ca *CUAddress) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	addr, err := CUAddressFromBase58(s)
	if err != nil {
		return err
	}
	*ca = addr
	return nil
}

// Bytes returns the raw address bytes.
func (ca CUAddress) Bytes() []byte {
	return ca
}

// String implements the Stringer interface.
func (ca CUAddress) String() string {
	if len(ca) != AddrLen {
		return ""
	}
	b := make([]byte, 0, AddrPrefixLen+len(ca)+4)
	b = append(b, AddrBytePrefix...) //add 'HBC' prefix
	b = append(b, ca[:]...)
	cksum := addrChecksum(b)
	b = append(b, cksum[:]...)
	return base58.Encode(b)
}

// Format implements the fmt.Formatter interface.
// nolint: errcheck
func (ca CUAddress) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		s.Write([]byte(ca.String()))
	case 'p':
		s.Write([]byte(fmt.Sprintf("%p", ca)))
	default:
		s.Write([]byte(fmt.Sprintf("%X", []byte(ca))))
	}
}

func (ca CUAddress) IsValidAddr() bool {
	if len(ca) != AddrLen {
		return false
	}
	return IsValidAddr(ca.String())
}

func NewCUAddress() CUAddress {
	pubKey := secp256k1.GenPrivKey().PubKey()
	return CUAddress(pubKey.Address())
}

// ModuleAddress returns the address of a module owned account, e.g. the
// liquidation vault.
func ModuleAddress(name string) CUAddress {
	return CUAddress(crypto.AddressHash([]byte(name)))
}

func IsValidAddr(addr string) bool {
	if len(addr) <= AddrPrefixLen {
		return false
	}
	if addr[:3] != AddrStrPrefix {
		return false
	}
	_, _, err := base58.CheckDecode(addr)
	return err == nil
}

// VerifyAddressFormat verifies that the provided bytes form a valid address
func VerifyAddressFormat(bz []byte) error {
	if len(bz) != AddrLen {
		return errors.New("Incorrect address length")
	}
	return nil
}
