package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// Version marks the storage layout of the vault store.
type Version uint8

const (
	// V0 initial version, wallets hold encoded address strings.
	V0 Version = iota
	// V1 wallets hold script format BtcAddress.
	V1
)

// Wallet holds a vault's public key and every deposit address generated from it.
// Addresses are kept sorted and never removed.
type Wallet struct {
	Addresses []BtcAddress `json:"addresses" yaml:"addresses"`
	PublicKey BtcPublicKey `json:"public_key" yaml:"public_key"`
}

func NewWallet(publicKey BtcPublicKey) Wallet {
	return Wallet{
		Addresses: []BtcAddress{},
		PublicKey: publicKey,
	}
}

func (w Wallet) search(address BtcAddress) (int, bool) {
	i := sort.Search(len(w.Addresses), func(i int) bool {
		return w.Addresses[i].Compare(address) >= 0
	})
	return i, i < len(w.Addresses) && w.Addresses[i].Equal(address)
}

func (w Wallet) HasBtcAddress(address BtcAddress) bool {
	_, found := w.search(address)
	return found
}

// AddBtcAddress inserts the address, a no-op when it is already present.
func (w *Wallet) AddBtcAddress(address BtcAddress) {
	i, found := w.search(address)
	if found {
		return
	}
	addrs := make([]BtcAddress, 0, len(w.Addresses)+1)
	addrs = append(addrs, w.Addresses[:i]...)
	addrs = append(addrs, BtcAddress{Kind: address.Kind, Hash: copyBytes(address.Hash)})
	addrs = append(addrs, w.Addresses[i:]...)
	w.Addresses = addrs
}

type VaultStatus uint8

const (
	// Vault is active
	VaultStatusActive VaultStatus = iota
	// Vault has been liquidated
	VaultStatusLiquidated
	// Vault theft has been reported
	VaultStatusCommittedTheft
)

var vaultStatusNames = map[VaultStatus]string{
	VaultStatusActive:         "active",
	VaultStatusLiquidated:     "liquidated",
	VaultStatusCommittedTheft: "committed_theft",
}

func VaultStatusFromString(s string) (VaultStatus, error) {
	for status, name := range vaultStatusNames {
		if name == strings.ToLower(s) {
			return status, nil
		}
	}
	return VaultStatusActive, fmt.Errorf("unknown vault status %q", s)
}

func (s VaultStatus) String() string {
	if name, ok := vaultStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

func (s VaultStatus) IsValid() bool {
	_, ok := vaultStatusNames[s]
	return ok
}

func (s VaultStatus) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid vault status %d", uint8(s))
	}
	return json.Marshal(s.String())
}

func (s *VaultStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := VaultStatusFromString(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Vault is the persistent record of one registered vault.
type Vault struct {
	// Account identifier of the Vault
	ID sdk.CUAddress `json:"id"`
	// Number of tokens pending issue
	ToBeIssuedTokens math.Uint `json:"to_be_issued_tokens"`
	// Number of issued tokens
	IssuedTokens math.Uint `json:"issued_tokens"`
	// Number of tokens pending redeem
	ToBeRedeemedTokens math.Uint `json:"to_be_redeemed_tokens"`
	Wallet             Wallet    `json:"wallet"`
	// Block height until which this Vault is banned from being used for
	// issue, redeem and replace. nil if it was never banned.
	BannedUntil *int64      `json:"banned_until"`
	Status      VaultStatus `json:"status"`
}

func NewVault(id sdk.CUAddress, publicKey BtcPublicKey) Vault {
	return Vault{
		ID:                 id,
		ToBeIssuedTokens:   math.ZeroUint(),
		IssuedTokens:       math.ZeroUint(),
		ToBeRedeemedTokens: math.ZeroUint(),
		Wallet:             NewWallet(publicKey),
		Status:             VaultStatusActive,
	}
}

func (v Vault) IsLiquidated() bool {
	return v.Status == VaultStatusLiquidated
}

func (v Vault) IsActive() bool {
	return v.Status == VaultStatusActive
}

// Normalize replaces unset counters with zero.
func (v *Vault) Normalize() {
	v.ToBeIssuedTokens = normalizeUint(v.ToBeIssuedTokens)
	v.IssuedTokens = normalizeUint(v.IssuedTokens)
	v.ToBeRedeemedTokens = normalizeUint(v.ToBeRedeemedTokens)
	if v.Wallet.Addresses == nil {
		v.Wallet.Addresses = []BtcAddress{}
	}
}

func (v Vault) String() string {
	bannedUntil := "none"
	if v.BannedUntil != nil {
		bannedUntil = fmt.Sprintf("%d", *v.BannedUntil)
	}
	return fmt.Sprintf(`Vault:
  ID:                 %s
  ToBeIssuedTokens:   %s
  IssuedTokens:       %s
  ToBeRedeemedTokens: %s
  PublicKey:          %s
  Addresses:          %d
  BannedUntil:        %s
  Status:             %s`,
		v.ID, v.ToBeIssuedTokens, v.IssuedTokens, v.ToBeRedeemedTokens,
		v.Wallet.PublicKey, len(v.Wallet.Addresses), bannedUntil, v.Status)
}

// SystemVault is the pooled record that absorbs the obligations of liquidated vaults.
type SystemVault struct {
	ID                 sdk.CUAddress `json:"id"`
	ToBeIssuedTokens   math.Uint     `json:"to_be_issued_tokens"`
	IssuedTokens       math.Uint     `json:"issued_tokens"`
	ToBeRedeemedTokens math.Uint     `json:"to_be_redeemed_tokens"`
}

func NewSystemVault(id sdk.CUAddress) SystemVault {
	return SystemVault{
		ID:                 id,
		ToBeIssuedTokens:   math.ZeroUint(),
		IssuedTokens:       math.ZeroUint(),
		ToBeRedeemedTokens: math.ZeroUint(),
	}
}

func (v *SystemVault) Normalize() {
	v.ToBeIssuedTokens = normalizeUint(v.ToBeIssuedTokens)
	v.IssuedTokens = normalizeUint(v.IssuedTokens)
	v.ToBeRedeemedTokens = normalizeUint(v.ToBeRedeemedTokens)
}

func (v SystemVault) String() string {
	return fmt.Sprintf(`SystemVault:
  ID:                 %s
  ToBeIssuedTokens:   %s
  IssuedTokens:       %s
  ToBeRedeemedTokens: %s`,
		v.ID, v.ToBeIssuedTokens, v.IssuedTokens, v.ToBeRedeemedTokens)
}

func normalizeUint(u math.Uint) math.Uint {
	if u == (math.Uint{}) {
		return math.ZeroUint()
	}
	return u
}
