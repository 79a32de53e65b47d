package types

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// WalletV0 is the wallet layout before script format addresses, with
// addresses kept as their encoded strings.
type WalletV0 struct {
	Addresses []string     `json:"addresses"`
	PublicKey BtcPublicKey `json:"public_key"`
}

// VaultV0 is the vault layout stored under Version V0.
type VaultV0 struct {
	ID                 sdk.CUAddress `json:"id"`
	ToBeIssuedTokens   math.Uint     `json:"to_be_issued_tokens"`
	IssuedTokens       math.Uint     `json:"issued_tokens"`
	ToBeRedeemedTokens math.Uint     `json:"to_be_redeemed_tokens"`
	Wallet             WalletV0      `json:"wallet"`
	BannedUntil        *int64        `json:"banned_until"`
	Status             VaultStatus   `json:"status"`
}

// Upgrade converts the record to the current layout.
func (v VaultV0) Upgrade() (Vault, error) {
	vault := Vault{
		ID:                 v.ID,
		ToBeIssuedTokens:   v.ToBeIssuedTokens,
		IssuedTokens:       v.IssuedTokens,
		ToBeRedeemedTokens: v.ToBeRedeemedTokens,
		Wallet:             NewWallet(v.Wallet.PublicKey),
		BannedUntil:        v.BannedUntil,
		Status:             v.Status,
	}
	for _, encoded := range v.Wallet.Addresses {
		addr, err := ParseBtcAddress(encoded)
		if err != nil {
			return Vault{}, err
		}
		vault.Wallet.AddBtcAddress(addr)
	}
	vault.Normalize()
	return vault, nil
}
