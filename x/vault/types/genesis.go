package types

import (
	"encoding/json"
	"fmt"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
)

// GenesisState - all vault registry state that must be provided at genesis
type GenesisState struct {
	Params           Params      `json:"params"`
	Vaults           []Vault     `json:"vaults"`
	LiquidationVault SystemVault `json:"liquidation_vault"`
}

// NewGenesisState - Create a new genesis state
func NewGenesisState(params Params, vaults []Vault, liquidationVault SystemVault) GenesisState {
	return GenesisState{Params: params, Vaults: vaults, LiquidationVault: liquidationVault}
}

// DefaultGenesisState - Return a default genesis state
func DefaultGenesisState() GenesisState {
	return NewGenesisState(DefaultParams(), []Vault{}, NewSystemVault(LiquidationVaultAddress()))
}

func GetGenesisStateFromAppState(cdc *codec.Codec, appState map[string]json.RawMessage) GenesisState {
	var genesisState GenesisState
	if appState[ModuleName] != nil {
		cdc.MustUnmarshalJSON(appState[ModuleName], &genesisState)
	}

	return genesisState
}

// ValidateGenesis performs basic validation of vault genesis data returning an
// error for any failed validation criteria.
func ValidateGenesis(data GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(data.Vaults))
	for _, v := range data.Vaults {
		if err := sdk.VerifyAddressFormat(v.ID); err != nil {
			return fmt.Errorf("invalid vault id %X: %v", []byte(v.ID), err)
		}
		if seen[v.ID.String()] {
			return fmt.Errorf("duplicate vault %s", v.ID)
		}
		seen[v.ID.String()] = true

		v.Normalize()
		if !v.Status.IsValid() {
			return fmt.Errorf("vault %s has invalid status %d", v.ID, v.Status)
		}
		if v.IsActive() && v.ToBeRedeemedTokens.GT(v.IssuedTokens) {
			return fmt.Errorf("vault %s has %s to be redeemed but only %s issued",
				v.ID, v.ToBeRedeemedTokens, v.IssuedTokens)
		}
		if !v.IsActive() && !(v.IssuedTokens.IsZero() && v.ToBeIssuedTokens.IsZero()) {
			return fmt.Errorf("vault %s is %s but still holds tokens", v.ID, v.Status)
		}
		if v.Wallet.PublicKey.IsEmpty() {
			return fmt.Errorf("vault %s has no public key", v.ID)
		}
		for _, addr := range v.Wallet.Addresses {
			if err := addr.Validate(); err != nil {
				return fmt.Errorf("vault %s: %v", v.ID, err)
			}
		}
	}

	if !data.LiquidationVault.ID.Empty() && !data.LiquidationVault.ID.Equals(LiquidationVaultAddress()) {
		return fmt.Errorf("liquidation vault id must be %s, got %s", LiquidationVaultAddress(), data.LiquidationVault.ID)
	}
	if seen[LiquidationVaultAddress().String()] {
		return fmt.Errorf("liquidation vault %s registered as a regular vault", LiquidationVaultAddress())
	}
	return nil
}
