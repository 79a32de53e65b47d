package bhvaultapp

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/hbtc-chain/bhvault/codec"
	"github.com/hbtc-chain/bhvault/x/collateral"
	"github.com/hbtc-chain/bhvault/x/oracle"
	"github.com/hbtc-chain/bhvault/x/vault"
)

// GenesisState of the app is the raw genesis state of each module, keyed by module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default state for the application.
func NewDefaultGenesisState(cdc *codec.Codec) GenesisState {
	return GenesisState{
		collateral.ModuleName: cdc.MustMarshalJSON(collateral.DefaultGenesisState()),
		oracle.ModuleName:     cdc.MustMarshalJSON(oracle.DefaultGenesisState()),
		vault.ModuleName:      cdc.MustMarshalJSON(vault.DefaultGenesisState()),
	}
}

func collateralGenesis(cdc *codec.Codec, gs GenesisState) collateral.GenesisState {
	data := collateral.DefaultGenesisState()
	if gs[collateral.ModuleName] != nil {
		cdc.MustUnmarshalJSON(gs[collateral.ModuleName], &data)
	}
	return data
}

func oracleGenesis(cdc *codec.Codec, gs GenesisState) oracle.GenesisState {
	data := oracle.DefaultGenesisState()
	if gs[oracle.ModuleName] != nil {
		cdc.MustUnmarshalJSON(gs[oracle.ModuleName], &data)
	}
	return data
}

// ValidateGenesis validates the genesis state of every module, then checks
// that every vault's collateral is locked in the collateral ledger.
func ValidateGenesis(cdc *codec.Codec, gs GenesisState) error {
	for _, name := range []string{collateral.ModuleName, oracle.ModuleName, vault.ModuleName} {
		if gs[name] == nil {
			return errors.Errorf("missing genesis state for module %s", name)
		}
	}

	collateralState := collateralGenesis(cdc, gs)
	if err := collateral.ValidateGenesis(collateralState); err != nil {
		return errors.Wrap(err, collateral.ModuleName)
	}
	if err := oracle.ValidateGenesis(oracleGenesis(cdc, gs)); err != nil {
		return errors.Wrap(err, oracle.ModuleName)
	}
	vaultState := vault.GetGenesisStateFromAppState(cdc, gs)
	if err := vault.ValidateGenesis(vaultState); err != nil {
		return errors.Wrap(err, vault.ModuleName)
	}

	locked := make(map[string]bool, len(collateralState.Balances))
	for _, b := range collateralState.Balances {
		if !b.Locked.IsZero() {
			locked[b.Address.String()] = true
		}
	}
	for _, v := range vaultState.Vaults {
		v.Normalize()
		if v.IsActive() && !(v.IssuedTokens.IsZero() && v.ToBeIssuedTokens.IsZero()) && !locked[v.ID.String()] {
			return errors.Errorf("vault %s holds tokens without locked collateral", v.ID)
		}
	}
	return nil
}
