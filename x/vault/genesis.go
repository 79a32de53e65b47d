package vault

import (
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// InitGenesis sets the vault registry state from genesis. The collateral
// backing the vaults is set by the collateral module's own genesis.
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	k.SetParams(ctx, data.Params)
	for _, vault := range data.Vaults {
		vault.Normalize()
		k.SetVault(ctx, vault)
	}

	liquidationVault := data.LiquidationVault
	if liquidationVault.ID.Empty() {
		liquidationVault.ID = types.LiquidationVaultAddress()
	}
	liquidationVault.Normalize()
	k.SetLiquidationVault(ctx, liquidationVault)

	k.SetStorageVersion(ctx, types.V1)
}

// ExportGenesis returns a GenesisState for a given context and keeper.
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	return types.NewGenesisState(k.GetParams(ctx), k.GetAllVaults(ctx), k.GetLiquidationVault(ctx))
}
