package collateral

import (
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral/types"
)

// InitGenesis sets the balances from genesis.
func InitGenesis(ctx sdk.Context, keeper Keeper, data types.GenesisState) {
	for _, b := range data.Balances {
		keeper.SetBalance(ctx, b)
	}
}

// ExportGenesis returns every non zero balance.
func ExportGenesis(ctx sdk.Context, keeper Keeper) types.GenesisState {
	return types.NewGenesisState(keeper.GetAllBalances(ctx))
}
