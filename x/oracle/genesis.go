package oracle

import (
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/oracle/types"
)

func InitGenesis(ctx sdk.Context, keeper Keeper, data types.GenesisState) {
	keeper.SetParams(ctx, data.Params)
	if data.ExchangeRate != nil {
		keeper.setExchangeRate(ctx, *data.ExchangeRate)
	}
}

func ExportGenesis(ctx sdk.Context, keeper Keeper) types.GenesisState {
	gs := types.GenesisState{Params: keeper.GetParams(ctx)}
	if rate, found := keeper.getExchangeRate(ctx); found {
		gs.ExchangeRate = &rate
	}
	return gs
}
