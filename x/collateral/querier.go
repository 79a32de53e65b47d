package collateral

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral/types"
)

// NewQuerier creates a querier for collateral REST endpoints
func NewQuerier(keeper Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty collateral query path")
		}
		switch path[0] {
		case types.QueryBalance:
			return queryBalance(ctx, req, keeper)
		default:
			return nil, sdk.ErrUnknownRequest("unknown collateral query endpoint")
		}
	}
}

func queryBalance(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params types.QueryBalanceParams
	if err := keeper.cdc.UnmarshalJSON(req.Data, &params); err != nil {
		return nil, sdk.ErrInternal(fmt.Sprintf("failed to parse params: %s", err))
	}
	if params.Address.Empty() {
		return nil, sdk.ErrInvalidAddress("empty address")
	}

	bz, err := codec.MarshalJSONIndent(keeper.cdc, keeper.GetBalance(ctx, params.Address))
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}
