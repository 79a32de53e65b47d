package oracle

import (
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/oracle/types"
)

// NewQuerier creates a querier for oracle REST endpoints
func NewQuerier(keeper Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty oracle query path")
		}
		switch path[0] {
		case types.QueryExchangeRate:
			rate, found := keeper.getExchangeRate(ctx)
			if !found {
				return nil, types.ErrMissingExchangeRate(keeper.codespace, "exchange rate not set")
			}
			return marshal(keeper, rate)
		case types.QueryParams:
			return marshal(keeper, keeper.GetParams(ctx))
		default:
			return nil, sdk.ErrUnknownRequest("unknown oracle query endpoint")
		}
	}
}

func marshal(keeper Keeper, v interface{}) ([]byte, sdk.Error) {
	bz, err := codec.MarshalJSONIndent(keeper.cdc, v)
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}
