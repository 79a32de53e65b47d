package vault

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

// EndBlocker liquidates every vault that fell below the liquidation threshold in this block.
func EndBlocker(ctx sdk.Context, k Keeper) []sdk.CUAddress {
	liquidated := k.LiquidateUndercollateralizedVaults(ctx)
	if len(liquidated) > 0 {
		k.Logger(ctx).Info("liquidated undercollateralized vaults", "height", ctx.BlockHeight(), "count", len(liquidated))
	}
	return liquidated
}
