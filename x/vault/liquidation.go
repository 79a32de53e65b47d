package vault

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/exported"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// Liquidate slashes the collateral backing issued tokens not pending
// redemption into pool, adds the vault's three token counters to pool and
// clears the vault's issued and to-be-issued tokens. To-be-redeemed tokens
// stay on the vault so pending redemptions can still complete.
func (rv *RichVault) Liquidate(ctx sdk.Context, pool exported.UpdatableVault, status types.VaultStatus) sdk.Error {
	if status == types.VaultStatusActive || !status.IsValid() {
		return types.ErrInvalidStatusTransition(rv.k.codespace, fmt.Sprintf("cannot liquidate into status %s", status))
	}
	if !rv.data.IsActive() {
		return types.ErrVaultNotActive(rv.k.codespace, fmt.Sprintf("vault %s is already %s", rv.data.ID, rv.data.Status))
	}

	issued := rv.data.IssuedTokens
	toBeIssued := rv.data.ToBeIssuedTokens
	toBeRedeemed := rv.data.ToBeRedeemedTokens
	if toBeRedeemed.GT(issued) {
		return types.ErrArithmeticUnderflow(rv.k.codespace,
			fmt.Sprintf("vault %s has %s to be redeemed but only %s issued", rv.data.ID, toBeRedeemed, issued))
	}

	for _, merge := range [][2]math.Uint{
		{pool.IssuedTokens(), issued},
		{pool.ToBeIssuedTokens(), toBeIssued},
		{pool.ToBeRedeemedTokens(), toBeRedeemed},
	} {
		if _, err := rv.k.checkedAdd(merge[0], merge[1]); err != nil {
			return err
		}
	}

	toSlash, err := rv.k.CalculateCollateral(rv.GetCollateral(ctx), issued.Sub(toBeRedeemed), issued)
	if err != nil {
		return err
	}
	if err := rv.k.ck.SlashCollateral(ctx, rv.data.ID, pool.ID(), toSlash); err != nil {
		return err
	}

	pool.ForceIssueTokens(ctx, issued)
	pool.ForceIncreaseToBeIssued(ctx, toBeIssued)
	pool.ForceIncreaseToBeRedeemed(ctx, toBeRedeemed)

	rv.update(ctx, func(v *types.Vault) {
		v.ToBeIssuedTokens = math.ZeroUint()
		v.IssuedTokens = math.ZeroUint()
		v.Status = status
	})
	return nil
}

func (k Keeper) liquidate(ctx sdk.Context, id sdk.CUAddress, status types.VaultStatus) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	pool := k.GetRichLiquidationVault(ctx)
	before := rv.Data()
	if err := rv.Liquidate(ctx, pool, status); err != nil {
		return err
	}
	k.Logger(ctx).Info("vault liquidated", "id", id.String(), "status", status.String(),
		"issued", before.IssuedTokens.String(), "to_be_issued", before.ToBeIssuedTokens.String(),
		"to_be_redeemed", before.ToBeRedeemedTokens.String())
	return nil
}

// LiquidateVault moves an under-collateralized vault into the liquidation vault.
func (k Keeper) LiquidateVault(ctx sdk.Context, id sdk.CUAddress) sdk.Error {
	return k.liquidate(ctx, id, types.VaultStatusLiquidated)
}

// LiquidateTheftVault moves a vault reported for theft into the liquidation vault.
func (k Keeper) LiquidateTheftVault(ctx sdk.Context, id sdk.CUAddress) sdk.Error {
	return k.liquidate(ctx, id, types.VaultStatusCommittedTheft)
}

// LiquidateUndercollateralizedVaults liquidates every active vault below the
// liquidation threshold and returns the liquidated ids. Failures are logged
// and skipped.
func (k Keeper) LiquidateUndercollateralizedVaults(ctx sdk.Context) []sdk.CUAddress {
	var candidates []sdk.CUAddress
	k.IterateVaults(ctx, func(v types.Vault) bool {
		if v.IsActive() {
			candidates = append(candidates, v.ID)
		}
		return false
	})

	var liquidated []sdk.CUAddress
	for _, id := range candidates {
		below, err := k.IsVaultBelowLiquidationThreshold(ctx, id)
		if err != nil {
			k.Logger(ctx).Error("failed to check vault collateralization", "id", id.String(), "err", err.ABCILog())
			continue
		}
		if !below {
			continue
		}
		if err := k.LiquidateVault(ctx, id); err != nil {
			k.Logger(ctx).Error("failed to liquidate vault", "id", id.String(), "err", err.ABCILog())
			continue
		}
		liquidated = append(liquidated, id)
	}
	return liquidated
}
