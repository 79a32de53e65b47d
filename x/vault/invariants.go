package vault

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// RegisterInvariants registers all vault registry invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "redeemable-tokens", RedeemableInvariant(k))
	ir.RegisterRoute(types.ModuleName, "liquidated-status", StatusInvariant(k))
	ir.RegisterRoute(types.ModuleName, "liquidation-coverage", LiquidationCoverageInvariant(k))
}

// AllInvariants runs all invariants of the vault module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{RedeemableInvariant(k), StatusInvariant(k), LiquidationCoverageInvariant(k)} {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}
		return "", false
	}
}

// RedeemableInvariant checks that no active vault, and not the liquidation
// vault, has more tokens pending redemption than issued.
func RedeemableInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		k.IterateVaults(ctx, func(v types.Vault) bool {
			if v.IsActive() && v.ToBeRedeemedTokens.GT(v.IssuedTokens) {
				msg += fmt.Sprintf("\tvault %s: to be redeemed %s > issued %s\n", v.ID, v.ToBeRedeemedTokens, v.IssuedTokens)
				broken = true
			}
			return false
		})
		pool := k.GetLiquidationVault(ctx)
		if pool.ToBeRedeemedTokens.GT(pool.IssuedTokens) {
			msg += fmt.Sprintf("\tliquidation vault: to be redeemed %s > issued %s\n", pool.ToBeRedeemedTokens, pool.IssuedTokens)
			broken = true
		}
		return sdk.FormatInvariant(types.ModuleName, "redeemable tokens", msg), broken
	}
}

// StatusInvariant checks that liquidated vaults hold no issued or to-be-issued tokens.
func StatusInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		k.IterateVaults(ctx, func(v types.Vault) bool {
			if !v.Status.IsValid() {
				msg += fmt.Sprintf("\tvault %s: invalid status %d\n", v.ID, v.Status)
				broken = true
			} else if !v.IsActive() && !(v.IssuedTokens.IsZero() && v.ToBeIssuedTokens.IsZero()) {
				msg += fmt.Sprintf("\tvault %s is %s with issued %s, to be issued %s\n",
					v.ID, v.Status, v.IssuedTokens, v.ToBeIssuedTokens)
				broken = true
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "liquidated status", msg), broken
	}
}

// LiquidationCoverageInvariant checks that the liquidation vault still carries
// the pending redemptions of every liquidated vault.
func LiquidationCoverageInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pending := math.ZeroUint()
		k.IterateVaults(ctx, func(v types.Vault) bool {
			if !v.IsActive() {
				pending = pending.Add(v.ToBeRedeemedTokens)
			}
			return false
		})
		pool := k.GetLiquidationVault(ctx)
		broken := pool.ToBeRedeemedTokens.LT(pending)

		return sdk.FormatInvariant(types.ModuleName, "liquidation coverage",
			fmt.Sprintf(
				"\tsum of liquidated vaults to be redeemed: %s\n"+
					"\tliquidation vault to be redeemed:        %s\n",
				pending, pool.ToBeRedeemedTokens)), broken
	}
}
