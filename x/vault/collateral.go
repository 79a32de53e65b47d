package vault

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// MaxAmount is the largest token or collateral amount the registry computes with (2^128 - 1).
var MaxAmount = math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

func uintToDec(u math.Uint) math.LegacyDec {
	return math.LegacyNewDecFromBigInt(u.BigInt())
}

func (k Keeper) checkAmount(amount *big.Int) (math.Uint, sdk.Error) {
	return checkAmount(k.codespace, amount)
}

func checkAmount(codespace sdk.CodespaceType, amount *big.Int) (math.Uint, sdk.Error) {
	if amount.Sign() < 0 {
		return math.Uint{}, types.ErrArithmeticUnderflow(codespace, fmt.Sprintf("negative amount %s", amount))
	}
	if amount.Cmp(MaxAmount.BigInt()) > 0 {
		return math.Uint{}, types.ErrArithmeticOverflow(codespace, fmt.Sprintf("amount %s exceeds %s", amount, MaxAmount))
	}
	return math.NewUintFromBigInt(amount), nil
}

// decToAmount truncates d to an amount.
func (k Keeper) decToAmount(d math.LegacyDec) (math.Uint, sdk.Error) {
	return k.checkAmount(d.TruncateInt().BigInt())
}

func (k Keeper) checkedAdd(a, b math.Uint) (math.Uint, sdk.Error) {
	return checkedAdd(k.codespace, a, b)
}

func checkedAdd(codespace sdk.CodespaceType, a, b math.Uint) (math.Uint, sdk.Error) {
	return checkAmount(codespace, new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// CalculateCollateral returns collateral * numerator / denominator, or the
// whole collateral when both are zero. Only the quotient is bounded by MaxAmount.
func (k Keeper) CalculateCollateral(collateral, numerator, denominator math.Uint) (math.Uint, sdk.Error) {
	if numerator.IsZero() && denominator.IsZero() {
		return collateral, nil
	}
	if denominator.IsZero() {
		return math.Uint{}, types.ErrArithmeticUnderflow(k.codespace, "division by zero")
	}
	product := new(big.Int).Mul(collateral.BigInt(), numerator.BigInt())
	return k.checkAmount(product.Quo(product, denominator.BigInt()))
}

// CalculateMaxIssuableFromCollateral returns the tokens collateral secures at threshold.
func (k Keeper) CalculateMaxIssuableFromCollateral(ctx sdk.Context, collateral math.Uint, threshold math.LegacyDec) (math.Uint, sdk.Error) {
	if threshold.IsNil() || !threshold.IsPositive() {
		return math.Uint{}, types.ErrInvariantViolation(k.codespace, fmt.Sprintf("threshold %s must be positive", threshold))
	}
	collateralInBtc, err := k.ok.DotsToBtc(ctx, collateral)
	if err != nil {
		return math.Uint{}, err
	}
	return k.decToAmount(uintToDec(collateralInBtc).Quo(threshold))
}

func (k Keeper) isCollateralBelowThreshold(ctx sdk.Context, collateral, btcAmount math.Uint, threshold math.LegacyDec) (bool, sdk.Error) {
	maxTokens, err := k.CalculateMaxIssuableFromCollateral(ctx, collateral, threshold)
	if err != nil {
		return false, err
	}
	return maxTokens.LT(btcAmount), nil
}

// IsCollateralBelowSecureThreshold reports whether collateral cannot secure btcAmount.
func (k Keeper) IsCollateralBelowSecureThreshold(ctx sdk.Context, collateral, btcAmount math.Uint) (bool, sdk.Error) {
	return k.isCollateralBelowThreshold(ctx, collateral, btcAmount, k.GetParams(ctx).SecureCollateralThreshold)
}

func (k Keeper) isVaultBelowThreshold(ctx sdk.Context, id sdk.CUAddress, threshold math.LegacyDec) (bool, sdk.Error) {
	vault, err := k.GetVault(ctx, id)
	if err != nil {
		return false, err
	}
	return k.isCollateralBelowThreshold(ctx, k.ck.GetCollateral(ctx, id), vault.IssuedTokens, threshold)
}

func (k Keeper) IsVaultBelowLiquidationThreshold(ctx sdk.Context, id sdk.CUAddress) (bool, sdk.Error) {
	return k.isVaultBelowThreshold(ctx, id, k.GetParams(ctx).LiquidationCollateralThreshold)
}

func (k Keeper) IsVaultBelowPremiumThreshold(ctx sdk.Context, id sdk.CUAddress) (bool, sdk.Error) {
	return k.isVaultBelowThreshold(ctx, id, k.GetParams(ctx).PremiumRedeemThreshold)
}

func (k Keeper) IsVaultBelowSecureThreshold(ctx sdk.Context, id sdk.CUAddress) (bool, sdk.Error) {
	return k.isVaultBelowThreshold(ctx, id, k.GetParams(ctx).SecureCollateralThreshold)
}
