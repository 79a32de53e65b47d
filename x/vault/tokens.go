package vault

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// Registry level entry points used by the issue, redeem and replace workflows.

// DepositCollateral locks additional collateral for an active vault.
func (k Keeper) DepositCollateral(ctx sdk.Context, id sdk.CUAddress, amount math.Uint) sdk.Error {
	rv, err := k.GetActiveRichVault(ctx, id)
	if err != nil {
		return err
	}
	return rv.IncreaseCollateral(ctx, amount)
}

func (k Keeper) WithdrawCollateral(ctx sdk.Context, id sdk.CUAddress, amount math.Uint) sdk.Error {
	rv, err := k.GetActiveRichVault(ctx, id)
	if err != nil {
		return err
	}
	return rv.WithdrawCollateral(ctx, amount)
}

// TryIncreaseToBeIssuedTokens reserves issuable capacity of an active, unbanned vault.
func (k Keeper) TryIncreaseToBeIssuedTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetActiveRichVault(ctx, id)
	if err != nil {
		return err
	}
	if err := rv.EnsureNotBanned(ctx.BlockHeight()); err != nil {
		return err
	}
	return rv.IncreaseToBeIssued(ctx, tokens)
}

// DecreaseToBeIssuedTokens cancels a pending issue. The pending issue of a
// liquidated vault was moved to the pool, so it is cancelled there.
func (k Keeper) DecreaseToBeIssuedTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	if rv.Data().IsActive() {
		return rv.DecreaseToBeIssued(ctx, tokens)
	}

	pool := k.GetRichLiquidationVault(ctx)
	if err := k.ensureToBeIssued(pool, tokens); err != nil {
		return err
	}
	pool.ForceDecreaseToBeIssued(ctx, tokens)
	return nil
}

// IssueTokens completes an issue. An issue requested against a liquidated
// vault is completed by the pool.
func (k Keeper) IssueTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	if rv.Data().IsActive() {
		return rv.IssueTokens(ctx, tokens)
	}

	pool := k.GetRichLiquidationVault(ctx)
	if err := k.ensureToBeIssued(pool, tokens); err != nil {
		return err
	}
	if _, err := k.checkedAdd(pool.IssuedTokens(), tokens); err != nil {
		return err
	}
	pool.ForceDecreaseToBeIssued(ctx, tokens)
	pool.ForceIssueTokens(ctx, tokens)
	return nil
}

// TryIncreaseToBeRedeemedTokens commits issued tokens of an active, unbanned vault to a redemption.
func (k Keeper) TryIncreaseToBeRedeemedTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetActiveRichVault(ctx, id)
	if err != nil {
		return err
	}
	if err := rv.EnsureNotBanned(ctx.BlockHeight()); err != nil {
		return err
	}
	return rv.IncreaseToBeRedeemed(ctx, tokens)
}

// DecreaseToBeRedeemedTokens cancels a pending redemption. For a liquidated
// vault the pool's matching commitment is cancelled too.
func (k Keeper) DecreaseToBeRedeemedTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	if rv.Data().IsActive() {
		return rv.DecreaseToBeRedeemed(ctx, tokens)
	}

	pool := k.GetRichLiquidationVault(ctx)
	if err := k.ensureToBeRedeemed(rv.ToBeRedeemedTokens(), tokens, id); err != nil {
		return err
	}
	if err := k.ensureToBeRedeemed(pool.ToBeRedeemedTokens(), tokens, pool.ID()); err != nil {
		return err
	}
	rv.ForceDecreaseToBeRedeemed(ctx, tokens)
	pool.ForceDecreaseToBeRedeemed(ctx, tokens)
	return nil
}

// RedeemTokens completes a redemption. The tokens of a liquidated vault were
// moved to the pool, so the pool burns them while the vault only drops its
// pending redemption.
func (k Keeper) RedeemTokens(ctx sdk.Context, id sdk.CUAddress, tokens math.Uint) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	if rv.Data().IsActive() {
		return rv.RedeemTokens(ctx, tokens)
	}

	pool := k.GetRichLiquidationVault(ctx)
	if err := k.ensureToBeRedeemed(rv.ToBeRedeemedTokens(), tokens, id); err != nil {
		return err
	}
	if err := k.ensureToBeRedeemed(pool.ToBeRedeemedTokens(), tokens, pool.ID()); err != nil {
		return err
	}
	if pool.IssuedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(k.codespace,
			fmt.Sprintf("liquidation vault has %s issued, cannot redeem %s", pool.IssuedTokens(), tokens))
	}
	rv.ForceDecreaseToBeRedeemed(ctx, tokens)
	return pool.DecreaseTokens(ctx, tokens)
}

// ReplaceTokens moves tokens pending redemption on the old vault to issued tokens on the new one.
func (k Keeper) ReplaceTokens(ctx sdk.Context, oldID, newID sdk.CUAddress, tokens math.Uint) sdk.Error {
	oldVault, err := k.GetActiveRichVault(ctx, oldID)
	if err != nil {
		return err
	}
	newVault, err := k.GetActiveRichVault(ctx, newID)
	if err != nil {
		return err
	}
	if oldID.Equals(newID) {
		return sdk.ErrInvalidAddress("cannot replace a vault with itself")
	}
	return oldVault.Transfer(ctx, newVault, tokens)
}

// NewDepositAddress derives and records a fresh deposit address of an active vault.
func (k Keeper) NewDepositAddress(ctx sdk.Context, id sdk.CUAddress, secureID [32]byte) (types.BtcAddress, sdk.Error) {
	rv, err := k.GetActiveRichVault(ctx, id)
	if err != nil {
		return types.BtcAddress{}, err
	}
	return rv.NewDepositAddress(ctx, secureID)
}

// UpdatePublicKey replaces the key future deposit addresses are derived from.
func (k Keeper) UpdatePublicKey(ctx sdk.Context, id sdk.CUAddress, publicKey types.BtcPublicKey) sdk.Error {
	if publicKey.IsEmpty() {
		return types.ErrInvalidPublicKey(k.codespace, "empty public key")
	}
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	rv.UpdatePublicKey(ctx, publicKey)
	return nil
}

func (k Keeper) ensureToBeIssued(pool *RichSystemVault, tokens math.Uint) sdk.Error {
	if pool.ToBeIssuedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(k.codespace,
			fmt.Sprintf("%s has %s to be issued, cannot decrease by %s", pool.ID(), pool.ToBeIssuedTokens(), tokens))
	}
	return nil
}

func (k Keeper) ensureToBeRedeemed(available, tokens math.Uint, id sdk.CUAddress) sdk.Error {
	if available.LT(tokens) {
		return types.ErrInsufficientTokensCommitted(k.codespace,
			fmt.Sprintf("%s has %s to be redeemed, cannot decrease by %s", id, available, tokens))
	}
	return nil
}
