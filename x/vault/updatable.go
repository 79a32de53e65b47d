package vault

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/exported"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// Checked token moves shared by RichVault and RichSystemVault.

func decreaseIssued(ctx sdk.Context, v exported.UpdatableVault, codespace sdk.CodespaceType, tokens math.Uint) sdk.Error {
	if v.IssuedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(codespace,
			fmt.Sprintf("%s has %s issued, cannot decrease by %s", v.ID(), v.IssuedTokens(), tokens))
	}
	v.ForceDecreaseIssued(ctx, tokens)
	return nil
}

func increaseToBeRedeemed(ctx sdk.Context, v exported.UpdatableVault, codespace sdk.CodespaceType, tokens math.Uint) sdk.Error {
	if v.ToBeRedeemedTokens().GT(v.IssuedTokens()) {
		return types.ErrArithmeticUnderflow(codespace,
			fmt.Sprintf("%s has %s to be redeemed but only %s issued", v.ID(), v.ToBeRedeemedTokens(), v.IssuedTokens()))
	}
	redeemable := v.IssuedTokens().Sub(v.ToBeRedeemedTokens())
	if redeemable.LT(tokens) {
		return types.ErrInsufficientTokensCommitted(codespace,
			fmt.Sprintf("%s has %s redeemable, cannot commit %s", v.ID(), redeemable, tokens))
	}
	v.ForceIncreaseToBeRedeemed(ctx, tokens)
	return nil
}

func decreaseToBeRedeemed(ctx sdk.Context, v exported.UpdatableVault, codespace sdk.CodespaceType, tokens math.Uint) sdk.Error {
	if v.ToBeRedeemedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(codespace,
			fmt.Sprintf("%s has %s to be redeemed, cannot decrease by %s", v.ID(), v.ToBeRedeemedTokens(), tokens))
	}
	v.ForceDecreaseToBeRedeemed(ctx, tokens)
	return nil
}

// decreaseTokens removes tokens from both to-be-redeemed and issued. Both
// counters are checked before either is touched.
func decreaseTokens(ctx sdk.Context, v exported.UpdatableVault, codespace sdk.CodespaceType, tokens math.Uint) sdk.Error {
	if v.ToBeRedeemedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(codespace,
			fmt.Sprintf("%s has %s to be redeemed, cannot decrease by %s", v.ID(), v.ToBeRedeemedTokens(), tokens))
	}
	if v.IssuedTokens().LT(tokens) {
		return types.ErrInsufficientTokensCommitted(codespace,
			fmt.Sprintf("%s has %s issued, cannot decrease by %s", v.ID(), v.IssuedTokens(), tokens))
	}
	v.ForceDecreaseToBeRedeemed(ctx, tokens)
	v.ForceDecreaseIssued(ctx, tokens)
	return nil
}

// transferTokens redeems tokens from one entity and issues them to another.
func transferTokens(ctx sdk.Context, from, to exported.UpdatableVault, codespace sdk.CodespaceType, tokens math.Uint) sdk.Error {
	if _, err := checkedAdd(codespace, to.IssuedTokens(), tokens); err != nil {
		return err
	}
	if err := decreaseTokens(ctx, from, codespace, tokens); err != nil {
		return err
	}
	to.ForceIssueTokens(ctx, tokens)
	return nil
}
