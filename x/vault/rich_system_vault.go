package vault

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/exported"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

var _ exported.UpdatableVault = (*RichSystemVault)(nil)

// RichSystemVault is the working view of the liquidation vault. Every
// mutation stores the whole record.
type RichSystemVault struct {
	k    Keeper
	data types.SystemVault
}

func newRichSystemVault(k Keeper, vault types.SystemVault) *RichSystemVault {
	return &RichSystemVault{k: k, data: vault}
}

func (rv *RichSystemVault) Data() types.SystemVault {
	return rv.data
}

func (rv *RichSystemVault) update(ctx sdk.Context, f func(*types.SystemVault)) {
	f(&rv.data)
	rv.k.SetLiquidationVault(ctx, rv.data)
}

func (rv *RichSystemVault) ID() sdk.CUAddress             { return rv.data.ID }
func (rv *RichSystemVault) IssuedTokens() math.Uint       { return rv.data.IssuedTokens }
func (rv *RichSystemVault) ToBeIssuedTokens() math.Uint   { return rv.data.ToBeIssuedTokens }
func (rv *RichSystemVault) ToBeRedeemedTokens() math.Uint { return rv.data.ToBeRedeemedTokens }

func (rv *RichSystemVault) ForceIssueTokens(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.IssuedTokens = v.IssuedTokens.Add(tokens) })
}

func (rv *RichSystemVault) ForceIncreaseToBeIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.ToBeIssuedTokens = v.ToBeIssuedTokens.Add(tokens) })
}

func (rv *RichSystemVault) ForceIncreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.ToBeRedeemedTokens = v.ToBeRedeemedTokens.Add(tokens) })
}

func (rv *RichSystemVault) ForceDecreaseIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.IssuedTokens = v.IssuedTokens.Sub(tokens) })
}

func (rv *RichSystemVault) ForceDecreaseToBeIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.ToBeIssuedTokens = v.ToBeIssuedTokens.Sub(tokens) })
}

func (rv *RichSystemVault) ForceDecreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.SystemVault) { v.ToBeRedeemedTokens = v.ToBeRedeemedTokens.Sub(tokens) })
}

func (rv *RichSystemVault) DecreaseIssued(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseIssued(ctx, rv, rv.k.codespace, tokens)
}

// IncreaseToBeRedeemed commits pool tokens to a redemption against the pool.
func (rv *RichSystemVault) IncreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return increaseToBeRedeemed(ctx, rv, rv.k.codespace, tokens)
}

func (rv *RichSystemVault) DecreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseToBeRedeemed(ctx, rv, rv.k.codespace, tokens)
}

func (rv *RichSystemVault) DecreaseTokens(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseTokens(ctx, rv, rv.k.codespace, tokens)
}
