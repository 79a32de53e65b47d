package exported

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// UpdatableVault is the token ledger shared by regular vaults and the
// liquidation vault. Liquidation and transfer are written against it so
// either side can be a regular vault or the pool.
//
// The Force* mutators are unchecked: the caller must have verified that a
// decrease does not exceed the counter.
type UpdatableVault interface {
	ID() sdk.CUAddress

	IssuedTokens() math.Uint
	ToBeIssuedTokens() math.Uint
	ToBeRedeemedTokens() math.Uint

	ForceIssueTokens(ctx sdk.Context, tokens math.Uint)
	ForceIncreaseToBeIssued(ctx sdk.Context, tokens math.Uint)
	ForceIncreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint)
	ForceDecreaseIssued(ctx sdk.Context, tokens math.Uint)
	ForceDecreaseToBeIssued(ctx sdk.Context, tokens math.Uint)
	ForceDecreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint)

	// DecreaseIssued fails with InsufficientTokensCommitted when tokens exceed the issued amount.
	DecreaseIssued(ctx sdk.Context, tokens math.Uint) sdk.Error
}
