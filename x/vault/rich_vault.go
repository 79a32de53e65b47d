package vault

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/exported"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

var _ exported.UpdatableVault = (*RichVault)(nil)

// RichVault is the working view of one vault record. Every mutation is
// applied to the working copy and to the stored record by the same closure.
type RichVault struct {
	k    Keeper
	data types.Vault
}

func newRichVault(k Keeper, vault types.Vault) *RichVault {
	return &RichVault{k: k, data: vault}
}

// Data returns a copy of the working record.
func (rv *RichVault) Data() types.Vault {
	return rv.data
}

func (rv *RichVault) update(ctx sdk.Context, f func(*types.Vault)) {
	f(&rv.data)
	rv.k.mutateVault(ctx, rv.data.ID, f, rv.data)
}

//------ UpdatableVault ------

func (rv *RichVault) ID() sdk.CUAddress             { return rv.data.ID }
func (rv *RichVault) IssuedTokens() math.Uint       { return rv.data.IssuedTokens }
func (rv *RichVault) ToBeIssuedTokens() math.Uint   { return rv.data.ToBeIssuedTokens }
func (rv *RichVault) ToBeRedeemedTokens() math.Uint { return rv.data.ToBeRedeemedTokens }

func (rv *RichVault) ForceIssueTokens(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.IssuedTokens = v.IssuedTokens.Add(tokens) })
}

func (rv *RichVault) ForceIncreaseToBeIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.ToBeIssuedTokens = v.ToBeIssuedTokens.Add(tokens) })
}

func (rv *RichVault) ForceIncreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.ToBeRedeemedTokens = v.ToBeRedeemedTokens.Add(tokens) })
}

func (rv *RichVault) ForceDecreaseIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.IssuedTokens = v.IssuedTokens.Sub(tokens) })
}

func (rv *RichVault) ForceDecreaseToBeIssued(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.ToBeIssuedTokens = v.ToBeIssuedTokens.Sub(tokens) })
}

func (rv *RichVault) ForceDecreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) {
	rv.update(ctx, func(v *types.Vault) { v.ToBeRedeemedTokens = v.ToBeRedeemedTokens.Sub(tokens) })
}

func (rv *RichVault) DecreaseIssued(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseIssued(ctx, rv, rv.k.codespace, tokens)
}

//------ collateral ------

func (rv *RichVault) IncreaseCollateral(ctx sdk.Context, collateral math.Uint) sdk.Error {
	return rv.k.ck.LockCollateral(ctx, rv.data.ID, collateral)
}

// WithdrawCollateral releases collateral unless what remains would no longer
// secure issued plus to-be-issued tokens.
func (rv *RichVault) WithdrawCollateral(ctx sdk.Context, collateral math.Uint) sdk.Error {
	current := rv.GetCollateral(ctx)
	remaining := math.ZeroUint()
	if current.GT(collateral) {
		remaining = current.Sub(collateral)
	}

	tokens, err := rv.k.checkedAdd(rv.data.IssuedTokens, rv.data.ToBeIssuedTokens)
	if err != nil {
		return err
	}
	below, err := rv.k.IsCollateralBelowSecureThreshold(ctx, remaining, tokens)
	if err != nil {
		return err
	}
	if below {
		return types.ErrInsufficientCollateral(rv.k.codespace,
			fmt.Sprintf("withdrawing %s leaves %s, not enough to secure %s tokens", collateral, remaining, tokens))
	}

	return rv.k.ck.ReleaseCollateral(ctx, rv.data.ID, collateral)
}

func (rv *RichVault) GetCollateral(ctx sdk.Context) math.Uint {
	return rv.k.ck.GetCollateral(ctx, rv.data.ID)
}

// GetUsedCollateral is the collateral securing issued plus to-be-issued tokens at the secure threshold.
func (rv *RichVault) GetUsedCollateral(ctx sdk.Context) (math.Uint, sdk.Error) {
	tokens, err := rv.k.checkedAdd(rv.data.IssuedTokens, rv.data.ToBeIssuedTokens)
	if err != nil {
		return math.Uint{}, err
	}
	tokensInCollateral, err := rv.k.ok.BtcToDots(ctx, tokens)
	if err != nil {
		return math.Uint{}, err
	}
	secure := rv.k.GetParams(ctx).SecureCollateralThreshold
	return rv.k.decToAmount(secure.Mul(uintToDec(tokensInCollateral)))
}

func (rv *RichVault) GetFreeCollateral(ctx sdk.Context) (math.Uint, sdk.Error) {
	used, err := rv.GetUsedCollateral(ctx)
	if err != nil {
		return math.Uint{}, err
	}
	collateral := rv.GetCollateral(ctx)
	if used.GT(collateral) {
		return math.Uint{}, types.ErrArithmeticUnderflow(rv.k.codespace,
			fmt.Sprintf("used collateral %s exceeds collateral %s", used, collateral))
	}
	return collateral.Sub(used), nil
}

// IssuableTokens is the amount of new tokens the free collateral secures.
func (rv *RichVault) IssuableTokens(ctx sdk.Context) (math.Uint, sdk.Error) {
	free, err := rv.GetFreeCollateral(ctx)
	if err != nil {
		return math.Uint{}, err
	}
	secure := rv.k.GetParams(ctx).SecureCollateralThreshold
	return rv.k.CalculateMaxIssuableFromCollateral(ctx, free, secure)
}

//------ token lifecycle ------

func (rv *RichVault) IncreaseToBeIssued(ctx sdk.Context, tokens math.Uint) sdk.Error {
	issuable, err := rv.IssuableTokens(ctx)
	if err != nil {
		return err
	}
	if issuable.LT(tokens) {
		return types.ErrExceedingVaultLimit(rv.k.codespace,
			fmt.Sprintf("vault %s can issue %s, requested %s", rv.data.ID, issuable, tokens))
	}
	rv.ForceIncreaseToBeIssued(ctx, tokens)
	return nil
}

func (rv *RichVault) DecreaseToBeIssued(ctx sdk.Context, tokens math.Uint) sdk.Error {
	if rv.data.ToBeIssuedTokens.LT(tokens) {
		return types.ErrInsufficientTokensCommitted(rv.k.codespace,
			fmt.Sprintf("vault %s has %s to be issued, cannot decrease by %s", rv.data.ID, rv.data.ToBeIssuedTokens, tokens))
	}
	rv.ForceDecreaseToBeIssued(ctx, tokens)
	return nil
}

// IssueTokens moves tokens from to-be-issued to issued.
func (rv *RichVault) IssueTokens(ctx sdk.Context, tokens math.Uint) sdk.Error {
	if err := rv.DecreaseToBeIssued(ctx, tokens); err != nil {
		return err
	}
	rv.ForceIssueTokens(ctx, tokens)
	return nil
}

func (rv *RichVault) IncreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return increaseToBeRedeemed(ctx, rv, rv.k.codespace, tokens)
}

func (rv *RichVault) DecreaseToBeRedeemed(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseToBeRedeemed(ctx, rv, rv.k.codespace, tokens)
}

// DecreaseTokens removes tokens from to-be-redeemed and issued. Releasing or
// slashing the backing collateral is up to the caller.
func (rv *RichVault) DecreaseTokens(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return decreaseTokens(ctx, rv, rv.k.codespace, tokens)
}

func (rv *RichVault) RedeemTokens(ctx sdk.Context, tokens math.Uint) sdk.Error {
	return rv.DecreaseTokens(ctx, tokens)
}

// Transfer moves issued tokens pending redemption on rv to issued tokens on to.
func (rv *RichVault) Transfer(ctx sdk.Context, to exported.UpdatableVault, tokens math.Uint) sdk.Error {
	return transferTokens(ctx, rv, to, rv.k.codespace, tokens)
}

//------ ban ------

// EnsureNotBanned fails while height is at or below the ban height.
func (rv *RichVault) EnsureNotBanned(height int64) sdk.Error {
	if rv.data.BannedUntil != nil && height <= *rv.data.BannedUntil {
		return types.ErrVaultBanned(rv.k.codespace,
			fmt.Sprintf("vault %s is banned until %d", rv.data.ID, *rv.data.BannedUntil))
	}
	return nil
}

func (rv *RichVault) BanUntil(ctx sdk.Context, height int64) {
	rv.update(ctx, func(v *types.Vault) {
		until := height
		v.BannedUntil = &until
	})
}

//------ wallet ------

// NewDepositAddress derives a P2WPKH address from the vault key and secureID
// and records it in the wallet.
func (rv *RichVault) NewDepositAddress(ctx sdk.Context, secureID [32]byte) (types.BtcAddress, sdk.Error) {
	publicKey, err := rv.data.Wallet.PublicKey.NewDepositPublicKey(secureID)
	if err != nil {
		return types.BtcAddress{}, types.ErrInvalidPublicKey(rv.k.codespace, err.Error())
	}
	address := types.NewP2WPKHAddress(publicKey)
	rv.InsertDepositAddress(ctx, address)
	return address, nil
}

func (rv *RichVault) InsertDepositAddress(ctx sdk.Context, address types.BtcAddress) {
	rv.update(ctx, func(v *types.Vault) { v.Wallet.AddBtcAddress(address) })
}

func (rv *RichVault) UpdatePublicKey(ctx sdk.Context, publicKey types.BtcPublicKey) {
	rv.update(ctx, func(v *types.Vault) { v.Wallet.PublicKey = publicKey })
}
