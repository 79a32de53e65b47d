package test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/hbtc-chain/bhvault/types"
	collateraltypes "github.com/hbtc-chain/bhvault/x/collateral/types"
	"github.com/hbtc-chain/bhvault/x/vault"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

func TestRegisterVault(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k

	id := newAddr()
	pk := newBtcPublicKey(t)
	require.Nil(t, input.ck.Deposit(ctx, id, math.NewUint(2000)))

	// below the minimum collateral
	requireCode(t, k.RegisterVault(ctx, id, math.NewUint(999), pk), types.CodeInsufficientVaultCollateralAmount)
	// empty public key
	requireCode(t, k.RegisterVault(ctx, id, math.NewUint(1500), types.BtcPublicKey{}), types.CodeInvalidPublicKey)
	// the liquidation vault is not a regular vault
	requireCode(t, k.RegisterVault(ctx, types.LiquidationVaultAddress(), math.NewUint(1500), pk), sdk.CodeInvalidAddress)
	// more than the free balance
	requireCode(t, k.RegisterVault(ctx, id, math.NewUint(2001), pk), collateraltypes.CodeInsufficientFreeBalance)
	assert.False(t, k.HasVault(ctx, id))

	require.Nil(t, k.RegisterVault(ctx, id, math.NewUint(1500), pk))
	v := getVault(t, input, id)
	assert.True(t, v.IsActive())
	assert.True(t, v.IssuedTokens.IsZero())
	assert.True(t, v.ToBeIssuedTokens.IsZero())
	assert.True(t, v.ToBeRedeemedTokens.IsZero())
	assert.Nil(t, v.BannedUntil)
	assert.Equal(t, pk, v.Wallet.PublicKey)
	assert.Empty(t, v.Wallet.Addresses)
	assert.Equal(t, "1500", input.ck.GetCollateral(ctx, id).String())
	assert.Equal(t, "500", input.ck.GetFreeBalance(ctx, id).String())

	requireCode(t, k.RegisterVault(ctx, id, math.NewUint(500), pk), types.CodeVaultAlreadyRegistered)
	assert.Equal(t, "1500", input.ck.GetCollateral(ctx, id).String())
}

func TestGetVault(t *testing.T) {
	input := setupTestInput()

	_, err := input.k.GetVault(input.ctx, newAddr())
	requireCode(t, err, types.CodeVaultNotFound)
	_, err = input.k.GetRichVault(input.ctx, newAddr())
	requireCode(t, err, types.CodeVaultNotFound)

	id := registerVault(t, input, 1000)
	rv, err := input.k.GetActiveRichVault(input.ctx, id)
	require.Nil(t, err)
	assert.True(t, id.Equals(rv.ID()))

	pool := input.k.GetLiquidationVault(input.ctx)
	assert.True(t, pool.ID.Equals(types.LiquidationVaultAddress()))
	assert.True(t, pool.IssuedTokens.IsZero())

	assert.Equal(t, types.V1, input.k.GetStorageVersion(input.ctx))
	assert.Len(t, input.k.GetAllVaults(input.ctx), 1)
}

func TestIssueTokens(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id := registerVault(t, input, 1500)

	rv, err := k.GetRichVault(ctx, id)
	require.Nil(t, err)
	issuable, err := rv.IssuableTokens(ctx)
	require.Nil(t, err)
	assert.Equal(t, "1000", issuable.String())

	requireCode(t, k.TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(1001)), types.CodeExceedingVaultLimit)
	require.Nil(t, k.TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(600)))

	rv, err = k.GetRichVault(ctx, id)
	require.Nil(t, err)
	used, err := rv.GetUsedCollateral(ctx)
	require.Nil(t, err)
	assert.Equal(t, "900", used.String())
	free, err := rv.GetFreeCollateral(ctx)
	require.Nil(t, err)
	assert.Equal(t, "600", free.String())
	issuable, err = rv.IssuableTokens(ctx)
	require.Nil(t, err)
	assert.Equal(t, "400", issuable.String())

	requireCode(t, k.TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(401)), types.CodeExceedingVaultLimit)
	require.Nil(t, k.TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(400)))
	require.Nil(t, k.DecreaseToBeIssuedTokens(ctx, id, math.NewUint(400)))
	requireCode(t, k.DecreaseToBeIssuedTokens(ctx, id, math.NewUint(601)), types.CodeInsufficientTokensCommitted)

	// issuing cannot skip the to-be-issued stage
	requireCode(t, k.IssueTokens(ctx, id, math.NewUint(601)), types.CodeInsufficientTokensCommitted)
	require.Nil(t, k.IssueTokens(ctx, id, math.NewUint(600)))

	v := getVault(t, input, id)
	assert.Equal(t, "600", v.IssuedTokens.String())
	assert.Equal(t, "0", v.ToBeIssuedTokens.String())
	assert.Equal(t, "600", k.GetTotalIssuedTokens(ctx).String())
	requireNoBrokenInvariant(t, input)
}

func TestWithdrawCollateral(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id := registerVault(t, input, 1500)
	issueTokens(t, input, id, 600)

	requireCode(t, k.WithdrawCollateral(ctx, id, math.NewUint(601)), types.CodeInsufficientCollateral)
	requireCode(t, k.WithdrawCollateral(ctx, id, math.NewUint(5000)), types.CodeInsufficientCollateral)
	assert.Equal(t, "1500", input.ck.GetCollateral(ctx, id).String())

	require.Nil(t, k.WithdrawCollateral(ctx, id, math.NewUint(600)))
	assert.Equal(t, "900", input.ck.GetCollateral(ctx, id).String())
	assert.Equal(t, "600", input.ck.GetFreeBalance(ctx, id).String())

	below, err := k.IsVaultBelowSecureThreshold(ctx, id)
	require.Nil(t, err)
	assert.False(t, below)

	require.Nil(t, k.DepositCollateral(ctx, id, math.NewUint(100)))
	assert.Equal(t, "1000", input.ck.GetCollateral(ctx, id).String())
	requireCode(t, k.DepositCollateral(ctx, id, math.NewUint(1000)), collateraltypes.CodeInsufficientFreeBalance)
}

func TestWithdrawCountsToBeIssued(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id := registerVault(t, input, 1500)
	require.Nil(t, k.TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(1000)))

	requireCode(t, k.WithdrawCollateral(ctx, id, math.NewUint(1)), types.CodeInsufficientCollateral)
	require.Nil(t, k.DecreaseToBeIssuedTokens(ctx, id, math.NewUint(1000)))
	require.Nil(t, k.WithdrawCollateral(ctx, id, math.NewUint(1500)))
	assert.True(t, input.ck.GetCollateral(ctx, id).IsZero())
}

func TestRedeemTokens(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id := registerVault(t, input, 1500)
	issueTokens(t, input, id, 600)

	requireCode(t, k.TryIncreaseToBeRedeemedTokens(ctx, id, math.NewUint(601)), types.CodeInsufficientTokensCommitted)
	require.Nil(t, k.TryIncreaseToBeRedeemedTokens(ctx, id, math.NewUint(400)))
	// the same issued tokens cannot be committed twice
	requireCode(t, k.TryIncreaseToBeRedeemedTokens(ctx, id, math.NewUint(201)), types.CodeInsufficientTokensCommitted)
	require.Nil(t, k.TryIncreaseToBeRedeemedTokens(ctx, id, math.NewUint(200)))

	require.Nil(t, k.DecreaseToBeRedeemedTokens(ctx, id, math.NewUint(100)))
	requireCode(t, k.RedeemTokens(ctx, id, math.NewUint(501)), types.CodeInsufficientTokensCommitted)

	v := getVault(t, input, id)
	assert.Equal(t, "600", v.IssuedTokens.String())
	assert.Equal(t, "500", v.ToBeRedeemedTokens.String())

	require.Nil(t, k.RedeemTokens(ctx, id, math.NewUint(500)))
	v = getVault(t, input, id)
	assert.Equal(t, "100", v.IssuedTokens.String())
	assert.Equal(t, "0", v.ToBeRedeemedTokens.String())
	requireNoBrokenInvariant(t, input)
}

func TestDecreaseTokensChecksBothCounters(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k

	id := newAddr()
	v := types.NewVault(id, newBtcPublicKey(t))
	v.IssuedTokens = math.NewUint(50)
	v.ToBeRedeemedTokens = math.NewUint(100)
	k.SetVault(ctx, v)

	rv, err := k.GetRichVault(ctx, id)
	require.Nil(t, err)
	requireCode(t, rv.DecreaseTokens(ctx, math.NewUint(80)), types.CodeInsufficientTokensCommitted)

	stored := getVault(t, input, id)
	assert.Equal(t, "50", stored.IssuedTokens.String())
	assert.Equal(t, "100", stored.ToBeRedeemedTokens.String())
	assert.Equal(t, "50", rv.IssuedTokens().String())
	assert.Equal(t, "100", rv.ToBeRedeemedTokens().String())

	requireCode(t, rv.DecreaseIssued(ctx, math.NewUint(51)), types.CodeInsufficientTokensCommitted)
	require.Nil(t, rv.DecreaseIssued(ctx, math.NewUint(50)))
	assert.True(t, getVault(t, input, id).IssuedTokens.IsZero())
}

func TestReplaceTokens(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	oldID := registerVault(t, input, 1500)
	newID := registerVault(t, input, 1500)
	issueTokens(t, input, oldID, 600)
	require.Nil(t, k.TryIncreaseToBeRedeemedTokens(ctx, oldID, math.NewUint(200)))

	requireCode(t, k.ReplaceTokens(ctx, oldID, oldID, math.NewUint(100)), sdk.CodeInvalidAddress)
	requireCode(t, k.ReplaceTokens(ctx, oldID, newID, math.NewUint(201)), types.CodeInsufficientTokensCommitted)
	require.Nil(t, k.ReplaceTokens(ctx, oldID, newID, math.NewUint(200)))

	oldVault := getVault(t, input, oldID)
	newVault := getVault(t, input, newID)
	assert.Equal(t, "400", oldVault.IssuedTokens.String())
	assert.Equal(t, "0", oldVault.ToBeRedeemedTokens.String())
	assert.Equal(t, "200", newVault.IssuedTokens.String())
	assert.Equal(t, "600", k.GetTotalIssuedTokens(ctx).String())
}

func TestReplaceTokensRejectsOverflow(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	oldID := registerVault(t, input, 1500)
	issueTokens(t, input, oldID, 600)
	require.Nil(t, k.TryIncreaseToBeRedeemedTokens(ctx, oldID, math.NewUint(200)))

	full := types.NewVault(newAddr(), newBtcPublicKey(t))
	full.IssuedTokens = vault.MaxAmount.Sub(math.NewUint(100))
	k.SetVault(ctx, full)

	requireCode(t, k.ReplaceTokens(ctx, oldID, full.ID, math.NewUint(200)), types.CodeArithmeticOverflow)
	oldVault := getVault(t, input, oldID)
	assert.Equal(t, "600", oldVault.IssuedTokens.String())
	assert.Equal(t, "200", oldVault.ToBeRedeemedTokens.String())
	assert.Equal(t, full.IssuedTokens.String(), getVault(t, input, full.ID).IssuedTokens.String())
}

func TestBanVault(t *testing.T) {
	input := setupTestInput()
	k := input.k
	id := registerVault(t, input, 1500)
	issueTokens(t, input, id, 100)

	requireCode(t, k.BanVault(input.ctx, newAddr()), types.CodeVaultNotFound)

	ctx := input.ctx.WithBlockHeight(10)
	require.Nil(t, k.BanVault(ctx, id))
	v := getVault(t, input, id)
	require.NotNil(t, v.BannedUntil)
	assert.EqualValues(t, 10+types.DefaultParams().PunishmentDelay, *v.BannedUntil)

	banned := ctx.WithBlockHeight(*v.BannedUntil)
	requireCode(t, k.EnsureNotBanned(banned, id), types.CodeVaultBanned)
	requireCode(t, k.TryIncreaseToBeIssuedTokens(banned, id, math.NewUint(1)), types.CodeVaultBanned)
	requireCode(t, k.TryIncreaseToBeRedeemedTokens(banned, id, math.NewUint(1)), types.CodeVaultBanned)

	free := ctx.WithBlockHeight(*v.BannedUntil + 1)
	require.Nil(t, k.EnsureNotBanned(free, id))
	require.Nil(t, k.TryIncreaseToBeIssuedTokens(free, id, math.NewUint(1)))
	require.Nil(t, k.TryIncreaseToBeRedeemedTokens(free, id, math.NewUint(1)))
}

func TestNewDepositAddress(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id := registerVault(t, input, 1500)
	pk := getVault(t, input, id).Wallet.PublicKey

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		var secureID [32]byte
		secureID[0] = byte(i)
		addr, err := k.NewDepositAddress(ctx, id, secureID)
		require.Nil(t, err)

		derived, derr := pk.NewDepositPublicKey(secureID)
		require.NoError(t, derr)
		assert.True(t, addr.Equal(types.NewP2WPKHAddress(derived)))
		assert.Equal(t, types.P2WPKHv0, addr.Kind)
		assert.False(t, seen[addr.String()])
		seen[addr.String()] = true
	}

	var secureID [32]byte
	again, err := k.NewDepositAddress(ctx, id, secureID)
	require.Nil(t, err)
	assert.True(t, seen[again.String()])

	wallet := getVault(t, input, id).Wallet
	assert.Len(t, wallet.Addresses, 32)
	for i := 1; i < len(wallet.Addresses); i++ {
		assert.Equal(t, -1, wallet.Addresses[i-1].Compare(wallet.Addresses[i]))
	}

	_, err = k.NewDepositAddress(ctx, newAddr(), secureID)
	requireCode(t, err, types.CodeVaultNotFound)
}

func TestUpdatePublicKey(t *testing.T) {
	input := setupTestInput()
	id := registerVault(t, input, 1000)
	rv, err := input.k.GetRichVault(input.ctx, id)
	require.Nil(t, err)

	pk := newBtcPublicKey(t)
	rv.UpdatePublicKey(input.ctx, pk)
	assert.Equal(t, pk, getVault(t, input, id).Wallet.PublicKey)

	pk2 := newBtcPublicKey(t)
	require.Nil(t, input.k.UpdatePublicKey(input.ctx, id, pk2))
	assert.Equal(t, pk2, getVault(t, input, id).Wallet.PublicKey)

	requireCode(t, input.k.UpdatePublicKey(input.ctx, id, types.BtcPublicKey{}), types.CodeInvalidPublicKey)
	requireCode(t, input.k.UpdatePublicKey(input.ctx, newAddr(), pk), types.CodeVaultNotFound)
}

func TestTotals(t *testing.T) {
	input := setupTestInput()
	ctx, k := input.ctx, input.k
	id1 := registerVault(t, input, 1500)
	id2 := registerVault(t, input, 3000)
	issueTokens(t, input, id1, 100)
	issueTokens(t, input, id2, 200)

	assert.Equal(t, "300", k.GetTotalIssuedTokens(ctx).String())
	assert.Equal(t, "4500", k.GetTotalCollateral(ctx).String())
	assert.Equal(t, input.ck.GetTotalLocked(ctx).String(), k.GetTotalCollateral(ctx).String())
}

func TestCalculateCollateral(t *testing.T) {
	input := setupTestInput()
	k := input.k

	tests := []struct {
		collateral, numerator, denominator math.Uint
		expected                           string
		code                               sdk.CodeType
	}{
		{math.NewUint(1500), math.NewUint(400), math.NewUint(600), "1000", 0},
		{math.NewUint(1500), math.ZeroUint(), math.ZeroUint(), "1500", 0},
		{math.NewUint(1500), math.ZeroUint(), math.NewUint(600), "0", 0},
		{math.NewUint(10), math.NewUint(1), math.NewUint(3), "3", 0},
		{math.NewUint(1500), math.NewUint(1), math.ZeroUint(), "", types.CodeArithmeticUnderflow},
		{vault.MaxAmount, math.NewUint(2), math.NewUint(2), vault.MaxAmount.String(), 0},
		{math.NewUintFromString("1000000000000000000000000000000"), math.NewUint(1000000000), math.NewUint(1000000000),
			"1000000000000000000000000000000", 0},
		{vault.MaxAmount, math.NewUint(3), math.NewUint(2), "", types.CodeArithmeticOverflow},
	}
	for i, tc := range tests {
		got, err := k.CalculateCollateral(tc.collateral, tc.numerator, tc.denominator)
		if tc.code != 0 {
			requireCode(t, err, tc.code)
			continue
		}
		require.Nil(t, err, "case %d", i)
		assert.Equal(t, tc.expected, got.String(), "case %d", i)
	}
}
