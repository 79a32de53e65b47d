package collateral

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral/types"
)

var (
	addr1 = sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address())
	addr2 = sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address())
)

func setupKeeper() (sdk.Context, Keeper) {
	ctx := sdk.NewContext(dbm.NewMemDB(), "test-chain-id", 1, log.NewNopLogger())
	return ctx, NewKeeper(codec.New(), sdk.NewKVStoreKey(StoreKey), DefaultCodespace)
}

func TestLockAndRelease(t *testing.T) {
	ctx, k := setupKeeper()
	require.Nil(t, k.Deposit(ctx, addr1, math.NewUint(100)))

	err := k.LockCollateral(ctx, addr1, math.NewUint(101))
	require.NotNil(t, err)
	assert.EqualValues(t, types.CodeInsufficientFreeBalance, err.Code())

	require.Nil(t, k.LockCollateral(ctx, addr1, math.NewUint(60)))
	assert.Equal(t, "60", k.GetCollateral(ctx, addr1).String())
	assert.Equal(t, "40", k.GetFreeBalance(ctx, addr1).String())

	err = k.ReleaseCollateral(ctx, addr1, math.NewUint(61))
	require.NotNil(t, err)
	assert.EqualValues(t, types.CodeInsufficientLockedBalance, err.Code())
	assert.Equal(t, "60", k.GetCollateral(ctx, addr1).String())

	require.Nil(t, k.ReleaseCollateral(ctx, addr1, math.NewUint(10)))
	assert.Equal(t, "50", k.GetCollateral(ctx, addr1).String())
	assert.Equal(t, "50", k.GetFreeBalance(ctx, addr1).String())
}

func TestSlashCollateral(t *testing.T) {
	ctx, k := setupKeeper()
	require.Nil(t, k.Deposit(ctx, addr1, math.NewUint(100)))
	require.Nil(t, k.LockCollateral(ctx, addr1, math.NewUint(100)))

	require.NotNil(t, k.SlashCollateral(ctx, addr1, addr2, math.NewUint(101)))
	require.Nil(t, k.SlashCollateral(ctx, addr1, addr2, math.NewUint(30)))

	assert.Equal(t, "70", k.GetCollateral(ctx, addr1).String())
	assert.Equal(t, "30", k.GetCollateral(ctx, addr2).String())
	assert.Equal(t, "100", k.GetTotalLocked(ctx).String())

	require.NotNil(t, k.SlashCollateral(ctx, addr1, sdk.CUAddress{}, math.NewUint(1)))
}

func TestWithdrawAndGenesis(t *testing.T) {
	ctx, k := setupKeeper()
	require.Nil(t, k.Deposit(ctx, addr1, math.NewUint(5)))
	require.NotNil(t, k.Withdraw(ctx, addr1, math.NewUint(6)))
	require.Nil(t, k.Withdraw(ctx, addr1, math.NewUint(5)))
	assert.Empty(t, k.GetAllBalances(ctx))

	require.Nil(t, k.Deposit(ctx, addr2, math.NewUint(9)))
	exported := ExportGenesis(ctx, k)
	require.NoError(t, ValidateGenesis(exported))
	require.Len(t, exported.Balances, 1)

	ctx2, k2 := setupKeeper()
	InitGenesis(ctx2, k2, exported)
	assert.Equal(t, "9", k2.GetFreeBalance(ctx2, addr2).String())

	dup := types.NewGenesisState([]Balance{exported.Balances[0], exported.Balances[0]})
	require.Error(t, ValidateGenesis(dup))
}
