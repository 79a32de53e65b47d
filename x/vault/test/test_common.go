// nolint
package test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral"
	"github.com/hbtc-chain/bhvault/x/oracle"
	"github.com/hbtc-chain/bhvault/x/vault"
	"github.com/hbtc-chain/bhvault/x/vault/internal"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

type testInput struct {
	cdc      *codec.Codec
	ctx      sdk.Context
	vaultKey sdk.StoreKey
	k        vault.Keeper
	ck       collateral.Keeper
	ok       oracle.Keeper
}

func makeTestCodec() *codec.Codec {
	cdc := codec.New()
	types.RegisterCodec(cdc)
	codec.RegisterCrypto(cdc)
	return cdc
}

// setupTestInput builds a registry over real collateral and oracle keepers
// with an exchange rate of 1 and default params.
func setupTestInput() testInput {
	return setupTestInputWithCollateralKeeper(nil)
}

// setupTestInputWithCollateralKeeper wires ck into the registry instead of the
// real collateral keeper when it is not nil.
func setupTestInputWithCollateralKeeper(ck internal.CollateralKeeper) testInput {
	db := dbm.NewMemDB()
	cdc := makeTestCodec()

	keyVault := sdk.NewKVStoreKey(vault.StoreKey)
	keyCollateral := sdk.NewKVStoreKey(collateral.StoreKey)
	keyOracle := sdk.NewKVStoreKey(oracle.StoreKey)

	ctx := sdk.NewContext(db, "test-chain-id", 1, log.NewNopLogger())

	collateralKeeper := collateral.NewKeeper(cdc, keyCollateral, collateral.DefaultCodespace)
	oracleKeeper := oracle.NewKeeper(cdc, keyOracle, oracle.DefaultCodespace)
	if ck == nil {
		ck = collateralKeeper
	}
	k := vault.NewKeeper(cdc, keyVault, ck, oracleKeeper, vault.DefaultCodespace)

	oracleKeeper.SetParams(ctx, oracle.DefaultParams())
	if err := oracleKeeper.SetExchangeRate(ctx, math.LegacyOneDec()); err != nil {
		panic(err)
	}
	vault.InitGenesis(ctx, k, vault.DefaultGenesisState())

	return testInput{cdc: cdc, ctx: ctx, vaultKey: keyVault, k: k, ck: collateralKeeper, ok: oracleKeeper}
}

func newAddr() sdk.CUAddress {
	return sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address())
}

func newBtcPublicKey(t *testing.T) types.BtcPublicKey {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pk, err := types.NewBtcPublicKey(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)
	return pk
}

// registerVault funds a fresh account and registers it with collateral.
func registerVault(t *testing.T, input testInput, collateral uint64) sdk.CUAddress {
	id := newAddr()
	require.Nil(t, input.ck.Deposit(input.ctx, id, math.NewUint(collateral)))
	require.Nil(t, input.k.RegisterVault(input.ctx, id, math.NewUint(collateral), newBtcPublicKey(t)))
	return id
}

// issueTokens runs a complete issue of tokens against id.
func issueTokens(t *testing.T, input testInput, id sdk.CUAddress, tokens uint64) {
	require.Nil(t, input.k.TryIncreaseToBeIssuedTokens(input.ctx, id, math.NewUint(tokens)))
	require.Nil(t, input.k.IssueTokens(input.ctx, id, math.NewUint(tokens)))
}

func getVault(t *testing.T, input testInput, id sdk.CUAddress) types.Vault {
	v, err := input.k.GetVault(input.ctx, id)
	require.Nil(t, err)
	return v
}

func requireCode(t *testing.T, err sdk.Error, code sdk.CodeType) {
	require.NotNil(t, err)
	require.EqualValues(t, code, err.Code(), err.Error())
}

func requireNoBrokenInvariant(t *testing.T, input testInput) {
	msg, broken := vault.AllInvariants(input.k)(input.ctx)
	require.False(t, broken, msg)
}

// MockCollateralKeeper stands in for the collateral ledger when a test needs it to fail.
type MockCollateralKeeper struct {
	mock.Mock
}

var _ internal.CollateralKeeper = (*MockCollateralKeeper)(nil)

func sdkError(args mock.Arguments, i int) sdk.Error {
	if err := args.Get(i); err != nil {
		return err.(sdk.Error)
	}
	return nil
}

func (m *MockCollateralKeeper) LockCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	return sdkError(m.Called(ctx, addr, amount), 0)
}

func (m *MockCollateralKeeper) ReleaseCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	return sdkError(m.Called(ctx, addr, amount), 0)
}

func (m *MockCollateralKeeper) SlashCollateral(ctx sdk.Context, from, to sdk.CUAddress, amount math.Uint) sdk.Error {
	return sdkError(m.Called(ctx, from, to, amount), 0)
}

func (m *MockCollateralKeeper) GetCollateral(ctx sdk.Context, addr sdk.CUAddress) math.Uint {
	return m.Called(ctx, addr).Get(0).(math.Uint)
}
