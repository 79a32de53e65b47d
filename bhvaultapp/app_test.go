package bhvaultapp

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral"
	"github.com/hbtc-chain/bhvault/x/oracle"
	"github.com/hbtc-chain/bhvault/x/vault"
)

const testChainID = "bhvault-test"

func testGenesisState(cdc *codec.Codec) GenesisState {
	gs := NewDefaultGenesisState(cdc)
	gs[oracle.ModuleName] = cdc.MustMarshalJSON(oracle.GenesisState{
		Params:       oracle.DefaultParams(),
		ExchangeRate: &oracle.ExchangeRate{Rate: math.LegacyOneDec()},
	})
	return gs
}

func newTestApp(t *testing.T, db dbm.DB) *BHVaultApp {
	app := NewBHVaultApp(log.NewNopLogger(), db, 1)
	stateBytes, err := codec.MarshalJSONIndent(app.cdc, testGenesisState(app.cdc))
	require.NoError(t, err)
	require.NoError(t, app.InitChain(testChainID, stateBytes))
	return app
}

func registerVault(t *testing.T, app *BHVaultApp, collateralAmount, issued uint64) sdk.CUAddress {
	ctx := app.NewContext()
	id := sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address())
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pk, err := vault.NewBtcPublicKey(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)

	require.Nil(t, app.CollateralKeeper().Deposit(ctx, id, math.NewUint(collateralAmount)))
	require.Nil(t, app.VaultKeeper().RegisterVault(ctx, id, math.NewUint(collateralAmount), pk))
	if issued > 0 {
		require.Nil(t, app.VaultKeeper().TryIncreaseToBeIssuedTokens(ctx, id, math.NewUint(issued)))
		require.Nil(t, app.VaultKeeper().IssueTokens(ctx, id, math.NewUint(issued)))
	}
	return id
}

func TestInitChain(t *testing.T) {
	db := dbm.NewMemDB()
	app := newTestApp(t, db)
	require.True(t, app.Initialized())
	require.Equal(t, testChainID, app.ChainID())
	require.EqualValues(t, 0, app.LastBlockHeight())

	stateBytes, err := codec.MarshalJSONIndent(app.cdc, testGenesisState(app.cdc))
	require.NoError(t, err)
	require.Error(t, app.InitChain(testChainID, stateBytes))

	// a new app object over the same db sees the initialized chain
	app2 := NewBHVaultApp(log.NewNopLogger(), db, 1)
	require.True(t, app2.Initialized())
	require.NoError(t, app2.LoadLatest())
	require.Equal(t, vault.DefaultParams().String(), app2.VaultKeeper().GetParams(app2.NewContext()).String())
}

func TestInitChainRejectsInvalidGenesis(t *testing.T) {
	app := NewBHVaultApp(log.NewNopLogger(), dbm.NewMemDB(), 1)
	require.Error(t, app.InitChain(testChainID, []byte("not json")))

	gs := testGenesisState(app.cdc)
	delete(gs, vault.ModuleName)
	stateBytes, err := codec.MarshalJSONIndent(app.cdc, gs)
	require.NoError(t, err)
	require.Error(t, app.InitChain(testChainID, stateBytes))

	stateBytes, err = codec.MarshalJSONIndent(app.cdc, testGenesisState(app.cdc))
	require.NoError(t, err)
	require.Error(t, app.InitChain(" ", stateBytes))
	require.False(t, app.Initialized())
}

func TestEndBlock(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())

	for i := int64(1); i <= 3; i++ {
		height, liquidated, err := app.EndBlock()
		require.NoError(t, err)
		require.Empty(t, liquidated)
		require.Equal(t, i, height)
		require.Equal(t, i, app.LastBlockHeight())
	}
}

func TestEndBlockLiquidatesUndercollateralizedVaults(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())
	weak := registerVault(t, app, 1500, 900)
	strong := registerVault(t, app, 6000, 900)

	require.Nil(t, app.OracleKeeper().SetExchangeRate(app.NewContext(), math.LegacyNewDec(2)))

	_, liquidated, err := app.EndBlock()
	require.NoError(t, err)
	require.Equal(t, []sdk.CUAddress{weak}, liquidated)

	ctx := app.NewContext()
	v, sdkErr := app.VaultKeeper().GetVault(ctx, weak)
	require.Nil(t, sdkErr)
	require.Equal(t, vault.VaultStatusLiquidated, v.Status)
	v, sdkErr = app.VaultKeeper().GetVault(ctx, strong)
	require.Nil(t, sdkErr)
	require.True(t, v.IsActive())
	require.NoError(t, app.AssertInvariants())
}

func TestQuery(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())
	id := registerVault(t, app, 1500, 300)

	bz, err := app.Query("custom/vault/vault", app.cdc.MustMarshalJSON(vault.NewQueryVaultParams(id)))
	require.Nil(t, err)
	var v vault.Vault
	require.NoError(t, app.cdc.UnmarshalJSON(bz, &v))
	require.Equal(t, id, v.ID)
	require.Equal(t, "300", v.IssuedTokens.String())

	bz, err = app.Query("collateral/balance", app.cdc.MustMarshalJSON(collateral.NewQueryBalanceParams(id)))
	require.Nil(t, err)
	var balance collateral.Balance
	require.NoError(t, app.cdc.UnmarshalJSON(bz, &balance))
	require.Equal(t, "1500", balance.Locked.String())

	bz, err = app.Query("/custom/oracle/exchange_rate", nil)
	require.Nil(t, err)
	var rate oracle.ExchangeRate
	require.NoError(t, app.cdc.UnmarshalJSON(bz, &rate))
	require.True(t, rate.Rate.Equal(math.LegacyOneDec()))

	_, err = app.Query("custom/staking/validators", nil)
	require.NotNil(t, err)
	require.Equal(t, sdk.CodeUnknownRequest, err.Code())

	_, err = app.Query("custom", nil)
	require.NotNil(t, err)
	require.Equal(t, sdk.CodeUnknownRequest, err.Code())
}

func TestExportImport(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())
	id := registerVault(t, app, 3000, 1200)
	_, _, err := app.EndBlock()
	require.NoError(t, err)

	exported, err := app.ExportAppStateJSON()
	require.NoError(t, err)

	app2 := NewBHVaultApp(log.NewNopLogger(), dbm.NewMemDB(), 1)
	require.NoError(t, app2.InitChain(testChainID, exported))

	ctx := app2.NewContext()
	v, sdkErr := app2.VaultKeeper().GetVault(ctx, id)
	require.Nil(t, sdkErr)
	require.Equal(t, "1200", v.IssuedTokens.String())
	require.Equal(t, "3000", app2.CollateralKeeper().GetCollateral(ctx, id).String())
	require.Equal(t, "1200", app2.VaultKeeper().GetTotalIssuedTokens(ctx).String())
	require.NoError(t, app2.AssertInvariants())

	reexported, err := app2.ExportAppStateJSON()
	require.NoError(t, err)
	require.JSONEq(t, string(exported), string(reexported))
}

func TestValidateGenesisRequiresLockedCollateral(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())
	registerVault(t, app, 3000, 1200)

	exported, err := app.ExportAppStateJSON()
	require.NoError(t, err)

	var gs GenesisState
	require.NoError(t, app.cdc.UnmarshalJSON(exported, &gs))
	require.NoError(t, ValidateGenesis(app.cdc, gs))

	gs[collateral.ModuleName] = app.cdc.MustMarshalJSON(collateral.DefaultGenesisState())
	require.Error(t, ValidateGenesis(app.cdc, gs))
}
