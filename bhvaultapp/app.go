package bhvaultapp

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral"
	"github.com/hbtc-chain/bhvault/x/oracle"
	"github.com/hbtc-chain/bhvault/x/vault"
)

const appName = "BHVaultApp"

var (
	// default home directory for the application daemon
	DefaultNodeHome = os.ExpandEnv("$HOME/.bhvault")

	mainStoreKey    = "main"
	lastHeightKey   = []byte("last_height")
	chainIDKey      = []byte("chain_id")
	customQueryPath = "custom"
)

// MakeCodec registers every module type on a fresh codec.
func MakeCodec() *codec.Codec {
	var cdc = codec.New()
	vault.RegisterCodec(cdc)
	codec.RegisterCrypto(cdc)
	return cdc
}

// BHVaultApp wires the collateral ledger, the exchange rate oracle and the
// vault registry over one database. Every block is closed by EndBlock.
type BHVaultApp struct {
	name   string
	logger log.Logger
	db     dbm.DB
	cdc    *codec.Codec

	invCheckPeriod uint

	// keys to access the substores
	keys map[string]*sdk.KVStoreKey

	// keepers
	collateralKeeper collateral.Keeper
	oracleKeeper     oracle.Keeper
	vaultKeeper      vault.Keeper

	invariants  *sdk.InvarRoutes
	queryRouter map[string]sdk.Querier
}

// NewBHVaultApp returns a reference to an initialized BHVaultApp.
func NewBHVaultApp(logger log.Logger, db dbm.DB, invCheckPeriod uint) *BHVaultApp {
	cdc := MakeCodec()

	keys := map[string]*sdk.KVStoreKey{
		mainStoreKey:        sdk.NewKVStoreKey(mainStoreKey),
		collateral.StoreKey: sdk.NewKVStoreKey(collateral.StoreKey),
		oracle.StoreKey:     sdk.NewKVStoreKey(oracle.StoreKey),
		vault.StoreKey:      sdk.NewKVStoreKey(vault.StoreKey),
	}

	app := &BHVaultApp{
		name:           appName,
		logger:         logger,
		db:             db,
		cdc:            cdc,
		invCheckPeriod: invCheckPeriod,
		keys:           keys,
		invariants:     &sdk.InvarRoutes{},
	}

	app.collateralKeeper = collateral.NewKeeper(cdc, keys[collateral.StoreKey], collateral.DefaultCodespace)
	app.oracleKeeper = oracle.NewKeeper(cdc, keys[oracle.StoreKey], oracle.DefaultCodespace)
	app.vaultKeeper = vault.NewKeeper(cdc, keys[vault.StoreKey], app.collateralKeeper, app.oracleKeeper, vault.DefaultCodespace)

	vault.RegisterInvariants(app.invariants, app.vaultKeeper)

	app.queryRouter = map[string]sdk.Querier{
		collateral.ModuleName: collateral.NewQuerier(app.collateralKeeper),
		oracle.ModuleName:     oracle.NewQuerier(app.oracleKeeper),
		vault.QuerierRoute:    vault.NewQuerier(app.vaultKeeper),
	}

	return app
}

func (app *BHVaultApp) Name() string                         { return app.name }
func (app *BHVaultApp) Logger() log.Logger                   { return app.logger }
func (app *BHVaultApp) Codec() *codec.Codec                  { return app.cdc }
func (app *BHVaultApp) CollateralKeeper() collateral.Keeper  { return app.collateralKeeper }
func (app *BHVaultApp) OracleKeeper() oracle.Keeper          { return app.oracleKeeper }
func (app *BHVaultApp) VaultKeeper() vault.Keeper            { return app.vaultKeeper }
func (app *BHVaultApp) Invariants() []sdk.InvarRoute         { return app.invariants.Routes() }

func (app *BHVaultApp) mainStore() sdk.KVStore {
	return sdk.NewContext(app.db, "", 0, app.logger).KVStore(app.keys[mainStoreKey])
}

// Initialized reports whether InitChain has run on the database.
func (app *BHVaultApp) Initialized() bool {
	return app.mainStore().Has(chainIDKey)
}

func (app *BHVaultApp) ChainID() string {
	return string(app.mainStore().Get(chainIDKey))
}

// LastBlockHeight returns the height of the last block closed by EndBlock.
func (app *BHVaultApp) LastBlockHeight() int64 {
	bz := app.mainStore().Get(lastHeightKey)
	if len(bz) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

func (app *BHVaultApp) setLastBlockHeight(height int64) {
	app.mainStore().Set(lastHeightKey, sdk.Uint64ToBigEndian(uint64(height)))
}

// NewContext returns a context for the block being built, one above the last closed block.
func (app *BHVaultApp) NewContext() sdk.Context {
	return sdk.NewContext(app.db, app.ChainID(), app.LastBlockHeight()+1, app.logger)
}

// InitChain validates and loads the genesis app state.
func (app *BHVaultApp) InitChain(chainID string, appState json.RawMessage) error {
	if app.Initialized() {
		return fmt.Errorf("chain %s already initialized", app.ChainID())
	}
	if strings.TrimSpace(chainID) == "" {
		return errors.New("chain id must not be empty")
	}

	var genesisState GenesisState
	if err := app.cdc.UnmarshalJSON(appState, &genesisState); err != nil {
		return errors.Wrap(err, "failed to parse app state")
	}
	if err := ValidateGenesis(app.cdc, genesisState); err != nil {
		return err
	}

	ctx := sdk.NewContext(app.db, chainID, 0, app.logger)
	collateral.InitGenesis(ctx, app.collateralKeeper, collateralGenesis(app.cdc, genesisState))
	oracle.InitGenesis(ctx, app.oracleKeeper, oracleGenesis(app.cdc, genesisState))
	vault.InitGenesis(ctx, app.vaultKeeper, vault.GetGenesisStateFromAppState(app.cdc, genesisState))

	if msg, broken := app.invariants.AssertInvariants(ctx); broken {
		return errors.New(msg)
	}

	app.mainStore().Set(chainIDKey, []byte(chainID))
	app.setLastBlockHeight(0)
	app.logger.Info("chain initialized", "chain_id", chainID, "vaults", len(app.vaultKeeper.GetAllVaults(ctx)))
	return nil
}

// LoadLatest brings the stored state up to the current storage version.
func (app *BHVaultApp) LoadLatest() error {
	if !app.Initialized() {
		return nil
	}
	if err := app.vaultKeeper.MigrateV0ToV1(app.NewContext()); err != nil {
		return errors.New(err.ABCILog())
	}
	return nil
}

// EndBlock closes the block being built: undercollateralized vaults are
// liquidated and, every invCheckPeriod blocks, the invariants are asserted.
func (app *BHVaultApp) EndBlock() (int64, []sdk.CUAddress, error) {
	if !app.Initialized() {
		return 0, nil, errors.New("chain not initialized")
	}
	ctx := app.NewContext()
	liquidated := vault.EndBlocker(ctx, app.vaultKeeper)

	if app.invCheckPeriod != 0 && ctx.BlockHeight()%int64(app.invCheckPeriod) == 0 {
		if msg, broken := app.invariants.AssertInvariants(ctx); broken {
			app.logger.Error("invariant broken", "height", ctx.BlockHeight(), "msg", msg)
			return ctx.BlockHeight(), liquidated, errors.New(msg)
		}
	}

	app.setLastBlockHeight(ctx.BlockHeight())
	return ctx.BlockHeight(), liquidated, nil
}

// AssertInvariants runs every registered invariant against the current state.
func (app *BHVaultApp) AssertInvariants() error {
	if msg, broken := app.invariants.AssertInvariants(app.NewContext()); broken {
		return errors.New(msg)
	}
	return nil
}

// Query routes "custom/<module>/<endpoint>" (the "custom/" prefix is optional)
// to the module querier.
func (app *BHVaultApp) Query(path string, data []byte) ([]byte, sdk.Error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] == customQueryPath {
		parts = parts[1:]
	}
	if len(parts) < 2 {
		return nil, sdk.ErrUnknownRequest(fmt.Sprintf("invalid query path %q", path))
	}
	querier, ok := app.queryRouter[parts[0]]
	if !ok {
		return nil, sdk.ErrUnknownRequest(fmt.Sprintf("no route for module %s", parts[0]))
	}
	req := abci.RequestQuery{Path: path, Data: data, Height: app.LastBlockHeight()}
	return querier(app.NewContext(), parts[1:], req)
}

// ExportAppStateJSON exports the state of every module.
func (app *BHVaultApp) ExportAppStateJSON() (json.RawMessage, error) {
	ctx := app.NewContext()
	genState := GenesisState{
		collateral.ModuleName: app.cdc.MustMarshalJSON(collateral.ExportGenesis(ctx, app.collateralKeeper)),
		oracle.ModuleName:     app.cdc.MustMarshalJSON(oracle.ExportGenesis(ctx, app.oracleKeeper)),
		vault.ModuleName:      app.cdc.MustMarshalJSON(vault.ExportGenesis(ctx, app.vaultKeeper)),
	}
	return codec.MarshalJSONIndent(app.cdc, genState)
}
