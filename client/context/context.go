package context

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"
	yaml "gopkg.in/yaml.v2"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
)

const appDBName = "application"

// Node is a loaded application that serves queries and state changes.
type Node interface {
	ChainID() string
	LastBlockHeight() int64
	Query(path string, data []byte) ([]byte, sdk.Error)
	Execute(fn func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error) error
	EndBlock() (int64, []sdk.CUAddress, error)
}

// NodeContext implements a typical context created in SDK modules for
// command line and REST handling.
type NodeContext struct {
	Codec          *codec.Codec
	Home           string
	OutputFormat   string
	Indent         bool
	InvCheckPeriod uint
	Output         io.Writer
	Logger         log.Logger

	node Node
}

// NewNodeContext returns a new initialized NodeContext with parameters from the
// command line using Viper.
func NewNodeContext() NodeContext {
	logger, err := tmflags.ParseLogLevel(viper.GetString(flags.FlagLogLevel),
		log.NewTMLogger(log.NewSyncWriter(os.Stderr)), flags.DefaultLogLevel)
	if err != nil {
		logger = log.NewNopLogger()
	}

	return NodeContext{
		Home:           viper.GetString(flags.FlagHome),
		OutputFormat:   viper.GetString(flags.FlagOutput),
		Indent:         viper.GetBool(flags.FlagIndent) || isatty.IsTerminal(os.Stdout.Fd()),
		InvCheckPeriod: viper.GetUint(flags.FlagInvCheckPeriod),
		Output:         os.Stdout,
		Logger:         logger,
	}
}

// WithCodec returns a copy of the context with an updated codec.
func (ctx NodeContext) WithCodec(cdc *codec.Codec) NodeContext {
	ctx.Codec = cdc
	return ctx
}

// WithOutput returns a copy of the context with an updated output writer (e.g. stdout).
func (ctx NodeContext) WithOutput(w io.Writer) NodeContext {
	ctx.Output = w
	return ctx
}

// WithHome returns a copy of the context with an updated home directory.
func (ctx NodeContext) WithHome(home string) NodeContext {
	ctx.Home = home
	return ctx
}

// WithLogger returns a copy of the context with an updated logger.
func (ctx NodeContext) WithLogger(logger log.Logger) NodeContext {
	ctx.Logger = logger
	return ctx
}

// WithNode returns a copy of the context serving from an already loaded node.
func (ctx NodeContext) WithNode(node Node) NodeContext {
	ctx.node = node
	return ctx
}

func (ctx NodeContext) DataDir() string {
	return filepath.Join(ctx.Home, "data")
}

func (ctx NodeContext) ConfigDir() string {
	return filepath.Join(ctx.Home, "config")
}

func (ctx NodeContext) GenesisFile() string {
	return filepath.Join(ctx.ConfigDir(), "genesis.json")
}

// OpenApp opens the application database under the home directory and
// migrates its state to the current storage version.
func (ctx NodeContext) OpenApp() (*bhvaultapp.BHVaultApp, func(), error) {
	db, err := sdk.NewLevelDB(appDBName, ctx.DataDir())
	if err != nil {
		return nil, nil, err
	}
	app := bhvaultapp.NewBHVaultApp(ctx.Logger, db, ctx.InvCheckPeriod)
	if err := ctx.loadApp(app); err != nil {
		db.Close()
		return nil, nil, err
	}
	return app, func() { db.Close() }, nil
}

// loadApp initializes a fresh database from the genesis file, or migrates
// an existing one.
func (ctx NodeContext) loadApp(app *bhvaultapp.BHVaultApp) error {
	if app.Initialized() {
		return app.LoadLatest()
	}
	if _, err := os.Stat(ctx.GenesisFile()); os.IsNotExist(err) {
		return nil
	}
	genDoc, err := tmtypes.GenesisDocFromFile(ctx.GenesisFile())
	if err != nil {
		return err
	}
	return app.InitChain(genDoc.ChainID, genDoc.AppState)
}

// GetNode returns the node of the context, loading it from disk when the
// context does not carry one.
func (ctx NodeContext) GetNode() (Node, func(), error) {
	if ctx.node != nil {
		return ctx.node, func() {}, nil
	}
	app, closer, err := ctx.OpenApp()
	if err != nil {
		return nil, nil, err
	}
	if !app.Initialized() {
		closer()
		return nil, nil, errors.Errorf("no chain initialized under %s, run init first", ctx.Home)
	}
	return NewLocalNode(app), closer, nil
}

// QueryWithData performs a query on the node with some data.
func (ctx NodeContext) QueryWithData(path string, data []byte) ([]byte, int64, error) {
	node, closer, err := ctx.GetNode()
	if err != nil {
		return nil, 0, err
	}
	defer closer()

	res, sdkErr := node.Query(path, data)
	if sdkErr != nil {
		return nil, 0, errors.New(sdkErr.ABCILog())
	}
	return res, node.LastBlockHeight(), nil
}

// QueryWithParams encodes params with the codec and performs the query.
func (ctx NodeContext) QueryWithParams(path string, params interface{}) ([]byte, int64, error) {
	var bz []byte
	if params != nil {
		var err error
		if bz, err = ctx.Codec.MarshalJSON(params); err != nil {
			return nil, 0, err
		}
	}
	return ctx.QueryWithData(path, bz)
}

// Execute runs fn against the block being built and reports its error.
func (ctx NodeContext) Execute(fn func(app *bhvaultapp.BHVaultApp, sdkCtx sdk.Context) sdk.Error) error {
	node, closer, err := ctx.GetNode()
	if err != nil {
		return err
	}
	defer closer()
	return node.Execute(fn)
}

// PrintOutput prints toPrint to the ctx.Output based on ctx.OutputFormat.
// If ctx.OutputFormat is "text" the JSON encoding is rendered as YAML.
func (ctx NodeContext) PrintOutput(toPrint interface{}) error {
	var (
		out []byte
		err error
	)

	if bz, ok := toPrint.([]byte); ok {
		out = bz
	} else if ctx.Indent {
		out, err = codec.MarshalJSONIndent(ctx.Codec, toPrint)
	} else {
		out, err = ctx.Codec.MarshalJSON(toPrint)
	}
	if err != nil {
		return err
	}

	if ctx.OutputFormat == "text" {
		var generic interface{}
		if err = yaml.Unmarshal(out, &generic); err != nil {
			return err
		}
		if out, err = yaml.Marshal(generic); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(ctx.Output, "%s\n", out)
	return err
}

// LocalNode serializes access to an application loaded in this process.
type LocalNode struct {
	mtx sync.Mutex
	app *bhvaultapp.BHVaultApp
}

var (
	_ Node = (*LocalNode)(nil)

	errNodeClosed = sdk.ErrInternal("node is shut down")
)

// NewLocalNode wraps app as a Node. Every call holds a lock on the
// application, so block production and client calls never interleave.
func NewLocalNode(app *bhvaultapp.BHVaultApp) *LocalNode {
	return &LocalNode{app: app}
}

// Close runs closer once no call is in flight. Later calls fail.
func (n *LocalNode) Close(closer func()) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return
	}
	closer()
	n.app = nil
}

func (n *LocalNode) ChainID() string {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return ""
	}
	return n.app.ChainID()
}

func (n *LocalNode) LastBlockHeight() int64 {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return 0
	}
	return n.app.LastBlockHeight()
}

func (n *LocalNode) Query(path string, data []byte) ([]byte, sdk.Error) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return nil, errNodeClosed
	}
	return n.app.Query(path, data)
}

func (n *LocalNode) Execute(fn func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error) error {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return errors.New(errNodeClosed.ABCILog())
	}
	if err := fn(n.app, n.app.NewContext()); err != nil {
		return errors.New(err.ABCILog())
	}
	return nil
}

func (n *LocalNode) EndBlock() (int64, []sdk.CUAddress, error) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.app == nil {
		return 0, nil, errNodeClosed
	}
	return n.app.EndBlock()
}
