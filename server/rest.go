package server

import (
	"net"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	rpcserver "github.com/tendermint/tendermint/rpc/lib/server"

	"github.com/hbtc-chain/bhvault/client"
	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
)

// RestServer represents the REST API server of a node.
type RestServer struct {
	Mux    *mux.Router
	CliCtx context.NodeContext

	log      log.Logger
	listener net.Listener
}

// NewRestServer creates a new rest server instance serving every module route.
func NewRestServer(cliCtx context.NodeContext, logger log.Logger) *RestServer {
	r := mux.NewRouter()
	client.RegisterRoutes(cliCtx, r)
	return &RestServer{
		Mux:    r,
		CliCtx: cliCtx,
		log:    logger.With("module", "rest-server"),
	}
}

// Start starts the rest server and blocks until it stops.
func (rs *RestServer) Start(listenAddr string, maxOpen int) (err error) {
	cfg := rpcserver.DefaultConfig()
	cfg.MaxOpenConnections = maxOpen

	rs.listener, err = rpcserver.Listen(listenAddr, cfg)
	if err != nil {
		return
	}
	rs.log.Info("starting REST server", "address", rs.listener.Addr())
	return rpcserver.StartHTTPServer(rs.listener, rs.Mux, rs.log, cfg)
}

// Stop closes the listener of a started server.
func (rs *RestServer) Stop() error {
	if rs.listener == nil {
		return nil
	}
	return rs.listener.Close()
}

// RestServerCmd serves the REST routes over the node database without
// producing blocks.
func RestServerCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rest-server",
		Short: "Start the REST server over the node database without producing blocks",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc).WithLogger(ctx.Logger)
			app, closer, err := cliCtx.OpenApp()
			if err != nil {
				return err
			}
			defer closer()

			rs := NewRestServer(cliCtx.WithNode(context.NewLocalNode(app)), ctx.Logger)
			return rs.Start(viper.GetString(flags.FlagListenAddr), viper.GetInt(flags.FlagMaxOpenConns))
		},
	}
	return flags.RegisterRestServerFlags(cmd)
}
