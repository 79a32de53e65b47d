package server

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
)

const (
	flagWithRest   = "with-rest"
	flagCPUProfile = "cpu-profile"
	flagHaltHeight = "halt-height"
)

// StartCmd runs the node: it closes a block every block interval and
// optionally serves the REST routes in process.
func StartCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node",
		Long: `Run the node, closing a block every --block-interval. Closing a block liquidates
every vault below the liquidation threshold and asserts the invariants every
--inv-check-period blocks.

Node halting can be configured with '--halt-height'. Once the last closed block
reaches the halt height the node shuts down gracefully.

For profiling and benchmarking purposes, CPU profiling can be enabled via the '--cpu-profile' flag
which accepts a path for the resulting pprof file.
`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return startInProcess(ctx, cdc)
		},
	}

	cmd.Flags().String(flags.FlagBlockInterval, "5s", "Time between two closed blocks")
	cmd.Flags().Bool(flagWithRest, true, "Serve the REST routes in process")
	cmd.Flags().Int64(flagHaltHeight, 0, "Height at which to gracefully halt the node")
	cmd.Flags().String(flagCPUProfile, "", "Enable CPU profiling and write to the provided file")
	return flags.RegisterRestServerFlags(cmd)
}

func startInProcess(ctx *Context, cdc *codec.Codec) error {
	interval, err := time.ParseDuration(viper.GetString(flags.FlagBlockInterval))
	if err != nil {
		return fmt.Errorf("invalid block interval: %v", err)
	}
	if interval <= 0 {
		return fmt.Errorf("block interval must be positive: %s", interval)
	}

	cliCtx := context.NewNodeContext().WithCodec(cdc).WithLogger(ctx.Logger)
	app, closer, err := cliCtx.OpenApp()
	if err != nil {
		return err
	}
	if !app.Initialized() {
		closer()
		return fmt.Errorf("no genesis file found under %s, run init first", cliCtx.Home)
	}
	node := context.NewLocalNode(app)
	cliCtx = cliCtx.WithNode(node)

	var rs *RestServer
	if viper.GetBool(flagWithRest) {
		rs = NewRestServer(cliCtx, ctx.Logger)
		go func() {
			if err := rs.Start(viper.GetString(flags.FlagListenAddr), viper.GetInt(flags.FlagMaxOpenConns)); err != nil {
				ctx.Logger.Error("REST server stopped", "err", err)
			}
		}()
	}

	var cpuProfileCleanup func()

	if cpuProfile := viper.GetString(flagCPUProfile); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			closer()
			return err
		}

		ctx.Logger.Info("starting CPU profiler", "profile", cpuProfile)
		if err := pprof.StartCPUProfile(f); err != nil {
			closer()
			return err
		}

		cpuProfileCleanup = func() {
			ctx.Logger.Info("stopping CPU profiler", "profile", cpuProfile)
			pprof.StopCPUProfile()
			f.Close()
		}
	}

	shutdown := func() {
		if rs != nil {
			_ = rs.Stop()
		}
		if cpuProfileCleanup != nil {
			cpuProfileCleanup()
		}
		node.Close(closer)
		ctx.Logger.Info("exited")
	}
	cmn.TrapSignal(ctx.Logger, shutdown)

	ctx.Logger.Info("starting node", "chain_id", node.ChainID(), "height", node.LastBlockHeight(), "interval", interval)
	haltHeight := viper.GetInt64(flagHaltHeight)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		height, liquidated, err := node.EndBlock()
		if err != nil {
			shutdown()
			return err
		}
		ctx.Logger.Info("closed block", "height", height, "liquidated", len(liquidated))
		if haltHeight > 0 && height >= haltHeight {
			ctx.Logger.Info("halting node per configuration", "height", height)
			shutdown()
			return nil
		}
	}
	return nil
}
