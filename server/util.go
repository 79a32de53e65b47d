package server

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
)

// server context
type Context struct {
	Logger log.Logger
}

func NewDefaultContext() *Context {
	return &Context{Logger: log.NewTMLogger(log.NewSyncWriter(os.Stdout))}
}

// PersistentPreRunEFn returns a PersistentPreRunE function for cobra
// that sets up the logger of the server context.
func PersistentPreRunEFn(ctx *Context) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
		logger, err := tmflags.ParseLogLevel(viper.GetString(flags.FlagLogLevel), logger, flags.DefaultLogLevel)
		if err != nil {
			return err
		}
		ctx.Logger = logger.With("module", "main")
		return nil
	}
}

// AddCommands adds the node commands to rootCmd.
func AddCommands(ctx *Context, cdc *codec.Codec, rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String(flags.FlagLogLevel, flags.DefaultLogLevel, "Log level")
	rootCmd.PersistentFlags().Uint(flags.FlagInvCheckPeriod, 0, "Assert registered invariants every N blocks")

	rootCmd.AddCommand(
		InitCmd(ctx, cdc),
		ValidateGenesisCmd(ctx, cdc),
		StartCmd(ctx, cdc),
		RestServerCmd(ctx, cdc),
		EndBlockCmd(ctx, cdc),
		ExportCmd(ctx, cdc),
		MigrateCmd(ctx, cdc),
		SnapshotCmd(ctx),
	)
}
