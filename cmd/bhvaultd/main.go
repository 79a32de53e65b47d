package main

import (
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/cli"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/keys"
	"github.com/hbtc-chain/bhvault/client/rpc"
	"github.com/hbtc-chain/bhvault/codec"
	"github.com/hbtc-chain/bhvault/server"
	collateralcli "github.com/hbtc-chain/bhvault/x/collateral/client/cli"
	oraclecli "github.com/hbtc-chain/bhvault/x/oracle/client/cli"
	vaultcli "github.com/hbtc-chain/bhvault/x/vault/client/cli"
)

func main() {
	cdc := bhvaultapp.MakeCodec()

	ctx := server.NewDefaultContext()
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:               "bhvaultd",
		Short:             "BTC vault registry daemon",
		PersistentPreRunE: server.PersistentPreRunEFn(ctx),
	}

	server.AddCommands(ctx, cdc, rootCmd)
	rootCmd.AddCommand(
		queryCmd(cdc),
		txCmd(cdc),
		keys.Commands(cdc),
		rpc.StatusCommand(cdc),
	)

	// prepare and add flags
	executor := cli.PrepareMainCmd(rootCmd, "BHVAULT", bhvaultapp.DefaultNodeHome)
	err := executor.Execute()
	if err != nil {
		panic(err)
	}
}

func queryCmd(cdc *codec.Codec) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
	}
	queryCmd.AddCommand(
		collateralcli.GetQueryCmd(cdc),
		oraclecli.GetQueryCmd(cdc),
		vaultcli.GetQueryCmd(cdc),
	)
	return queryCmd
}

func txCmd(cdc *codec.Codec) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "State changing subcommands, run against a stopped node",
	}
	txCmd.AddCommand(
		collateralcli.GetTxCmd(cdc),
		oraclecli.GetTxCmd(cdc),
		vaultcli.GetTxCmd(cdc),
	)
	return txCmd
}
