package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/oracle"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   oracle.ModuleName,
		Short: "Oracle transaction subcommands",
	}
	txCmd.AddCommand(flags.PostCommands(GetCmdSetExchangeRate(cdc))...)
	return txCmd
}

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   oracle.ModuleName,
		Short: "Querying commands for the oracle module",
	}
	queryCmd.AddCommand(flags.GetCommands(
		queryCommand(cdc, "rate", "Query the collateral per BTC exchange rate", oracle.QueryExchangeRate),
		queryCommand(cdc, "params", "Query the oracle parameters", oracle.QueryParams),
	)...)
	return queryCmd
}

func GetCmdSetExchangeRate(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "set-rate [rate]",
		Short: "Set the amount of collateral worth one BTC unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			rate, err := math.LegacyNewDecFromStr(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %v", args[0], err)
			}
			return cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
				return app.OracleKeeper().SetExchangeRate(ctx, rate)
			})
		},
	}
}

func queryCommand(cdc *codec.Codec, use, short, endpoint string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			res, _, err := cliCtx.QueryWithData(fmt.Sprintf("custom/%s/%s", oracle.ModuleName, endpoint), nil)
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(res)
		},
	}
}
