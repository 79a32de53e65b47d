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
	"github.com/hbtc-chain/bhvault/x/collateral"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   collateral.ModuleName,
		Short: "Collateral transaction subcommands",
	}
	txCmd.AddCommand(flags.PostCommands(
		balanceCommand(cdc, "deposit", "Credit the free balance of an account", collateral.Keeper.Deposit),
		balanceCommand(cdc, "withdraw", "Debit the free balance of an account", collateral.Keeper.Withdraw),
	)...)
	return txCmd
}

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   collateral.ModuleName,
		Short: "Querying commands for the collateral module",
	}
	queryCmd.AddCommand(flags.GetCommands(GetCmdQueryBalance(cdc))...)
	return queryCmd
}

func balanceCommand(cdc *codec.Codec, use, short string,
	fn func(k collateral.Keeper, ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [address] [amount]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			addr, err := sdk.CUAddressFromBase58(args[0])
			if err != nil {
				return err
			}
			amount, err := math.ParseUint(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %v", args[1], err)
			}

			var balance collateral.Balance
			err = cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
				if err := fn(app.CollateralKeeper(), ctx, addr, amount); err != nil {
					return err
				}
				balance = app.CollateralKeeper().GetBalance(ctx, addr)
				return nil
			})
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(balance)
		},
	}
}

func GetCmdQueryBalance(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Query the free and locked balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			addr, err := sdk.CUAddressFromBase58(args[0])
			if err != nil {
				return err
			}
			res, _, err := cliCtx.QueryWithParams(
				fmt.Sprintf("custom/%s/%s", collateral.ModuleName, collateral.QueryBalance),
				collateral.NewQueryBalanceParams(addr))
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(res)
		},
	}
}
