package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	"github.com/hbtc-chain/bhvault/x/vault"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	vaultQueryCmd := &cobra.Command{
		Use:                        vault.ModuleName,
		Short:                      "Querying commands for the vault module",
		SuggestionsMinimumDistance: 2,
	}
	vaultQueryCmd.AddCommand(flags.GetCommands(
		GetCmdQueryVault(cdc),
		GetCmdQueryVaults(cdc),
		GetCmdQueryLiquidationVault(cdc),
		GetCmdQueryCollateralization(cdc),
		GetCmdQueryParams(cdc),
		GetCmdQuerySlashedAmount(cdc),
	)...)
	return vaultQueryCmd
}

func route(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", types.QuerierRoute, endpoint)
}

func queryAndPrint(cliCtx context.NodeContext, endpoint string, params interface{}) error {
	res, _, err := cliCtx.QueryWithParams(route(endpoint), params)
	if err != nil {
		return err
	}
	return cliCtx.PrintOutput(res)
}

func GetCmdQueryVault(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "vault [id]",
		Short: "Query a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			return queryAndPrint(cliCtx, types.QueryVault, types.NewQueryVaultParams(id))
		},
	}
}

func GetCmdQueryVaults(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaults",
		Short: "Query all vaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			params := types.NewQueryVaultsParams(viper.GetBool(flags.FlagActiveOnly))
			return queryAndPrint(cliCtx, types.QueryVaults, params)
		},
	}
	cmd.Flags().Bool(flags.FlagActiveOnly, false, "Only list vaults that were never liquidated")
	return cmd
}

func GetCmdQueryLiquidationVault(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "liquidation-vault",
		Short: "Query the liquidation vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			return queryAndPrint(cliCtx, types.QueryLiquidationVault, nil)
		},
	}
}

func GetCmdQueryCollateralization(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "collateralization [id]",
		Short: "Query the used, free and issuable collateral of a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			return queryAndPrint(cliCtx, types.QueryCollateralization, types.NewQueryVaultParams(id))
		},
	}
}

func GetCmdQueryParams(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Query the vault registry parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			return queryAndPrint(cliCtx, types.QueryParams, nil)
		},
	}
}

func GetCmdQuerySlashedAmount(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "slashed-amount [id] [stake]",
		Short: "Query the amount of stake slashed from a vault for a missed SLA",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			stake, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return queryAndPrint(cliCtx, types.QuerySlashedAmount, types.NewQuerySlashedAmountParams(id, stake))
		},
	}
}
