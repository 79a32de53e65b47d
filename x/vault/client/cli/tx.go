package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault"
	"github.com/hbtc-chain/bhvault/x/vault/client/utils"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	vaultTxCmd := &cobra.Command{
		Use:                        vault.ModuleName,
		Short:                      "Vault transaction subcommands",
		SuggestionsMinimumDistance: 2,
	}

	cmds := []*cobra.Command{
		GetCmdRegisterVault(cdc),
	}
	for _, name := range utils.OperationNames() {
		cmds = append(cmds, GetCmdTokenOperation(cdc, name))
	}
	cmds = append(cmds,
		GetCmdReplaceTokens(cdc),
		GetCmdNewDepositAddress(cdc),
		GetCmdUpdatePublicKey(cdc),
		GetCmdLiquidateVault(cdc),
		GetCmdReportTheft(cdc),
		GetCmdBanVault(cdc),
	)
	vaultTxCmd.AddCommand(flags.PostCommands(cmds...)...)
	return vaultTxCmd
}

func parseAddress(s string) (sdk.CUAddress, error) {
	addr, err := sdk.CUAddressFromBase58(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %v", s, err)
	}
	return addr, nil
}

func parseAmount(s string) (math.Uint, error) {
	amount, err := math.ParseUint(s)
	if err != nil {
		return math.Uint{}, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	return amount, nil
}

// executeAndPrint runs fn and prints the resulting state of vault id.
func executeAndPrint(cliCtx context.NodeContext, id sdk.CUAddress, fn func(k vault.Keeper, ctx sdk.Context) sdk.Error) error {
	var out vault.Vault
	err := cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
		if err := fn(app.VaultKeeper(), ctx); err != nil {
			return err
		}
		v, err := app.VaultKeeper().GetVault(ctx, id)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return err
	}
	return cliCtx.PrintOutput(out)
}

func GetCmdRegisterVault(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "register [id] [collateral] [btc-public-key]",
		Short: "Register a vault locking collateral from the free balance of id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			collateral, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			pk, err := vault.BtcPublicKeyFromHex(args[2])
			if err != nil {
				return fmt.Errorf("invalid bitcoin public key: %v", err)
			}
			return executeAndPrint(cliCtx, id, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
				return k.RegisterVault(ctx, id, collateral, pk)
			})
		},
	}
}

func GetCmdTokenOperation(cdc *codec.Codec, name string) *cobra.Command {
	op := utils.TokenOperations[name]
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [id] [amount]", name),
		Short: utils.OperationDescription(name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return executeAndPrint(cliCtx, id, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
				return op(k, ctx, id, amount)
			})
		},
	}
}

func GetCmdReplaceTokens(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "replace [old-id] [new-id] [amount]",
		Short: "Move issued tokens from one vault to another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			oldID, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			newID, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return executeAndPrint(cliCtx, newID, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
				return k.ReplaceTokens(ctx, oldID, newID, amount)
			})
		},
	}
}

func GetCmdNewDepositAddress(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit-address [id]",
		Short: "Derive and record a new deposit address of a vault",
		Long: `Derive a new bitcoin deposit address from the vault public key.
A random secure id is used unless --secure-id is given as 32 hex encoded bytes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			secureID, err := utils.ParseSecureID(viper.GetString(flags.FlagSecureID))
			if err != nil {
				return fmt.Errorf("invalid secure id: %v", err)
			}

			var address vault.BtcAddress
			err = cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
				var sdkErr sdk.Error
				address, sdkErr = app.VaultKeeper().NewDepositAddress(ctx, id, secureID)
				return sdkErr
			})
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(address)
		},
	}
	cmd.Flags().String(flags.FlagSecureID, "", "Hex encoded 32 byte secure id")
	return cmd
}

func GetCmdUpdatePublicKey(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "update-public-key [id] [btc-public-key]",
		Short: "Replace the public key deposit addresses are derived from",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			pk, err := vault.BtcPublicKeyFromHex(args[1])
			if err != nil {
				return fmt.Errorf("invalid bitcoin public key: %v", err)
			}
			return executeAndPrint(cliCtx, id, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
				return k.UpdatePublicKey(ctx, id, pk)
			})
		},
	}
}

func vaultCommand(cdc *codec.Codec, use, short string, fn func(k vault.Keeper, ctx sdk.Context, id sdk.CUAddress) sdk.Error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			id, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			return executeAndPrint(cliCtx, id, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
				return fn(k, ctx, id)
			})
		},
	}
}

func GetCmdLiquidateVault(cdc *codec.Codec) *cobra.Command {
	return vaultCommand(cdc, "liquidate", "Liquidate a vault below the liquidation threshold",
		func(k vault.Keeper, ctx sdk.Context, id sdk.CUAddress) sdk.Error {
			below, err := k.IsVaultBelowLiquidationThreshold(ctx, id)
			if err != nil {
				return err
			}
			if !below {
				return sdk.ErrUnauthorized(fmt.Sprintf("vault %s is above the liquidation threshold", id))
			}
			return k.LiquidateVault(ctx, id)
		})
}

func GetCmdReportTheft(cdc *codec.Codec) *cobra.Command {
	return vaultCommand(cdc, "report-theft", "Liquidate a vault that moved bitcoin out of its deposit addresses",
		vault.Keeper.LiquidateTheftVault)
}

func GetCmdBanVault(cdc *codec.Codec) *cobra.Command {
	return vaultCommand(cdc, "ban", "Ban a vault from new issues and redeems for the punishment delay",
		vault.Keeper.BanVault)
}
