package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
)

// InitCmd writes the config and genesis files of a new node.
func InitCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node configuration and genesis files",
		Long: `Initialize config/config.toml and config/genesis.json under the home directory.
The chain state is created from genesis.json the first time the node is opened.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			chainID := viper.GetString(flags.FlagChainID)
			if chainID == "" {
				chainID = fmt.Sprintf("bhvault-%s", cmn.RandStr(6))
			}

			genDoc, err := InitNode(cliCtx, chainID, viper.GetBool(flags.FlagOverwrite))
			if err != nil {
				return err
			}
			ctx.Logger.Info("initialized node", "chain_id", genDoc.ChainID, "home", cliCtx.Home)
			return nil
		},
	}
	cmd.Flags().String(flags.FlagChainID, "", "Genesis file chain-id, if left blank will be randomly created")
	cmd.Flags().Bool(flags.FlagOverwrite, false, "Overwrite the genesis.json file")
	return cmd
}

// InitNode writes the default config and a genesis file carrying the default
// app state of every module.
func InitNode(cliCtx context.NodeContext, chainID string, overwrite bool) (*tmtypes.GenesisDoc, error) {
	genFile := cliCtx.GenesisFile()
	if !overwrite && cmn.FileExists(genFile) {
		return nil, fmt.Errorf("genesis.json file already exists: %v", genFile)
	}

	cfgFile := filepath.Join(cliCtx.ConfigDir(), "config.toml")
	if !cmn.FileExists(cfgFile) {
		if err := WriteConfigFile(cfgFile, DefaultConfig()); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(cliCtx.DataDir(), 0700); err != nil {
		return nil, err
	}

	appState, err := codec.MarshalJSONIndent(cliCtx.Codec, bhvaultapp.NewDefaultGenesisState(cliCtx.Codec))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal default genesis state")
	}
	genDoc := &tmtypes.GenesisDoc{
		ChainID:  chainID,
		AppState: appState,
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		return nil, err
	}
	if err := genDoc.SaveAs(genFile); err != nil {
		return nil, err
	}
	return genDoc, nil
}
