package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/codec"
	"github.com/hbtc-chain/bhvault/x/vault"
)

// ExportCmd dumps the current state as a genesis file.
func ExportCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc).WithLogger(ctx.Logger)
			app, closer, err := cliCtx.OpenApp()
			if err != nil {
				return err
			}
			defer closer()
			if !app.Initialized() {
				return fmt.Errorf("no chain initialized under %s", cliCtx.Home)
			}

			appState, err := app.ExportAppStateJSON()
			if err != nil {
				return fmt.Errorf("error exporting state: %v", err)
			}
			doc, err := tmtypes.GenesisDocFromFile(cliCtx.GenesisFile())
			if err != nil {
				return err
			}
			doc.AppState = appState

			encoded, err := codec.MarshalJSONIndent(cdc, doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cliCtx.Output, string(encoded))
			return err
		},
	}
}

// ValidateGenesisCmd takes a genesis file, and makes sure that it is valid.
func ValidateGenesisCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Args:  cobra.RangeArgs(0, 1),
		Short: "validates the genesis file at the default location or at the location passed as an arg",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)

			// Load default if passed no args, otherwise load passed file
			genesis := cliCtx.GenesisFile()
			if len(args) == 1 {
				genesis = args[0]
			}

			if err := ValidateGenesisFile(cdc, genesis); err != nil {
				return err
			}
			fmt.Fprintf(cliCtx.Output, "File at %s is a valid genesis file\n", genesis)
			return nil
		},
	}
}

// ValidateGenesisFile checks the document and the app state of every module.
func ValidateGenesisFile(cdc *codec.Codec, path string) error {
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	genDoc, err := tmtypes.GenesisDocFromJSON(bz)
	if err != nil {
		return fmt.Errorf("error loading genesis doc from %s: %s", path, err.Error())
	}

	var genState bhvaultapp.GenesisState
	if err = cdc.UnmarshalJSON(genDoc.AppState, &genState); err != nil {
		return fmt.Errorf("error unmarshaling genesis doc %s: %s", path, err.Error())
	}
	if err = bhvaultapp.ValidateGenesis(cdc, genState); err != nil {
		return fmt.Errorf("error validating genesis file %s: %s", path, err.Error())
	}
	return nil
}

// MigrateCmd upgrades the stored vault records to the current storage version.
func MigrateCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the stored state to the current storage version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc).WithLogger(ctx.Logger)
			// opening the app migrates it
			app, closer, err := cliCtx.OpenApp()
			if err != nil {
				return err
			}
			defer closer()

			version := app.VaultKeeper().GetStorageVersion(app.NewContext())
			out, _ := json.Marshal(struct {
				StorageVersion vault.Version `json:"storage_version"`
			}{version})
			_, err = fmt.Fprintln(cliCtx.Output, string(out))
			return err
		},
	}
}
