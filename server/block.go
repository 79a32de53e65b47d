package server

import (
	"fmt"
	"path/filepath"
	"strconv"

	cp "github.com/otiai10/copy"
	"github.com/spf13/cobra"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
)

// EndBlockResult reports the blocks closed by EndBlockCmd.
type EndBlockResult struct {
	Height     int64           `json:"height"`
	Liquidated []sdk.CUAddress `json:"liquidated"`
}

// EndBlockCmd closes blocks without running the node.
func EndBlockCmd(ctx *Context, cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "end-block [count]",
		Short: "Close one or more blocks, liquidating undercollateralized vaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid block count %s", args[0])
				}
				count = n
			}

			cliCtx := context.NewNodeContext().WithCodec(cdc).WithLogger(ctx.Logger)
			result, err := EndBlocks(cliCtx, count)
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(result)
		},
	}
}

// EndBlocks closes count blocks on the node of cliCtx.
func EndBlocks(cliCtx context.NodeContext, count int) (EndBlockResult, error) {
	result := EndBlockResult{Liquidated: []sdk.CUAddress{}}
	node, closer, err := cliCtx.GetNode()
	if err != nil {
		return result, err
	}
	defer closer()

	for i := 0; i < count; i++ {
		height, liquidated, err := node.EndBlock()
		if err != nil {
			return result, err
		}
		result.Height = height
		result.Liquidated = append(result.Liquidated, liquidated...)
	}
	return result, nil
}

// SnapshotCmd copies the data directory of a stopped node.
func SnapshotCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [dest]",
		Short: "Copy the node database to dest, the node must be stopped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewNodeContext()
			dest, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := cp.Copy(cliCtx.DataDir(), dest); err != nil {
				return err
			}
			ctx.Logger.Info("snapshot written", "src", cliCtx.DataDir(), "dest", dest)
			return nil
		},
	}
}
