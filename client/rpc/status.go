package rpc

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	"github.com/hbtc-chain/bhvault/types/rest"
)

// NodeInfo is the status of a node.
type NodeInfo struct {
	ChainID         string `json:"chain_id"`
	LastBlockHeight int64  `json:"last_block_height"`
}

// LatestBlock identifies the last closed block.
type LatestBlock struct {
	Height int64 `json:"height"`
}

func StatusCommand(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the chain id and last block height of the node",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cliCtx := context.NewNodeContext().WithCodec(cdc)
			info, err := getNodeInfo(cliCtx)
			if err != nil {
				return err
			}
			return cliCtx.PrintOutput(info)
		},
	}
	return flags.GetCommands(cmd)[0]
}

func getNodeInfo(cliCtx context.NodeContext) (NodeInfo, error) {
	node, closer, err := cliCtx.GetNode()
	if err != nil {
		return NodeInfo{}, err
	}
	defer closer()
	return NodeInfo{ChainID: node.ChainID(), LastBlockHeight: node.LastBlockHeight()}, nil
}

func NodeInfoRequestHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := getNodeInfo(cliCtx)
		if err != nil {
			rest.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		rest.PostProcessResponseBare(w, cliCtx.Codec, info, cliCtx.Indent)
	}
}

func LatestBlockRequestHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := getNodeInfo(cliCtx)
		if err != nil {
			rest.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		rest.PostProcessResponseBare(w, cliCtx.Codec, LatestBlock{Height: info.LastBlockHeight}, cliCtx.Indent)
	}
}
