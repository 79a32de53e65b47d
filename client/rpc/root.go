package rpc

import (
	"github.com/gorilla/mux"

	"github.com/hbtc-chain/bhvault/client/context"
)

// Register REST endpoints
func RegisterRPCRoutes(cliCtx context.NodeContext, r *mux.Router) {
	r.HandleFunc("/node_info", NodeInfoRequestHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/blocks/latest", LatestBlockRequestHandlerFn(cliCtx)).Methods("GET")
}
