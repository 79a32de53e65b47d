package client

import (
	"github.com/gorilla/mux"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/rpc"
	collateralrest "github.com/hbtc-chain/bhvault/x/collateral/client/rest"
	oraclerest "github.com/hbtc-chain/bhvault/x/oracle/client/rest"
	vaultrest "github.com/hbtc-chain/bhvault/x/vault/client/rest"
)

// Register routes
func RegisterRoutes(cliCtx context.NodeContext, r *mux.Router) {
	rpc.RegisterRPCRoutes(cliCtx, r)
	collateralrest.RegisterRoutes(cliCtx, r)
	oraclerest.RegisterRoutes(cliCtx, r)
	vaultrest.RegisterRoutes(cliCtx, r)
}
