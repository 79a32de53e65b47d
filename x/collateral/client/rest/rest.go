package rest

import (
	"fmt"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gorilla/mux"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/types/rest"
	"github.com/hbtc-chain/bhvault/x/collateral"
)

var balanceOperations = map[string]func(k collateral.Keeper, ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error{
	"deposit":  collateral.Keeper.Deposit,
	"withdraw": collateral.Keeper.Withdraw,
}

// RegisterRoutes registers the collateral module REST routes.
func RegisterRoutes(cliCtx context.NodeContext, r *mux.Router) {
	r.HandleFunc("/collateral/balances/{address}", balanceHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/collateral/balances/{address}/{operation}", balanceOperationHandlerFn(cliCtx)).Methods("POST")
}

func balanceHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, ok := rest.ParseAddressOrReturnBadRequest(w, r, "address")
		if !ok {
			return
		}
		res, height, err := cliCtx.QueryWithParams(
			fmt.Sprintf("custom/%s/%s", collateral.ModuleName, collateral.QueryBalance),
			collateral.NewQueryBalanceParams(addr))
		if err != nil {
			rest.WriteNodeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		rest.PostProcessResponse(w, cliCtx.Codec, height, res, cliCtx.Indent)
	}
}

func balanceOperationHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["operation"]
		op, found := balanceOperations[name]
		if !found {
			rest.WriteErrorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown balance operation %s", name))
			return
		}
		addr, ok := rest.ParseAddressOrReturnBadRequest(w, r, "address")
		if !ok {
			return
		}
		var req rest.AmountReq
		if !rest.ReadRESTReq(w, r, cliCtx.Codec, &req) {
			return
		}
		amount, ok := rest.ParseUintOrReturnBadRequest(w, req.Amount)
		if !ok {
			return
		}

		var balance collateral.Balance
		err := cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
			if err := op(app.CollateralKeeper(), ctx, addr, amount); err != nil {
				return err
			}
			balance = app.CollateralKeeper().GetBalance(ctx, addr)
			return nil
		})
		if err != nil {
			rest.WriteNodeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		rest.PostProcessResponseBare(w, cliCtx.Codec, balance, cliCtx.Indent)
	}
}
