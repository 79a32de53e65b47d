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
	"github.com/hbtc-chain/bhvault/x/oracle"
)

// SetExchangeRateReq is the body of an exchange rate update.
type SetExchangeRateReq struct {
	Rate string `json:"rate"`
}

// RegisterRoutes registers the oracle module REST routes.
func RegisterRoutes(cliCtx context.NodeContext, r *mux.Router) {
	r.HandleFunc("/oracle/exchange_rate", queryHandlerFn(cliCtx, oracle.QueryExchangeRate)).Methods("GET")
	r.HandleFunc("/oracle/params", queryHandlerFn(cliCtx, oracle.QueryParams)).Methods("GET")
	r.HandleFunc("/oracle/exchange_rate", setExchangeRateHandlerFn(cliCtx)).Methods("POST")
}

func queryHandlerFn(cliCtx context.NodeContext, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, height, err := cliCtx.QueryWithData(fmt.Sprintf("custom/%s/%s", oracle.ModuleName, endpoint), nil)
		if err != nil {
			rest.WriteNodeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		rest.PostProcessResponse(w, cliCtx.Codec, height, res, cliCtx.Indent)
	}
}

func setExchangeRateHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetExchangeRateReq
		if !rest.ReadRESTReq(w, r, cliCtx.Codec, &req) {
			return
		}
		rate, err := math.LegacyNewDecFromStr(req.Rate)
		if err != nil {
			rest.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		var out oracle.ExchangeRate
		err = cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
			if err := app.OracleKeeper().SetExchangeRate(ctx, rate); err != nil {
				return err
			}
			out = oracle.ExchangeRate{Rate: rate, LastUpdated: ctx.BlockHeight()}
			return nil
		})
		if err != nil {
			rest.WriteNodeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		rest.PostProcessResponseBare(w, cliCtx.Codec, out, cliCtx.Indent)
	}
}
