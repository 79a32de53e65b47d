package rest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/types/rest"
	"github.com/hbtc-chain/bhvault/x/vault"
	"github.com/hbtc-chain/bhvault/x/vault/client/utils"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// RegisterVaultReq is the body of a vault registration.
type RegisterVaultReq struct {
	ID         sdk.CUAddress      `json:"id"`
	Collateral string             `json:"collateral"`
	PublicKey  vault.BtcPublicKey `json:"public_key"`
}

// DepositAddressReq optionally fixes the secure id of a new deposit address.
type DepositAddressReq struct {
	SecureID string `json:"secure_id"`
}

// RegisterRoutes registers the vault module REST routes.
func RegisterRoutes(cliCtx context.NodeContext, r *mux.Router) {
	registerQueryRoutes(cliCtx, r)
	registerTxRoutes(cliCtx, r)
}

func registerQueryRoutes(cliCtx context.NodeContext, r *mux.Router) {
	r.HandleFunc("/vault/vaults", vaultsHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/vault/vaults/{id}", vaultQueryHandlerFn(cliCtx, types.QueryVault)).Methods("GET")
	r.HandleFunc("/vault/vaults/{id}/collateralization",
		vaultQueryHandlerFn(cliCtx, types.QueryCollateralization)).Methods("GET")
	r.HandleFunc("/vault/vaults/{id}/slashed_amount", slashedAmountHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/vault/liquidation_vault", queryHandlerFn(cliCtx, types.QueryLiquidationVault)).Methods("GET")
	r.HandleFunc("/vault/params", queryHandlerFn(cliCtx, types.QueryParams)).Methods("GET")
}

func registerTxRoutes(cliCtx context.NodeContext, r *mux.Router) {
	r.HandleFunc("/vault/vaults", registerVaultHandlerFn(cliCtx)).Methods("POST")
	r.HandleFunc("/vault/vaults/{id}/deposit_address", depositAddressHandlerFn(cliCtx)).Methods("POST")
	r.HandleFunc("/vault/vaults/{id}/{operation}", tokenOperationHandlerFn(cliCtx)).Methods("POST")
}

func route(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", types.QuerierRoute, endpoint)
}

func writeQuery(w http.ResponseWriter, cliCtx context.NodeContext, endpoint string, params interface{}) {
	res, height, err := cliCtx.QueryWithParams(route(endpoint), params)
	if err != nil {
		rest.WriteNodeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	rest.PostProcessResponse(w, cliCtx.Codec, height, res, cliCtx.Indent)
}

func queryHandlerFn(cliCtx context.NodeContext, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeQuery(w, cliCtx, endpoint, nil)
	}
}

func vaultsHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := types.NewQueryVaultsParams(rest.ParseQueryParamBool(r, "active_only"))
		writeQuery(w, cliCtx, types.QueryVaults, params)
	}
}

func vaultQueryHandlerFn(cliCtx context.NodeContext, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := rest.ParseAddressOrReturnBadRequest(w, r, "id")
		if !ok {
			return
		}
		writeQuery(w, cliCtx, endpoint, types.NewQueryVaultParams(id))
	}
}

func slashedAmountHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := rest.ParseAddressOrReturnBadRequest(w, r, "id")
		if !ok {
			return
		}
		stake, ok := rest.ParseUintOrReturnBadRequest(w, r.FormValue("stake"))
		if !ok {
			return
		}
		writeQuery(w, cliCtx, types.QuerySlashedAmount, types.NewQuerySlashedAmountParams(id, stake))
	}
}

// execute runs fn on the node and writes the resulting state of vault id.
func execute(w http.ResponseWriter, cliCtx context.NodeContext, id sdk.CUAddress, fn func(k vault.Keeper, ctx sdk.Context) sdk.Error) {
	var out vault.Vault
	err := cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
		if err := fn(app.VaultKeeper(), ctx); err != nil {
			return err
		}
		v, err := app.VaultKeeper().GetVault(ctx, id)
		out = v
		return err
	})
	if err != nil {
		rest.WriteNodeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	rest.PostProcessResponseBare(w, cliCtx.Codec, out, cliCtx.Indent)
}

func registerVaultHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterVaultReq
		if !rest.ReadRESTReq(w, r, cliCtx.Codec, &req) {
			return
		}
		collateral, ok := rest.ParseUintOrReturnBadRequest(w, req.Collateral)
		if !ok {
			return
		}
		if req.ID.Empty() {
			rest.WriteErrorResponse(w, http.StatusBadRequest, "missing vault id")
			return
		}
		execute(w, cliCtx, req.ID, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
			return k.RegisterVault(ctx, req.ID, collateral, req.PublicKey)
		})
	}
}

func tokenOperationHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["operation"]
		op, found := utils.TokenOperations[name]
		if !found {
			rest.WriteErrorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown vault operation %s", name))
			return
		}
		id, ok := rest.ParseAddressOrReturnBadRequest(w, r, "id")
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
		execute(w, cliCtx, id, func(k vault.Keeper, ctx sdk.Context) sdk.Error {
			return op(k, ctx, id, amount)
		})
	}
}

func depositAddressHandlerFn(cliCtx context.NodeContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := rest.ParseAddressOrReturnBadRequest(w, r, "id")
		if !ok {
			return
		}
		var req DepositAddressReq
		if r.ContentLength != 0 && !rest.ReadRESTReq(w, r, cliCtx.Codec, &req) {
			return
		}
		secureID, err := utils.ParseSecureID(req.SecureID)
		if err != nil {
			rest.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		var address vault.BtcAddress
		err = cliCtx.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error {
			var sdkErr sdk.Error
			address, sdkErr = app.VaultKeeper().NewDepositAddress(ctx, id, secureID)
			return sdkErr
		})
		if err != nil {
			rest.WriteNodeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		rest.PostProcessResponseBare(w, cliCtx.Codec, address, cliCtx.Indent)
	}
}
