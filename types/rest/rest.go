// Package rest provides HTTP types and primitives for REST
// requests validation and responses handling.
package rest

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"cosmossdk.io/math"
	"github.com/gorilla/mux"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
)

// ErrorResponse defines the attributes of a JSON error response.
type ErrorResponse struct {
	Code  int    `json:"code,omitempty"`
	Error string `json:"error"`
}

// NewErrorResponse creates a new ErrorResponse instance.
func NewErrorResponse(code int, err string) ErrorResponse {
	return ErrorResponse{Code: code, Error: err}
}

// ResponseWithHeight wraps a query result with the height it was taken at.
// It is written with the amino codec, so the height is a JSON string.
type ResponseWithHeight struct {
	Height int64           `json:"height"`
	Result json.RawMessage `json:"result"`
}

// AmountReq is the body of every request that moves an amount.
type AmountReq struct {
	Amount string `json:"amount"`
}

// WriteErrorResponse prepares and writes a HTTP error
// given a status code and an error message.
func WriteErrorResponse(w http.ResponseWriter, status int, err string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(codec.Cdc.MustMarshalJSON(NewErrorResponse(0, err)))
}

// WriteNodeErrorResponse writes an error returned by the node. Errors that
// carry a code are reported with it; anything else falls back to status.
func WriteNodeErrorResponse(w http.ResponseWriter, status int, err error) {
	_, code, msg, ok := sdk.ParseABCILog(err.Error())
	if !ok {
		WriteErrorResponse(w, status, err.Error())
		return
	}
	status = http.StatusBadRequest
	switch code {
	case sdk.CodeUnknownRequest:
		status = http.StatusNotFound
	case sdk.CodeUnauthorized:
		status = http.StatusUnauthorized
	case sdk.CodeInternal:
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(codec.Cdc.MustMarshalJSON(NewErrorResponse(int(code), msg)))
}

// ReadRESTReq reads and unmarshals a Request's body to the the BaseReq stuct.
// Writes an error response to ResponseWriter and returns true if errors occurred.
func ReadRESTReq(w http.ResponseWriter, r *http.Request, cdc *codec.Codec, req interface{}) bool {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}

	err = cdc.UnmarshalJSON(body, req)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to decode JSON payload: %s", err))
		return false
	}

	return true
}

// ParseAddressOrReturnBadRequest parses the mux variable name as a CU address.
func ParseAddressOrReturnBadRequest(w http.ResponseWriter, r *http.Request, name string) (sdk.CUAddress, bool) {
	addr, err := sdk.CUAddressFromBase58(mux.Vars(r)[name])
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return addr, true
}

// ParseUintOrReturnBadRequest parses an amount string.
func ParseUintOrReturnBadRequest(w http.ResponseWriter, s string) (math.Uint, bool) {
	amount, err := math.ParseUint(s)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid amount %q: %s", s, err))
		return math.Uint{}, false
	}
	return amount, true
}

// ParseQueryParamBool parses the given param to a boolean. It returns false by
// default if the string is not parseable to bool.
func ParseQueryParamBool(r *http.Request, param string) bool {
	if value, err := strconv.ParseBool(r.FormValue(param)); err == nil {
		return value
	}
	return false
}

// PostProcessResponseBare writes the body without wrapping it with a height.
func PostProcessResponseBare(w http.ResponseWriter, cdc *codec.Codec, body interface{}, indent bool) {
	var (
		resp []byte
		err  error
	)

	switch b := body.(type) {
	case []byte:
		resp = b

	default:
		if indent {
			resp, err = codec.MarshalJSONIndent(cdc, body)
		} else {
			resp, err = cdc.MarshalJSON(body)
		}
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(resp)
}

// PostProcessResponse wraps a raw query result with the height it was taken at.
func PostProcessResponse(w http.ResponseWriter, cdc *codec.Codec, height int64, result []byte, indent bool) {
	PostProcessResponseBare(w, cdc, ResponseWithHeight{Height: height, Result: result}, indent)
}
