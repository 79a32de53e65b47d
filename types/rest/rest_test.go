package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
)

func TestWriteNodeErrorResponse(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"plain error keeps fallback", errors.New("dial failed"), http.StatusInternalServerError, 0, "dial failed"},
		{"unknown request", errors.New(sdk.ErrUnknownRequest("no such path").ABCILog()), http.StatusNotFound, int(sdk.CodeUnknownRequest), "no such path"},
		{"module error", errors.New(sdk.NewError("vault", 3002, "vault not found").ABCILog()), http.StatusBadRequest, 3002, "vault not found"},
		{"internal", errors.New(sdk.ErrInternal("store broken").ABCILog()), http.StatusInternalServerError, int(sdk.CodeInternal), "store broken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteNodeErrorResponse(rec, http.StatusInternalServerError, tc.err)
			require.Equal(t, tc.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, codec.Cdc.UnmarshalJSON(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.wantCode, resp.Code)
			require.Equal(t, tc.wantMsg, resp.Error)
		})
	}
}

func TestParseUintOrReturnBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	amount, ok := ParseUintOrReturnBadRequest(rec, "150")
	require.True(t, ok)
	require.Equal(t, uint64(150), amount.Uint64())

	rec = httptest.NewRecorder()
	_, ok = ParseUintOrReturnBadRequest(rec, "-1")
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostProcessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	PostProcessResponse(rec, codec.Cdc, 7, []byte(`{"rate":"2"}`), false)
	require.Contains(t, rec.Body.String(), `"height":"7"`)

	var resp ResponseWithHeight
	require.NoError(t, codec.Cdc.UnmarshalJSON(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(7), resp.Height)
	require.JSONEq(t, `{"rate":"2"}`, string(resp.Result))
}
