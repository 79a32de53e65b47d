package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/types/rest"
	"github.com/hbtc-chain/bhvault/x/oracle"
	"github.com/hbtc-chain/bhvault/x/vault"
)

type testServer struct {
	app    *bhvaultapp.BHVaultApp
	router *mux.Router
}

func newTestServer(t *testing.T) testServer {
	app := bhvaultapp.NewBHVaultApp(log.NewNopLogger(), dbm.NewMemDB(), 1)
	gs := bhvaultapp.NewDefaultGenesisState(app.Codec())
	gs[oracle.ModuleName] = app.Codec().MustMarshalJSON(oracle.GenesisState{
		Params:       oracle.DefaultParams(),
		ExchangeRate: &oracle.ExchangeRate{Rate: math.LegacyOneDec()},
	})
	require.NoError(t, app.InitChain("rest-test", app.Codec().MustMarshalJSON(gs)))

	cliCtx := context.NodeContext{Codec: app.Codec()}.WithNode(context.NewLocalNode(app))
	r := mux.NewRouter()
	RegisterRoutes(cliCtx, r)
	return testServer{app: app, router: r}
}

func (s testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(bz)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) decodeVault(t *testing.T, bz []byte) vault.Vault {
	var v vault.Vault
	require.NoError(t, s.app.Codec().UnmarshalJSON(bz, &v), string(bz))
	return v
}

func newOperator(t *testing.T, s testServer, funds uint64) (sdk.CUAddress, vault.BtcPublicKey) {
	id := sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address())
	require.Nil(t, s.app.CollateralKeeper().Deposit(s.app.NewContext(), id, math.NewUint(funds)))
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pk, err := vault.NewBtcPublicKey(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)
	return id, pk
}

func TestRegisterAndQueryVault(t *testing.T) {
	s := newTestServer(t)
	id, pk := newOperator(t, s, 2000)

	w := s.do("POST", "/vault/vaults", map[string]string{
		"id": id.String(), "collateral": "1500", "public_key": pk.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := s.decodeVault(t, w.Body.Bytes())
	require.True(t, v.ID.Equals(id))

	w = s.do("GET", fmt.Sprintf("/vault/vaults/%s", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp rest.ResponseWithHeight
	require.NoError(t, s.app.Codec().UnmarshalJSON(w.Body.Bytes(), &resp))
	require.Equal(t, s.app.LastBlockHeight(), resp.Height)
	v = s.decodeVault(t, resp.Result)
	require.Equal(t, pk, v.Wallet.PublicKey)

	w = s.do("POST", "/vault/vaults", map[string]string{
		"id": id.String(), "collateral": "1500", "public_key": pk.String(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("GET", "/vault/vaults/not-an-address", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenOperations(t *testing.T) {
	s := newTestServer(t)
	id, pk := newOperator(t, s, 1500)
	require.Nil(t, s.app.VaultKeeper().RegisterVault(s.app.NewContext(), id, math.NewUint(1500), pk))

	for _, step := range []struct {
		op     string
		amount string
		code   int
	}{
		{"request-issue", "400", http.StatusOK},
		{"issue", "400", http.StatusOK},
		{"request-issue", "700", http.StatusBadRequest},
		{"request-redeem", "100", http.StatusOK},
		{"redeem", "100", http.StatusOK},
		{"redeem", "not-a-number", http.StatusBadRequest},
		{"mint", "1", http.StatusNotFound},
	} {
		w := s.do("POST", fmt.Sprintf("/vault/vaults/%s/%s", id, step.op), rest.AmountReq{Amount: step.amount})
		require.Equal(t, step.code, w.Code, "%s %s: %s", step.op, step.amount, w.Body.String())
	}

	v, err := s.app.VaultKeeper().GetVault(s.app.NewContext(), id)
	require.Nil(t, err)
	require.Equal(t, "300", v.IssuedTokens.String())
	require.True(t, v.ToBeRedeemedTokens.IsZero())
}

func TestDepositAddressAndCollateralization(t *testing.T) {
	s := newTestServer(t)
	id, pk := newOperator(t, s, 1500)
	require.Nil(t, s.app.VaultKeeper().RegisterVault(s.app.NewContext(), id, math.NewUint(1500), pk))

	w := s.do("POST", fmt.Sprintf("/vault/vaults/%s/deposit_address", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var address vault.BtcAddress
	require.NoError(t, s.app.Codec().UnmarshalJSON(w.Body.Bytes(), &address))

	v, err := s.app.VaultKeeper().GetVault(s.app.NewContext(), id)
	require.Nil(t, err)
	require.True(t, v.Wallet.HasBtcAddress(address))

	w = s.do("POST", fmt.Sprintf("/vault/vaults/%s/deposit_address", id), DepositAddressReq{SecureID: "abcd"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("GET", fmt.Sprintf("/vault/vaults/%s/collateralization", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp rest.ResponseWithHeight
	require.NoError(t, s.app.Codec().UnmarshalJSON(w.Body.Bytes(), &resp))
	require.Equal(t, s.app.LastBlockHeight(), resp.Height)
	var report vault.VaultCollateralization
	require.NoError(t, s.app.Codec().UnmarshalJSON(resp.Result, &report))
	require.Equal(t, "1000", report.IssuableTokens.String())

	w = s.do("GET", fmt.Sprintf("/vault/vaults/%s/slashed_amount?stake=1000", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do("GET", "/vault/params", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
