package context

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	sdk "github.com/hbtc-chain/bhvault/types"
)

func newTestNode(t *testing.T) *LocalNode {
	app := bhvaultapp.NewBHVaultApp(log.NewNopLogger(), dbm.NewMemDB(), 1)
	gs := bhvaultapp.NewDefaultGenesisState(app.Codec())
	require.NoError(t, app.InitChain("context-test", app.Codec().MustMarshalJSON(gs)))
	return NewLocalNode(app)
}

func TestLocalNodeEndBlock(t *testing.T) {
	node := newTestNode(t)
	require.Equal(t, "context-test", node.ChainID())
	require.Equal(t, int64(0), node.LastBlockHeight())

	height, liquidated, err := node.EndBlock()
	require.NoError(t, err)
	require.Equal(t, int64(1), height)
	require.Empty(t, liquidated)
	require.Equal(t, int64(1), node.LastBlockHeight())
}

func TestQueryErrorKeepsCode(t *testing.T) {
	node := newTestNode(t)
	ctx := NewNodeContext().WithNode(node)

	_, _, err := ctx.QueryWithData("custom/nosuchmodule/params", nil)
	require.Error(t, err)
	_, code, _, ok := sdk.ParseABCILog(err.Error())
	require.True(t, ok)
	require.Equal(t, sdk.CodeUnknownRequest, code)
}

func TestLocalNodeClose(t *testing.T) {
	node := newTestNode(t)

	closed := 0
	node.Close(func() { closed++ })
	node.Close(func() { closed++ })
	require.Equal(t, 1, closed)

	require.Equal(t, "", node.ChainID())
	_, _, err := node.EndBlock()
	require.Error(t, err)
	_, err = node.Query("custom/vault/params", nil)
	require.NotNil(t, err)

	execErr := node.Execute(func(app *bhvaultapp.BHVaultApp, ctx sdk.Context) sdk.Error { return nil })
	require.Error(t, execErr)
}
