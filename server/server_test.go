package server

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/hbtc-chain/bhvault/bhvaultapp"
	"github.com/hbtc-chain/bhvault/client/context"
)

func newTestNodeContext(t *testing.T) (context.NodeContext, func()) {
	home, err := ioutil.TempDir("", "bhvault-home")
	require.NoError(t, err)
	cliCtx := context.NodeContext{
		Codec:  bhvaultapp.MakeCodec(),
		Home:   home,
		Output: &bytes.Buffer{},
		Logger: log.NewNopLogger(),
	}
	return cliCtx, func() { os.RemoveAll(home) }
}

func TestConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "bhvault-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config", "config.toml")
	cfg := DefaultConfig()
	cfg.InvCheckPeriod = 10
	cfg.BlockInterval = "1s"
	require.NoError(t, WriteConfigFile(path, cfg))

	loaded, err := ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	_, err = ReadConfigFile(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestInitNode(t *testing.T) {
	cliCtx, cleanup := newTestNodeContext(t)
	defer cleanup()

	genDoc, err := InitNode(cliCtx, "test-chain", false)
	require.NoError(t, err)
	require.Equal(t, "test-chain", genDoc.ChainID)
	require.FileExists(t, filepath.Join(cliCtx.ConfigDir(), "config.toml"))
	require.NoError(t, ValidateGenesisFile(cliCtx.Codec, cliCtx.GenesisFile()))

	_, err = InitNode(cliCtx, "test-chain", false)
	require.Error(t, err)
	_, err = InitNode(cliCtx, "other-chain", true)
	require.NoError(t, err)
}

func TestValidateGenesisFileRejectsBadState(t *testing.T) {
	cliCtx, cleanup := newTestNodeContext(t)
	defer cleanup()

	path := filepath.Join(cliCtx.Home, "genesis.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"chain_id":"c","app_state":{}}`), 0644))
	require.Error(t, ValidateGenesisFile(cliCtx.Codec, path))
	require.Error(t, ValidateGenesisFile(cliCtx.Codec, filepath.Join(cliCtx.Home, "missing.json")))
}

func TestEndBlocks(t *testing.T) {
	cliCtx, cleanup := newTestNodeContext(t)
	defer cleanup()

	_, err := EndBlocks(cliCtx, 1)
	require.Error(t, err)

	_, err = InitNode(cliCtx, "test-chain", false)
	require.NoError(t, err)

	result, err := EndBlocks(cliCtx, 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Height)
	require.Empty(t, result.Liquidated)

	result, err = EndBlocks(cliCtx, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, result.Height)

	app, closer, err := cliCtx.OpenApp()
	require.NoError(t, err)
	defer closer()
	require.Equal(t, "test-chain", app.ChainID())
	require.EqualValues(t, 5, app.LastBlockHeight())
}
