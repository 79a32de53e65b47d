package oracle

import (
	"github.com/hbtc-chain/bhvault/x/oracle/types"
)

const (
	ModuleName       = types.ModuleName
	StoreKey         = types.StoreKey
	DefaultCodespace = types.DefaultCodespace

	QueryExchangeRate = types.QueryExchangeRate
	QueryParams       = types.QueryParams
)

var (
	NewParams           = types.NewParams
	DefaultParams       = types.DefaultParams
	DefaultGenesisState = types.DefaultGenesisState
	ValidateGenesis     = types.ValidateGenesis
)

type (
	Params       = types.Params
	ExchangeRate = types.ExchangeRate
	GenesisState = types.GenesisState
)
