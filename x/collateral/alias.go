package collateral

import (
	"github.com/hbtc-chain/bhvault/x/collateral/types"
)

const (
	ModuleName       = types.ModuleName
	StoreKey         = types.StoreKey
	DefaultCodespace = types.DefaultCodespace
	QueryBalance     = types.QueryBalance
)

var (
	NewBalance            = types.NewBalance
	NewGenesisState       = types.NewGenesisState
	DefaultGenesisState   = types.DefaultGenesisState
	ValidateGenesis       = types.ValidateGenesis
	NewQueryBalanceParams = types.NewQueryBalanceParams
)

type (
	Balance      = types.Balance
	GenesisState = types.GenesisState
)
