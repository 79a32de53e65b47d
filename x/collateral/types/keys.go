package types

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

const (
	// module name
	ModuleName = "collateral"

	// StoreKey is string representation of the store key for collateral
	StoreKey = ModuleName
)

var (
	BalanceKeyPrefix = []byte{0x01}
)

// key = prefix + cuaddress
func BalanceKey(addr sdk.CUAddress) []byte {
	return append(BalanceKeyPrefix, addr.Bytes()...)
}

// query endpoints supported by the collateral Querier
const (
	QueryBalance = "balance"
)

// QueryBalanceParams defines the params for querying an account balance.
type QueryBalanceParams struct {
	Address sdk.CUAddress `json:"address"`
}

func NewQueryBalanceParams(addr sdk.CUAddress) QueryBalanceParams {
	return QueryBalanceParams{Address: addr}
}
