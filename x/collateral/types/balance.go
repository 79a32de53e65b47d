package types

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// Balance is an account's holding of the collateral asset.
type Balance struct {
	Address sdk.CUAddress `json:"address"`
	Free    math.Uint     `json:"free"`
	Locked  math.Uint     `json:"locked"`
}

func NewBalance(addr sdk.CUAddress) Balance {
	return Balance{Address: addr, Free: math.ZeroUint(), Locked: math.ZeroUint()}
}

func (b Balance) Total() math.Uint {
	return b.Free.Add(b.Locked)
}

func (b Balance) IsZero() bool {
	return b.Free.IsZero() && b.Locked.IsZero()
}

func (b Balance) String() string {
	return fmt.Sprintf("%s: free %s, locked %s", b.Address, b.Free, b.Locked)
}
