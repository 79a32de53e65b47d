package types

import (
	"fmt"

	"cosmossdk.io/math"
)

type GenesisState struct {
	Balances []Balance `json:"balances"`
}

func NewGenesisState(balances []Balance) GenesisState {
	return GenesisState{Balances: balances}
}

func DefaultGenesisState() GenesisState {
	return NewGenesisState([]Balance{})
}

func ValidateGenesis(data GenesisState) error {
	seen := make(map[string]bool, len(data.Balances))
	for _, b := range data.Balances {
		if b.Address.Empty() {
			return fmt.Errorf("balance with empty address")
		}
		if seen[b.Address.String()] {
			return fmt.Errorf("duplicate balance for %s", b.Address)
		}
		seen[b.Address.String()] = true
		if b.Free == (math.Uint{}) || b.Locked == (math.Uint{}) {
			return fmt.Errorf("balance of %s must set free and locked", b.Address)
		}
	}
	return nil
}
