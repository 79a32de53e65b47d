package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// MaxExchangeRate bounds a rate so conversions of any amount stay within decimal precision.
var MaxExchangeRate = math.LegacyNewDec(1_000_000_000_000_000_000)

// ExchangeRate is the amount of collateral smallest units per smallest unit of
// the pegged asset, with the height it was reported at.
type ExchangeRate struct {
	Rate        math.LegacyDec `json:"rate"`
	LastUpdated int64          `json:"last_updated"`
}

func (r ExchangeRate) String() string {
	return fmt.Sprintf("%s (height %d)", r.Rate, r.LastUpdated)
}

// ValidateRate rejects zero, negative and oversized rates.
func ValidateRate(rate math.LegacyDec) error {
	if rate.IsNil() || !rate.IsPositive() {
		return fmt.Errorf("exchange rate must be positive")
	}
	if rate.GT(MaxExchangeRate) {
		return fmt.Errorf("exchange rate %s exceeds %s", rate, MaxExchangeRate)
	}
	return nil
}

// Params - parameters of the oracle
type Params struct {
	// Number of blocks after which a reported rate is stale. Zero disables the check.
	MaxDelay int64 `json:"max_delay"`
}

func NewParams(maxDelay int64) Params {
	return Params{MaxDelay: maxDelay}
}

func DefaultParams() Params {
	return NewParams(600)
}

func (p Params) Validate() error {
	if p.MaxDelay < 0 {
		return fmt.Errorf("max delay must not be negative: %d", p.MaxDelay)
	}
	return nil
}

type GenesisState struct {
	Params       Params        `json:"params"`
	ExchangeRate *ExchangeRate `json:"exchange_rate"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Params: DefaultParams()}
}

func ValidateGenesis(data GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}
	if data.ExchangeRate != nil {
		return ValidateRate(data.ExchangeRate.Rate)
	}
	return nil
}
