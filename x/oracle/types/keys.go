package types

const (
	// module name
	ModuleName = "oracle"

	// StoreKey is string representation of the store key for oracle
	StoreKey = ModuleName
)

var (
	ExchangeRateKey = []byte{0x01}
	ParamsKey       = []byte{0x02}
)

// query endpoints supported by the oracle Querier
const (
	QueryExchangeRate = "exchange_rate"
	QueryParams       = "params"
)
