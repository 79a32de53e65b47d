package types

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// query endpoints supported by the vault Querier
const (
	QueryVault             = "vault"
	QueryVaults            = "vaults"
	QueryLiquidationVault  = "liquidation_vault"
	QueryCollateralization = "collateralization"
	QueryParams            = "params"
	QuerySlashedAmount     = "slashed_amount"
)

// QueryVaultParams defines the params for querying a single vault.
type QueryVaultParams struct {
	ID sdk.CUAddress `json:"id"`
}

func NewQueryVaultParams(id sdk.CUAddress) QueryVaultParams {
	return QueryVaultParams{ID: id}
}

// QueryVaultsParams filters the vault list.
type QueryVaultsParams struct {
	ActiveOnly bool `json:"active_only"`
}

func NewQueryVaultsParams(activeOnly bool) QueryVaultsParams {
	return QueryVaultsParams{ActiveOnly: activeOnly}
}

// VaultCollateralization is the collateral report of one vault at the queried
// height. When used collateral exceeds collateral, free collateral and
// issuable tokens are zero and the shortfall is reported as the deficit.
type VaultCollateralization struct {
	ID                sdk.CUAddress `json:"id"`
	Status            VaultStatus   `json:"status"`
	Collateral        math.Uint     `json:"collateral"`
	UsedCollateral    math.Uint     `json:"used_collateral"`
	FreeCollateral    math.Uint     `json:"free_collateral"`
	CollateralDeficit math.Uint     `json:"collateral_deficit"`
	IssuableTokens    math.Uint     `json:"issuable_tokens"`
	BannedUntil       *int64        `json:"banned_until"`
	Banned            bool          `json:"banned"`
}

// QuerySlashedAmountParams asks for the SLA slash of a vault's stake.
type QuerySlashedAmountParams struct {
	ID    sdk.CUAddress `json:"id"`
	Stake math.Uint     `json:"stake"`
}

func NewQuerySlashedAmountParams(id sdk.CUAddress, stake math.Uint) QuerySlashedAmountParams {
	return QuerySlashedAmountParams{ID: id, Stake: stake}
}

type SlashedAmount struct {
	ID      sdk.CUAddress `json:"id"`
	Stake   math.Uint     `json:"stake"`
	Slashed math.Uint     `json:"slashed"`
}
