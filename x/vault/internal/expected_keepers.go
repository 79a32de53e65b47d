package internal

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// CollateralKeeper defines the collateral ledger the vault registry locks, releases and slashes through.
type CollateralKeeper interface {
	LockCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error
	ReleaseCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error
	SlashCollateral(ctx sdk.Context, from, to sdk.CUAddress, amount math.Uint) sdk.Error
	GetCollateral(ctx sdk.Context, addr sdk.CUAddress) math.Uint
}

// OracleKeeper converts between the pegged asset and the collateral asset.
type OracleKeeper interface {
	BtcToDots(ctx sdk.Context, amount math.Uint) (math.Uint, sdk.Error)
	DotsToBtc(ctx sdk.Context, amount math.Uint) (math.Uint, sdk.Error)
}
