package vault

import (
	"cosmossdk.io/math"

	sdk "github.com/hbtc-chain/bhvault/types"
)

// CalculateSlashedAmount returns the part of stake forfeited by a vault that
// failed a request, PunishmentFee * stake capped at stake.
func (k Keeper) CalculateSlashedAmount(ctx sdk.Context, id sdk.CUAddress, stake math.Uint) (math.Uint, sdk.Error) {
	if _, err := k.GetVault(ctx, id); err != nil {
		return math.Uint{}, err
	}
	slashed, err := k.decToAmount(k.GetParams(ctx).PunishmentFee.Mul(uintToDec(stake)))
	if err != nil {
		return math.Uint{}, err
	}
	if slashed.GT(stake) {
		return stake, nil
	}
	return slashed, nil
}
