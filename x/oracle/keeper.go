package oracle

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/oracle/types"
)

// maxConvertBits bounds the operands and results of a conversion.
const maxConvertBits = 128

// Keeper stores the pegged/collateral exchange rate and converts amounts with it.
type Keeper struct {
	key       sdk.StoreKey
	cdc       *codec.Codec
	codespace sdk.CodespaceType
}

func NewKeeper(cdc *codec.Codec, key sdk.StoreKey, codespace sdk.CodespaceType) Keeper {
	return Keeper{key: key, cdc: cdc, codespace: codespace}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	bz := ctx.KVStore(k.key).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	k.cdc.MustUnmarshalJSON(bz, &params)
	return params
}

func (k Keeper) SetParams(ctx sdk.Context, params types.Params) {
	ctx.KVStore(k.key).Set(types.ParamsKey, k.cdc.MustMarshalJSON(params))
}

// SetExchangeRate records rate as reported at the current block height.
func (k Keeper) SetExchangeRate(ctx sdk.Context, rate math.LegacyDec) sdk.Error {
	if err := types.ValidateRate(rate); err != nil {
		return types.ErrInvalidExchangeRate(k.codespace, err.Error())
	}
	k.setExchangeRate(ctx, types.ExchangeRate{Rate: rate, LastUpdated: ctx.BlockHeight()})
	k.Logger(ctx).Info("exchange rate updated", "rate", rate.String(), "height", ctx.BlockHeight())
	return nil
}

func (k Keeper) setExchangeRate(ctx sdk.Context, rate types.ExchangeRate) {
	ctx.KVStore(k.key).Set(types.ExchangeRateKey, k.cdc.MustMarshalJSON(rate))
}

func (k Keeper) getExchangeRate(ctx sdk.Context) (types.ExchangeRate, bool) {
	bz := ctx.KVStore(k.key).Get(types.ExchangeRateKey)
	if bz == nil {
		return types.ExchangeRate{}, false
	}
	var rate types.ExchangeRate
	k.cdc.MustUnmarshalJSON(bz, &rate)
	return rate, true
}

// GetExchangeRate returns the current rate, failing when none was reported or
// the last report is older than MaxDelay blocks.
func (k Keeper) GetExchangeRate(ctx sdk.Context) (math.LegacyDec, sdk.Error) {
	rate, found := k.getExchangeRate(ctx)
	if !found {
		return math.LegacyDec{}, types.ErrMissingExchangeRate(k.codespace, "exchange rate not set")
	}
	maxDelay := k.GetParams(ctx).MaxDelay
	if maxDelay > 0 && ctx.BlockHeight()-rate.LastUpdated > maxDelay {
		return math.LegacyDec{}, types.ErrMissingExchangeRate(k.codespace,
			fmt.Sprintf("exchange rate reported at %d is stale at %d", rate.LastUpdated, ctx.BlockHeight()))
	}
	return rate.Rate, nil
}

// BtcToDots converts an amount of the pegged asset into collateral.
func (k Keeper) BtcToDots(ctx sdk.Context, amount math.Uint) (math.Uint, sdk.Error) {
	rate, err := k.GetExchangeRate(ctx)
	if err != nil {
		return math.Uint{}, err
	}
	return k.convert(amount, func(d math.LegacyDec) math.LegacyDec { return d.Mul(rate) })
}

// DotsToBtc converts an amount of collateral into the pegged asset.
func (k Keeper) DotsToBtc(ctx sdk.Context, amount math.Uint) (math.Uint, sdk.Error) {
	rate, err := k.GetExchangeRate(ctx)
	if err != nil {
		return math.Uint{}, err
	}
	return k.convert(amount, func(d math.LegacyDec) math.LegacyDec { return d.Quo(rate) })
}

func (k Keeper) convert(amount math.Uint, apply func(math.LegacyDec) math.LegacyDec) (math.Uint, sdk.Error) {
	in := amount.BigInt()
	if in.BitLen() > maxConvertBits {
		return math.Uint{}, types.ErrArithmeticOverflow(k.codespace, fmt.Sprintf("amount %s too large", amount))
	}
	out := apply(math.LegacyNewDecFromBigInt(in)).TruncateInt().BigInt()
	if out.BitLen() > maxConvertBits {
		return math.Uint{}, types.ErrArithmeticOverflow(k.codespace, fmt.Sprintf("converted amount %s too large", out))
	}
	return math.NewUintFromBigInt(out), nil
}
