package vault

import (
	"fmt"

	"cosmossdk.io/math"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// NewQuerier creates a querier for the vault registry endpoints.
func NewQuerier(k Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty vault query path")
		}
		switch path[0] {
		case types.QueryVault:
			return queryVault(ctx, req, k)
		case types.QueryVaults:
			return queryVaults(ctx, req, k)
		case types.QueryLiquidationVault:
			return marshalResult(k, k.GetLiquidationVault(ctx))
		case types.QueryCollateralization:
			return queryCollateralization(ctx, req, k)
		case types.QueryParams:
			return marshalResult(k, k.GetParams(ctx))
		case types.QuerySlashedAmount:
			return querySlashedAmount(ctx, req, k)
		default:
			return nil, sdk.ErrUnknownRequest("unknown vault query endpoint")
		}
	}
}

func marshalResult(k Keeper, v interface{}) ([]byte, sdk.Error) {
	bz, err := codec.MarshalJSONIndent(k.cdc, v)
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}

func parseVaultParams(req abci.RequestQuery, k Keeper) (types.QueryVaultParams, sdk.Error) {
	var params types.QueryVaultParams
	if err := k.cdc.UnmarshalJSON(req.Data, &params); err != nil {
		return params, sdk.ErrInternal(fmt.Sprintf("failed to parse params: %s", err))
	}
	return params, nil
}

func queryVault(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	params, err := parseVaultParams(req, k)
	if err != nil {
		return nil, err
	}
	vault, err := k.GetVault(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	return marshalResult(k, vault)
}

func queryVaults(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	var params types.QueryVaultsParams
	if len(req.Data) > 0 {
		if err := k.cdc.UnmarshalJSON(req.Data, &params); err != nil {
			return nil, sdk.ErrInternal(fmt.Sprintf("failed to parse params: %s", err))
		}
	}

	vaults := []types.Vault{}
	k.IterateVaults(ctx, func(v types.Vault) bool {
		if !params.ActiveOnly || v.IsActive() {
			vaults = append(vaults, v)
		}
		return false
	})
	return marshalResult(k, vaults)
}

func queryCollateralization(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	params, err := parseVaultParams(req, k)
	if err != nil {
		return nil, err
	}
	report, err := k.GetCollateralization(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	return marshalResult(k, report)
}

func querySlashedAmount(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	var params types.QuerySlashedAmountParams
	if err := k.cdc.UnmarshalJSON(req.Data, &params); err != nil {
		return nil, sdk.ErrInternal(fmt.Sprintf("failed to parse params: %s", err))
	}
	if params.Stake == (math.Uint{}) {
		params.Stake = math.ZeroUint()
	}
	slashed, err := k.CalculateSlashedAmount(ctx, params.ID, params.Stake)
	if err != nil {
		return nil, err
	}
	return marshalResult(k, types.SlashedAmount{ID: params.ID, Stake: params.Stake, Slashed: slashed})
}

// GetCollateralization reports the collateral position of a vault at the current height.
func (k Keeper) GetCollateralization(ctx sdk.Context, id sdk.CUAddress) (types.VaultCollateralization, sdk.Error) {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return types.VaultCollateralization{}, err
	}
	used, err := rv.GetUsedCollateral(ctx)
	if err != nil {
		return types.VaultCollateralization{}, err
	}
	collateral := rv.GetCollateral(ctx)
	free, issuable, deficit := math.ZeroUint(), math.ZeroUint(), math.ZeroUint()
	if used.GT(collateral) {
		deficit = used.Sub(collateral)
	} else {
		free = collateral.Sub(used)
		issuable, err = k.CalculateMaxIssuableFromCollateral(ctx, free, k.GetParams(ctx).SecureCollateralThreshold)
		if err != nil {
			return types.VaultCollateralization{}, err
		}
	}
	vault := rv.Data()
	return types.VaultCollateralization{
		ID:                id,
		Status:            vault.Status,
		Collateral:        collateral,
		UsedCollateral:    used,
		FreeCollateral:    free,
		CollateralDeficit: deficit,
		IssuableTokens:    issuable,
		BannedUntil:       vault.BannedUntil,
		Banned:            rv.EnsureNotBanned(ctx.BlockHeight()) != nil,
	}, nil
}
