package vault

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/internal"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// Keeper owns the vault registry: every vault record, the liquidation vault,
// the module params and the storage version.
type Keeper struct {
	// The (unexposed) key used to access the store from the Context.
	key sdk.StoreKey

	cdc *codec.Codec

	ck internal.CollateralKeeper
	ok internal.OracleKeeper

	codespace sdk.CodespaceType
}

// NewKeeper returns a new Keeper that uses go-amino JSON to encode vault records.
func NewKeeper(cdc *codec.Codec, key sdk.StoreKey, ck internal.CollateralKeeper, ok internal.OracleKeeper,
	codespace sdk.CodespaceType) Keeper {
	return Keeper{
		key:       key,
		cdc:       cdc,
		ck:        ck,
		ok:        ok,
		codespace: codespace,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) Codespace() sdk.CodespaceType {
	return k.codespace
}

//------ vault records ------

func (k Keeper) getVault(ctx sdk.Context, id sdk.CUAddress) (types.Vault, bool) {
	bz := ctx.KVStore(k.key).Get(types.VaultKey(id))
	if bz == nil {
		return types.Vault{}, false
	}
	return k.decodeVault(bz), true
}

func (k Keeper) decodeVault(bz []byte) types.Vault {
	var vault types.Vault
	k.cdc.MustUnmarshalJSON(bz, &vault)
	vault.Normalize()
	return vault
}

// GetVault returns the stored record of a vault.
func (k Keeper) GetVault(ctx sdk.Context, id sdk.CUAddress) (types.Vault, sdk.Error) {
	vault, found := k.getVault(ctx, id)
	if !found {
		return types.Vault{}, types.ErrVaultNotFound(k.codespace, fmt.Sprintf("vault %s does not exist", id))
	}
	return vault, nil
}

func (k Keeper) HasVault(ctx sdk.Context, id sdk.CUAddress) bool {
	return ctx.KVStore(k.key).Has(types.VaultKey(id))
}

func (k Keeper) SetVault(ctx sdk.Context, vault types.Vault) {
	ctx.KVStore(k.key).Set(types.VaultKey(vault.ID), k.cdc.MustMarshalJSON(vault))
}

// mutateVault applies f to the stored record of id. A missing record is
// replaced by fallback, which the caller has already passed through f.
func (k Keeper) mutateVault(ctx sdk.Context, id sdk.CUAddress, f func(*types.Vault), fallback types.Vault) {
	stored, found := k.getVault(ctx, id)
	if !found {
		k.SetVault(ctx, fallback)
		return
	}
	f(&stored)
	k.SetVault(ctx, stored)
}

// IterateVaults iterates over all the stored vaults and performs a callback function
func (k Keeper) IterateVaults(ctx sdk.Context, process func(types.Vault) (stop bool)) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.key), types.VaultKeyPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if process(k.decodeVault(iter.Value())) {
			return
		}
	}
}

func (k Keeper) GetAllVaults(ctx sdk.Context) []types.Vault {
	vaults := []types.Vault{}
	k.IterateVaults(ctx, func(v types.Vault) bool {
		vaults = append(vaults, v)
		return false
	})
	return vaults
}

// GetRichVault returns the working view of a vault.
func (k Keeper) GetRichVault(ctx sdk.Context, id sdk.CUAddress) (*RichVault, sdk.Error) {
	vault, err := k.GetVault(ctx, id)
	if err != nil {
		return nil, err
	}
	return newRichVault(k, vault), nil
}

// GetActiveRichVault is GetRichVault for vaults that were never liquidated.
func (k Keeper) GetActiveRichVault(ctx sdk.Context, id sdk.CUAddress) (*RichVault, sdk.Error) {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rv.Data().IsActive() {
		return nil, types.ErrVaultNotActive(k.codespace, fmt.Sprintf("vault %s is %s", id, rv.Data().Status))
	}
	return rv, nil
}

//------ liquidation vault ------

func (k Keeper) GetLiquidationVault(ctx sdk.Context) types.SystemVault {
	bz := ctx.KVStore(k.key).Get(types.LiquidationVaultKey)
	if bz == nil {
		return types.NewSystemVault(types.LiquidationVaultAddress())
	}
	var vault types.SystemVault
	k.cdc.MustUnmarshalJSON(bz, &vault)
	vault.Normalize()
	return vault
}

func (k Keeper) SetLiquidationVault(ctx sdk.Context, vault types.SystemVault) {
	ctx.KVStore(k.key).Set(types.LiquidationVaultKey, k.cdc.MustMarshalJSON(vault))
}

func (k Keeper) GetRichLiquidationVault(ctx sdk.Context) *RichSystemVault {
	return newRichSystemVault(k, k.GetLiquidationVault(ctx))
}

//------ params & storage version ------

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

// GetStorageVersion returns V0 for a store that never recorded a version.
func (k Keeper) GetStorageVersion(ctx sdk.Context) types.Version {
	bz := ctx.KVStore(k.key).Get(types.StorageVersionKey)
	if len(bz) == 0 {
		return types.V0
	}
	return types.Version(bz[0])
}

func (k Keeper) SetStorageVersion(ctx sdk.Context, version types.Version) {
	ctx.KVStore(k.key).Set(types.StorageVersionKey, []byte{byte(version)})
}

//------ registry operations ------

// RegisterVault creates a vault for id, locking collateral from its free balance.
func (k Keeper) RegisterVault(ctx sdk.Context, id sdk.CUAddress, collateral math.Uint, publicKey types.BtcPublicKey) sdk.Error {
	if err := sdk.VerifyAddressFormat(id); err != nil {
		return sdk.ErrInvalidAddress(err.Error())
	}
	if id.Equals(types.LiquidationVaultAddress()) {
		return sdk.ErrInvalidAddress("the liquidation vault cannot register")
	}
	if publicKey.IsEmpty() {
		return types.ErrInvalidPublicKey(k.codespace, "empty public key")
	}
	if k.HasVault(ctx, id) {
		return types.ErrVaultAlreadyRegistered(k.codespace, fmt.Sprintf("vault %s already registered", id))
	}
	minimum := k.GetParams(ctx).MinimumCollateralVault
	if collateral.LT(minimum) {
		return types.ErrInsufficientVaultCollateralAmount(k.codespace,
			fmt.Sprintf("collateral %s below minimum %s", collateral, minimum))
	}

	if err := k.ck.LockCollateral(ctx, id, collateral); err != nil {
		return err
	}
	k.SetVault(ctx, types.NewVault(id, publicKey))

	k.Logger(ctx).Info("vault registered", "id", id.String(), "collateral", collateral.String())
	return nil
}

// EnsureNotBanned fails when the vault is banned at the current block height.
func (k Keeper) EnsureNotBanned(ctx sdk.Context, id sdk.CUAddress) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	return rv.EnsureNotBanned(ctx.BlockHeight())
}

// BanVault bans the vault for PunishmentDelay blocks from the current height.
func (k Keeper) BanVault(ctx sdk.Context, id sdk.CUAddress) sdk.Error {
	rv, err := k.GetRichVault(ctx, id)
	if err != nil {
		return err
	}
	height := ctx.BlockHeight() + k.GetParams(ctx).PunishmentDelay
	rv.BanUntil(ctx, height)
	k.Logger(ctx).Info("vault banned", "id", id.String(), "until", height)
	return nil
}

// GetTotalIssuedTokens sums the issued tokens of every vault and the liquidation vault.
func (k Keeper) GetTotalIssuedTokens(ctx sdk.Context) math.Uint {
	total := k.GetLiquidationVault(ctx).IssuedTokens
	k.IterateVaults(ctx, func(v types.Vault) bool {
		total = total.Add(v.IssuedTokens)
		return false
	})
	return total
}

// GetTotalCollateral sums the collateral of every vault and the liquidation vault.
func (k Keeper) GetTotalCollateral(ctx sdk.Context) math.Uint {
	total := k.ck.GetCollateral(ctx, types.LiquidationVaultAddress())
	k.IterateVaults(ctx, func(v types.Vault) bool {
		total = total.Add(k.ck.GetCollateral(ctx, v.ID))
		return false
	})
	return total
}
