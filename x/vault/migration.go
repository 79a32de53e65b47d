package vault

import (
	"fmt"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

// MigrateV0ToV1 rewrites every V0 vault record in the current layout and
// bumps the storage version. Nothing is written if any record fails to upgrade.
func (k Keeper) MigrateV0ToV1(ctx sdk.Context) sdk.Error {
	if k.GetStorageVersion(ctx) != types.V0 {
		return nil
	}

	var (
		upgraded []types.Vault
		err      sdk.Error
	)
	store := ctx.KVStore(k.key)
	iter := sdk.KVStorePrefixIterator(store, types.VaultKeyPrefix)
	for ; iter.Valid(); iter.Next() {
		var old types.VaultV0
		if decodeErr := types.LegacyCdc.UnmarshalJSON(iter.Value(), &old); decodeErr != nil {
			err = sdk.ErrInternal(fmt.Sprintf("failed to decode V0 vault %X: %s", iter.Key(), decodeErr))
			break
		}
		vault, upgradeErr := old.Upgrade()
		if upgradeErr != nil {
			err = types.ErrInvalidBtcAddress(k.codespace, fmt.Sprintf("vault %s: %s", old.ID, upgradeErr))
			break
		}
		upgraded = append(upgraded, vault)
	}
	iter.Close()
	if err != nil {
		return err
	}

	for _, vault := range upgraded {
		k.SetVault(ctx, vault)
	}
	k.SetStorageVersion(ctx, types.V1)

	k.Logger(ctx).Info("migrated vault storage", "from", "V0", "to", "V1", "vaults", len(upgraded))
	return nil
}
