package types

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

const (
	// module name
	ModuleName = "vault"

	// StoreKey is string representation of the store key for vault
	StoreKey = ModuleName

	// QuerierRoute is the querier route for vault
	QuerierRoute = StoreKey

	// LiquidationVaultName the root string for the liquidation vault address
	LiquidationVaultName = "liquidation_vault"
)

var (
	// VaultKeyPrefix prefix for vault-by-address store
	VaultKeyPrefix = []byte{0x01}

	LiquidationVaultKey = []byte{0x02}

	ParamsKey = []byte{0x03}

	StorageVersionKey = []byte{0x04}
)

// VaultKey turn an address to key used to get it from the vault store
// key = prefix + cuaddress
func VaultKey(id sdk.CUAddress) []byte {
	return append(VaultKeyPrefix, id.Bytes()...)
}

// AddressFromVaultKey strips the prefix from a vault store key.
func AddressFromVaultKey(key []byte) sdk.CUAddress {
	return sdk.CUAddress(key[len(VaultKeyPrefix):])
}

// LiquidationVaultAddress is the account that receives the debt and collateral of liquidated vaults.
func LiquidationVaultAddress() sdk.CUAddress {
	return sdk.ModuleAddress(LiquidationVaultName)
}
