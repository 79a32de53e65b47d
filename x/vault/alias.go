package vault

import (
	"github.com/hbtc-chain/bhvault/x/vault/types"
)

const (
	ModuleName       = types.ModuleName
	StoreKey         = types.StoreKey
	QuerierRoute     = types.QuerierRoute
	DefaultCodespace = types.DefaultCodespace

	VaultStatusActive         = types.VaultStatusActive
	VaultStatusLiquidated     = types.VaultStatusLiquidated
	VaultStatusCommittedTheft = types.VaultStatusCommittedTheft
)

var (
	RegisterCodec               = types.RegisterCodec
	ModuleCdc                   = types.ModuleCdc
	NewVault                    = types.NewVault
	NewSystemVault              = types.NewSystemVault
	NewGenesisState             = types.NewGenesisState
	DefaultGenesisState         = types.DefaultGenesisState
	ValidateGenesis             = types.ValidateGenesis
	DefaultParams               = types.DefaultParams
	LiquidationVaultAddress     = types.LiquidationVaultAddress
	NewBtcPublicKey             = types.NewBtcPublicKey
	BtcPublicKeyFromHex         = types.BtcPublicKeyFromHex
	ParseBtcAddress             = types.ParseBtcAddress
	NewP2WPKHAddress            = types.NewP2WPKHAddress
	BtcNetParams                = types.BtcNetParams
	NewQueryVaultParams         = types.NewQueryVaultParams
	NewQueryVaultsParams        = types.NewQueryVaultsParams
	NewQuerySlashedAmountParams = types.NewQuerySlashedAmountParams
	GetGenesisStateFromAppState = types.GetGenesisStateFromAppState
)

type (
	Vault                  = types.Vault
	SystemVault            = types.SystemVault
	VaultStatus            = types.VaultStatus
	Wallet                 = types.Wallet
	BtcPublicKey           = types.BtcPublicKey
	BtcAddress             = types.BtcAddress
	Params                 = types.Params
	GenesisState           = types.GenesisState
	VaultCollateralization = types.VaultCollateralization
	SlashedAmount          = types.SlashedAmount
	Version                = types.Version
)
