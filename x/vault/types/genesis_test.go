package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/secp256k1"

	sdk "github.com/hbtc-chain/bhvault/types"
)

func TestValidateGenesis(t *testing.T) {
	require.NoError(t, ValidateGenesis(DefaultGenesisState()))

	pk := mustPublicKey(t, generatorHex)
	newVault := func() Vault {
		return NewVault(sdk.CUAddress(secp256k1.GenPrivKey().PubKey().Address()), pk)
	}

	valid := newVault()
	gs := NewGenesisState(DefaultParams(), []Vault{valid}, NewSystemVault(LiquidationVaultAddress()))
	require.NoError(t, ValidateGenesis(gs))

	tests := []struct {
		name   string
		modify func(*GenesisState)
	}{
		{"duplicate vault", func(gs *GenesisState) { gs.Vaults = append(gs.Vaults, gs.Vaults[0]) }},
		{"redeeming more than issued", func(gs *GenesisState) { gs.Vaults[0].ToBeRedeemedTokens = math.NewUint(1) }},
		{"liquidated vault with issued tokens", func(gs *GenesisState) {
			gs.Vaults[0].Status = VaultStatusLiquidated
			gs.Vaults[0].IssuedTokens = math.NewUint(1)
		}},
		{"invalid status", func(gs *GenesisState) { gs.Vaults[0].Status = VaultStatus(7) }},
		{"missing public key", func(gs *GenesisState) { gs.Vaults[0].Wallet.PublicKey = BtcPublicKey{} }},
		{"wrong liquidation vault", func(gs *GenesisState) { gs.LiquidationVault.ID = newVault().ID }},
		{"liquidation vault registered", func(gs *GenesisState) {
			v := newVault()
			v.ID = LiquidationVaultAddress()
			gs.Vaults = append(gs.Vaults, v)
		}},
		{"invalid params", func(gs *GenesisState) { gs.Params.PunishmentDelay = -5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := NewGenesisState(DefaultParams(), []Vault{valid}, NewSystemVault(LiquidationVaultAddress()))
			tc.modify(&gs)
			assert.Error(t, ValidateGenesis(gs))
		})
	}
}
