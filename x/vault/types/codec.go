package types

import (
	"github.com/hbtc-chain/bhvault/codec"
)

// RegisterCodec registers concrete types on the codec
func RegisterCodec(cdc *codec.Codec) {
	cdc.RegisterConcrete(Vault{}, "bhvault/Vault", nil)
	cdc.RegisterConcrete(SystemVault{}, "bhvault/SystemVault", nil)
}

// RegisterLegacyCodec registers the V0 vault layout under the name it was stored with.
func RegisterLegacyCodec(cdc *codec.Codec) {
	cdc.RegisterConcrete(VaultV0{}, "bhvault/Vault", nil)
}

// module wide codec
var ModuleCdc *codec.Codec

// LegacyCdc decodes records written under storage version V0.
var LegacyCdc *codec.Codec

func init() {
	ModuleCdc = codec.New()
	RegisterCodec(ModuleCdc)
	codec.RegisterCrypto(ModuleCdc)
	ModuleCdc.Seal()

	LegacyCdc = codec.New()
	RegisterLegacyCodec(LegacyCdc)
	LegacyCdc.Seal()
}
