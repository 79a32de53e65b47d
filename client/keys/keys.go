package keys

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/crypto/secp256k1"

	"github.com/hbtc-chain/bhvault/client/context"
	"github.com/hbtc-chain/bhvault/client/flags"
	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault"
)

// KeyOutput is the key material of a new vault operator. The private keys are
// printed once and never stored.
type KeyOutput struct {
	Address       sdk.CUAddress      `json:"address"`
	PrivKey       string             `json:"priv_key"`
	BtcPublicKey  vault.BtcPublicKey `json:"btc_public_key"`
	BtcPrivateKey string             `json:"btc_private_key"`
	BtcAddress    vault.BtcAddress   `json:"btc_address"`
}

// GenerateKey creates an account key and a bitcoin key for a vault operator.
func GenerateKey() (KeyOutput, error) {
	priv := secp256k1.GenPrivKey()

	btcPriv, err := btcec.NewPrivateKey()
	if err != nil {
		return KeyOutput{}, err
	}
	pk, err := vault.NewBtcPublicKey(btcPriv.PubKey().SerializeCompressed())
	if err != nil {
		return KeyOutput{}, err
	}
	wif, err := btcutil.NewWIF(btcPriv, vault.BtcNetParams, true)
	if err != nil {
		return KeyOutput{}, err
	}

	return KeyOutput{
		Address:       sdk.CUAddressFromPubKey(priv.PubKey()),
		PrivKey:       hex.EncodeToString(priv[:]),
		BtcPublicKey:  pk,
		BtcPrivateKey: wif.String(),
		BtcAddress:    vault.NewP2WPKHAddress(pk),
	}, nil
}

// Commands registers a sub-tree of commands to generate keys.
func Commands(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate vault operator keys",
	}
	cmd.AddCommand(flags.GetCommands(newKeyCommand(cdc))...)
	return cmd
}

func newKeyCommand(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate an account address and a bitcoin key pair",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := GenerateKey()
			if err != nil {
				return err
			}
			return context.NewNodeContext().WithCodec(cdc).PrintOutput(out)
		},
	}
}
