package utils

import (
	"encoding/hex"
	"fmt"
	"sort"

	"cosmossdk.io/math"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	uuid "github.com/satori/go.uuid"

	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/vault"
)

// TokenOperation moves amount through one of the vault counters or collateral.
type TokenOperation func(k vault.Keeper, ctx sdk.Context, id sdk.CUAddress, amount math.Uint) sdk.Error

// TokenOperations are the amount operations exposed to clients, keyed by name.
var TokenOperations = map[string]TokenOperation{
	"deposit-collateral":  vault.Keeper.DepositCollateral,
	"withdraw-collateral": vault.Keeper.WithdrawCollateral,
	"request-issue":       vault.Keeper.TryIncreaseToBeIssuedTokens,
	"cancel-issue":        vault.Keeper.DecreaseToBeIssuedTokens,
	"issue":               vault.Keeper.IssueTokens,
	"request-redeem":      vault.Keeper.TryIncreaseToBeRedeemedTokens,
	"cancel-redeem":       vault.Keeper.DecreaseToBeRedeemedTokens,
	"redeem":              vault.Keeper.RedeemTokens,
}

var operationDescriptions = map[string]string{
	"deposit-collateral":  "Lock more collateral behind an active vault",
	"withdraw-collateral": "Release free collateral of an active vault",
	"request-issue":       "Reserve issuable capacity of a vault for a pending issue",
	"cancel-issue":        "Give back capacity reserved by a pending issue",
	"issue":               "Complete a pending issue",
	"request-redeem":      "Commit issued tokens of a vault to a pending redeem",
	"cancel-redeem":       "Release tokens committed to a pending redeem",
	"redeem":              "Complete a pending redeem and burn the tokens",
}

// OperationNames returns the names of TokenOperations in a stable order.
func OperationNames() []string {
	names := make([]string, 0, len(TokenOperations))
	for name := range TokenOperations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func OperationDescription(name string) string {
	return operationDescriptions[name]
}

// NewSecureID returns a random secure identifier for deposit address derivation.
func NewSecureID() [32]byte {
	return chainhash.HashH(uuid.NewV4().Bytes())
}

// ParseSecureID decodes a hex secure identifier, generating one when s is empty.
func ParseSecureID(s string) ([32]byte, error) {
	var id [32]byte
	if s == "" {
		return NewSecureID(), nil
	}
	bz, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(bz) != len(id) {
		return id, fmt.Errorf("secure id must be %d bytes, got %d", len(id), len(bz))
	}
	copy(id[:], bz)
	return id, nil
}
