package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params - parameters of the vault registry
type Params struct {
	// Collateral ratio required when tokens are promised or collateral withdrawn
	SecureCollateralThreshold math.LegacyDec `json:"secure_collateral_threshold"`
	// Below this ratio redeemers receive a premium
	PremiumRedeemThreshold math.LegacyDec `json:"premium_redeem_threshold"`
	// Below this ratio a vault is liquidated
	LiquidationCollateralThreshold math.LegacyDec `json:"liquidation_collateral_threshold"`
	// Minimum collateral to register a vault
	MinimumCollateralVault math.Uint `json:"minimum_collateral_vault"`
	// Share of a stake slashed for a failed obligation
	PunishmentFee math.LegacyDec `json:"punishment_fee"`
	// Number of blocks a punished vault stays banned
	PunishmentDelay int64 `json:"punishment_delay"`
}

func NewParams(secure, premium, liquidation math.LegacyDec, minimumCollateral math.Uint,
	punishmentFee math.LegacyDec, punishmentDelay int64) Params {
	return Params{
		SecureCollateralThreshold:      secure,
		PremiumRedeemThreshold:         premium,
		LiquidationCollateralThreshold: liquidation,
		MinimumCollateralVault:         minimumCollateral,
		PunishmentFee:                  punishmentFee,
		PunishmentDelay:                punishmentDelay,
	}
}

// DefaultParams returns default parameters
func DefaultParams() Params {
	return NewParams(
		math.LegacyNewDecWithPrec(15, 1),
		math.LegacyNewDecWithPrec(135, 2),
		math.LegacyNewDecWithPrec(11, 1),
		math.NewUint(1000),
		math.LegacyNewDecWithPrec(1, 1),
		100,
	)
}

// Validate checks the thresholds are ordered liquidation < premium < secure.
func (p Params) Validate() error {
	named := []struct {
		name     string
		dec      math.LegacyDec
		positive bool
	}{
		{"secure collateral threshold", p.SecureCollateralThreshold, true},
		{"premium redeem threshold", p.PremiumRedeemThreshold, true},
		{"liquidation collateral threshold", p.LiquidationCollateralThreshold, true},
		{"punishment fee", p.PunishmentFee, false},
	}
	for _, n := range named {
		if n.dec.IsNil() {
			return fmt.Errorf("%s must be set", n.name)
		}
		if n.positive && !n.dec.IsPositive() {
			return fmt.Errorf("%s must be positive: %s", n.name, n.dec)
		}
	}
	if !p.LiquidationCollateralThreshold.LT(p.PremiumRedeemThreshold) {
		return fmt.Errorf("liquidation threshold %s must be below premium threshold %s",
			p.LiquidationCollateralThreshold, p.PremiumRedeemThreshold)
	}
	if !p.PremiumRedeemThreshold.LT(p.SecureCollateralThreshold) {
		return fmt.Errorf("premium threshold %s must be below secure threshold %s",
			p.PremiumRedeemThreshold, p.SecureCollateralThreshold)
	}
	if p.PunishmentFee.IsNegative() || p.PunishmentFee.GT(math.LegacyOneDec()) {
		return fmt.Errorf("punishment fee must be within [0, 1]: %s", p.PunishmentFee)
	}
	if p.MinimumCollateralVault == (math.Uint{}) {
		return fmt.Errorf("minimum collateral must be set")
	}
	if p.PunishmentDelay < 0 {
		return fmt.Errorf("punishment delay must not be negative: %d", p.PunishmentDelay)
	}
	return nil
}

// String implements the stringer interface for Params
func (p Params) String() string {
	return fmt.Sprintf(`Vault Params:
  SecureCollateralThreshold:      %s
  PremiumRedeemThreshold:         %s
  LiquidationCollateralThreshold: %s
  MinimumCollateralVault:         %s
  PunishmentFee:                  %s
  PunishmentDelay:                %d`,
		p.SecureCollateralThreshold, p.PremiumRedeemThreshold, p.LiquidationCollateralThreshold,
		p.MinimumCollateralVault, p.PunishmentFee, p.PunishmentDelay)
}
