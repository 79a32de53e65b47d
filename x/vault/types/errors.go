package types

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

const (
	DefaultCodespace sdk.CodespaceType = ModuleName

	CodeInsufficientTokensCommitted       sdk.CodeType = 3001
	CodeExceedingVaultLimit               sdk.CodeType = 3002
	CodeInsufficientCollateral            sdk.CodeType = 3003
	CodeArithmeticOverflow                sdk.CodeType = 3004
	CodeArithmeticUnderflow               sdk.CodeType = 3005
	CodeInvalidPublicKey                  sdk.CodeType = 3006
	CodeVaultBanned                       sdk.CodeType = 3007
	CodeVaultNotFound                     sdk.CodeType = 3008
	CodeVaultAlreadyRegistered            sdk.CodeType = 3009
	CodeInsufficientVaultCollateralAmount sdk.CodeType = 3010
	CodeVaultNotActive                    sdk.CodeType = 3011
	CodeInvalidStatusTransition           sdk.CodeType = 3012
	CodeInvalidBtcAddress                 sdk.CodeType = 3013
	CodeInvariantViolation                sdk.CodeType = 3014
)

func ErrInsufficientTokensCommitted(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientTokensCommitted, format)
}

func ErrExceedingVaultLimit(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeExceedingVaultLimit, format)
}

func ErrInsufficientCollateral(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientCollateral, format)
}

func ErrArithmeticOverflow(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeArithmeticOverflow, format)
}

func ErrArithmeticUnderflow(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeArithmeticUnderflow, format)
}

func ErrInvalidPublicKey(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidPublicKey, format)
}

func ErrVaultBanned(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeVaultBanned, format)
}

func ErrVaultNotFound(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeVaultNotFound, format)
}

func ErrVaultAlreadyRegistered(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeVaultAlreadyRegistered, format)
}

func ErrInsufficientVaultCollateralAmount(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientVaultCollateralAmount, format)
}

func ErrVaultNotActive(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeVaultNotActive, format)
}

func ErrInvalidStatusTransition(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidStatusTransition, format)
}

func ErrInvalidBtcAddress(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidBtcAddress, format)
}

func ErrInvariantViolation(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvariantViolation, format)
}
