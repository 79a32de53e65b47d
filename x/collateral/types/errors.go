package types

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

const (
	DefaultCodespace sdk.CodespaceType = ModuleName

	CodeInsufficientFreeBalance   sdk.CodeType = 2001
	CodeInsufficientLockedBalance sdk.CodeType = 2002
	CodeInvalidAmount             sdk.CodeType = 2003
)

func ErrInsufficientFreeBalance(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientFreeBalance, format)
}

func ErrInsufficientLockedBalance(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientLockedBalance, format)
}

func ErrInvalidAmount(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidAmount, format)
}
