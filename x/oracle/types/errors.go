package types

import (
	sdk "github.com/hbtc-chain/bhvault/types"
)

const (
	DefaultCodespace sdk.CodespaceType = ModuleName

	CodeMissingExchangeRate sdk.CodeType = 2501
	CodeInvalidExchangeRate sdk.CodeType = 2502
	CodeArithmeticOverflow  sdk.CodeType = 2503
)

func ErrMissingExchangeRate(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeMissingExchangeRate, format)
}

func ErrInvalidExchangeRate(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidExchangeRate, format)
}

func ErrArithmeticOverflow(codespace sdk.CodespaceType, format string) sdk.Error {
	return sdk.NewError(codespace, CodeArithmeticOverflow, format)
}
