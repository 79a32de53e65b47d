package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// CodeType - code identifier within codespace
type CodeType uint32

// CodespaceType - codespace identifier
type CodespaceType string

// IsOK - is everything okay?
func (code CodeType) IsOK() bool {
	return code == CodeOK
}

// Root error codes. Module codes live in x/<module>/types/errors.go.
const (
	CodeOK             CodeType = 0
	CodeInternal       CodeType = 1
	CodeUnauthorized   CodeType = 4
	CodeUnknownRequest CodeType = 6
	CodeInvalidAddress CodeType = 7

	CodespaceRoot CodespaceType = "bhvault_base"
)

// CodeToDefaultMsg is the message of an error built with an empty format.
func CodeToDefaultMsg(code CodeType) string {
	switch code {
	case CodeInternal:
		return "internal error"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeUnknownRequest:
		return "unknown request"
	case CodeInvalidAddress:
		return "invalid address"
	default:
		return fmt.Sprintf("unknown code %d", code)
	}
}

// nolint
func ErrInternal(msg string) Error {
	return newError(CodespaceRoot, CodeInternal, msg)
}
func ErrUnauthorized(msg string) Error {
	return newError(CodespaceRoot, CodeUnauthorized, msg)
}
func ErrUnknownRequest(msg string) Error {
	return newError(CodespaceRoot, CodeUnknownRequest, msg)
}
func ErrInvalidAddress(msg string) Error {
	return newError(CodespaceRoot, CodeInvalidAddress, msg)
}

//----------------------------------------
// Error

type cmnError = cmn.Error

// Error is a cmn.Error tagged with the codespace and code of the module
// that raised it.
type Error interface {
	cmnError

	Code() CodeType
	Codespace() CodespaceType
	ABCILog() string
}

// NewError - create an error.
func NewError(codespace CodespaceType, code CodeType, format string, args ...interface{}) Error {
	return newError(codespace, code, format, args...)
}

// IsErrorCode reports whether err is an Error carrying the given codespace and code.
func IsErrorCode(err error, codespace CodespaceType, code CodeType) bool {
	sdkErr, ok := err.(Error)
	if !ok {
		return false
	}
	return sdkErr.Codespace() == codespace && sdkErr.Code() == code
}

func newError(codespace CodespaceType, code CodeType, format string, args ...interface{}) *vaultError {
	if format == "" {
		format = CodeToDefaultMsg(code)
	}
	return &vaultError{
		codespace: codespace,
		code:      code,
		cmnError:  cmn.NewError(format, args...),
	}
}

type vaultError struct {
	codespace CodespaceType
	code      CodeType
	cmnError
}

func (err *vaultError) Error() string {
	return fmt.Sprintf(`ERROR:
Codespace: %s
Code: %d
Message: %#v
`, err.codespace, err.code, err.cmnError.Error())
}

func (err *vaultError) Codespace() CodespaceType {
	return err.codespace
}

func (err *vaultError) Code() CodeType {
	return err.code
}

// ABCILog renders the error as a one line JSON object.
func (err *vaultError) ABCILog() string {
	jsonErr := humanReadableError{
		Codespace: err.codespace,
		Code:      err.code,
		Message:   err.cmnError.Error(),
	}

	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(jsonErr); err != nil {
		panic(errors.Wrap(err, "failed to encode ABCI error log"))
	}

	return strings.TrimSpace(buff.String())
}

// ParseABCILog recovers codespace, code and message from a log written by
// ABCILog. ok is false for any other text.
func ParseABCILog(log string) (codespace CodespaceType, code CodeType, msg string, ok bool) {
	var parsed humanReadableError
	if err := json.Unmarshal([]byte(log), &parsed); err != nil || parsed.Code == CodeOK {
		return "", 0, "", false
	}
	return parsed.Codespace, parsed.Code, parsed.Message, true
}

//----------------------------------------
// REST error utilities

// appends a message to the head of the given error
func AppendMsgToErr(msg string, err string) string {
	msgIdx := strings.Index(err, "message\":\"")
	if msgIdx != -1 {
		errMsg := err[msgIdx+len("message\":\"") : len(err)-2]
		errMsg = fmt.Sprintf("%s; %s", msg, errMsg)
		return fmt.Sprintf("%s%s%s",
			err[:msgIdx+len("message\":\"")],
			errMsg,
			err[len(err)-2:],
		)
	}
	return fmt.Sprintf("%s; %s", msg, err)
}

// parses the error into an object-like struct for exporting
type humanReadableError struct {
	Codespace CodespaceType `json:"codespace"`
	Code      CodeType      `json:"code"`
	Message   string        `json:"message"`
}
