package core

import (
	"errors"
	"fmt"
)

// Error codes. A code classifies the kind of failure, independent of the
// package reporting it.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // a referenced page or resource does not exist
	EINVALID  int = 123 // malformed markup or tree
	ELIMIT    int = 124 // input exceeds a configured limit
	EINTERNAL int = 125 // internal error
)

var codeTexts = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid markup",
	ELIMIT:    "limit exceeded",
	EINTERNAL: "internal error",
}

// CodeText returns a short description of an error code.
func CodeText(code int) string {
	if text, ok := codeTexts[code]; ok {
		return text
	}
	return fmt.Sprintf("error %d", code)
}

// AppError is an error with an associated error code and a message
// meant for authors.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// appError is the AppError created by this package. cause is the error
// which triggered it, and may be nil.
type appError struct {
	code  int
	msg   string
	cause error
}

func (e *appError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%d] %s", e.code, e.msg)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e *appError) Unwrap() error {
	return e.cause
}

func (e *appError) ErrorCode() int {
	return e.code
}

func (e *appError) UserMessage() string {
	return e.msg
}

var _ AppError = &appError{}

// Error creates an error with an error code and a user message.
func Error(code int, format string, v ...interface{}) error {
	return &appError{code: code, msg: fmt.Sprintf(format, v...)}
}

// WrapError attaches an error code and a user message to err, which
// remains reachable with errors.Is and errors.As.
func WrapError(err error, code int, format string, v ...interface{}) error {
	return &appError{code: code, msg: fmt.Sprintf(format, v...), cause: err}
}

// Code returns the error code of the first AppError in err's chain.
// Errors without a code are internal errors, and a nil error has code
// NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message of the first AppError in err's
// chain, or the text of its code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return CodeText(Code(err))
}

// Report formats an error for display to authors. Errors with a code
// show the code's text and the user message; other errors show their
// error text.
func Report(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return fmt.Sprintf("%s: %s", CodeText(e.ErrorCode()), e.UserMessage())
	}
	return err.Error()
}
