package cerr

import (
	"errors"
	"fmt"
	"strings"
)

// FieldViolation names a single rejected input field.
type FieldViolation struct {
	Field       string
	Description string
}

type Error struct {
	Code    Code
	Msg     string           // message returned to the caller along with Code
	Err     error            // underlying error kept for logs
	Details []FieldViolation // per-field validation details
}

func NewError(code Code, msg string, underlying error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  underlying,
	}
}

// AddViolation appends a field-level detail and returns the error for chaining.
func (e *Error) AddViolation(field, description string) *Error {
	e.Details = append(e.Details, FieldViolation{Field: field, Description: description})
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code.String(), e.Msg)
	for _, v := range e.Details {
		fmt.Fprintf(&b, "; %s: %s", v.Field, v.Description)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from an error chain, or Unknown.
func CodeOf(err error) Code {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return Unknown
}

// Violations extracts field details from an error chain, or nil.
func Violations(err error) []FieldViolation {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Details
	}
	return nil
}
