package semihost

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	ErrOperation   = errors.New(f("operation unsupported"))
	ErrHandle      = errors.New(f("handle invalid"))
	ErrStringLimit = errors.New(f("string unterminated"))
)

// ErrCall identifies the semihosting operation that failed.
type ErrCall struct {
	Operation Operation
	Err       error
}

func (err *ErrCall) Error() string {
	return f("semihost %v: %v", err.Operation, err.Err)
}

func (err *ErrCall) Unwrap() error {
	return err.Err
}
