package emulator

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	ErrBudget = errors.New(f("instruction budget exhausted"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint32
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("%v line %d %v", translate.Hex(err.Address), err.LineNo, err.Err)
	}
	return f("%v %v", translate.Hex(err.Address), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
