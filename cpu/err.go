package cpu

import (
	"errors"

	"github.com/ezrec/disarm/thumb"
	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrNotImplemented    = errors.New(f("not implemented"))
	ErrDeprecatedOperand = errors.New(f("deprecated operand"))
	ErrProgramEmpty      = errors.New(f("program empty"))
)

// ErrInstruction identifies the instruction that failed to execute.
type ErrInstruction struct {
	Address     uint32
	Instruction thumb.Instruction
}

func (err *ErrInstruction) Error() string {
	return f("%v: %v", translate.Hex(err.Address), err.Instruction)
}

func (err *ErrInstruction) Is(target error) (ok bool) {
	_, ok = target.(*ErrInstruction)
	return
}

// ErrFetch reports an instruction that could not be fetched or decoded.
type ErrFetch struct {
	Address uint32
	Err     error
}

func (err *ErrFetch) Error() string {
	return f("fetch %v: %v", translate.Hex(err.Address), err.Err)
}

func (err *ErrFetch) Unwrap() error {
	return err.Err
}
