package loader

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	ErrNotArm        = errors.New(f("not a 32-bit little-endian ARM image"))
	ErrNoCode        = errors.New(f("no code in image"))
	ErrNotExecutable = errors.New(f("code in a never-execute region"))
)

// ErrImage reports a malformed or unsupported image.
type ErrImage struct {
	Err error
}

func (err *ErrImage) Error() string {
	return f("elf: %v", err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
