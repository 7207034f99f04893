package memory

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	ErrMemoryBounds = errors.New(f("memory bounds"))
)

// ErrAccess reports the range of a rejected memory access.
type ErrAccess struct {
	Address uint32
	Length  int
}

func (err *ErrAccess) Error() string {
	return f("access %v+%d outside address space", translate.Hex(err.Address), err.Length)
}

func (err *ErrAccess) Unwrap() error {
	return ErrMemoryBounds
}
