package monitor

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	ErrArguments   = errors.New(f("wrong number of arguments"))
	ErrValue       = errors.New(f("invalid value"))
	ErrSettingType = errors.New(f("setting type not supported"))
	ErrInterrupted = errors.New(f("interrupted"))
)

// ErrCommand reports a command that failed or could not be found.
type ErrCommand struct {
	Name string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}

// ErrSetting reports a setting that could not be changed.
type ErrSetting struct {
	Name string
	Err  error
}

func (err *ErrSetting) Error() string {
	return f("set %v: %v", err.Name, err.Err)
}

func (err *ErrSetting) Unwrap() error {
	return err.Err
}
