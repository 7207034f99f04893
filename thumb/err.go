package thumb

import (
	"errors"

	"github.com/ezrec/disarm/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrTruncatedInput         = errors.New(f("truncated input"))
	ErrIllegalEncoding        = errors.New(f("illegal encoding"))
	ErrRegisterInvalid        = errors.New(f("register invalid"))
	ErrSpecialRegisterInvalid = errors.New(f("special register invalid"))

	// Encode errors
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrImmediateAlign  = errors.New(f("immediate misaligned"))
	ErrRegisterLow     = errors.New(f("low register required"))
	ErrRegisterListBad = errors.New(f("register list invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
)

// ErrEncoding reports the halfwords of an illegal encoding.
type ErrEncoding struct {
	Words []uint16
}

func (err *ErrEncoding) Error() string {
	if len(err.Words) == 2 {
		return f("illegal encoding %04x %04x", err.Words[0], err.Words[1])
	}
	return f("illegal encoding %04x", err.Words[0])
}

func (err *ErrEncoding) Is(target error) bool {
	return target == ErrIllegalEncoding
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
