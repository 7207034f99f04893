package cpu

import (
	"github.com/ezrec/disarm/thumb"
)

// APSR condition flag bits.
const (
	APSR_N = uint32(1 << 31) // Negative
	APSR_Z = uint32(1 << 30) // Zero
	APSR_C = uint32(1 << 29) // Carry
	APSR_V = uint32(1 << 28) // Overflow
	APSR_Q = uint32(1 << 27) // Saturation, stored but never set by execution.

	APSR_MASK = APSR_N | APSR_Z | APSR_C | APSR_V | APSR_Q
)

// Flags are the APSR condition flags.
type Flags struct {
	N bool // Negative
	Z bool // Zero
	C bool // Carry
	V bool // Overflow
}

// AddWithCarry returns x + y + carryIn, and the unsigned carry and signed
// overflow of the addition.
func AddWithCarry(x, y uint32, carryIn bool) (result uint32, carry, overflow bool) {
	var c uint64
	if carryIn {
		c = 1
	}

	unsignedSum := uint64(x) + uint64(y) + c
	signedSum := int64(int32(x)) + int64(int32(y)) + int64(c)

	result = uint32(unsignedSum)
	carry = uint64(result) != unsignedSum
	overflow = int64(int32(result)) != signedSum

	return
}

// Update sets all four flags from an arithmetic result.
func (fl *Flags) Update(result uint32, carry, overflow bool) {
	fl.N = int32(result) < 0
	fl.Z = result == 0
	fl.C = carry
	fl.V = overflow
}

// Passed returns true if the condition holds for the flags.
func (fl Flags) Passed(cond thumb.Cond) (passed bool) {
	switch cond >> 1 {
	case 0b000: // EQ, NE
		passed = fl.Z
	case 0b001: // CS, CC
		passed = fl.C
	case 0b010: // MI, PL
		passed = fl.N
	case 0b011: // VS, VC
		passed = fl.V
	case 0b100: // HI, LS
		passed = fl.C && !fl.Z
	case 0b101: // GE, LT
		passed = fl.N == fl.V
	case 0b110: // GT, LE
		passed = fl.N == fl.V && !fl.Z
	case 0b111: // AL, NONE
		passed = true
	}

	if cond&1 == 1 && cond != thumb.COND_NONE {
		passed = !passed
	}

	return
}

// Word packs the flags into APSR bits 31:28.
func (fl Flags) Word() (word uint32) {
	if fl.N {
		word |= APSR_N
	}
	if fl.Z {
		word |= APSR_Z
	}
	if fl.C {
		word |= APSR_C
	}
	if fl.V {
		word |= APSR_V
	}
	return
}

// SetWord unpacks APSR bits 31:28 into the flags.
func (fl *Flags) SetWord(word uint32) {
	fl.N = word&APSR_N != 0
	fl.Z = word&APSR_Z != 0
	fl.C = word&APSR_C != 0
	fl.V = word&APSR_V != 0
}

// String renders set flags in upper case, clear flags in lower case.
func (fl Flags) String() string {
	text := []byte("nzcv")
	for n, set := range []bool{fl.N, fl.Z, fl.C, fl.V} {
		if set {
			text[n] -= 'a' - 'A'
		}
	}
	return string(text)
}
