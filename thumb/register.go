package thumb

import (
	"iter"
	"math/bits"
	"strings"
)

// Register is one of the 16 architectural core registers.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	R0  = Register(0)  // r0
	R1  = Register(1)  // r1
	R2  = Register(2)  // r2
	R3  = Register(3)  // r3
	R4  = Register(4)  // r4
	R5  = Register(5)  // r5
	R6  = Register(6)  // r6
	R7  = Register(7)  // r7
	R8  = Register(8)  // r8
	R9  = Register(9)  // r9
	R10 = Register(10) // r10
	R11 = Register(11) // r11
	R12 = Register(12) // r12
	MSP = Register(13) // sp
	LR  = Register(14) // lr
	PC  = Register(15) // pc

	SP = MSP
)

// RegisterFrom converts a register index, failing for indices past PC.
func RegisterFrom(index uint8) (reg Register, err error) {
	if index > uint8(PC) {
		err = ErrRegisterInvalid
		return
	}

	reg = Register(index)
	return
}

// Low returns true for the registers addressable by 3-bit fields.
func (reg Register) Low() bool {
	return reg <= R7
}

// RegisterList is a bitmask of registers, bit n selecting register n.
type RegisterList uint16

// Has returns true if reg is in the list.
func (rl RegisterList) Has(reg Register) bool {
	return (rl>>reg)&1 == 1
}

// Count returns the number of registers in the list.
func (rl RegisterList) Count() int {
	return bits.OnesCount16(uint16(rl))
}

// All iterates over the registers in ascending index order.
func (rl RegisterList) All() iter.Seq[Register] {
	return func(yield func(Register) bool) {
		for n := range 16 {
			if rl.Has(Register(n)) {
				if !yield(Register(n)) {
					return
				}
			}
		}
	}
}

func (rl RegisterList) String() string {
	var names []string
	for reg := range rl.All() {
		names = append(names, reg.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// SpecialRegister is a special register, numbered by its SYSm encoding.
type SpecialRegister uint8

//go:generate go tool stringer -linecomment -type=SpecialRegister
const (
	APSR    = SpecialRegister(0)  // apsr
	IAPSR   = SpecialRegister(1)  // iapsr
	EAPSR   = SpecialRegister(2)  // eapsr
	XPSR    = SpecialRegister(3)  // xpsr
	IPSR    = SpecialRegister(5)  // ipsr
	EPSR    = SpecialRegister(6)  // epsr
	IEPSR   = SpecialRegister(7)  // iepsr
	MSP_S   = SpecialRegister(8)  // msp
	PSP     = SpecialRegister(9)  // psp
	PRIMASK = SpecialRegister(16) // primask
	CONTROL = SpecialRegister(20) // control
)

// SpecialRegisterFrom converts a SYSm value, failing for unassigned values.
func SpecialRegisterFrom(sysm uint8) (sr SpecialRegister, err error) {
	switch SpecialRegister(sysm) {
	case APSR, IAPSR, EAPSR, XPSR, IPSR, EPSR, IEPSR, MSP_S, PSP, PRIMASK, CONTROL:
		sr = SpecialRegister(sysm)
	default:
		err = ErrSpecialRegisterInvalid
	}
	return
}
