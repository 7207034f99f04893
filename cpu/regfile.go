package cpu

import (
	"github.com/ezrec/disarm/thumb"
)

// ReadRegister returns a core register as an instruction sees it. PC reads
// as the address of the current instruction plus 4.
func (cpu *Cpu) ReadRegister(reg thumb.Register) uint32 {
	if reg == thumb.PC {
		return cpu.Register[thumb.PC] + 4
	}
	return cpu.Register[reg]
}

// WriteRegister stores a core register. Writes to PC clear bit 0 and
// report the redirection, so the caller skips the sequential advance.
func (cpu *Cpu) WriteRegister(reg thumb.Register, value uint32) (redirected bool) {
	if reg == thumb.PC {
		cpu.Register[thumb.PC] = value &^ 1
		redirected = true
		return
	}

	cpu.Register[reg] = value
	return
}

// align rounds value down to a multiple of size, a power of two.
func align(value uint32, size uint32) uint32 {
	return value &^ (size - 1)
}
