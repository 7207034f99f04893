package cpu

import (
	"github.com/ezrec/disarm/thumb"
)

// storeList stores the listed registers to ascending words from addr,
// lowest numbered register first.
func (cpu *Cpu) storeList(addr uint32, list thumb.RegisterList) (err error) {
	for reg := range list.All() {
		err = cpu.Memory.WriteU32(addr, cpu.Register[reg])
		if err != nil {
			return
		}
		addr += 4
	}

	return
}

// loadList loads the listed registers from ascending words at addr. A
// load into PC goes through WriteRegister and reports the redirection.
func (cpu *Cpu) loadList(addr uint32, list thumb.RegisterList) (redirected bool, err error) {
	for reg := range list.All() {
		var value uint32
		value, err = cpu.Memory.ReadU32(addr)
		if err != nil {
			return
		}
		if cpu.WriteRegister(reg, value) {
			redirected = true
		}
		addr += 4
	}

	return
}

// push stores the list below SP, and moves SP to the lowest word written.
func (cpu *Cpu) push(list thumb.RegisterList) (err error) {
	addr := cpu.Register[thumb.SP] - 4*uint32(list.Count())

	err = cpu.storeList(addr, list)
	if err != nil {
		return
	}

	cpu.Register[thumb.SP] = addr
	return
}

// pop loads the list from SP upwards, and moves SP past the last word read.
func (cpu *Cpu) pop(list thumb.RegisterList) (redirected bool, err error) {
	addr := cpu.Register[thumb.SP]

	redirected, err = cpu.loadList(addr, list)
	if err != nil {
		return
	}

	cpu.Register[thumb.SP] = addr + 4*uint32(list.Count())
	return
}
