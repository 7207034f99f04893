package cpu

import (
	"github.com/ezrec/disarm/thumb"
)

// compare sets the flags from x - y, discarding the difference.
func (cpu *Cpu) compare(x, y uint32) {
	result, carry, overflow := AddWithCarry(x, ^y, true)
	cpu.Flags.Update(result, carry, overflow)
}

// adds writes x + y to rd and sets the flags.
func (cpu *Cpu) adds(rd thumb.Register, x, y uint32) {
	result, carry, overflow := AddWithCarry(x, y, false)
	cpu.Flags.Update(result, carry, overflow)
	cpu.WriteRegister(rd, result)
}

// subs writes x - y to rd and sets the flags.
func (cpu *Cpu) subs(rd thumb.Register, x, y uint32) {
	result, carry, overflow := AddWithCarry(x, ^y, true)
	cpu.Flags.Update(result, carry, overflow)
	cpu.WriteRegister(rd, result)
}

// offset returns x + y without touching the flags.
func offset(x, y uint32) (result uint32) {
	result, _, _ = AddWithCarry(x, y, false)
	return
}

// branch redirects to the current PC plus a signed offset.
func (cpu *Cpu) branch(imm int32) (redirected bool) {
	return cpu.WriteRegister(thumb.PC, cpu.ReadRegister(thumb.PC)+uint32(imm))
}

func (cpu *Cpu) load(rt thumb.Register, addr uint32) (redirected bool, err error) {
	value, err := cpu.Memory.ReadU32(addr)
	if err != nil {
		return
	}
	redirected = cpu.WriteRegister(rt, value)
	return
}

func (cpu *Cpu) store(rt thumb.Register, addr uint32) (err error) {
	return cpu.Memory.WriteU32(addr, cpu.ReadRegister(rt))
}

// execute applies one instruction to the machine state. It reports whether
// the instruction wrote PC, in which case the caller must not advance it.
func (cpu *Cpu) execute(inst thumb.Instruction) (redirected bool, err error) {
	switch inst := inst.(type) {
	case thumb.MovsImmT1:
		cpu.WriteRegister(inst.Rd, inst.Imm)
	case thumb.MovRegT1:
		redirected = cpu.WriteRegister(inst.Rd, cpu.ReadRegister(inst.Rm))
	case thumb.CmpImmT1:
		cpu.compare(cpu.ReadRegister(inst.Rn), inst.Imm)
	case thumb.CmpRegT2:
		cpu.compare(cpu.ReadRegister(inst.Rn), cpu.ReadRegister(inst.Rm))
	case thumb.AddsRegT1:
		cpu.adds(inst.Rd, cpu.ReadRegister(inst.Rn), cpu.ReadRegister(inst.Rm))
	case thumb.SubsRegT1:
		cpu.subs(inst.Rd, cpu.ReadRegister(inst.Rn), cpu.ReadRegister(inst.Rm))
	case thumb.AddsImmT1:
		cpu.adds(inst.Rd, cpu.ReadRegister(inst.Rn), inst.Imm)
	case thumb.SubsImmT1:
		cpu.subs(inst.Rd, cpu.ReadRegister(inst.Rn), inst.Imm)
	case thumb.AddsImmT2:
		cpu.adds(inst.Rdn, cpu.ReadRegister(inst.Rdn), inst.Imm)
	case thumb.SubsImmT2:
		cpu.subs(inst.Rdn, cpu.ReadRegister(inst.Rdn), inst.Imm)
	case thumb.AddRegT2:
		result := offset(cpu.ReadRegister(inst.Rdn), cpu.ReadRegister(inst.Rm))
		redirected = cpu.WriteRegister(inst.Rdn, result)
	case thumb.AddSpImmT1:
		cpu.WriteRegister(inst.Rd, offset(cpu.ReadRegister(thumb.SP), inst.Imm))
	case thumb.AddSpImmT2:
		cpu.WriteRegister(thumb.SP, offset(cpu.ReadRegister(thumb.SP), inst.Imm))
	case thumb.SubSpImmT1:
		result, _, _ := AddWithCarry(cpu.ReadRegister(thumb.SP), ^inst.Imm, true)
		cpu.WriteRegister(thumb.SP, result)
	case thumb.AdrT1:
		cpu.WriteRegister(inst.Rd, offset(align(cpu.ReadRegister(thumb.PC), 4), inst.Imm))
	case thumb.DataProc:
		switch inst.Op {
		case thumb.DP_CMP:
			cpu.compare(cpu.ReadRegister(inst.Rdn), cpu.ReadRegister(inst.Rm))
		case thumb.DP_MVN:
			result := ^cpu.ReadRegister(inst.Rm)
			cpu.Flags.N = int32(result) < 0
			cpu.Flags.Z = result == 0
			cpu.Flags.C = false
			cpu.WriteRegister(inst.Rdn, result)
		default:
			err = ErrNotImplemented
		}
	case thumb.BlT1:
		next := cpu.ReadRegister(thumb.PC)
		cpu.WriteRegister(thumb.LR, next|1)
		redirected = cpu.WriteRegister(thumb.PC, next+uint32(inst.Imm))
	case thumb.BlxRegT1:
		target := cpu.ReadRegister(inst.Rm)
		next := cpu.Register[thumb.PC] + uint32(inst.Size())
		cpu.WriteRegister(thumb.LR, next|1)
		redirected = cpu.WriteRegister(thumb.PC, target)
	case thumb.BxT1:
		redirected = cpu.WriteRegister(thumb.PC, cpu.ReadRegister(inst.Rm))
	case thumb.BCondT1:
		if cpu.Flags.Passed(inst.Cond) {
			redirected = cpu.branch(inst.Imm)
		}
	case thumb.BT2:
		redirected = cpu.branch(inst.Imm)
	case thumb.LdrLitT1:
		redirected, err = cpu.load(inst.Rt, offset(align(cpu.ReadRegister(thumb.PC), 4), inst.Imm))
	case thumb.LdrImmT1:
		redirected, err = cpu.load(inst.Rt, offset(cpu.ReadRegister(inst.Rn), inst.Imm))
	case thumb.LdrSpT2:
		redirected, err = cpu.load(inst.Rt, offset(cpu.ReadRegister(thumb.SP), inst.Imm))
	case thumb.StrImmT1:
		err = cpu.store(inst.Rt, offset(cpu.ReadRegister(inst.Rn), inst.Imm))
	case thumb.StrSpT2:
		err = cpu.store(inst.Rt, offset(cpu.ReadRegister(thumb.SP), inst.Imm))
	case thumb.Push:
		err = cpu.push(inst.Registers)
	case thumb.Pop:
		redirected, err = cpu.pop(inst.Registers)
	case thumb.Stm:
		if inst.Registers.Has(inst.Rn) {
			err = ErrDeprecatedOperand
			return
		}
		base := cpu.Register[inst.Rn]
		err = cpu.storeList(base, inst.Registers)
		if err != nil {
			return
		}
		cpu.Register[inst.Rn] = base + 4*uint32(inst.Registers.Count())
	case thumb.Ldm:
		base := cpu.Register[inst.Rn]
		redirected, err = cpu.loadList(base, inst.Registers)
		if err != nil {
			return
		}
		if inst.Writeback() {
			cpu.Register[inst.Rn] = base + 4*uint32(inst.Registers.Count())
		}
	case thumb.MrsT1:
		var value uint32
		value, err = cpu.ReadSpecial(inst.SysM)
		if err != nil {
			return
		}
		cpu.WriteRegister(inst.Rd, value)
	default:
		// MSR, UDF, SVC, shifts and unmodeled encodings.
		err = ErrNotImplemented
	}

	return
}
