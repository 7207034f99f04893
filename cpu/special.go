package cpu

import (
	"github.com/ezrec/disarm/thumb"
)

// Special register bank slots.
const (
	SLOT_APSR    = 0
	SLOT_IPSR    = 1
	SLOT_EPSR    = 2
	SLOT_MSP     = 3
	SLOT_PSP     = 4
	SLOT_PRIMASK = 5
	SLOT_CONTROL = 6

	SLOT_COUNT = 12 // Slots 7 to 11 are reserved.
)

// Special register field masks.
const (
	IPSR_MASK      = uint32(0x3f)
	SP_MASK        = uint32(0xfffffffc)
	PRIMASK_PM     = uint32(1 << 0)
	CONTROL_NPRIV  = uint32(1 << 0)
	CONTROL_SPSEL  = uint32(1 << 1)
	CONTROL_MASK   = CONTROL_SPSEL
	EPSR_READ_MASK = uint32(0) // The T bit always reads as zero.
)

// specialField is the part of a backing slot visible through a special
// register.
type specialField struct {
	slot int
	mask uint32
}

var (
	fieldApsr    = specialField{slot: SLOT_APSR, mask: APSR_MASK}
	fieldIpsr    = specialField{slot: SLOT_IPSR, mask: IPSR_MASK}
	fieldEpsr    = specialField{slot: SLOT_EPSR, mask: EPSR_READ_MASK}
	fieldMsp     = specialField{slot: SLOT_MSP, mask: SP_MASK}
	fieldPsp     = specialField{slot: SLOT_PSP, mask: SP_MASK}
	fieldPrimask = specialField{slot: SLOT_PRIMASK, mask: PRIMASK_PM}
	fieldControl = specialField{slot: SLOT_CONTROL, mask: CONTROL_MASK}
)

// specialTable maps each special register to the fields it composes.
var specialTable = map[thumb.SpecialRegister][]specialField{
	thumb.APSR:    {fieldApsr},
	thumb.IAPSR:   {fieldApsr, fieldIpsr},
	thumb.EAPSR:   {fieldApsr, fieldEpsr},
	thumb.XPSR:    {fieldApsr, fieldIpsr, fieldEpsr},
	thumb.IPSR:    {fieldIpsr},
	thumb.EPSR:    {fieldEpsr},
	thumb.IEPSR:   {fieldIpsr, fieldEpsr},
	thumb.MSP_S:   {fieldMsp},
	thumb.PSP:     {fieldPsp},
	thumb.PRIMASK: {fieldPrimask},
	thumb.CONTROL: {fieldControl},
}

// slotValue returns the live value of a backing slot. The flags and the
// active stack pointer are held outside the bank.
func (cpu *Cpu) slotValue(slot int) uint32 {
	switch slot {
	case SLOT_APSR:
		return cpu.Flags.Word() | cpu.Special[SLOT_APSR]&APSR_Q
	case SLOT_MSP:
		return cpu.Register[thumb.SP]
	}
	return cpu.Special[slot]
}

// setSlot updates the masked bits of a backing slot.
func (cpu *Cpu) setSlot(slot int, mask uint32, value uint32) {
	switch slot {
	case SLOT_APSR:
		cpu.Flags.SetWord(value)
		cpu.Special[SLOT_APSR] = value & mask & APSR_Q
	case SLOT_MSP:
		cpu.Register[thumb.SP] = (cpu.Register[thumb.SP] &^ mask) | (value & mask)
	case SLOT_IPSR, SLOT_EPSR:
		// Read only.
	default:
		cpu.Special[slot] = (cpu.Special[slot] &^ mask) | (value & mask)
	}
}

// ReadSpecial composes a special register from its backing slots.
func (cpu *Cpu) ReadSpecial(sr thumb.SpecialRegister) (value uint32, err error) {
	fields, ok := specialTable[sr]
	if !ok {
		err = thumb.ErrSpecialRegisterInvalid
		return
	}

	for _, field := range fields {
		value |= cpu.slotValue(field.slot) & field.mask
	}

	return
}

// WriteSpecial updates the writable fields of a special register.
// Execution status and exception number fields ignore writes.
func (cpu *Cpu) WriteSpecial(sr thumb.SpecialRegister, value uint32) (err error) {
	fields, ok := specialTable[sr]
	if !ok {
		err = thumb.ErrSpecialRegisterInvalid
		return
	}

	for _, field := range fields {
		cpu.setSlot(field.slot, field.mask, value)
	}

	return
}

// Privileged reports whether thread mode runs privileged. CONTROL_NPRIV is
// masked out of CONTROL writes, so this holds unless the slot is set directly.
func (cpu *Cpu) Privileged() bool {
	return cpu.Special[SLOT_CONTROL]&CONTROL_NPRIV == 0
}
