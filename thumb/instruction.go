package thumb

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instruction is a decoded Thumb instruction.
type Instruction interface {
	// Size returns the encoded size in bytes, 2 or 4.
	Size() int
	// String returns the assembly language representation.
	String() string
	// Encode returns the halfwords of the instruction, in stream order.
	Encode() (words []uint16, err error)
}

// short is embedded by the 16-bit instruction forms.
type short struct{}

func (short) Size() int { return 2 }

// long is embedded by the 32-bit instruction forms.
type long struct{}

func (long) Size() int { return 4 }

// EncodeBytes returns the little-endian byte stream of an instruction.
func EncodeBytes(inst Instruction) (data []byte, err error) {
	words, err := inst.Encode()
	if err != nil {
		return
	}

	data = make([]byte, 0, 2*len(words))
	for _, word := range words {
		data = binary.LittleEndian.AppendUint16(data, word)
	}
	return
}

// lowRegs checks that every register fits a 3-bit field.
func lowRegs(regs ...Register) error {
	for _, reg := range regs {
		if !reg.Low() {
			return ErrRegisterLow
		}
	}
	return nil
}

// immField checks that value is a multiple of scale which fits in width
// bits once scaled down, and returns the field.
func immField(value uint32, width int, scale uint32) (field uint16, err error) {
	if value%scale != 0 {
		err = ErrImmediateAlign
		return
	}
	value /= scale
	if value >= 1<<width {
		err = ErrImmediateRange
		return
	}
	field = uint16(value)
	return
}

// branchField checks that an even offset fits a signed field of width bits
// (excluding the implied zero bit) and returns the unsigned field.
func branchField(offset int32, width int) (field uint32, err error) {
	if offset&1 != 0 {
		err = ErrImmediateAlign
		return
	}
	half := offset >> 1
	limit := int32(1) << (width - 1)
	if half < -limit || half >= limit {
		err = ErrImmediateRange
		return
	}
	field = uint32(half) & (1<<width - 1)
	return
}

// ShiftImm is LSLS, LSRS or ASRS by an immediate. Imm holds the raw imm5
// field; a zero field on LSRS and ASRS encodes a shift of 32.
type ShiftImm struct {
	short
	Op  Shift
	Rd  Register
	Rm  Register
	Imm uint32
}

// Amount returns the decoded shift amount.
func (inst ShiftImm) Amount() uint32 {
	if inst.Imm == 0 && inst.Op != SHIFT_LSL {
		return 32
	}
	return inst.Imm
}

func (inst ShiftImm) String() string {
	return fmt.Sprintf("%v %v, %v, #%d", inst.Op, inst.Rd, inst.Rm, inst.Amount())
}

func (inst ShiftImm) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd, inst.Rm); err != nil {
		return
	}
	if inst.Op > SHIFT_ASR {
		err = ErrOperandInvalid
		return
	}
	imm, err := immField(inst.Imm, 5, 1)
	if err != nil {
		return
	}
	words = []uint16{uint16(inst.Op)<<11 | imm<<6 | uint16(inst.Rm)<<3 | uint16(inst.Rd)}
	return
}

// AddsRegT1 is ADDS Rd, Rn, Rm.
type AddsRegT1 struct {
	short
	Rd Register
	Rn Register
	Rm Register
}

func (inst AddsRegT1) String() string {
	return fmt.Sprintf("adds %v, %v, %v", inst.Rd, inst.Rn, inst.Rm)
}

func (inst AddsRegT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd, inst.Rn, inst.Rm); err != nil {
		return
	}
	words = []uint16{0x1800 | uint16(inst.Rm)<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rd)}
	return
}

// SubsRegT1 is SUBS Rd, Rn, Rm.
type SubsRegT1 struct {
	short
	Rd Register
	Rn Register
	Rm Register
}

func (inst SubsRegT1) String() string {
	return fmt.Sprintf("subs %v, %v, %v", inst.Rd, inst.Rn, inst.Rm)
}

func (inst SubsRegT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd, inst.Rn, inst.Rm); err != nil {
		return
	}
	words = []uint16{0x1a00 | uint16(inst.Rm)<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rd)}
	return
}

// AddsImmT1 is ADDS Rd, Rn, #imm3.
type AddsImmT1 struct {
	short
	Rd  Register
	Rn  Register
	Imm uint32
}

func (inst AddsImmT1) String() string {
	return fmt.Sprintf("adds %v, %v, #%d", inst.Rd, inst.Rn, inst.Imm)
}

func (inst AddsImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd, inst.Rn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 3, 1)
	if err != nil {
		return
	}
	words = []uint16{0x1c00 | imm<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rd)}
	return
}

// SubsImmT1 is SUBS Rd, Rn, #imm3.
type SubsImmT1 struct {
	short
	Rd  Register
	Rn  Register
	Imm uint32
}

func (inst SubsImmT1) String() string {
	return fmt.Sprintf("subs %v, %v, #%d", inst.Rd, inst.Rn, inst.Imm)
}

func (inst SubsImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd, inst.Rn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 3, 1)
	if err != nil {
		return
	}
	words = []uint16{0x1e00 | imm<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rd)}
	return
}

// MovsImmT1 is MOVS Rd, #imm8.
type MovsImmT1 struct {
	short
	Rd  Register
	Imm uint32
}

func (inst MovsImmT1) String() string {
	return fmt.Sprintf("movs %v, #%d", inst.Rd, inst.Imm)
}

func (inst MovsImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0x2000 | uint16(inst.Rd)<<8 | imm}
	return
}

// CmpImmT1 is CMP Rn, #imm8.
type CmpImmT1 struct {
	short
	Rn  Register
	Imm uint32
}

func (inst CmpImmT1) String() string {
	return fmt.Sprintf("cmp %v, #%d", inst.Rn, inst.Imm)
}

func (inst CmpImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0x2800 | uint16(inst.Rn)<<8 | imm}
	return
}

// AddsImmT2 is ADDS Rdn, #imm8.
type AddsImmT2 struct {
	short
	Rdn Register
	Imm uint32
}

func (inst AddsImmT2) String() string {
	return fmt.Sprintf("adds %v, #%d", inst.Rdn, inst.Imm)
}

func (inst AddsImmT2) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rdn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0x3000 | uint16(inst.Rdn)<<8 | imm}
	return
}

// SubsImmT2 is SUBS Rdn, #imm8.
type SubsImmT2 struct {
	short
	Rdn Register
	Imm uint32
}

func (inst SubsImmT2) String() string {
	return fmt.Sprintf("subs %v, #%d", inst.Rdn, inst.Imm)
}

func (inst SubsImmT2) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rdn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0x3800 | uint16(inst.Rdn)<<8 | imm}
	return
}

// DataProc is one of the sixteen register-register data processing
// operations. Rdn is the first operand and destination; for RSBS it is
// the destination of Rm negated, for MULS the multiplicand and destination.
type DataProc struct {
	short
	Op  DpOpcode
	Rdn Register
	Rm  Register
}

func (inst DataProc) String() string {
	switch inst.Op {
	case DP_RSB:
		return fmt.Sprintf("%v %v, %v, #0", inst.Op, inst.Rdn, inst.Rm)
	case DP_MUL:
		return fmt.Sprintf("%v %v, %v, %v", inst.Op, inst.Rdn, inst.Rm, inst.Rdn)
	}
	return fmt.Sprintf("%v %v, %v", inst.Op, inst.Rdn, inst.Rm)
}

func (inst DataProc) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rdn, inst.Rm); err != nil {
		return
	}
	if inst.Op > DP_MVN {
		err = ErrOperandInvalid
		return
	}
	words = []uint16{0x4000 | uint16(inst.Op)<<6 | uint16(inst.Rm)<<3 | uint16(inst.Rdn)}
	return
}

// hiRegs encodes the special data processing register fields.
func hiRegs(op uint16, rdn, rm Register) []uint16 {
	return []uint16{0x4400 | op<<8 | uint16(rdn&8)<<4 | uint16(rm)<<3 | uint16(rdn&7)}
}

// AddRegT2 is ADD Rdn, Rm without flag update.
type AddRegT2 struct {
	short
	Rdn Register
	Rm  Register
}

func (inst AddRegT2) String() string {
	return fmt.Sprintf("add %v, %v", inst.Rdn, inst.Rm)
}

func (inst AddRegT2) Encode() (words []uint16, err error) {
	words = hiRegs(0b00, inst.Rdn, inst.Rm)
	return
}

// CmpRegT2 is CMP Rn, Rm over the full register set.
type CmpRegT2 struct {
	short
	Rn Register
	Rm Register
}

func (inst CmpRegT2) String() string {
	return fmt.Sprintf("cmp %v, %v", inst.Rn, inst.Rm)
}

func (inst CmpRegT2) Encode() (words []uint16, err error) {
	if inst.Rn.Low() && inst.Rm.Low() {
		// Low pairs are encoded through the data processing group.
		err = ErrOperandInvalid
		return
	}
	words = hiRegs(0b01, inst.Rn, inst.Rm)
	return
}

// MovRegT1 is MOV Rd, Rm without flag update.
type MovRegT1 struct {
	short
	Rd Register
	Rm Register
}

func (inst MovRegT1) String() string {
	return fmt.Sprintf("mov %v, %v", inst.Rd, inst.Rm)
}

func (inst MovRegT1) Encode() (words []uint16, err error) {
	words = hiRegs(0b10, inst.Rd, inst.Rm)
	return
}

// BxT1 is BX Rm.
type BxT1 struct {
	short
	Rm Register
}

func (inst BxT1) String() string {
	return fmt.Sprintf("bx %v", inst.Rm)
}

func (inst BxT1) Encode() (words []uint16, err error) {
	words = []uint16{0x4700 | uint16(inst.Rm)<<3}
	return
}

// BlxRegT1 is BLX Rm.
type BlxRegT1 struct {
	short
	Rm Register
}

func (inst BlxRegT1) String() string {
	return fmt.Sprintf("blx %v", inst.Rm)
}

func (inst BlxRegT1) Encode() (words []uint16, err error) {
	words = []uint16{0x4780 | uint16(inst.Rm)<<3}
	return
}

// LdrLitT1 is LDR Rt, [PC, #imm] with a word aligned PC.
type LdrLitT1 struct {
	short
	Rt  Register
	Imm uint32
}

func (inst LdrLitT1) String() string {
	return fmt.Sprintf("ldr %v, [pc, #%d]", inst.Rt, inst.Imm)
}

func (inst LdrLitT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rt); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 4)
	if err != nil {
		return
	}
	words = []uint16{0x4800 | uint16(inst.Rt)<<8 | imm}
	return
}

// StrImmT1 is STR Rt, [Rn, #imm].
type StrImmT1 struct {
	short
	Rt  Register
	Rn  Register
	Imm uint32
}

func (inst StrImmT1) String() string {
	return fmt.Sprintf("str %v, [%v, #%d]", inst.Rt, inst.Rn, inst.Imm)
}

func (inst StrImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rt, inst.Rn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 5, 4)
	if err != nil {
		return
	}
	words = []uint16{0x6000 | imm<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rt)}
	return
}

// LdrImmT1 is LDR Rt, [Rn, #imm].
type LdrImmT1 struct {
	short
	Rt  Register
	Rn  Register
	Imm uint32
}

func (inst LdrImmT1) String() string {
	return fmt.Sprintf("ldr %v, [%v, #%d]", inst.Rt, inst.Rn, inst.Imm)
}

func (inst LdrImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rt, inst.Rn); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 5, 4)
	if err != nil {
		return
	}
	words = []uint16{0x6800 | imm<<6 | uint16(inst.Rn)<<3 | uint16(inst.Rt)}
	return
}

// StrSpT2 is STR Rt, [SP, #imm].
type StrSpT2 struct {
	short
	Rt  Register
	Imm uint32
}

func (inst StrSpT2) String() string {
	return fmt.Sprintf("str %v, [sp, #%d]", inst.Rt, inst.Imm)
}

func (inst StrSpT2) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rt); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 4)
	if err != nil {
		return
	}
	words = []uint16{0x9000 | uint16(inst.Rt)<<8 | imm}
	return
}

// LdrSpT2 is LDR Rt, [SP, #imm].
type LdrSpT2 struct {
	short
	Rt  Register
	Imm uint32
}

func (inst LdrSpT2) String() string {
	return fmt.Sprintf("ldr %v, [sp, #%d]", inst.Rt, inst.Imm)
}

func (inst LdrSpT2) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rt); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 4)
	if err != nil {
		return
	}
	words = []uint16{0x9800 | uint16(inst.Rt)<<8 | imm}
	return
}

// AdrT1 is ADR Rd, #imm relative to the word aligned PC.
type AdrT1 struct {
	short
	Rd  Register
	Imm uint32
}

func (inst AdrT1) String() string {
	return fmt.Sprintf("adr %v, #%d", inst.Rd, inst.Imm)
}

func (inst AdrT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 4)
	if err != nil {
		return
	}
	words = []uint16{0xa000 | uint16(inst.Rd)<<8 | imm}
	return
}

// AddSpImmT1 is ADD Rd, SP, #imm.
type AddSpImmT1 struct {
	short
	Rd  Register
	Imm uint32
}

func (inst AddSpImmT1) String() string {
	return fmt.Sprintf("add %v, sp, #%d", inst.Rd, inst.Imm)
}

func (inst AddSpImmT1) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rd); err != nil {
		return
	}
	imm, err := immField(inst.Imm, 8, 4)
	if err != nil {
		return
	}
	words = []uint16{0xa800 | uint16(inst.Rd)<<8 | imm}
	return
}

// AddSpImmT2 is ADD SP, SP, #imm.
type AddSpImmT2 struct {
	short
	Imm uint32
}

func (inst AddSpImmT2) String() string {
	return fmt.Sprintf("add sp, #%d", inst.Imm)
}

func (inst AddSpImmT2) Encode() (words []uint16, err error) {
	imm, err := immField(inst.Imm, 7, 4)
	if err != nil {
		return
	}
	words = []uint16{0xb000 | imm}
	return
}

// SubSpImmT1 is SUB SP, SP, #imm.
type SubSpImmT1 struct {
	short
	Imm uint32
}

func (inst SubSpImmT1) String() string {
	return fmt.Sprintf("sub sp, #%d", inst.Imm)
}

func (inst SubSpImmT1) Encode() (words []uint16, err error) {
	imm, err := immField(inst.Imm, 7, 4)
	if err != nil {
		return
	}
	words = []uint16{0xb080 | imm}
	return
}

// Push is PUSH {registers}, with R0-R7 and LR allowed.
type Push struct {
	short
	Registers RegisterList
}

func (inst Push) String() string {
	return "push " + inst.Registers.String()
}

func (inst Push) Encode() (words []uint16, err error) {
	if inst.Registers&^(0x00ff|1<<LR) != 0 {
		err = ErrRegisterListBad
		return
	}
	m := uint16(inst.Registers>>LR) & 1
	words = []uint16{0xb400 | m<<8 | uint16(inst.Registers&0xff)}
	return
}

// Pop is POP {registers}, with R0-R7 and PC allowed.
type Pop struct {
	short
	Registers RegisterList
}

func (inst Pop) String() string {
	return "pop " + inst.Registers.String()
}

func (inst Pop) Encode() (words []uint16, err error) {
	if inst.Registers&^(0x00ff|1<<PC) != 0 {
		err = ErrRegisterListBad
		return
	}
	p := uint16(inst.Registers>>PC) & 1
	words = []uint16{0xbc00 | p<<8 | uint16(inst.Registers&0xff)}
	return
}

// Stm is STM Rn!, {registers}.
type Stm struct {
	short
	Rn        Register
	Registers RegisterList
}

func (inst Stm) String() string {
	return fmt.Sprintf("stm %v!, %v", inst.Rn, inst.Registers.String())
}

func (inst Stm) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rn); err != nil {
		return
	}
	if inst.Registers&^0xff != 0 {
		err = ErrRegisterListBad
		return
	}
	words = []uint16{0xc000 | uint16(inst.Rn)<<8 | uint16(inst.Registers)}
	return
}

// Ldm is LDM Rn{!}, {registers}; Rn is written back unless it is listed.
type Ldm struct {
	short
	Rn        Register
	Registers RegisterList
}

// Writeback reports whether the base register is updated.
func (inst Ldm) Writeback() bool {
	return !inst.Registers.Has(inst.Rn)
}

func (inst Ldm) String() string {
	wback := ""
	if inst.Writeback() {
		wback = "!"
	}
	return fmt.Sprintf("ldm %v%v, %v", inst.Rn, wback, inst.Registers.String())
}

func (inst Ldm) Encode() (words []uint16, err error) {
	if err = lowRegs(inst.Rn); err != nil {
		return
	}
	if inst.Registers&^0xff != 0 {
		err = ErrRegisterListBad
		return
	}
	words = []uint16{0xc800 | uint16(inst.Rn)<<8 | uint16(inst.Registers)}
	return
}

// BCondT1 is B<cond> to PC + Imm.
type BCondT1 struct {
	short
	Cond Cond
	Imm  int32
}

func (inst BCondT1) String() string {
	return fmt.Sprintf("b%v #%d", inst.Cond, inst.Imm)
}

func (inst BCondT1) Encode() (words []uint16, err error) {
	if inst.Cond >= COND_AL {
		err = ErrOperandInvalid
		return
	}
	imm, err := branchField(inst.Imm, 8)
	if err != nil {
		return
	}
	words = []uint16{0xd000 | uint16(inst.Cond)<<8 | uint16(imm)}
	return
}

// BT2 is an unconditional B to PC + Imm.
type BT2 struct {
	short
	Imm int32
}

func (inst BT2) String() string {
	return fmt.Sprintf("b #%d", inst.Imm)
}

func (inst BT2) Encode() (words []uint16, err error) {
	imm, err := branchField(inst.Imm, 11)
	if err != nil {
		return
	}
	words = []uint16{0xe000 | uint16(imm)}
	return
}

// UdfT1 is the permanently undefined UDF #imm8.
type UdfT1 struct {
	short
	Imm uint32
}

func (inst UdfT1) String() string {
	return fmt.Sprintf("udf #%d", inst.Imm)
}

func (inst UdfT1) Encode() (words []uint16, err error) {
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0xde00 | imm}
	return
}

// SvcT1 is the supervisor call SVC #imm8.
type SvcT1 struct {
	short
	Imm uint32
}

func (inst SvcT1) String() string {
	return fmt.Sprintf("svc #%d", inst.Imm)
}

func (inst SvcT1) Encode() (words []uint16, err error) {
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0xdf00 | imm}
	return
}

// Bkpt is the breakpoint BKPT #imm8.
type Bkpt struct {
	short
	Imm uint32
}

func (inst Bkpt) String() string {
	return fmt.Sprintf("bkpt #%d", inst.Imm)
}

func (inst Bkpt) Encode() (words []uint16, err error) {
	imm, err := immField(inst.Imm, 8, 1)
	if err != nil {
		return
	}
	words = []uint16{0xbe00 | imm}
	return
}

// Unmodeled is an allocated encoding whose operands are not modeled.
type Unmodeled struct {
	Group Group
	Words []uint16
}

func (inst Unmodeled) Size() int {
	return 2 * len(inst.Words)
}

func (inst Unmodeled) String() string {
	hex := make([]string, len(inst.Words))
	for n, word := range inst.Words {
		hex[n] = fmt.Sprintf("%#04x", word)
	}
	return fmt.Sprintf(".hword %v ; %v", strings.Join(hex, ", "), inst.Group)
}

func (inst Unmodeled) Encode() (words []uint16, err error) {
	if len(inst.Words) < 1 || len(inst.Words) > 2 {
		err = ErrOperandInvalid
		return
	}
	words = inst.Words
	return
}

// BlT1 is BL to PC + Imm, the 32-bit branch with link.
type BlT1 struct {
	long
	Imm int32
}

func (inst BlT1) String() string {
	return fmt.Sprintf("bl #%d", inst.Imm)
}

func (inst BlT1) Encode() (words []uint16, err error) {
	field, err := branchField(inst.Imm, 24)
	if err != nil {
		return
	}
	s := (field >> 23) & 1
	i1 := (field >> 22) & 1
	i2 := (field >> 21) & 1
	j1 := (^i1 ^ s) & 1
	j2 := (^i2 ^ s) & 1
	imm10 := (field >> 11) & 0x3ff
	imm11 := field & 0x7ff
	words = []uint16{
		uint16(0xf000 | s<<10 | imm10),
		uint16(0xd000 | j1<<13 | j2<<11 | imm11),
	}
	return
}

// specialOperand checks the core register of an MSR or MRS.
// SP and PC are unpredictable there.
func specialOperand(reg Register) (err error) {
	if reg == SP || reg >= PC {
		err = ErrRegisterInvalid
	}
	return
}

// MsrT1 is MSR SysM, Rn.
type MsrT1 struct {
	long
	Rn   Register
	SysM SpecialRegister
}

func (inst MsrT1) String() string {
	return fmt.Sprintf("msr %v, %v", inst.SysM, inst.Rn)
}

func (inst MsrT1) Encode() (words []uint16, err error) {
	if _, err = SpecialRegisterFrom(uint8(inst.SysM)); err != nil {
		return
	}
	if err = specialOperand(inst.Rn); err != nil {
		return
	}
	words = []uint16{0xf380 | uint16(inst.Rn), 0x8800 | uint16(inst.SysM)}
	return
}

// MrsT1 is MRS Rd, SysM.
type MrsT1 struct {
	long
	Rd   Register
	SysM SpecialRegister
}

func (inst MrsT1) String() string {
	return fmt.Sprintf("mrs %v, %v", inst.Rd, inst.SysM)
}

func (inst MrsT1) Encode() (words []uint16, err error) {
	if _, err = SpecialRegisterFrom(uint8(inst.SysM)); err != nil {
		return
	}
	if err = specialOperand(inst.Rd); err != nil {
		return
	}
	words = []uint16{0xf3ef, 0x8000 | uint16(inst.Rd)<<8 | uint16(inst.SysM)}
	return
}
