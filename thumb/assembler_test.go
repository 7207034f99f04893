package thumb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/disarm/memory"
)

func assemble(t *testing.T, origin uint32, program []string) (listing *Listing, data []byte) {
	asm := &Assembler{Origin: origin}

	listing, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
		return
	}

	data, err = listing.Binary()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	listing, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(listing.Statement))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%#x", memory.SRAM_BASE), asm.Equate["SRAM_BASE"])
	assert.Equal(fmt.Sprintf("%#x", memory.SRAM_TOP), asm.Equate["SRAM_TOP"])
}

func TestAssemblerBranchScenario(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start:",
		"    movs r0, #15",
		"    cmp r0, #10",
		"    bhi big       ; 15 > 10",
		"    movs r1, #1",
		"    adds r0, r1, r0",
		"    bx lr",
		"big:",
		"    movs r1, #0",
		"    mvns r1, r1",
		"    adds r0, r1, r0",
		"    bkpt",
	}

	listing, data := assemble(t, 0x104, program)

	assert.Equal([]byte{
		0x0f, 0x20, 0x0a, 0x28, 0x02, 0xd8, 0x01, 0x21,
		0x08, 0x18, 0x70, 0x47, 0x00, 0x21, 0xc9, 0x43,
		0x08, 0x18, 0x00, 0xbe,
	}, data)
	assert.Equal(uint32(0x104), listing.Label["start"])
	assert.Equal(uint32(0x110), listing.Label["big"])
	assert.Equal(10, len(listing.Statement))
	assert.Equal(BCondT1{Cond: COND_HI, Imm: 4}, listing.Statement[2].Instruction)
}

func TestAssemblerMovs(t *testing.T) {
	assert := assert.New(t)

	_, data := assemble(t, 0, []string{"movs r0, #9", "bkpt #0"})
	assert.Equal([]byte{0x09, 0x20, 0x00, 0xbe}, data)
}

func TestAssemblerLink(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"    bl func        ; 0x00",
		"    ldr r0, value  ; 0x04",
		"    adr r1, value  ; 0x06",
		"loop:",
		"    b loop         ; 0x08",
		"func:",
		"    bx lr          ; 0x0a",
		"    .align         ; 0x0c",
		"value:",
		"    .word 0xcafef00d, func ; 0x0c",
		"    .hword 0x1234  ; 0x14",
	}

	listing, data := assemble(t, 0, program)

	expected := []Instruction{
		BlT1{Imm: 6},
		LdrLitT1{Rt: R0, Imm: 4},
		AdrT1{Rd: R1, Imm: 4},
		BT2{Imm: -4},
		BxT1{Rm: LR},
	}
	for n, inst := range expected {
		assert.Equal(inst, listing.Statement[n].Instruction, "%v", n)
	}

	assert.Equal(uint32(0x0c), listing.Label["value"])
	assert.Equal(uint32(0xcafef00d), binary.LittleEndian.Uint32(data[0x0c:]))
	assert.Equal(uint32(0x0a), binary.LittleEndian.Uint32(data[0x10:]))
	assert.Equal(uint16(0x1234), binary.LittleEndian.Uint16(data[0x14:]))
	assert.Equal(0x16, len(data))
}

func TestAssemblerAlign(t *testing.T) {
	assert := assert.New(t)

	_, data := assemble(t, 0x100, []string{"nop", ".align", ".word 1"})
	assert.Equal([]byte{0x00, 0xbf, 0x00, 0xbf, 0x01, 0x00, 0x00, 0x00}, data)

	_, data = assemble(t, 0x100, []string{"dsb", ".align", ".word 1"})
	assert.Equal([]byte{0xbf, 0xf3, 0x4f, 0x8f, 0x01, 0x00, 0x00, 0x00}, data)
}

func TestAssemblerForms(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		inst Instruction
	}){
		{"movs r2, r3", ShiftImm{Op: SHIFT_LSL, Rd: R2, Rm: R3}},
		{"adds r0, #1", AddsImmT2{Rdn: R0, Imm: 1}},
		{"adds r0, r0, #8", AddsImmT2{Rdn: R0, Imm: 8}},
		{"adds r0, r1, #7", AddsImmT1{Rd: R0, Rn: R1, Imm: 7}},
		{"adds r0, r1", AddsRegT1{Rd: R0, Rn: R0, Rm: R1}},
		{"subs r0, r1, r2", SubsRegT1{Rd: R0, Rn: R1, Rm: R2}},
		{"add sp, sp, #16", AddSpImmT2{Imm: 16}},
		{"sub sp, sp, #16", SubSpImmT1{Imm: 16}},
		{"add r2, pc, #8", AdrT1{Rd: R2, Imm: 8}},
		{"add r8, r8, r1", AddRegT2{Rdn: R8, Rm: R1}},
		{"cmp r0, r1", DataProc{Op: DP_CMP, Rdn: R0, Rm: R1}},
		{"cmp r0, r9", CmpRegT2{Rn: R0, Rm: R9}},
		{"lsrs r1, r2, #32", ShiftImm{Op: SHIFT_LSR, Rd: R1, Rm: R2, Imm: 0}},
		{"asrs r1, r1, r2", DataProc{Op: DP_ASR, Rdn: R1, Rm: R2}},
		{"negs r0, r1", DataProc{Op: DP_RSB, Rdn: R0, Rm: R1}},
		{"ands r0, r0, r1", DataProc{Op: DP_AND, Rdn: R0, Rm: R1}},
		{"ldr r0, [r1]", LdrImmT1{Rt: R0, Rn: R1}},
		{"push {r0-r3, lr}", Push{Registers: 0xf | 1<<LR}},
		{"ldmia r3!, {r0, r1}", Ldm{Rn: R3, Registers: 0x3}},
		{"stmia r3!, {r0, r1}", Stm{Rn: R3, Registers: 0x3}},
		{"msr control, ip", MsrT1{Rn: R12, SysM: CONTROL}},
		{"mrs r0, xpsr", MrsT1{Rd: R0, SysM: XPSR}},
		{"bhs #0", BCondT1{Cond: COND_CS}},
		{"blo #-2", BCondT1{Cond: COND_CC, Imm: -2}},
		{"cpsid i", Unmodeled{Group: GROUP_CPS, Words: []uint16{0xb672}}},
		{"svc 'A'", SvcT1{Imm: 65}},
		{"movs r0, $(3 * 7)", MovsImmT1{Rd: R0, Imm: 21}},
		{"movs r0, #~0xffffff00", MovsImmT1{Rd: R0, Imm: 0xff}},
	}

	for _, entry := range table {
		asm := &Assembler{}
		listing, err := asm.Parse(strings.NewReader(entry.line))
		if !assert.NoError(err, entry.line) {
			continue
		}
		if assert.Equal(1, len(listing.Statement), entry.line) {
			assert.Equal(entry.inst, listing.Statement[0].Instruction, entry.line)
		}
	}
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("STACK", "0x20001000")
	program := []string{
		".equ CONST_10 0x10",
		"movs r0, #CONST_10",
		"movs r1, #$(CONST_10 + CONST_10)",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"movs r2, CONST_30",
		"movs r3, #$(LINENO * 8 + 0x10)",
		".word STACK",
	}

	listing, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(errors.Unwrap(err))
	}

	assert.Equal(5, len(listing.Statement))
	assert.Equal(MovsImmT1{Rd: R0, Imm: 0x10}, listing.Statement[0].Instruction)
	assert.Equal(MovsImmT1{Rd: R1, Imm: 0x20}, listing.Statement[1].Instruction)
	assert.Equal(MovsImmT1{Rd: R2, Imm: 0x30}, listing.Statement[2].Instruction)
	assert.Equal(MovsImmT1{Rd: R3, Imm: 6*8 + 0x10}, listing.Statement[3].Instruction)
	assert.Equal([]byte{0x00, 0x10, 0x00, 0x20}, listing.Statement[4].Data)
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro SETADD rn a b",
		"movs rn, #a",
		"adds rn, #b",
		".endm",
		"SETADD r0, 8, 8",
		".equ CONST_10 0x10",
		"SETADD r1, CONST_10, CONST_10",
		".macro COUNTDOWN rn",
		"@loop: subs rn, #1",
		"bne @loop",
		".endm",
		"COUNTDOWN r2",
	}

	listing, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Instruction{
		MovsImmT1{Rd: R0, Imm: 8},
		AddsImmT2{Rdn: R0, Imm: 8},
		MovsImmT1{Rd: R1, Imm: 0x10},
		AddsImmT2{Rdn: R1, Imm: 0x10},
		SubsImmT2{Rdn: R2, Imm: 1},
		BCondT1{Cond: COND_NE, Imm: -6},
	}

	if assert.Equal(len(expected), len(listing.Statement)) {
		for n, inst := range expected {
			assert.Equal(inst, listing.Statement[n].Instruction, "%v", n)
		}
	}
	assert.Equal(uint32(8), listing.Label["COUNTDOWN_12_loop"])
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		err     error
	}){
		{[]string{"frob r0"}, ErrInstructionInvalid},
		{[]string{"movs r8, #1"}, ErrRegisterLow},
		{[]string{"movs r0, #256"}, ErrImmediateRange},
		{[]string{"movs r0, #zero"}, ErrParseNumber("zero")},
		{[]string{"movs r0"}, ErrOpcodeMissing},
		{[]string{"ldr r0, [r1, #3]"}, ErrImmediateAlign},
		{[]string{"ldr r0, [r9, #4]"}, ErrRegisterLow},
		{[]string{"push {r8}"}, ErrRegisterListBad},
		{[]string{"push {r3-r1}"}, ErrRegisterListBad},
		{[]string{"ldm r0!, {r0, r1}"}, ErrOperandInvalid},
		{[]string{"lsls r0, r1, #32"}, ErrImmediateRange},
		{[]string{"mrs r0, bogus"}, ErrSpecialRegisterInvalid},
		{[]string{"mrs pc, primask"}, ErrRegisterInvalid},
		{[]string{"msr primask, sp"}, ErrRegisterInvalid},
		{[]string{"b nowhere"}, ErrLabelMissing("nowhere")},
		{[]string{"x:", "x:"}, ErrLabelDuplicate},
		{[]string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate},
		{[]string{".equ A"}, ErrEquateSyntax},
		{[]string{".macro M", ".macro N"}, ErrMacroNesting},
		{[]string{".macro M"}, ErrMacroLonely},
		{[]string{".endm"}, ErrMacroLonelyEndm},
		{[]string{".macro M a", ".endm", "M"}, ErrMacroSyntax},
		{[]string{"movs r0, $(nope)"}, nil},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		if !assert.Error(err, "%v", entry.program) {
			continue
		}
		var syntax *ErrSyntax
		assert.ErrorAs(err, &syntax, "%v", entry.program)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, "%v", entry.program)
		}
	}
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var source strings.Builder
	var expected [][]byte
	var data [4]byte

	add := func(words ...uint16) {
		for n, word := range words {
			binary.LittleEndian.PutUint16(data[n*2:], word)
		}
		inst, _, err := Decode(data[:len(words)*2])
		if err != nil {
			return
		}
		source.WriteString(inst.String())
		source.WriteString("\n")
		expected = append(expected, append([]byte(nil), data[:len(words)*2]...))
	}

	for n := range 0x10000 {
		if !IsLong(uint16(n)) {
			add(uint16(n))
		}
	}
	for _, hw2 := range []uint16{0xf800, 0xfffe, 0xd001, 0xf7ff} {
		add(0xf000, hw2)
		add(0xf7ff, hw2)
	}
	for sysm := range 32 {
		add(0xf3ef, 0x8300|uint16(sysm))
		add(0xf384, 0x8800|uint16(sysm))
	}
	add(0xf3bf, 0x8f5f)

	asm := &Assembler{}
	listing, err := asm.Parse(strings.NewReader(source.String()))
	if !assert.NoError(err) {
		return
	}
	if !assert.Equal(len(expected), len(listing.Statement)) {
		return
	}

	for n := range listing.Statement {
		st := &listing.Statement[n]
		encoded, err := st.Bytes()
		if assert.NoError(err, "%v", st.Words) {
			assert.Equal(expected[n], encoded, "%v", st.Words)
		}
	}
}
