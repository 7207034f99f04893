package thumb

import (
	"encoding/binary"
)

// IsLong returns true if the halfword is the first half of a 32-bit
// instruction.
func IsLong(hw uint16) bool {
	switch hw >> 11 {
	case 0b11101, 0b11110, 0b11111:
		return true
	}
	return false
}

// signExtend sign extends the low width bits of value.
func signExtend(value uint32, width int) int32 {
	shift := 32 - width
	return int32(value<<shift) >> shift
}

// Decode decodes one instruction from the start of data, returning the
// unconsumed remainder.
func Decode(data []byte) (inst Instruction, rest []byte, err error) {
	if len(data) < 2 {
		err = ErrTruncatedInput
		return
	}

	hw := binary.LittleEndian.Uint16(data)
	if !IsLong(hw) {
		inst, err = decode16(hw)
		if err != nil {
			return
		}
		rest = data[2:]
		return
	}

	if len(data) < 4 {
		err = ErrTruncatedInput
		return
	}

	hw2 := binary.LittleEndian.Uint16(data[2:])
	inst, err = decode32(hw, hw2)
	if err != nil {
		return
	}
	rest = data[4:]
	return
}

// DecodeWords decodes an instruction from halfwords.
func DecodeWords(words ...uint16) (inst Instruction, err error) {
	data := make([]byte, 0, 2*len(words))
	for _, word := range words {
		data = binary.LittleEndian.AppendUint16(data, word)
	}
	inst, _, err = Decode(data)
	return
}

func illegal16(hw uint16) error {
	return &ErrEncoding{Words: []uint16{hw}}
}

func decode16(hw uint16) (inst Instruction, err error) {
	r0 := Register(hw & 7)
	r3 := Register((hw >> 3) & 7)
	r8 := Register((hw >> 8) & 7)
	imm8 := uint32(hw & 0xff)

	switch op := hw >> 10; {
	case op <= 0b001111:
		return decodeShiftAddSubMovCmp(hw)
	case op == 0b010000:
		inst = DataProc{Op: DpOpcode((hw >> 6) & 0xf), Rdn: r0, Rm: r3}
	case op == 0b010001:
		return decodeSpecialData(hw)
	case op <= 0b010011:
		inst = LdrLitT1{Rt: r8, Imm: imm8 << 2}
	case op <= 0b100111:
		return decodeLoadStore(hw)
	case op <= 0b101001:
		inst = AdrT1{Rd: r8, Imm: imm8 << 2}
	case op <= 0b101011:
		inst = AddSpImmT1{Rd: r8, Imm: imm8 << 2}
	case op <= 0b101111:
		return decodeMisc(hw)
	case op <= 0b110001:
		inst = Stm{Rn: r8, Registers: RegisterList(imm8)}
	case op <= 0b110011:
		inst = Ldm{Rn: r8, Registers: RegisterList(imm8)}
	case op <= 0b110111:
		switch cond := Cond((hw >> 8) & 0xf); cond {
		case COND_AL:
			inst = UdfT1{Imm: imm8}
		case COND_NONE:
			inst = SvcT1{Imm: imm8}
		default:
			inst = BCondT1{Cond: cond, Imm: signExtend(imm8, 8) << 1}
		}
	case op <= 0b111001:
		inst = BT2{Imm: signExtend(uint32(hw&0x7ff), 11) << 1}
	default:
		err = illegal16(hw)
	}

	return
}

func decodeShiftAddSubMovCmp(hw uint16) (inst Instruction, err error) {
	rd := Register(hw & 7)
	rn := Register((hw >> 3) & 7)
	rm := Register((hw >> 6) & 7)
	imm3 := uint32((hw >> 6) & 7)
	r8 := Register((hw >> 8) & 7)
	imm8 := uint32(hw & 0xff)

	switch op := (hw >> 9) & 0x1f; {
	case op <= 0b01011:
		inst = ShiftImm{
			Op:  Shift(op >> 2),
			Rd:  rd,
			Rm:  rn,
			Imm: uint32((hw >> 6) & 0x1f),
		}
	case op == 0b01100:
		inst = AddsRegT1{Rd: rd, Rn: rn, Rm: rm}
	case op == 0b01101:
		inst = SubsRegT1{Rd: rd, Rn: rn, Rm: rm}
	case op == 0b01110:
		inst = AddsImmT1{Rd: rd, Rn: rn, Imm: imm3}
	case op == 0b01111:
		inst = SubsImmT1{Rd: rd, Rn: rn, Imm: imm3}
	case op <= 0b10011:
		inst = MovsImmT1{Rd: r8, Imm: imm8}
	case op <= 0b10111:
		inst = CmpImmT1{Rn: r8, Imm: imm8}
	case op <= 0b11011:
		inst = AddsImmT2{Rdn: r8, Imm: imm8}
	default:
		inst = SubsImmT2{Rdn: r8, Imm: imm8}
	}
	return
}

func decodeSpecialData(hw uint16) (inst Instruction, err error) {
	rdn := Register((hw>>4)&8 | hw&7)
	rm := Register((hw >> 3) & 0xf)

	switch op := (hw >> 6) & 0xf; {
	case op <= 0b0011:
		inst = AddRegT2{Rdn: rdn, Rm: rm}
	case op == 0b0100:
		err = illegal16(hw)
	case op <= 0b0111:
		inst = CmpRegT2{Rn: rdn, Rm: rm}
	case op <= 0b1011:
		inst = MovRegT1{Rd: rdn, Rm: rm}
	default:
		if hw&7 != 0 {
			err = illegal16(hw)
			return
		}
		if op <= 0b1101 {
			inst = BxT1{Rm: rm}
		} else {
			inst = BlxRegT1{Rm: rm}
		}
	}
	return
}

func decodeLoadStore(hw uint16) (inst Instruction, err error) {
	rt := Register(hw & 7)
	rn := Register((hw >> 3) & 7)
	imm5 := uint32((hw >> 6) & 0x1f)
	r8 := Register((hw >> 8) & 7)
	imm8 := uint32(hw & 0xff)

	switch hw >> 11 {
	case 0b01100:
		inst = StrImmT1{Rt: rt, Rn: rn, Imm: imm5 << 2}
	case 0b01101:
		inst = LdrImmT1{Rt: rt, Rn: rn, Imm: imm5 << 2}
	case 0b10010:
		inst = StrSpT2{Rt: r8, Imm: imm8 << 2}
	case 0b10011:
		inst = LdrSpT2{Rt: r8, Imm: imm8 << 2}
	default:
		// Register offset, byte and halfword forms.
		inst = Unmodeled{Group: GROUP_LOAD_STORE, Words: []uint16{hw}}
	}
	return
}

func decodeMisc(hw uint16) (inst Instruction, err error) {
	imm7 := uint32(hw & 0x7f)
	imm8 := uint32(hw & 0xff)

	switch {
	case hw&0xff80 == 0xb000:
		inst = AddSpImmT2{Imm: imm7 << 2}
	case hw&0xff80 == 0xb080:
		inst = SubSpImmT1{Imm: imm7 << 2}
	case hw&0xff00 == 0xb200:
		inst = Unmodeled{Group: GROUP_EXTEND, Words: []uint16{hw}}
	case hw&0xfe00 == 0xb400:
		inst = Push{Registers: RegisterList(imm8) | RegisterList((hw>>8)&1)<<LR}
	case hw&0xffe0 == 0xb660:
		inst = Unmodeled{Group: GROUP_CPS, Words: []uint16{hw}}
	case hw&0xff00 == 0xba00:
		if (hw>>6)&3 == 0b10 {
			err = illegal16(hw)
			return
		}
		inst = Unmodeled{Group: GROUP_REVERSE, Words: []uint16{hw}}
	case hw&0xfe00 == 0xbc00:
		inst = Pop{Registers: RegisterList(imm8) | RegisterList((hw>>8)&1)<<PC}
	case hw&0xff00 == 0xbe00:
		inst = Bkpt{Imm: imm8}
	case hw&0xff00 == 0xbf00:
		// NOP, YIELD, WFE, WFI and SEV; IT does not exist on this profile.
		if hw&0xf != 0 || (hw>>4)&0xf > 4 {
			err = illegal16(hw)
			return
		}
		inst = Unmodeled{Group: GROUP_HINT, Words: []uint16{hw}}
	default:
		err = illegal16(hw)
	}
	return
}

func decode32(hw1, hw2 uint16) (inst Instruction, err error) {
	switch {
	case hw1&0xf800 == 0xf000 && hw2&0xd000 == 0xd000:
		s := uint32(hw1>>10) & 1
		j1 := uint32(hw2>>13) & 1
		j2 := uint32(hw2>>11) & 1
		i1 := ^(j1 ^ s) & 1
		i2 := ^(j2 ^ s) & 1
		imm := s<<24 | i1<<23 | i2<<22 | uint32(hw1&0x3ff)<<12 | uint32(hw2&0x7ff)<<1
		inst = BlT1{Imm: signExtend(imm, 25)}
		return
	case hw1&0xfff0 == 0xf380 && hw2&0xff00 == 0x8800:
		var sysm SpecialRegister
		sysm, err = SpecialRegisterFrom(uint8(hw2))
		if err != nil {
			break
		}
		rn := Register(hw1 & 0xf)
		if rn == SP || rn == PC {
			break
		}
		inst = MsrT1{Rn: rn, SysM: sysm}
		return
	case hw1 == 0xf3ef && hw2&0xf000 == 0x8000:
		var sysm SpecialRegister
		sysm, err = SpecialRegisterFrom(uint8(hw2))
		if err != nil {
			break
		}
		rd := Register((hw2 >> 8) & 0xf)
		if rd == SP || rd == PC {
			break
		}
		inst = MrsT1{Rd: rd, SysM: sysm}
		return
	case hw1 == 0xf3bf && hw2&0xff00 == 0x8f00:
		switch (hw2 >> 4) & 0xf {
		case 0b0100, 0b0101, 0b0110:
			inst = Unmodeled{Group: GROUP_BARRIER, Words: []uint16{hw1, hw2}}
			return
		}
	}

	err = &ErrEncoding{Words: []uint16{hw1, hw2}}
	return
}
