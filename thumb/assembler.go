// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package thumb

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/disarm/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Statement is a single assembled instruction or data directive.
type Statement struct {
	LineNo      int         // Source line number.
	Address     uint32      // Address of the first byte.
	Words       []string    // Mnemonic and operands.
	Instruction Instruction // Instruction, or nil for data.
	Data        []byte      // Data bytes, when Instruction is nil.
	LinkLabel   string      // Label to resolve at link time.
}

// Size returns the number of bytes occupied by the statement.
func (st *Statement) Size() int {
	if st.Instruction != nil {
		return st.Instruction.Size()
	}
	return len(st.Data)
}

// Bytes returns the encoded bytes of the statement.
func (st *Statement) Bytes() (data []byte, err error) {
	if st.Instruction == nil {
		data = st.Data
		return
	}
	return EncodeBytes(st.Instruction)
}

// Listing is the result of assembling a source file.
type Listing struct {
	Origin    uint32            // Address of the first statement.
	Statement []Statement       // Assembled statements, in address order.
	Label     map[string]uint32 // Label addresses.
}

// Binary returns the code image of the listing, starting at Origin.
func (listing *Listing) Binary() (data []byte, err error) {
	for n := range listing.Statement {
		var chunk []byte
		chunk, err = listing.Statement[n].Bytes()
		if err != nil {
			st := &listing.Statement[n]
			err = &ErrSyntax{LineNo: st.LineNo, Line: strings.Join(st.Words, " "), Err: err}
			return
		}
		data = append(data, chunk...)
	}
	return
}

// Assembler is a two pass macro assembler for Thumb source.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Origin    uint32      // Address of the first assembled statement.
	Statement []Statement // List of assembled statements.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap maps register names, including aliases.
var registerMap = map[string]Register{
	"r0":  R0,
	"r1":  R1,
	"r2":  R2,
	"r3":  R3,
	"r4":  R4,
	"r5":  R5,
	"r6":  R6,
	"r7":  R7,
	"r8":  R8,
	"r9":  R9,
	"r10": R10,
	"r11": R11,
	"r12": R12,
	"ip":  R12,
	"r13": SP,
	"sp":  SP,
	"r14": LR,
	"lr":  LR,
	"r15": PC,
	"pc":  PC,
}

// specialMap maps special register names.
var specialMap = func() map[string]SpecialRegister {
	sm := map[string]SpecialRegister{}
	for n := range 32 {
		sr, err := SpecialRegisterFrom(uint8(n))
		if err == nil {
			sm[sr.String()] = sr
		}
	}
	return sm
}()

// condMap maps conditional branch mnemonics.
var condMap = func() map[string]Cond {
	cm := map[string]Cond{
		"bhs": COND_CS,
		"blo": COND_CC,
	}
	for cond := COND_EQ; cond < COND_AL; cond++ {
		cm["b"+cond.String()] = cond
	}
	return cm
}()

// dpMap maps data processing mnemonics.
var dpMap = func() map[string]DpOpcode {
	dm := map[string]DpOpcode{
		"negs": DP_RSB,
	}
	for op := DP_AND; op <= DP_MVN; op++ {
		dm[op.String()] = op
	}
	return dm
}()

// fixedMap maps operand-less mnemonics to their encodings.
var fixedMap = map[string][]uint16{
	"nop":     {0xbf00},
	"yield":   {0xbf10},
	"wfe":     {0xbf20},
	"wfi":     {0xbf30},
	"sev":     {0xbf40},
	"cpsie i": {0xb662},
	"cpsid i": {0xb672},
	"dsb":     {0xf3bf, 0x8f4f},
	"dmb":     {0xf3bf, 0x8f5f},
	"isb":     {0xf3bf, 0x8f6f},
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^([A-Za-z_.][A-Za-z0-9_.]*):`)
	reIdentifier = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	word = strings.TrimPrefix(word, "#")
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 34)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// isRegister returns true if the word names a core register.
func isRegister(word string) bool {
	_, ok := registerMap[strings.TrimSuffix(word, "!")]
	return ok
}

// register returns the core register named by word.
func register(word string) (reg Register, err error) {
	reg, ok := registerMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// RegisterNamed returns the core register with the given name.
func RegisterNamed(name string) (reg Register, err error) {
	return register(strings.ToLower(name))
}

// SpecialRegisterNamed returns the special register with the given name.
func SpecialRegisterNamed(name string) (sr SpecialRegister, err error) {
	sr, ok := specialMap[strings.ToLower(name)]
	if !ok {
		err = ErrSpecialRegisterInvalid
	}
	return
}

// lowRegister returns the R0-R7 register named by word.
func lowRegister(word string) (reg Register, err error) {
	reg, err = register(word)
	if err != nil {
		return
	}
	if !reg.Low() {
		err = ErrRegisterLow
	}
	return
}

// registerList parses a "{r0, r2-r4, lr}" list.
func registerList(word string) (rl RegisterList, err error) {
	if !strings.HasPrefix(word, "{") || !strings.HasSuffix(word, "}") {
		err = ErrRegisterListBad
		return
	}
	inner := strings.TrimSpace(word[1 : len(word)-1])
	if len(inner) == 0 {
		return
	}
	for _, item := range strings.Split(inner, ",") {
		item = strings.TrimSpace(item)
		first, last, isRange := strings.Cut(item, "-")
		var lo, hi Register
		lo, err = register(strings.TrimSpace(first))
		if err != nil {
			return
		}
		hi = lo
		if isRange {
			hi, err = register(strings.TrimSpace(last))
			if err != nil {
				return
			}
			if hi < lo {
				err = ErrRegisterListBad
				return
			}
		}
		for reg := lo; reg <= hi; reg++ {
			rl |= 1 << reg
		}
	}
	return
}

// memoryOperand parses a "[rn]" or "[rn, #imm]" operand.
func (asm *Assembler) memoryOperand(word string) (base Register, offset uint32, err error) {
	if !strings.HasPrefix(word, "[") || !strings.HasSuffix(word, "]") {
		err = ErrOperandInvalid
		return
	}
	parts := splitOperands(word[1 : len(word)-1])
	switch len(parts) {
	case 1:
	case 2:
		offset, err = asm.valueOf(parts[1])
		if err != nil {
			return
		}
	default:
		err = ErrOperandInvalid
		return
	}
	base, err = register(parts[0])
	return
}

// target returns the branch offset of a "#offset" operand, or the label
// to link when the operand is a name or an absolute address.
func (asm *Assembler) target(word string) (offset int32, label string, err error) {
	if strings.HasPrefix(word, "#") {
		var value uint32
		value, err = asm.valueOf(word)
		offset = int32(value)
		return
	}
	label = word
	return
}

// splitOperands splits text on commas outside of brackets and braces.
func splitOperands(text string) (operands []string) {
	depth := 0
	start := 0
	for n, ch := range text {
		switch ch {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case ',':
			if depth == 0 {
				operands = append(operands, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	last := strings.TrimSpace(text[start:])
	if len(last) > 0 || len(operands) > 0 {
		operands = append(operands, last)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(int64(value32))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt64(int64(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line into a mnemonic and its operands.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)

	for {
		match := reLabel.FindStringSubmatch(line)
		if match == nil {
			break
		}
		label := match[1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.currentAddress()
		line = strings.TrimSpace(line[len(match[0]):])
	}

	if len(line) == 0 {
		return
	}

	mnemonic, rest, _ := strings.Cut(strings.ReplaceAll(line, "\t", " "), " ")
	if _, ok := asm.Macro[mnemonic]; !ok {
		mnemonic = strings.ToLower(mnemonic)
	}
	rest = strings.TrimSpace(rest)

	// .equ CONST VALUE
	if mnemonic == ".equ" {
		args := strings.Fields(strings.ReplaceAll(rest, ",", " "))
		if len(args) != 2 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[args[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[args[0]] = args[1]
		return
	}

	// Equate substitution
	rest = reIdentifier.ReplaceAllStringFunc(rest, func(word string) string {
		equate, ok := asm.Equate[word]
		if ok {
			return equate
		}
		return word
	})

	words = append([]string{mnemonic}, splitOperands(rest)...)

	// .macro processing
	macro, ok := asm.Macro[mnemonic]
	if ok {
		name := mnemonic

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each invocation.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddress gets the address of the next statement.
func (asm *Assembler) currentAddress() uint32 {
	if len(asm.Statement) == 0 {
		return asm.Origin
	}

	last := &asm.Statement[len(asm.Statement)-1]

	return last.Address + uint32(last.Size())
}

// Parse parses an input stream into a Listing of statements.
func (asm *Assembler) Parse(input io.Reader) (listing *Listing, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Statement = asm.Statement[:0]
	asm.Macro = make(map[string](*Macro))
	asm.Equate = map[string]string{"LINENO": "0"}
	for attr, val := range memory.Defines() {
		asm.Equate[attr] = val
	}
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(strings.ReplaceAll(line, ",", " "))

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if err = scanner.Err(); err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		lineno = st.LineNo
		line = strings.Join(st.Words, " ")
		target, ok := asm.Label[st.LinkLabel]
		if !ok {
			var value uint32
			value, err = asm.valueOf(st.LinkLabel)
			if err != nil {
				err = ErrLabelMissing(st.LinkLabel)
				return
			}
			target = value
		}
		err = st.link(target)
		if err != nil {
			return
		}
	}

	listing = &Listing{
		Origin:    asm.Origin,
		Statement: append([]Statement(nil), asm.Statement...),
		Label:     maps.Clone(asm.Label),
	}

	return
}

// link resolves the statement's label reference to target.
func (st *Statement) link(target uint32) (err error) {
	pc := st.Address + 4
	base := pc &^ 3

	switch inst := st.Instruction.(type) {
	case nil:
		binary.LittleEndian.PutUint32(st.Data, target)
		return
	case BT2:
		inst.Imm = int32(target - pc)
		st.Instruction = inst
	case BCondT1:
		inst.Imm = int32(target - pc)
		st.Instruction = inst
	case BlT1:
		inst.Imm = int32(target - pc)
		st.Instruction = inst
	case LdrLitT1:
		if target < base {
			err = ErrImmediateRange
			return
		}
		inst.Imm = target - base
		st.Instruction = inst
	case AdrT1:
		if target < base {
			err = ErrImmediateRange
			return
		}
		inst.Imm = target - base
		st.Instruction = inst
	default:
		err = ErrOperandInvalid
		return
	}

	_, err = st.Instruction.Encode()
	return
}

// dataDirective assembles .word and .hword directives.
func (asm *Assembler) dataDirective(st *Statement, width int, args []string) (err error) {
	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 1 && width == 4 {
		// Each .word is its own statement so that labels can link.
		for _, arg := range args {
			err = asm.parseWords([]string{st.Words[0], arg}, st.LineNo)
			if err != nil {
				return
			}
		}
		return
	}

	for _, arg := range args {
		value, verr := asm.valueOf(arg)
		if verr != nil {
			if width != 4 || !reIdentifier.MatchString(arg) {
				err = verr
				return
			}
			st.LinkLabel = arg
		}
		switch width {
		case 2:
			if value > 0xffff {
				err = ErrImmediateRange
				return
			}
			st.Data = binary.LittleEndian.AppendUint16(st.Data, uint16(value))
		case 4:
			st.Data = binary.LittleEndian.AppendUint32(st.Data, value)
		}
	}
	return
}

// arith assembles ADDS and SUBS.
func (asm *Assembler) arith(sub bool, args []string) (inst Instruction, err error) {
	var rd, rn Register
	var operand string

	switch len(args) {
	case 2:
		rd, err = lowRegister(args[0])
		rn = rd
		operand = args[1]
	case 3:
		rd, err = lowRegister(args[0])
		if err != nil {
			return
		}
		rn, err = lowRegister(args[1])
		operand = args[2]
	default:
		err = ErrOpcodeMissing
	}
	if err != nil {
		return
	}

	if isRegister(operand) {
		var rm Register
		rm, err = lowRegister(operand)
		if err != nil {
			return
		}
		if sub {
			inst = SubsRegT1{Rd: rd, Rn: rn, Rm: rm}
		} else {
			inst = AddsRegT1{Rd: rd, Rn: rn, Rm: rm}
		}
		return
	}

	imm, err := asm.valueOf(operand)
	if err != nil {
		return
	}

	if rd == rn && (len(args) == 2 || imm > 7) {
		if sub {
			inst = SubsImmT2{Rdn: rd, Imm: imm}
		} else {
			inst = AddsImmT2{Rdn: rd, Imm: imm}
		}
		return
	}

	if sub {
		inst = SubsImmT1{Rd: rd, Rn: rn, Imm: imm}
	} else {
		inst = AddsImmT1{Rd: rd, Rn: rn, Imm: imm}
	}
	return
}

// spAdjust assembles ADD and SUB with SP as destination.
func (asm *Assembler) spAdjust(sub bool, args []string) (inst Instruction, err error) {
	if len(args) == 3 {
		if args[1] != "sp" {
			err = ErrOperandInvalid
			return
		}
		args = []string{args[0], args[2]}
	}
	if len(args) != 2 {
		err = ErrOpcodeMissing
		return
	}
	imm, err := asm.valueOf(args[1])
	if err != nil {
		return
	}
	if sub {
		inst = SubSpImmT1{Imm: imm}
	} else {
		inst = AddSpImmT2{Imm: imm}
	}
	return
}

// add assembles the non flag setting ADD forms.
func (asm *Assembler) add(args []string) (inst Instruction, err error) {
	if len(args) < 2 {
		err = ErrOpcodeMissing
		return
	}
	if args[0] == "sp" && !isRegister(args[len(args)-1]) {
		return asm.spAdjust(false, args)
	}

	rd, err := register(args[0])
	if err != nil {
		return
	}

	switch len(args) {
	case 2:
		var rm Register
		rm, err = register(args[1])
		if err != nil {
			return
		}
		inst = AddRegT2{Rdn: rd, Rm: rm}
	case 3:
		var rn Register
		rn, err = register(args[1])
		if err != nil {
			return
		}
		if isRegister(args[2]) {
			var rm Register
			rm, err = register(args[2])
			if err != nil {
				return
			}
			if rd != rn {
				err = ErrOperandInvalid
				return
			}
			inst = AddRegT2{Rdn: rd, Rm: rm}
			return
		}
		var imm uint32
		imm, err = asm.valueOf(args[2])
		if err != nil {
			return
		}
		switch rn {
		case SP:
			inst = AddSpImmT1{Rd: rd, Imm: imm}
		case PC:
			inst = AdrT1{Rd: rd, Imm: imm}
		default:
			err = ErrOperandInvalid
		}
	default:
		err = ErrOpcodeExtraArgs
	}
	return
}

// shift assembles LSLS, LSRS and ASRS.
func (asm *Assembler) shift(op DpOpcode, args []string) (inst Instruction, err error) {
	if len(args) == 3 && !isRegister(args[2]) {
		var rd, rm Register
		rd, err = lowRegister(args[0])
		if err != nil {
			return
		}
		rm, err = lowRegister(args[1])
		if err != nil {
			return
		}
		var amount uint32
		amount, err = asm.valueOf(args[2])
		if err != nil {
			return
		}
		sh := Shift(op - DP_LSL)
		switch {
		case sh == SHIFT_LSL && amount > 31:
			err = ErrImmediateRange
			return
		case sh != SHIFT_LSL && (amount < 1 || amount > 32):
			err = ErrImmediateRange
			return
		}
		inst = ShiftImm{Op: sh, Rd: rd, Rm: rm, Imm: amount & 0x1f}
		return
	}
	return asm.dataProc(op, args)
}

// dataProc assembles the register to register data processing forms.
func (asm *Assembler) dataProc(op DpOpcode, args []string) (inst Instruction, err error) {
	var regs []Register
	var imm []string
	for _, arg := range args {
		if !isRegister(arg) {
			imm = append(imm, arg)
			continue
		}
		var reg Register
		reg, err = lowRegister(arg)
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}

	if op == DP_RSB && len(imm) == 1 {
		var value uint32
		value, err = asm.valueOf(imm[0])
		if err != nil {
			return
		}
		if value != 0 {
			err = ErrImmediateRange
			return
		}
		imm = nil
	}
	if len(imm) != 0 {
		err = ErrOperandInvalid
		return
	}

	switch {
	case len(regs) < 2:
		err = ErrOpcodeMissing
	case len(regs) == 2:
		inst = DataProc{Op: op, Rdn: regs[0], Rm: regs[1]}
	case len(regs) == 3 && op == DP_MUL && regs[0] == regs[2]:
		inst = DataProc{Op: op, Rdn: regs[0], Rm: regs[1]}
	case len(regs) == 3 && regs[0] == regs[1]:
		inst = DataProc{Op: op, Rdn: regs[0], Rm: regs[2]}
	case len(regs) == 3:
		err = ErrOperandInvalid
	default:
		err = ErrOpcodeExtraArgs
	}
	return
}

// loadStore assembles LDR and STR word forms.
func (asm *Assembler) loadStore(load bool, st *Statement, args []string) (inst Instruction, err error) {
	if len(args) != 2 {
		err = ErrOpcodeMissing
		return
	}
	rt, err := lowRegister(args[0])
	if err != nil {
		return
	}

	if !strings.HasPrefix(args[1], "[") {
		if !load {
			err = ErrOperandInvalid
			return
		}
		inst = LdrLitT1{Rt: rt}
		st.LinkLabel = args[1]
		return
	}

	base, offset, err := asm.memoryOperand(args[1])
	if err != nil {
		return
	}

	switch {
	case base == PC && load:
		inst = LdrLitT1{Rt: rt, Imm: offset}
	case base == SP && load:
		inst = LdrSpT2{Rt: rt, Imm: offset}
	case base == SP:
		inst = StrSpT2{Rt: rt, Imm: offset}
	case !base.Low():
		err = ErrRegisterLow
	case load:
		inst = LdrImmT1{Rt: rt, Rn: base, Imm: offset}
	default:
		inst = StrImmT1{Rt: rt, Rn: base, Imm: offset}
	}
	return
}

// multiple assembles LDM and STM.
func (asm *Assembler) multiple(load bool, args []string) (inst Instruction, err error) {
	if len(args) != 2 {
		err = ErrOpcodeMissing
		return
	}
	wback := strings.HasSuffix(args[0], "!")
	rn, err := lowRegister(strings.TrimSuffix(args[0], "!"))
	if err != nil {
		return
	}
	rl, err := registerList(args[1])
	if err != nil {
		return
	}
	if load {
		if wback == rl.Has(rn) {
			err = ErrOperandInvalid
			return
		}
		inst = Ldm{Rn: rn, Registers: rl}
	} else {
		inst = Stm{Rn: rn, Registers: rl}
	}
	return
}

// immediateOnly assembles the single optional immediate forms.
func (asm *Assembler) immediateOnly(args []string) (imm uint32, err error) {
	switch len(args) {
	case 0:
	case 1:
		imm, err = asm.valueOf(args[0])
	default:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	st := Statement{LineNo: lineno, Address: asm.currentAddress(), Words: words}

	defer func() {
		if err != nil {
			return
		}
		if st.Instruction == nil && len(st.Data) == 0 {
			return
		}
		if st.Instruction != nil {
			_, err = st.Instruction.Encode()
			if err != nil {
				return
			}
		}
		if asm.Verbose {
			log.Printf("asm: %#08x: %v", st.Address, st.Instruction)
		}
		asm.Statement = append(asm.Statement, st)
	}()

	op, args := words[0], words[1:]

	if fixed, ok := fixedMap[strings.Join(words, " ")]; ok {
		st.Instruction, err = DecodeWords(fixed...)
		return
	}

	if cond, ok := condMap[op]; ok {
		if len(args) != 1 {
			err = ErrOpcodeMissing
			return
		}
		inst := BCondT1{Cond: cond}
		inst.Imm, st.LinkLabel, err = asm.target(args[0])
		st.Instruction = inst
		return
	}

	switch op {
	case ".word":
		return asm.dataDirective(&st, 4, args)
	case ".hword":
		return asm.dataDirective(&st, 2, args)
	case ".align":
		if st.Address%4 != 0 {
			st.Data = []byte{0x00, 0xbf}
		}
		return
	case "movs":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		var rd Register
		rd, err = lowRegister(args[0])
		if err != nil {
			return
		}
		if isRegister(args[1]) {
			var rm Register
			rm, err = lowRegister(args[1])
			st.Instruction = ShiftImm{Op: SHIFT_LSL, Rd: rd, Rm: rm}
			return
		}
		var imm uint32
		imm, err = asm.valueOf(args[1])
		st.Instruction = MovsImmT1{Rd: rd, Imm: imm}
	case "mov":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		var rd, rm Register
		rd, err = register(args[0])
		if err != nil {
			return
		}
		rm, err = register(args[1])
		st.Instruction = MovRegT1{Rd: rd, Rm: rm}
	case "cmp":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		var rn Register
		rn, err = register(args[0])
		if err != nil {
			return
		}
		if isRegister(args[1]) {
			var rm Register
			rm, err = register(args[1])
			if rn.Low() && rm.Low() {
				st.Instruction = DataProc{Op: DP_CMP, Rdn: rn, Rm: rm}
			} else {
				st.Instruction = CmpRegT2{Rn: rn, Rm: rm}
			}
			return
		}
		if !rn.Low() {
			err = ErrRegisterLow
			return
		}
		var imm uint32
		imm, err = asm.valueOf(args[1])
		st.Instruction = CmpImmT1{Rn: rn, Imm: imm}
	case "adds":
		st.Instruction, err = asm.arith(false, args)
	case "subs":
		st.Instruction, err = asm.arith(true, args)
	case "add":
		st.Instruction, err = asm.add(args)
	case "sub":
		if len(args) < 1 || args[0] != "sp" {
			err = ErrOperandInvalid
			return
		}
		st.Instruction, err = asm.spAdjust(true, args)
	case "lsls", "lsrs", "asrs":
		st.Instruction, err = asm.shift(dpMap[op], args)
	case "bx", "blx":
		if len(args) != 1 {
			err = ErrOpcodeMissing
			return
		}
		var rm Register
		rm, err = register(args[0])
		if op == "bx" {
			st.Instruction = BxT1{Rm: rm}
		} else {
			st.Instruction = BlxRegT1{Rm: rm}
		}
	case "b", "bl":
		if len(args) != 1 {
			err = ErrOpcodeMissing
			return
		}
		var imm int32
		imm, st.LinkLabel, err = asm.target(args[0])
		if op == "b" {
			st.Instruction = BT2{Imm: imm}
		} else {
			st.Instruction = BlT1{Imm: imm}
		}
	case "ldr":
		st.Instruction, err = asm.loadStore(true, &st, args)
	case "str":
		st.Instruction, err = asm.loadStore(false, &st, args)
	case "adr":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		var rd Register
		rd, err = lowRegister(args[0])
		if err != nil {
			return
		}
		inst := AdrT1{Rd: rd}
		if strings.HasPrefix(args[1], "#") {
			inst.Imm, err = asm.valueOf(args[1])
		} else {
			st.LinkLabel = args[1]
		}
		st.Instruction = inst
	case "push", "pop":
		if len(args) != 1 {
			err = ErrOpcodeMissing
			return
		}
		var rl RegisterList
		rl, err = registerList(args[0])
		if op == "push" {
			st.Instruction = Push{Registers: rl}
		} else {
			st.Instruction = Pop{Registers: rl}
		}
	case "stm", "stmia", "stmea":
		st.Instruction, err = asm.multiple(false, args)
	case "ldm", "ldmia", "ldmfd":
		st.Instruction, err = asm.multiple(true, args)
	case "bkpt":
		var imm uint32
		imm, err = asm.immediateOnly(args)
		st.Instruction = Bkpt{Imm: imm}
	case "udf":
		var imm uint32
		imm, err = asm.immediateOnly(args)
		st.Instruction = UdfT1{Imm: imm}
	case "svc":
		var imm uint32
		imm, err = asm.immediateOnly(args)
		st.Instruction = SvcT1{Imm: imm}
	case "mrs":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		sysm, ok := specialMap[args[1]]
		if !ok {
			err = ErrSpecialRegisterInvalid
			return
		}
		var rd Register
		rd, err = register(args[0])
		st.Instruction = MrsT1{Rd: rd, SysM: sysm}
	case "msr":
		if len(args) != 2 {
			err = ErrOpcodeMissing
			return
		}
		sysm, ok := specialMap[args[0]]
		if !ok {
			err = ErrSpecialRegisterInvalid
			return
		}
		var rn Register
		rn, err = register(args[1])
		st.Instruction = MsrT1{Rn: rn, SysM: sysm}
	default:
		dp, ok := dpMap[op]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		st.Instruction, err = asm.dataProc(dp, args)
	}

	return
}
