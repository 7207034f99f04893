package thumb

// Cond is a condition code.
type Cond uint8

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_EQ   = Cond(0b0000) // eq
	COND_NE   = Cond(0b0001) // ne
	COND_CS   = Cond(0b0010) // cs
	COND_CC   = Cond(0b0011) // cc
	COND_MI   = Cond(0b0100) // mi
	COND_PL   = Cond(0b0101) // pl
	COND_VS   = Cond(0b0110) // vs
	COND_VC   = Cond(0b0111) // vc
	COND_HI   = Cond(0b1000) // hi
	COND_LS   = Cond(0b1001) // ls
	COND_GE   = Cond(0b1010) // ge
	COND_LT   = Cond(0b1011) // lt
	COND_GT   = Cond(0b1100) // gt
	COND_LE   = Cond(0b1101) // le
	COND_AL   = Cond(0b1110) // al
	COND_NONE = Cond(0b1111) // none
)

// DpOpcode is a 16-bit data processing operation.
type DpOpcode uint8

//go:generate go tool stringer -linecomment -type=DpOpcode
const (
	DP_AND = DpOpcode(0b0000) // ands
	DP_EOR = DpOpcode(0b0001) // eors
	DP_LSL = DpOpcode(0b0010) // lsls
	DP_LSR = DpOpcode(0b0011) // lsrs
	DP_ASR = DpOpcode(0b0100) // asrs
	DP_ADC = DpOpcode(0b0101) // adcs
	DP_SBC = DpOpcode(0b0110) // sbcs
	DP_ROR = DpOpcode(0b0111) // rors
	DP_TST = DpOpcode(0b1000) // tst
	DP_RSB = DpOpcode(0b1001) // rsbs
	DP_CMP = DpOpcode(0b1010) // cmp
	DP_CMN = DpOpcode(0b1011) // cmn
	DP_ORR = DpOpcode(0b1100) // orrs
	DP_MUL = DpOpcode(0b1101) // muls
	DP_BIC = DpOpcode(0b1110) // bics
	DP_MVN = DpOpcode(0b1111) // mvns
)

// Shift is a shift-by-immediate operation.
type Shift uint8

//go:generate go tool stringer -linecomment -type=Shift
const (
	SHIFT_LSL = Shift(0) // lsls
	SHIFT_LSR = Shift(1) // lsrs
	SHIFT_ASR = Shift(2) // asrs
)

// Group names the encoding group of an Unmodeled instruction.
type Group uint8

//go:generate go tool stringer -linecomment -type=Group
const (
	GROUP_LOAD_STORE = Group(0) // load-store
	GROUP_EXTEND     = Group(1) // extend
	GROUP_REVERSE    = Group(2) // reverse
	GROUP_CPS        = Group(3) // cps
	GROUP_HINT       = Group(4) // hint
	GROUP_BARRIER    = Group(5) // barrier
)
