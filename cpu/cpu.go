package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/thumb"
	"github.com/ezrec/disarm/translate"
)

const (
	LR_RESET = uint32(0xffffffff) // Link register at reset; returning to it faults the fetch.
)

var _cpu_defines = map[string]string{
	"APSR_N":        fmt.Sprintf("%#x", APSR_N),
	"APSR_Z":        fmt.Sprintf("%#x", APSR_Z),
	"APSR_C":        fmt.Sprintf("%#x", APSR_C),
	"APSR_V":        fmt.Sprintf("%#x", APSR_V),
	"APSR_Q":        fmt.Sprintf("%#x", APSR_Q),
	"CONTROL_SPSEL": fmt.Sprintf("%#x", CONTROL_SPSEL),
	"PRIMASK_PM":    fmt.Sprintf("%#x", PRIMASK_PM),
}

// Cpu is the simulation context of a single ARMv6-M core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *memory.Memory // Flat address space.

	Register [16]uint32         // Core registers, PC holding the current instruction address.
	Special  [SLOT_COUNT]uint32 // Special register backing slots.
	Flags    Flags              // APSR condition flags.

	Ticks int // Instructions executed since reset.
}

// Snapshot is a copy of the architectural state, for observers.
type Snapshot struct {
	Register [16]uint32
	Special  [SLOT_COUNT]uint32
	Flags    Flags
	PC       uint32
	Ticks    int
}

// NewCpu creates a new CPU with an empty memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: memory.NewMemory(),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears the registers, flags, special registers and counters.
// Memory is left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Special[:])
	cpu.Flags = Flags{}
	cpu.Ticks = 0
	cpu.Register[thumb.LR] = LR_RESET
}

// LoadProgram resets the CPU, copies the program text into memory, and
// prepares SP and PC for execution from the program entry.
func (cpu *Cpu) LoadProgram(prog *Program) (err error) {
	if len(prog.Text) == 0 {
		err = ErrProgramEmpty
		return
	}

	err = cpu.Memory.WriteChunk(prog.LoadAddr, prog.Text)
	if err != nil {
		return
	}

	cpu.Reset()
	cpu.Register[thumb.SP] = prog.StackPointer & SP_MASK
	cpu.WriteRegister(thumb.PC, prog.Entry)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at %v, entry %v, sp %v",
			len(prog.Text), translate.Hex(prog.LoadAddr),
			translate.Hex(prog.Entry), translate.Hex(prog.StackPointer))
	}

	return
}

// Disassemble decodes the instruction at addr without executing it.
func (cpu *Cpu) Disassemble(addr uint32) (inst thumb.Instruction, err error) {
	var chunk [4]byte
	// Fetch what is available when the word would run off the top of memory.
	length := min(uint64(len(chunk)), memory.ADDRESS_SPACE-uint64(addr))
	err = cpu.Memory.ReadChunk(addr, chunk[:length])
	if err != nil {
		err = &ErrFetch{Address: addr, Err: err}
		return
	}

	inst, _, err = thumb.Decode(chunk[:length])
	if err != nil {
		err = &ErrFetch{Address: addr, Err: err}
		return
	}

	return
}

// Tick executes a single instruction. A breakpoint halts the CPU, leaving
// PC at the breakpoint.
func (cpu *Cpu) Tick() (inst thumb.Instruction, halted bool, err error) {
	pc := cpu.Register[thumb.PC]

	inst, err = cpu.Disassemble(pc)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %v: %v", translate.Hex(pc), inst)
	}

	if _, ok := inst.(thumb.Bkpt); ok {
		halted = true
		return
	}

	redirected, err := cpu.execute(inst)
	if err != nil {
		err = errors.Join(&ErrInstruction{Address: pc, Instruction: inst}, err)
		return
	}

	if !redirected {
		cpu.Register[thumb.PC] = pc + uint32(inst.Size())
	}

	cpu.Ticks++

	return
}

// Run ticks until a breakpoint halts the CPU, an error occurs, or budget
// instructions have executed. A budget of zero or less is unbounded.
func (cpu *Cpu) Run(budget int) (halted bool, err error) {
	for n := 0; budget <= 0 || n < budget; n++ {
		_, halted, err = cpu.Tick()
		if halted || err != nil {
			return
		}
	}

	return
}

// Start sets PC to entry and runs.
func (cpu *Cpu) Start(entry uint32, budget int) (halted bool, err error) {
	cpu.WriteRegister(thumb.PC, entry)
	return cpu.Run(budget)
}

// Snapshot copies the current architectural state.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Register: cpu.Register,
		Special:  cpu.Special,
		Flags:    cpu.Flags,
		PC:       cpu.Register[thumb.PC],
		Ticks:    cpu.Ticks,
	}
	snap.Special[SLOT_APSR] = cpu.slotValue(SLOT_APSR)
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", thumb.Register(n), val>>16, val&0xffff)
	}

	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)

	for _, sr := range []thumb.SpecialRegister{thumb.PRIMASK, thumb.CONTROL} {
		val, _ := cpu.ReadSpecial(sr)
		text += fmt.Sprintf("% 5s: %X\n", sr, val)
	}

	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}
