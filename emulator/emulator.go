// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/internal"
	"github.com/ezrec/disarm/semihost"
	"github.com/ezrec/disarm/thumb"
)

const (
	BUDGET_DEFAULT = 1_000_000 // Default instruction budget of Run.
	TICKS_PER_CS   = 1_000     // Instructions per centisecond of the semihosting clock.
)

var _emulator_defines = map[string]string{
	"BUDGET_DEFAULT": fmt.Sprintf("%v", BUDGET_DEFAULT),
}

// Emulator state. CPU + memory + semihosting console.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program  *cpu.Program   // Currently loaded program.
	Listing  *thumb.Listing // Source listing of the program, when assembled.

	Semihosting bool             // If set, BKPT 0xAB requests are serviced.
	Console     semihost.Console // Semihosting console.

	Budget int // Instruction budget of Run; zero or less is unbounded.

	indexed    *thumb.Listing // Listing that statements was built from.
	statements map[uint32]int // Statement index for each byte address.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:    cpu.NewCpu(),
		Budget: BUDGET_DEFAULT,
	}

	emu.Console.Clock = func() uint32 {
		return uint32(emu.Cpu.Ticks / TICKS_PER_CS)
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Console.Defines(),
	)
}

// Assemble assembles source at origin into the emulator's program. The
// emulator defines are available to the source as equates.
func (emu *Emulator) Assemble(source io.Reader, origin uint32, sp uint32) (err error) {
	asm := &thumb.Assembler{
		Verbose: emu.Verbose,
		Origin:  origin,
	}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	listing, err := asm.Parse(source)
	if err != nil {
		return
	}

	prog, err := cpu.ProgramFromListing(listing, sp)
	if err != nil {
		return
	}

	emu.Listing = listing
	emu.indexListing()
	err = emu.Load(prog)

	return
}

// Load installs a program and resets the emulator.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Program = prog
	return emu.Reset()
}

// Reset the memory and CPU, and reload the program.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = cpu.ErrProgramEmpty
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Memory.Reset()
	emu.Console.Reset()

	err = emu.Cpu.LoadProgram(emu.Program)
	if err != nil {
		return
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// PC returns the address of the next instruction.
func (emu *Emulator) PC() uint32 {
	return emu.Cpu.Register[thumb.PC]
}

// Statement returns the listing statement at addr, if any.
func (emu *Emulator) Statement(addr uint32) (st *thumb.Statement, ok bool) {
	if emu.Listing == nil {
		return
	}

	if emu.indexed != emu.Listing {
		emu.indexListing()
	}

	n, ok := emu.statements[addr]
	if ok {
		st = &emu.Listing.Statement[n]
	}
	return
}

// indexListing maps every byte of the listing to its statement. The first
// statement wins where two overlap.
func (emu *Emulator) indexListing() {
	emu.indexed = emu.Listing
	emu.statements = make(map[uint32]int)
	if emu.Listing == nil {
		return
	}

	for n := range emu.Listing.Statement {
		st := &emu.Listing.Statement[n]
		for offset := range uint32(st.Size()) {
			addr := st.Address + offset
			if _, ok := emu.statements[addr]; !ok {
				emu.statements[addr] = n
			}
		}
	}
}

// LineNo returns the source line number for the next instruction, or 0
// when the program was not assembled.
func (emu *Emulator) LineNo() int {
	st, ok := emu.Statement(emu.PC())
	if !ok {
		return 0
	}
	return st.LineNo
}

// service handles a semihosting breakpoint and steps past it.
func (emu *Emulator) service(inst thumb.Instruction) (done bool, err error) {
	op := semihost.Operation(emu.Cpu.Register[thumb.R0])
	param := emu.Cpu.Register[thumb.R1]

	emu.Console.Verbose = emu.Verbose
	result, err := emu.Console.Call(emu.Cpu.Memory, op, param)
	if err != nil {
		return
	}

	emu.Cpu.Register[thumb.R0] = result
	emu.Cpu.Register[thumb.PC] += uint32(inst.Size())
	emu.Cpu.Ticks++

	done = emu.Console.Exited
	return
}

// Tick performs a single tick of the emulator. Done is set when the
// program halts on a breakpoint or exits through semihosting.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.PC()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, LineNo: lineno, Err: err}
		}
	}()

	inst, halted, err := emu.Cpu.Tick()
	if err != nil || !halted {
		return
	}

	bkpt := inst.(thumb.Bkpt)
	if emu.Semihosting && bkpt.Imm == semihost.BKPT_SEMIHOST {
		done, err = emu.service(inst)
		return
	}

	if emu.Verbose {
		log.Printf("emulator: halted at %v", inst)
	}

	done = true
	return
}

// Run ticks until the program is done, fails, or exhausts the budget.
func (emu *Emulator) Run() (err error) {
	for n := 0; emu.Budget <= 0 || n < emu.Budget; n++ {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	err = &ErrRuntime{Address: emu.PC(), LineNo: emu.LineNo(), Err: ErrBudget}
	return
}
