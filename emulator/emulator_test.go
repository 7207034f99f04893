package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/thumb"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu.Memory)
	assert.Equal(BUDGET_DEFAULT, emu.Budget)

	err := emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramEmpty)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("1000000", defines["BUDGET_DEFAULT"])
	assert.Equal("0x80000000", defines["APSR_N"])
	assert.Equal("0x4", defines["SYS_WRITE0"])
}

func doAssemble(t *testing.T, emu *Emulator, program []string) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")), 0x100, 0)
	assert.NoError(t, err)
}

var helloProgram = []string{
	"_start:",
	"    movs r0, #SYS_WRITE0",
	"    adr r1, message",
	"    bkpt #BKPT_SEMIHOST",
	"    movs r0, #SYS_EXIT",
	"    ldr r1, exitcode",
	"    bkpt #BKPT_SEMIHOST",
	"    .align",
	"message:",
	"    .word 0x000a6b6f ; \"ok\\n\"",
	"exitcode:",
	"    .word ADP_EXIT",
}

func TestSemihosting(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Semihosting = true
	output := &bytes.Buffer{}
	emu.Console.Output = output

	doAssemble(t, emu, helloProgram)
	assert.Equal(uint32(0x100), emu.PC())
	assert.Equal(memory.SRAM_TOP, emu.Cpu.Register[thumb.SP])

	err := emu.Run()
	assert.NoError(err)
	assert.Equal("ok\n", output.String())
	assert.True(emu.Console.Exited)
	assert.Equal(uint32(0), emu.Console.ExitCode)
	assert.Equal(6, emu.Ticks())

	// A reset reloads the program and runs it again.
	output.Reset()
	err = emu.Reset()
	assert.NoError(err)
	assert.False(emu.Console.Exited)
	err = emu.Run()
	assert.NoError(err)
	assert.Equal("ok\n", output.String())
}

func TestBreakpoint(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.Console.Output = output

	// Without semihosting, the first breakpoint halts.
	doAssemble(t, emu, helloProgram)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.LineNo())

	err = emu.Run()
	assert.NoError(err)
	assert.Equal(uint32(0x104), emu.PC())
	assert.Equal(4, emu.LineNo())
	assert.Equal("", output.String())
}

func TestStatement(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"_start:",
		"    movs r0, #1",
		"    bl sub",
		"    bkpt #0",
		"sub:",
		"    bx lr",
		"    .hword 0x1234",
	}

	emu := NewEmulator()
	err := emu.Assemble(strings.NewReader(strings.Join(source, "\n")), 0x100, 0)
	assert.NoError(err)

	table := [](struct {
		addr   uint32
		lineno int
	}){
		{0x0fe, 0},
		{0x0ff, 0},
		{0x100, 2},
		{0x101, 2},
		{0x102, 3},
		{0x104, 3},
		{0x105, 3},
		{0x106, 4},
		{0x108, 6},
		{0x10a, 7},
		{0x10b, 7},
		{0x10c, 0},
		{0xffff_fffe, 0},
	}

	for _, entry := range table {
		st, ok := emu.Statement(entry.addr)
		assert.Equal(entry.lineno != 0, ok, "%#x", entry.addr)
		if ok {
			assert.Equal(entry.lineno, st.LineNo, "%#x", entry.addr)
		} else {
			assert.Nil(st, "%#x", entry.addr)
		}
	}

	assert.Equal(2, emu.LineNo())
	_, err = emu.Tick()
	assert.NoError(err)
	assert.Equal(3, emu.LineNo())

	// A replaced listing is indexed on the next lookup.
	emu.Listing = &thumb.Listing{
		Origin: 0x200,
		Statement: []thumb.Statement{
			{LineNo: 9, Address: 0x200, Instruction: thumb.Bkpt{}},
		},
	}
	_, ok := emu.Statement(0x100)
	assert.False(ok)
	st, ok := emu.Statement(0x201)
	assert.True(ok)
	assert.Equal(9, st.LineNo)

	emu.Listing = nil
	_, ok = emu.Statement(0x200)
	assert.False(ok)
	assert.Equal(0, emu.LineNo())
}

func TestScenario(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Load(&cpu.Program{
		Text: []byte{
			0x0f, 0x20, 0x0a, 0x28, 0x02, 0xd8, 0x01, 0x21, 0x08, 0x18,
			0x70, 0x47, 0x00, 0x21, 0xc9, 0x43, 0x08, 0x18, 0x00, 0xbe,
		},
		LoadAddr:     0x104,
		Entry:        0x104,
		StackPointer: memory.SRAM_TOP,
	})
	assert.NoError(err)
	assert.Nil(emu.Listing)
	assert.Equal(0, emu.LineNo())

	err = emu.Run()
	assert.NoError(err)
	assert.Equal(uint32(14), emu.Cpu.Register[thumb.R0])
}

func TestRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(t, emu, []string{
		"    movs r0, #1",
		"    svc #1",
	})

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrNotImplemented)

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(uint32(0x102), er.Address)
	assert.Equal(2, er.LineNo)
}

func TestBudget(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Budget = 5
	doAssemble(t, emu, []string{
		"loop:",
		"    b loop",
	})

	err := emu.Run()
	assert.ErrorIs(err, ErrBudget)
	assert.Equal(5, emu.Ticks())

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(uint32(0x100), er.Address)
	assert.Equal(2, er.LineNo)
}

func TestSemihostError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Semihosting = true
	doAssemble(t, emu, []string{
		"    movs r0, #0x55",
		"    bkpt #BKPT_SEMIHOST",
	})

	err := emu.Run()
	assert.Error(err)
	assert.Equal(uint32(0x102), emu.PC())

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(2, er.LineNo)
}
