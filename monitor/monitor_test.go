package monitor

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/beevik/prefixtree/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/emulator"
	"github.com/ezrec/disarm/thumb"
)

var testProgram = []string{
	"_start:",
	"    movs r0, #1",
	"    movs r1, #2",
	"middle:",
	"    adds r2, r0, r1",
	"    bkpt #0",
}

func newTestMonitor(t *testing.T) (mon *Monitor, output *bytes.Buffer) {
	emu := emulator.NewEmulator()
	err := emu.Assemble(strings.NewReader(strings.Join(testProgram, "\n")), 0x100, 0)
	assert.NoError(t, err)

	output = &bytes.Buffer{}
	mon = NewMonitor(emu, output)
	return
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("step")
	assert.NoError(err)
	assert.Equal(uint32(0x102), mon.Emulator.PC())
	assert.Contains(output.String(), "> 0x000102: 2102")
	assert.Contains(output.String(), "; line 3")

	err = mon.Exec("step 2")
	assert.NoError(err)
	assert.Equal(uint32(0x106), mon.Emulator.PC())
	assert.Equal(uint32(3), mon.Emulator.Cpu.Register[thumb.R2])

	output.Reset()
	err = mon.Exec("step")
	assert.NoError(err)
	assert.Contains(output.String(), "halted")
	assert.Equal(uint32(0x106), mon.Emulator.PC())

	err = mon.Exec("step 0")
	assert.ErrorIs(err, ErrValue)

	err = mon.Exec("step 1 2")
	assert.ErrorIs(err, ErrArguments)
}

func TestRunBreak(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("break middle")
	assert.NoError(err)
	assert.Contains(output.String(), "breakpoint set at 0x000104")

	err = mon.Exec("run")
	assert.NoError(err)
	assert.Equal(uint32(0x104), mon.Emulator.PC())
	assert.Contains(output.String(), "breakpoint at 0x000104")

	output.Reset()
	err = mon.Exec("break")
	assert.NoError(err)
	assert.Contains(output.String(), "> 0x000104")

	err = mon.Exec("break 0x104")
	assert.NoError(err)
	assert.Contains(output.String(), "breakpoint removed at 0x000104")
	assert.NotContains(output.String(), "outside the program")

	err = mon.Exec("break 0x2000")
	assert.NoError(err)
	assert.Contains(output.String(), "outside the program")
	err = mon.Exec("clear")
	assert.NoError(err)

	output.Reset()
	err = mon.Exec("run")
	assert.NoError(err)
	assert.Contains(output.String(), "halted")
	assert.Equal(uint32(0x106), mon.Emulator.PC())
	assert.Equal(uint32(3), mon.Emulator.Cpu.Register[thumb.R2])

	err = mon.Exec("reset")
	assert.NoError(err)
	assert.Equal(uint32(0x100), mon.Emulator.PC())

	err = mon.Exec("break _start")
	assert.NoError(err)
	err = mon.Exec("clear")
	assert.NoError(err)
	err = mon.Exec("run")
	assert.NoError(err)
	assert.Equal(uint32(0x106), mon.Emulator.PC())
}

func TestRunErrors(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()
	emu.Budget = 3
	err := emu.Assemble(strings.NewReader("loop:\n    b loop\n    svc #1\n"), 0x100, 0)
	assert.NoError(err)

	mon := NewMonitor(emu, &bytes.Buffer{})
	err = mon.Exec("run")
	assert.ErrorIs(err, emulator.ErrBudget)

	err = mon.Exec("register pc 0x102")
	assert.NoError(err)
	err = mon.Exec("step")
	assert.ErrorIs(err, cpu.ErrNotImplemented)
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("")
	assert.NoError(err)

	err = mon.Exec("reg")
	assert.ErrorIs(err, prefixtree.ErrPrefixAmbiguous)

	err = mon.Exec("bogus")
	assert.ErrorIs(err, prefixtree.ErrPrefixNotFound)

	var ec *ErrCommand
	assert.ErrorAs(err, &ec)
	assert.Equal("bogus", ec.Name)

	err = mon.Exec("he")
	assert.NoError(err)
	assert.Contains(output.String(), "special <name> [value]")

	output.Reset()
	err = mon.Exec("regs")
	assert.NoError(err)
	assert.Contains(output.String(), "   pc: 0000_0100")
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("register r3 0x1234")
	assert.NoError(err)
	assert.Equal(uint32(0x1234), mon.Emulator.Cpu.Register[thumb.R3])
	assert.Contains(output.String(), "r3: 0x001234")

	err = mon.Exec("register r4 r3")
	assert.NoError(err)
	assert.Equal(uint32(0x1234), mon.Emulator.Cpu.Register[thumb.R4])

	err = mon.Exec("register r16")
	assert.ErrorIs(err, thumb.ErrRegisterInvalid)

	err = mon.Exec("register r3 banana")
	assert.ErrorIs(err, ErrValue)

	output.Reset()
	err = mon.Exec("special primask 1")
	assert.NoError(err)
	assert.Contains(output.String(), "primask: 0x000001")

	err = mon.Exec("special control 3")
	assert.NoError(err)
	value, err := mon.Emulator.Cpu.ReadSpecial(thumb.CONTROL)
	assert.NoError(err)
	assert.Equal(uint32(cpu.CONTROL_SPSEL), value)

	err = mon.Exec("special bogus")
	assert.ErrorIs(err, thumb.ErrSpecialRegisterInvalid)

	err = mon.Exec("special")
	assert.ErrorIs(err, ErrArguments)
}

func TestDisasmMemory(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("disasm 0x100 2")
	assert.NoError(err)
	assert.Contains(output.String(), "> 0x000100: 2001")
	assert.Contains(output.String(), "  0x000102: 2102")
	assert.NotContains(output.String(), "0x000104")

	output.Reset()
	err = mon.Exec("disasm")
	assert.NoError(err)
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(10, len(lines))
	assert.Contains(lines[0], "0x000104: 1842")

	output.Reset()
	err = mon.Exec("memory 0x100 16")
	assert.NoError(err)
	assert.Equal("0x000100: 01 20 02 21 42 18 00 be 00 00 00 00 00 00 00 00  |. .!B...........|\n", output.String())

	output.Reset()
	err = mon.Exec("memory 0xfffffff0 64")
	assert.NoError(err)
	assert.Equal(1, strings.Count(output.String(), "\n"))
}

func TestSettings(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	err := mon.Exec("set")
	assert.NoError(err)
	assert.Contains(output.String(), "DisasmLines")

	err = mon.Exec("set disasm 3")
	assert.NoError(err)
	assert.Equal(3, mon.settings.DisasmLines)

	err = mon.Exec("set show true")
	assert.NoError(err)
	assert.True(mon.settings.ShowRegisters)

	err = mon.Exec("set nextm 0x200")
	assert.NoError(err)
	assert.Equal(uint32(0x200), mon.settings.NextMemDumpAddr)

	err = mon.Exec("set next 0x200")
	assert.ErrorIs(err, prefixtree.ErrPrefixAmbiguous)

	err = mon.Exec("set step yes")
	var es *ErrSetting
	assert.ErrorAs(err, &es)
	assert.Equal("StepLines", es.Name)

	err = mon.Exec("set step")
	assert.ErrorIs(err, ErrArguments)

	output.Reset()
	err = mon.Exec("step")
	assert.NoError(err)
	assert.Contains(output.String(), "   r0: 0000_0001")
}

func TestServe(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	input := NewPlainReader(strings.NewReader("step\nbogus\nquit\nstep\n"), output, PROMPT)
	err := mon.Serve(input)
	assert.NoError(err)
	assert.True(mon.Quit())
	assert.Equal(uint32(0x102), mon.Emulator.PC())
	assert.Contains(output.String(), PROMPT)
	assert.Contains(output.String(), "bogus: ")

	// End of input stops the monitor without an error.
	err = mon.Serve(NewPlainReader(strings.NewReader("step"), output, ""))
	assert.NoError(err)
	assert.False(mon.Quit())
	assert.Equal(uint32(0x104), mon.Emulator.PC())
}

type readWriter struct {
	io.Reader
	io.Writer
}

func TestTerminalReader(t *testing.T) {
	assert := assert.New(t)

	mon, output := newTestMonitor(t)

	echo := &bytes.Buffer{}
	rw := readWriter{Reader: strings.NewReader("step\rquit\r"), Writer: echo}
	err := mon.Serve(NewTerminalReader(-1, rw, PROMPT))
	assert.NoError(err)
	assert.True(mon.Quit())
	assert.Equal(uint32(0x102), mon.Emulator.PC())
	assert.Contains(echo.String(), PROMPT)
	assert.Contains(output.String(), "> 0x000102")
}

func TestWriteListing(t *testing.T) {
	assert := assert.New(t)

	prog := &cpu.Program{
		Text:     []byte{0x01, 0x20, 0xef, 0xf3, 0x00, 0x80, 0xff, 0xff, 0x00},
		LoadAddr: 0x200,
	}

	output := &bytes.Buffer{}
	WriteListing(output, prog)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(4, len(lines))
	assert.True(strings.HasPrefix(lines[0], "0x000200: 2001"))
	assert.True(strings.HasPrefix(lines[1], "0x000202: f3ef 8000"))
	assert.Equal("0x000206: ffff       .hword ?", lines[2])
	assert.Equal("0x000208: 00         .hword ?", lines[3])
}
