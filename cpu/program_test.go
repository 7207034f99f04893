package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/thumb"
)

func TestProgramInstructions(t *testing.T) {
	assert := assert.New(t)

	prog := hexProgram(0x100,
		0x2009,         // movs r0, #9
		0xf000, 0xf802, // bl #4
		0x4701, // illegal
		0xbe00, // bkpt #0
	)
	prog.Text = append(prog.Text, 0xf0) // Trailing odd byte.

	type line struct {
		addr uint32
		text string
	}
	var lines []line
	for addr, inst := range prog.Instructions() {
		text := "?"
		if inst != nil {
			text = inst.String()
		}
		lines = append(lines, line{addr, text})
	}

	assert.Equal([]line{
		{0x100, "movs r0, #9"},
		{0x102, "bl #4"},
		{0x106, "?"},
		{0x108, "bkpt #0"},
		{0x10a, "?"},
	}, lines)

	assert.True(prog.Contains(0x100))
	assert.True(prog.Contains(0x10a))
	assert.False(prog.Contains(0x10b))
	assert.False(prog.Contains(0xff))
}

func TestProgramFromListing(t *testing.T) {
	assert := assert.New(t)

	source := `
    movs r0, #1
_start:
    movs r0, #9
    bkpt #0
`
	asm := &thumb.Assembler{Origin: 0x200}
	listing, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	prog, err := ProgramFromListing(listing, 0)
	assert.NoError(err)
	assert.Equal(uint32(0x200), prog.LoadAddr)
	assert.Equal(uint32(0x202), prog.Entry)
	assert.Equal(memory.SRAM_TOP, prog.StackPointer)
	assert.Equal([]byte{0x01, 0x20, 0x09, 0x20, 0x00, 0xbe}, prog.Text)

	cpu := NewCpu()
	err = cpu.LoadProgram(prog)
	assert.NoError(err)

	halted, err := cpu.Run(0)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal(uint32(9), cpu.Register[thumb.R0])
	assert.Equal(1, cpu.Ticks)
}
