package semihost

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/disarm/memory"
)

func TestWrite(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	out := &bytes.Buffer{}
	con := &Console{Output: out}

	assert.NoError(mem.WriteChunk(0x2000_0000, []byte("hello\x00")))
	assert.NoError(mem.WriteChunk(0x2000_0010, []byte("!")))

	result, err := con.Call(mem, SYS_WRITE0, 0x2000_0000)
	assert.NoError(err)
	assert.Equal(uint32(0), result)

	_, err = con.Call(mem, SYS_WRITEC, 0x2000_0010)
	assert.NoError(err)

	// Parameter block: handle, buffer, length.
	assert.NoError(mem.WriteU32(0x2000_0100, HANDLE_STDOUT))
	assert.NoError(mem.WriteU32(0x2000_0104, 0x2000_0000))
	assert.NoError(mem.WriteU32(0x2000_0108, 4))
	result, err = con.Call(mem, SYS_WRITE, 0x2000_0100)
	assert.NoError(err)
	assert.Equal(uint32(0), result)

	assert.Equal("hello!hell", out.String())

	assert.NoError(mem.WriteU32(0x2000_0100, HANDLE_STDIN))
	_, err = con.Call(mem, SYS_WRITE, 0x2000_0100)
	assert.ErrorIs(err, ErrHandle)
}

func TestWriteUnterminated(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	assert.NoError(mem.WriteChunk(0, bytes.Repeat([]byte{'a'}, STRING_LIMIT+1)))

	con := &Console{}
	_, err := con.Call(mem, SYS_WRITE0, 0)
	assert.ErrorIs(err, ErrStringLimit)

	var ec *ErrCall
	assert.ErrorAs(err, &ec)
	assert.Equal(SYS_WRITE0, ec.Operation)
}

func TestRead(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	con := &Console{Input: strings.NewReader("xyz")}

	result, err := con.Call(mem, SYS_READC, 0)
	assert.NoError(err)
	assert.Equal(uint32('x'), result)

	assert.NoError(mem.WriteU32(0x100, HANDLE_STDIN))
	assert.NoError(mem.WriteU32(0x104, 0x200))
	assert.NoError(mem.WriteU32(0x108, 4))
	result, err = con.Call(mem, SYS_READ, 0x100)
	assert.NoError(err)
	// Two of four bytes were not read.
	assert.Equal(uint32(2), result)

	data := make([]byte, 2)
	assert.NoError(mem.ReadChunk(0x200, data))
	assert.Equal("yz", string(data))

	result, err = con.Call(mem, SYS_READC, 0)
	assert.NoError(err)
	assert.Equal(^uint32(0), result)
}

// shortWriter accepts limit bytes, then fails.
type shortWriter struct {
	limit int
	bytes.Buffer
}

func (sw *shortWriter) Write(data []byte) (n int, err error) {
	n = min(len(data), sw.limit-sw.Len())
	sw.Buffer.Write(data[:n])
	if n < len(data) {
		err = io.ErrShortWrite
	}
	return
}

func TestTransferLimits(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	assert.NoError(mem.WriteChunk(0x2000_0000, []byte("0123456789abcdef")))

	// A buffer running off the top of memory is rejected before any transfer.
	out := &shortWriter{limit: 1 << 20}
	con := &Console{Output: out, Input: strings.NewReader("xyz")}
	assert.NoError(mem.WriteU32(0x100, HANDLE_STDOUT))
	assert.NoError(mem.WriteU32(0x104, 0x2000_0000))
	assert.NoError(mem.WriteU32(0x108, 0xffff_ffff))
	_, err := con.Call(mem, SYS_WRITE, 0x100)
	assert.ErrorIs(err, memory.ErrMemoryBounds)
	assert.Equal(0, out.Len())

	assert.NoError(mem.WriteU32(0x100, HANDLE_STDIN))
	_, err = con.Call(mem, SYS_READ, 0x100)
	assert.ErrorIs(err, memory.ErrMemoryBounds)

	// A huge length stops at the first short write.
	out = &shortWriter{limit: STRING_LIMIT + 10}
	con.Output = out
	assert.NoError(mem.WriteU32(0x100, HANDLE_STDOUT))
	assert.NoError(mem.WriteU32(0x108, 0x1000_0000))
	result, err := con.Call(mem, SYS_WRITE, 0x100)
	assert.NoError(err)
	assert.Equal(uint32(0x1000_0000-STRING_LIMIT-10), result)
	assert.Equal(STRING_LIMIT+10, out.Len())
	assert.Equal("0123456789abcdef", out.String()[:16])

	// A huge read stops at the end of input.
	assert.NoError(mem.WriteU32(0x100, HANDLE_STDIN))
	assert.NoError(mem.WriteU32(0x104, 0x2000_1000))
	result, err = con.Call(mem, SYS_READ, 0x100)
	assert.NoError(err)
	assert.Equal(uint32(0x1000_0000-3), result)

	data := make([]byte, 4)
	assert.NoError(mem.ReadChunk(0x2000_1000, data))
	assert.Equal("xyz\x00", string(data))
}

func TestExit(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	con := &Console{}

	_, err := con.Call(mem, SYS_EXIT, ADP_STOPPED_APPLICATION_EXIT)
	assert.NoError(err)
	assert.True(con.Exited)
	assert.Equal(uint32(0), con.ExitCode)

	con.Reset()
	assert.False(con.Exited)

	assert.NoError(mem.WriteU32(0x10, ADP_STOPPED_APPLICATION_EXIT))
	assert.NoError(mem.WriteU32(0x14, 3))
	_, err = con.Call(mem, SYS_EXIT_EXT, 0x10)
	assert.NoError(err)
	assert.True(con.Exited)
	assert.Equal(uint32(3), con.ExitCode)
}

func TestMisc(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	con := &Console{Clock: func() uint32 { return 42 }}

	result, err := con.Call(mem, SYS_CLOCK, 0)
	assert.NoError(err)
	assert.Equal(uint32(42), result)

	assert.NoError(mem.WriteU32(0x10, HANDLE_STDOUT))
	result, err = con.Call(mem, SYS_ISTTY, 0x10)
	assert.NoError(err)
	assert.Equal(uint32(1), result)

	_, err = con.Call(mem, Operation(0x01), 0)
	assert.ErrorIs(err, ErrOperation)
	assert.Equal("Operation(1)", Operation(0x01).String())
	assert.Equal("SYS_EXIT_EXTENDED", SYS_EXIT_EXT.String())

	defines := map[string]string{}
	for key, value := range con.Defines() {
		defines[key] = value
	}
	assert.Equal("0xab", defines["BKPT_SEMIHOST"])
	assert.Equal("0x4", defines["SYS_WRITE0"])
}
