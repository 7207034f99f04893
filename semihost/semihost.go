// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package semihost services ARM semihosting console requests.
//
// A program requests a service with BKPT 0xAB, the operation number in r0
// and a parameter (a value, or the address of a parameter block) in r1.
// The result is returned in r0.
package semihost

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/disarm/memory"
)

const (
	BKPT_SEMIHOST = uint32(0xab) // BKPT immediate requesting a semihosting call.

	STRING_LIMIT = 4096 // Longest string accepted from a program, and the SYS_READ/SYS_WRITE transfer unit.
)

// Operation is a semihosting operation number.
type Operation uint32

//go:generate go tool stringer -linecomment -type=Operation
const (
	SYS_WRITEC   = Operation(0x03) // SYS_WRITEC
	SYS_WRITE0   = Operation(0x04) // SYS_WRITE0
	SYS_WRITE    = Operation(0x05) // SYS_WRITE
	SYS_READ     = Operation(0x06) // SYS_READ
	SYS_READC    = Operation(0x07) // SYS_READC
	SYS_ISTTY    = Operation(0x09) // SYS_ISTTY
	SYS_CLOCK    = Operation(0x10) // SYS_CLOCK
	SYS_ERRNO    = Operation(0x13) // SYS_ERRNO
	SYS_EXIT     = Operation(0x18) // SYS_EXIT
	SYS_EXIT_EXT = Operation(0x20) // SYS_EXIT_EXTENDED
)

const (
	ADP_STOPPED_APPLICATION_EXIT = uint32(0x20026) // Normal exit reason.

	HANDLE_STDIN  = uint32(0) // Console input handle.
	HANDLE_STDOUT = uint32(1) // Console output handle.
	HANDLE_STDERR = uint32(2) // Console error handle, merged with output.
)

var _semihost_defines = map[string]string{
	"BKPT_SEMIHOST": fmt.Sprintf("%#x", BKPT_SEMIHOST),
	"SYS_WRITEC":    fmt.Sprintf("%#x", uint32(SYS_WRITEC)),
	"SYS_WRITE0":    fmt.Sprintf("%#x", uint32(SYS_WRITE0)),
	"SYS_WRITE":     fmt.Sprintf("%#x", uint32(SYS_WRITE)),
	"SYS_READ":      fmt.Sprintf("%#x", uint32(SYS_READ)),
	"SYS_READC":     fmt.Sprintf("%#x", uint32(SYS_READC)),
	"SYS_ISTTY":     fmt.Sprintf("%#x", uint32(SYS_ISTTY)),
	"SYS_CLOCK":     fmt.Sprintf("%#x", uint32(SYS_CLOCK)),
	"SYS_ERRNO":     fmt.Sprintf("%#x", uint32(SYS_ERRNO)),
	"SYS_EXIT":      fmt.Sprintf("%#x", uint32(SYS_EXIT)),
	"ADP_EXIT":      fmt.Sprintf("%#x", ADP_STOPPED_APPLICATION_EXIT),
}

// Memory is the view of target memory a console needs.
type Memory interface {
	ReadChunk(addr uint32, data []byte) error
	WriteChunk(addr uint32, data []byte) error
	ReadU32(addr uint32) (uint32, error)
}

// Console services semihosting requests against a byte stream pair.
type Console struct {
	Verbose bool      // If set, logs every request.
	Input   io.Reader // Console input, or nil for end of file.
	Output  io.Writer // Console output, or nil to discard.

	Clock func() uint32 // Centiseconds since start, for SYS_CLOCK.

	Exited   bool   // Set once the program requests SYS_EXIT.
	ExitCode uint32 // Exit subcode from SYS_EXIT.
}

// Defines returns the semihosting equates.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(_semihost_defines)
}

// Reset clears the exit state.
func (con *Console) Reset() {
	con.Exited = false
	con.ExitCode = 0
}

func (con *Console) write(data []byte) (n int) {
	if con.Output == nil {
		return len(data)
	}

	n, _ = con.Output.Write(data)
	return
}

func (con *Console) read(data []byte) (n int) {
	if con.Input == nil {
		return
	}

	for n < len(data) {
		count, err := con.Input.Read(data[n:])
		n += count
		if err != nil || count == 0 {
			return
		}
	}

	return
}

// readString reads a NUL terminated string from mem.
func readString(mem Memory, addr uint32) (text []byte, err error) {
	var one [1]byte
	for range STRING_LIMIT {
		err = mem.ReadChunk(addr, one[:])
		if err != nil {
			return
		}
		if one[0] == 0 {
			return
		}
		text = append(text, one[0])
		addr++
	}

	err = ErrStringLimit
	return
}

// span checks that a program buffer lies inside the address space.
func span(addr uint32, length uint32) (err error) {
	if uint64(addr)+uint64(length) > memory.ADDRESS_SPACE {
		err = &memory.ErrAccess{Address: addr, Length: int(length)}
	}
	return
}

// writeFrom copies length bytes at addr to the output, a unit at a time.
// It returns the number of bytes not written.
func (con *Console) writeFrom(mem Memory, addr uint32, length uint32) (remain uint32, err error) {
	err = span(addr, length)
	if err != nil {
		return
	}

	var unit [STRING_LIMIT]byte
	remain = length
	for remain > 0 {
		size := min(remain, STRING_LIMIT)
		err = mem.ReadChunk(addr, unit[:size])
		if err != nil {
			return
		}
		n := uint32(con.write(unit[:size]))
		remain -= n
		addr += n
		if n < size {
			break
		}
	}

	return
}

// readInto fills up to length bytes at addr from the input, a unit at a
// time. It returns the number of bytes not read.
func (con *Console) readInto(mem Memory, addr uint32, length uint32) (remain uint32, err error) {
	err = span(addr, length)
	if err != nil {
		return
	}

	var unit [STRING_LIMIT]byte
	remain = length
	for remain > 0 {
		size := min(remain, STRING_LIMIT)
		n := uint32(con.read(unit[:size]))
		err = mem.WriteChunk(addr, unit[:n])
		if err != nil {
			return
		}
		remain -= n
		addr += n
		if n < size {
			break
		}
	}

	return
}

// readBlock reads count words of a parameter block.
func readBlock(mem Memory, addr uint32, count int) (block []uint32, err error) {
	block = make([]uint32, count)
	for n := range block {
		block[n], err = mem.ReadU32(addr + uint32(4*n))
		if err != nil {
			return
		}
	}
	return
}

// Call services one request. The result is the value for r0.
func (con *Console) Call(mem Memory, op Operation, param uint32) (result uint32, err error) {
	if con.Verbose {
		log.Printf("semihost: %v %#x", op, param)
	}

	defer func() {
		if err != nil {
			err = &ErrCall{Operation: op, Err: err}
		}
	}()

	switch op {
	case SYS_WRITEC:
		var one [1]byte
		err = mem.ReadChunk(param, one[:])
		if err != nil {
			return
		}
		con.write(one[:])
	case SYS_WRITE0:
		var text []byte
		text, err = readString(mem, param)
		if err != nil {
			return
		}
		con.write(text)
	case SYS_WRITE:
		var block []uint32
		block, err = readBlock(mem, param, 3)
		if err != nil {
			return
		}
		handle, addr, length := block[0], block[1], block[2]
		if handle != HANDLE_STDOUT && handle != HANDLE_STDERR {
			err = ErrHandle
			return
		}
		result, err = con.writeFrom(mem, addr, length)
	case SYS_READ:
		var block []uint32
		block, err = readBlock(mem, param, 3)
		if err != nil {
			return
		}
		handle, addr, length := block[0], block[1], block[2]
		if handle != HANDLE_STDIN {
			err = ErrHandle
			return
		}
		result, err = con.readInto(mem, addr, length)
	case SYS_READC:
		var one [1]byte
		if con.read(one[:]) == 0 {
			result = ^uint32(0)
			return
		}
		result = uint32(one[0])
	case SYS_ISTTY:
		var block []uint32
		block, err = readBlock(mem, param, 1)
		if err != nil {
			return
		}
		if block[0] <= HANDLE_STDERR {
			result = 1
		}
	case SYS_CLOCK:
		if con.Clock != nil {
			result = con.Clock()
		}
	case SYS_ERRNO:
		result = 0
	case SYS_EXIT:
		// Reason in r1 directly, as on 32-bit targets.
		con.Exited = true
		if param != ADP_STOPPED_APPLICATION_EXIT {
			con.ExitCode = param
		}
	case SYS_EXIT_EXT:
		var block []uint32
		block, err = readBlock(mem, param, 2)
		if err != nil {
			return
		}
		con.Exited = true
		con.ExitCode = block[1]
	default:
		err = ErrOperation
	}

	return
}
