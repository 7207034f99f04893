// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the flat byte addressable store of the
// simulated Cortex-M0.
//
// The store spans the full 32-bit address space. Backing pages are
// allocated on first write, so untouched memory reads as zero and costs
// nothing.
package memory

import (
	"encoding/binary"
)

const (
	PAGE_SHIFT = 12
	PAGE_SIZE  = 1 << PAGE_SHIFT
	PAGE_MASK  = PAGE_SIZE - 1

	ADDRESS_SPACE = uint64(1) << 32 // Size of the full address space.
)

type page [PAGE_SIZE]byte

// Memory is a sparse, flat, little-endian byte store.
type Memory struct {
	pages map[uint32]*page
}

// NewMemory creates an empty memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		pages: make(map[uint32]*page),
	}

	return
}

// Reset discards all memory contents.
func (mem *Memory) Reset() {
	clear(mem.pages)
}

// Pages returns the number of allocated backing pages.
func (mem *Memory) Pages() int {
	return len(mem.pages)
}

func (mem *Memory) check(addr uint32, length int) (err error) {
	if uint64(addr)+uint64(length) > ADDRESS_SPACE {
		err = &ErrAccess{Address: addr, Length: length}
	}
	return
}

// WriteChunk copies data into memory starting at addr. A range running
// past the top of the address space is rejected before anything is written.
func (mem *Memory) WriteChunk(addr uint32, data []byte) (err error) {
	err = mem.check(addr, len(data))
	if err != nil {
		return
	}

	for len(data) > 0 {
		index := addr >> PAGE_SHIFT
		pg, ok := mem.pages[index]
		if !ok {
			pg = &page{}
			mem.pages[index] = pg
		}
		n := copy(pg[addr&PAGE_MASK:], data)
		data = data[n:]
		addr += uint32(n)
	}

	return
}

// ReadChunk fills data from memory starting at addr.
func (mem *Memory) ReadChunk(addr uint32, data []byte) (err error) {
	err = mem.check(addr, len(data))
	if err != nil {
		return
	}

	for len(data) > 0 {
		offset := addr & PAGE_MASK
		n := min(len(data), int(PAGE_SIZE-offset))
		pg, ok := mem.pages[addr>>PAGE_SHIFT]
		if ok {
			copy(data[:n], pg[offset:])
		} else {
			clear(data[:n])
		}
		data = data[n:]
		addr += uint32(n)
	}

	return
}

// Read4Bytes returns the four bytes at [addr, addr+4).
func (mem *Memory) Read4Bytes(addr uint32) (chunk [4]byte, err error) {
	err = mem.ReadChunk(addr, chunk[:])
	return
}

// ReadU32 reads a little-endian 32-bit word. No alignment is enforced.
func (mem *Memory) ReadU32(addr uint32) (value uint32, err error) {
	chunk, err := mem.Read4Bytes(addr)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint32(chunk[:])
	return
}

// WriteU32 writes a little-endian 32-bit word. No alignment is enforced.
func (mem *Memory) WriteU32(addr uint32, value uint32) (err error) {
	var chunk [4]byte
	binary.LittleEndian.PutUint32(chunk[:], value)
	return mem.WriteChunk(addr, chunk[:])
}
