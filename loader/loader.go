// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loader turns ARM ELF images into loadable programs.
package loader

import (
	"debug/elf"
	"encoding/binary"
	"io"
	"log"
	"slices"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/translate"
)

const (
	SECTION_TEXT   = ".text"
	SECTION_VECTOR = ".vector_table"
)

// Verbose enables logging of the loaded segments.
var Verbose bool

// chunk is a piece of the image destined for addr.
type chunk struct {
	addr uint32
	data []byte
}

// check rejects anything but 32-bit little-endian ARM images.
func check(file *elf.File) (err error) {
	if file.Class != elf.ELFCLASS32 || file.Machine != elf.EM_ARM || file.ByteOrder != binary.LittleEndian {
		err = &ErrImage{Err: ErrNotArm}
	}
	return
}

// segments returns the executable loadable segments, zero filled to their
// memory size.
func segments(file *elf.File) (chunks []chunk, err error) {
	for _, prog := range file.Progs {
		if prog.Type != elf.PT_LOAD || prog.Flags&elf.PF_X == 0 || prog.Memsz == 0 {
			continue
		}
		if prog.Paddr+prog.Memsz > memory.ADDRESS_SPACE {
			err = &ErrImage{Err: memory.ErrMemoryBounds}
			return
		}
		if !memory.RegionOf(uint32(prog.Paddr)).Executable() {
			err = &ErrImage{Err: ErrNotExecutable}
			return
		}
		data := make([]byte, prog.Memsz)
		_, err = prog.ReadAt(data[:min(prog.Filesz, prog.Memsz)], 0)
		if err != nil && err != io.EOF {
			err = &ErrImage{Err: err}
			return
		}
		err = nil
		chunks = append(chunks, chunk{addr: uint32(prog.Paddr), data: data})
	}

	return
}

// sections returns the .text and vector table sections, for images
// without program headers.
func sections(file *elf.File) (chunks []chunk, err error) {
	for _, name := range []string{SECTION_VECTOR, SECTION_TEXT} {
		sec := file.Section(name)
		if sec == nil || sec.Type != elf.SHT_PROGBITS {
			continue
		}
		var data []byte
		data, err = sec.Data()
		if err != nil {
			err = &ErrImage{Err: err}
			return
		}
		chunks = append(chunks, chunk{addr: uint32(sec.Addr), data: data})
	}

	return
}

// flatten concatenates chunks into a single text image, zero filling gaps.
func flatten(chunks []chunk) (loadAddr uint32, text []byte) {
	slices.SortFunc(chunks, func(a, b chunk) int {
		return int(int64(a.addr) - int64(b.addr))
	})

	loadAddr = chunks[0].addr
	for _, ch := range chunks {
		end := uint64(ch.addr) - uint64(loadAddr) + uint64(len(ch.data))
		if end > uint64(len(text)) {
			text = append(text, make([]byte, end-uint64(len(text)))...)
		}
		copy(text[ch.addr-loadAddr:], ch.data)
	}

	return
}

// vectorTable returns the initial SP and reset handler from the vector
// table, when the image has one.
func vectorTable(file *elf.File, loadAddr uint32, text []byte) (sp uint32, reset uint32, ok bool) {
	var table []byte
	if sec := file.Section(SECTION_VECTOR); sec != nil {
		data, err := sec.Data()
		if err == nil && sec.Addr >= uint64(loadAddr) && sec.Addr-uint64(loadAddr) < uint64(len(text)) {
			table = text[sec.Addr-uint64(loadAddr):]
		} else if err == nil {
			table = data
		}
	} else if loadAddr == memory.VECTOR_SP {
		table = text
	}

	if len(table) < 8 {
		return
	}

	sp = binary.LittleEndian.Uint32(table[memory.VECTOR_SP:])
	reset = binary.LittleEndian.Uint32(table[memory.VECTOR_RESET:])
	ok = memory.RegionOf(sp) == memory.REGION_SRAM
	return
}

// Load reads an ELF image into a program. The code is the executable
// loadable segments, or the .text section of images without any. The
// initial SP comes from the vector table when present.
func Load(r io.ReaderAt) (prog *cpu.Program, err error) {
	file, err := elf.NewFile(r)
	if err != nil {
		err = &ErrImage{Err: err}
		return
	}
	defer file.Close()

	err = check(file)
	if err != nil {
		return
	}

	chunks, err := segments(file)
	if err != nil {
		return
	}

	if len(chunks) == 0 {
		chunks, err = sections(file)
		if err != nil {
			return
		}
	}

	if len(chunks) == 0 {
		err = &ErrImage{Err: ErrNoCode}
		return
	}

	loadAddr, text := flatten(chunks)

	prog = &cpu.Program{
		Text:         text,
		LoadAddr:     loadAddr,
		Entry:        uint32(file.Entry) &^ 1,
		StackPointer: memory.SRAM_TOP,
	}

	sp, reset, ok := vectorTable(file, loadAddr, text)
	if ok {
		prog.StackPointer = sp
		if prog.Entry == 0 {
			prog.Entry = reset &^ 1
		}
	}

	if prog.Entry == 0 {
		prog.Entry = loadAddr
	}

	if Verbose {
		log.Printf("loader: %d bytes at %v, entry %v, sp %v", len(text),
			translate.Hex(prog.LoadAddr), translate.Hex(prog.Entry),
			translate.Hex(prog.StackPointer))
	}

	return
}
