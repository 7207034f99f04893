package cpu

import (
	"iter"

	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/thumb"
)

const (
	ENTRY_LABEL = "_start" // Label naming the entry of an assembled program.
)

// Program is a code image ready to be loaded.
type Program struct {
	Text         []byte // Code bytes, loaded at LoadAddr.
	LoadAddr     uint32 // Address of Text[0].
	Entry        uint32 // Address of the first instruction to execute.
	StackPointer uint32 // Initial SP.
}

// ProgramFromListing builds a program from an assembled listing. The entry
// is the _start label when defined, else the listing origin.
func ProgramFromListing(listing *thumb.Listing, sp uint32) (prog *Program, err error) {
	text, err := listing.Binary()
	if err != nil {
		return
	}

	entry, ok := listing.Label[ENTRY_LABEL]
	if !ok {
		entry = listing.Origin
	}

	if sp == 0 {
		sp = memory.SRAM_TOP
	}

	prog = &Program{
		Text:         text,
		LoadAddr:     listing.Origin,
		Entry:        entry,
		StackPointer: sp,
	}

	return
}

// Instructions decodes the program text in order. A halfword that does not
// decode yields a nil instruction and iteration resumes after it.
func (prog *Program) Instructions() iter.Seq2[uint32, thumb.Instruction] {
	return func(yield func(addr uint32, inst thumb.Instruction) bool) {
		addr := prog.LoadAddr
		data := prog.Text
		for len(data) > 0 {
			inst, rest, err := thumb.Decode(data)
			if err != nil {
				inst = nil
				rest = data[min(2, len(data)):]
			}
			if !yield(addr, inst) {
				return
			}
			addr += uint32(len(data) - len(rest))
			data = rest
		}
	}
}

// Contains reports whether addr lies within the program text.
func (prog *Program) Contains(addr uint32) bool {
	return addr >= prog.LoadAddr && uint64(addr) < uint64(prog.LoadAddr)+uint64(len(prog.Text))
}
