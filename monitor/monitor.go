// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor is an interactive debugger wrapped around an emulator.
package monitor

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/emulator"
	"github.com/ezrec/disarm/thumb"
	"github.com/ezrec/disarm/translate"
)

const (
	PROMPT = "disarm> "
)

// LineReader supplies command lines.
type LineReader interface {
	ReadLine() (line string, err error)
}

// Monitor state.
type Monitor struct {
	Verbose  bool               // If set, enables verbose logging.
	Emulator *emulator.Emulator // Emulator under control.
	Output   io.Writer          // Command output.
	Break    atomic.Bool        // Set to stop a running program.

	settings    *settings
	breakpoints map[uint32]bool
	quit        bool
}

// NewMonitor creates a monitor for emu, writing to output.
func NewMonitor(emu *emulator.Emulator, output io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Emulator:    emu,
		Output:      output,
		settings:    newSettings(),
		breakpoints: map[uint32]bool{},
	}

	return
}

// Quit returns true once the quit command has run.
func (mon *Monitor) Quit() bool {
	return mon.quit
}

// Exec runs a single command line. Commands may be abbreviated to any
// unique prefix.
func (mon *Monitor) Exec(line string) (err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	cmd, err := commandTree.FindValue(strings.ToLower(words[0]))
	if err != nil {
		err = &ErrCommand{Name: words[0], Err: err}
		return
	}

	if mon.Verbose {
		log.Printf("monitor: %v %v", cmd.name, words[1:])
	}

	err = cmd.handler(mon, words[1:])
	if err != nil {
		err = &ErrCommand{Name: cmd.name, Err: err}
	}

	return
}

// Serve executes lines from input until quit or the end of input. Command
// errors are reported to the output and do not stop the monitor.
func (mon *Monitor) Serve(input LineReader) (err error) {
	mon.quit = false
	for !mon.quit {
		var line string
		line, err = input.ReadLine()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}

		cmdErr := mon.Exec(line)
		if cmdErr != nil {
			fmt.Fprintln(mon.Output, cmdErr)
		}
	}

	return
}

// HandleInterrupts sets Break on SIGINT until stop is called.
func (mon *Monitor) HandleInterrupts() (stop func()) {
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(signals, os.Interrupt)

	go func() {
		for {
			select {
			case <-signals:
				mon.Break.Store(true)
			case <-done:
				return
			}
		}
	}()

	stop = func() {
		signal.Stop(signals)
		close(done)
	}

	return
}

// value parses a number, a core register name or a program label.
func (mon *Monitor) value(word string) (value uint32, err error) {
	reg, err := thumb.RegisterNamed(word)
	if err == nil {
		value = mon.Emulator.Cpu.ReadRegister(reg)
		if reg == thumb.PC {
			value = mon.Emulator.PC()
		}
		return
	}

	if listing := mon.Emulator.Listing; listing != nil {
		addr, ok := listing.Label[word]
		if ok {
			value = addr
			err = nil
			return
		}
	}

	parsed, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = &ErrCommand{Name: word, Err: ErrValue}
		return
	}

	value = uint32(parsed)
	return
}

// count parses an optional repeat count.
func (mon *Monitor) count(args []string, index int, fallback int) (n int, err error) {
	n = fallback
	if len(args) <= index {
		return
	}

	parsed, err := strconv.ParseUint(args[index], 0, 31)
	if err != nil || parsed == 0 {
		err = &ErrCommand{Name: args[index], Err: ErrValue}
		return
	}

	n = int(parsed)
	return
}

// hexWords formats code bytes as little-endian halfwords.
func hexWords(data []byte) string {
	var words []string
	for len(data) >= 2 {
		words = append(words, fmt.Sprintf("%02x%02x", data[1], data[0]))
		data = data[2:]
	}
	if len(data) == 1 {
		words = append(words, fmt.Sprintf("%02x", data[0]))
	}
	return strings.Join(words, " ")
}

// disasmLine writes the instruction at addr, returning the address after it.
func (mon *Monitor) disasmLine(addr uint32) (next uint32) {
	emu := mon.Emulator

	marker := " "
	if mon.breakpoints[addr] {
		marker = "b"
	}
	if addr == emu.PC() {
		marker = ">"
	}

	inst, err := emu.Cpu.Disassemble(addr)
	if err != nil {
		fmt.Fprintf(mon.Output, "%s %v: %v\n", marker, translate.Hex(addr), err)
		next = addr + 2
		return
	}

	data := make([]byte, inst.Size())
	_ = emu.Cpu.Memory.ReadChunk(addr, data)

	source := ""
	if st, ok := emu.Statement(addr); ok {
		source = fmt.Sprintf("  ; line %d", st.LineNo)
	}

	fmt.Fprintf(mon.Output, "%s %v: %-9s  %v%s\n", marker, translate.Hex(addr), hexWords(data), inst, source)

	next = addr + uint32(inst.Size())
	return
}

// showNext writes the instruction about to execute.
func (mon *Monitor) showNext() {
	mon.disasmLine(mon.Emulator.PC())
	if mon.settings.ShowRegisters {
		fmt.Fprint(mon.Output, mon.Emulator.Cpu.String())
	}
}

// WriteListing disassembles a whole program.
func WriteListing(w io.Writer, prog *cpu.Program) {
	for addr, inst := range prog.Instructions() {
		offset := addr - prog.LoadAddr
		if inst == nil {
			end := min(int(offset)+2, len(prog.Text))
			fmt.Fprintf(w, "%v: %-9s  .hword ?\n", translate.Hex(addr), hexWords(prog.Text[offset:end]))
			continue
		}
		data := prog.Text[offset : int(offset)+inst.Size()]
		fmt.Fprintf(w, "%v: %-9s  %v\n", translate.Hex(addr), hexWords(data), inst)
	}
}
