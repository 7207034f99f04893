package monitor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/ezrec/disarm/emulator"
	"github.com/ezrec/disarm/thumb"
	"github.com/ezrec/disarm/translate"
)

// command is a monitor command.
type command struct {
	name    string
	usage   string
	brief   string
	handler func(mon *Monitor, args []string) error
}

var (
	commandTree = prefixtree.New[*command]()
	commands    []*command
)

func init() {
	commands = []*command{
		{"break", "break [addr]", "Toggle a breakpoint, or list them", (*Monitor).cmdBreak},
		{"clear", "clear", "Remove all breakpoints", (*Monitor).cmdClear},
		{"disasm", "disasm [addr] [n]", "Disassemble n instructions", (*Monitor).cmdDisasm},
		{"help", "help", "List the commands", (*Monitor).cmdHelp},
		{"memory", "memory [addr] [n]", "Dump n bytes of memory", (*Monitor).cmdMemory},
		{"quit", "quit", "Leave the monitor", (*Monitor).cmdQuit},
		{"regs", "regs", "Show the CPU state", (*Monitor).cmdRegisters},
		{"register", "register <name> [value]", "Show or change a core register", (*Monitor).cmdRegister},
		{"reset", "reset", "Reload the program and reset the CPU", (*Monitor).cmdReset},
		{"run", "run", "Run until halted, a breakpoint or interrupted", (*Monitor).cmdRun},
		{"set", "set [name value]", "Show or change a monitor setting", (*Monitor).cmdSet},
		{"special", "special <name> [value]", "Show or change a special register", (*Monitor).cmdSpecial},
		{"step", "step [n]", "Execute n instructions", (*Monitor).cmdStep},
	}

	for _, cmd := range commands {
		commandTree.Add(cmd.name, cmd)
	}
}

func (mon *Monitor) cmdHelp(args []string) (err error) {
	for _, cmd := range commands {
		fmt.Fprintf(mon.Output, "    %-26s %s\n", cmd.usage, f(cmd.brief))
	}
	return
}

func (mon *Monitor) cmdQuit(args []string) (err error) {
	mon.quit = true
	return
}

func (mon *Monitor) cmdRegisters(args []string) (err error) {
	fmt.Fprint(mon.Output, mon.Emulator.Cpu.String())
	return
}

func (mon *Monitor) cmdReset(args []string) (err error) {
	err = mon.Emulator.Reset()
	if err != nil {
		return
	}

	mon.showNext()
	return
}

func (mon *Monitor) cmdBreak(args []string) (err error) {
	switch len(args) {
	case 0:
		for _, addr := range slices.Sorted(maps.Keys(mon.breakpoints)) {
			mon.disasmLine(addr)
		}
	case 1:
		var addr uint32
		addr, err = mon.value(args[0])
		if err != nil {
			return
		}
		addr &^= 1
		if mon.breakpoints[addr] {
			delete(mon.breakpoints, addr)
			fmt.Fprintf(mon.Output, "%s %v\n", f("breakpoint removed at"), translate.Hex(addr))
		} else {
			mon.breakpoints[addr] = true
			fmt.Fprintf(mon.Output, "%s %v\n", f("breakpoint set at"), translate.Hex(addr))
			if prog := mon.Emulator.Program; prog != nil && !prog.Contains(addr) {
				fmt.Fprintln(mon.Output, f("warning: address is outside the program"))
			}
		}
	default:
		err = ErrArguments
	}

	return
}

func (mon *Monitor) cmdClear(args []string) (err error) {
	clear(mon.breakpoints)
	return
}

func (mon *Monitor) cmdDisasm(args []string) (err error) {
	if len(args) > 2 {
		err = ErrArguments
		return
	}

	addr := mon.settings.NextDisasmAddr
	if addr == 0 {
		addr = mon.Emulator.PC()
	}
	if len(args) > 0 {
		addr, err = mon.value(args[0])
		if err != nil {
			return
		}
	}

	n, err := mon.count(args, 1, mon.settings.DisasmLines)
	if err != nil {
		return
	}

	for range n {
		addr = mon.disasmLine(addr &^ 1)
	}

	mon.settings.NextDisasmAddr = addr
	return
}

func (mon *Monitor) cmdMemory(args []string) (err error) {
	if len(args) > 2 {
		err = ErrArguments
		return
	}

	addr := mon.settings.NextMemDumpAddr
	if len(args) > 0 {
		addr, err = mon.value(args[0])
		if err != nil {
			return
		}
	}

	n, err := mon.count(args, 1, mon.settings.MemDumpBytes)
	if err != nil {
		return
	}

	// Dump whole words, 16 bytes to a line.
	addr &^= 3
	lines := (n + 15) / 16
	for range lines {
		var data []byte
		for range 4 {
			var chunk [4]byte
			chunk, err = mon.Emulator.Cpu.Memory.Read4Bytes(addr + uint32(len(data)))
			if err != nil {
				return
			}
			data = append(data, chunk[:]...)
		}

		var hex, text strings.Builder
		for _, b := range data {
			fmt.Fprintf(&hex, " %02x", b)
			if b >= 0x20 && b < 0x7f {
				text.WriteByte(b)
			} else {
				text.WriteByte('.')
			}
		}
		fmt.Fprintf(mon.Output, "%v:%s  |%s|\n", translate.Hex(addr), hex.String(), text.String())

		addr += uint32(len(data))
		if addr == 0 {
			break
		}
	}

	mon.settings.NextMemDumpAddr = addr
	return
}

func (mon *Monitor) cmdRegister(args []string) (err error) {
	if len(args) < 1 || len(args) > 2 {
		err = ErrArguments
		return
	}

	reg, err := thumb.RegisterNamed(args[0])
	if err != nil {
		return
	}

	if len(args) == 2 {
		var value uint32
		value, err = mon.value(args[1])
		if err != nil {
			return
		}
		mon.Emulator.Cpu.WriteRegister(reg, value)
	}

	value := mon.Emulator.Cpu.Register[reg]
	fmt.Fprintf(mon.Output, "%5s: %v\n", reg, translate.Hex(value))
	return
}

func (mon *Monitor) cmdSpecial(args []string) (err error) {
	if len(args) < 1 || len(args) > 2 {
		err = ErrArguments
		return
	}

	sr, err := thumb.SpecialRegisterNamed(args[0])
	if err != nil {
		return
	}

	if len(args) == 2 {
		var value uint32
		value, err = mon.value(args[1])
		if err != nil {
			return
		}
		err = mon.Emulator.Cpu.WriteSpecial(sr, value)
		if err != nil {
			return
		}
	}

	value, err := mon.Emulator.Cpu.ReadSpecial(sr)
	if err != nil {
		return
	}

	fmt.Fprintf(mon.Output, "%7s: %v\n", sr, translate.Hex(value))
	return
}

func (mon *Monitor) cmdSet(args []string) (err error) {
	switch len(args) {
	case 0:
		mon.settings.Display(mon.Output)
	case 2:
		err = mon.settings.Set(args[0], args[1])
	default:
		err = ErrArguments
	}

	return
}

func (mon *Monitor) cmdStep(args []string) (err error) {
	if len(args) > 1 {
		err = ErrArguments
		return
	}

	n, err := mon.count(args, 0, mon.settings.StepLines)
	if err != nil {
		return
	}

	for range n {
		var done bool
		done, err = mon.Emulator.Tick()
		if err != nil {
			return
		}
		if done {
			fmt.Fprintln(mon.Output, f("halted"))
			break
		}
	}

	mon.settings.NextDisasmAddr = 0
	mon.showNext()
	return
}

func (mon *Monitor) cmdRun(args []string) (err error) {
	emu := mon.Emulator

	mon.Break.Store(false)
	defer func() {
		mon.settings.NextDisasmAddr = 0
		if err == nil {
			mon.showNext()
		}
	}()

	for n := 0; emu.Budget <= 0 || n < emu.Budget; n++ {
		if mon.Break.Swap(false) {
			err = ErrInterrupted
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}

		if done {
			fmt.Fprintln(mon.Output, f("halted"))
			return
		}

		if mon.breakpoints[emu.PC()] {
			fmt.Fprintf(mon.Output, "%s %v\n", f("breakpoint at"), translate.Hex(emu.PC()))
			return
		}
	}

	err = emulator.ErrBudget
	return
}
