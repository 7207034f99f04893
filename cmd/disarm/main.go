// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/ezrec/disarm/cpu"
	"github.com/ezrec/disarm/emulator"
	"github.com/ezrec/disarm/loader"
	"github.com/ezrec/disarm/memory"
	"github.com/ezrec/disarm/monitor"
)

// address parses a command line address.
func address(name string, text string) uint32 {
	value, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		log.Fatalf("-%v: %v", name, err)
	}
	return uint32(value)
}

func main() {
	var elfFile string
	var binFile string
	var compile string
	var loadAddr string
	var entry string
	var sp string
	var budget int
	var verbose bool
	var semihosting bool
	var interactive bool
	var disassemble bool

	flag.StringVar(&elfFile, "e", "", "ARM ELF image to load")
	flag.StringVar(&binFile, "b", "", "Raw binary image to load")
	flag.StringVar(&compile, "c", "", "Thumb assembly source to assemble")
	flag.StringVar(&loadAddr, "l", "0", "Load address of a raw binary or assembly source")
	flag.StringVar(&entry, "entry", "", "Entry address, overriding the image")
	flag.StringVar(&sp, "sp", "", "Initial stack pointer, overriding the image")
	flag.IntVar(&budget, "n", emulator.BUDGET_DEFAULT, "Instruction budget, zero for unlimited")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&semihosting, "s", false, "Service semihosting requests")
	flag.BoolVar(&interactive, "i", false, "Run under the interactive monitor")
	flag.BoolVar(&disassemble, "d", false, "Disassemble the program, do not execute")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	loader.Verbose = verbose

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Semihosting = semihosting
	emu.Budget = budget
	emu.Console.Input = os.Stdin
	emu.Console.Output = os.Stdout

	origin := address("l", loadAddr)

	var prog *cpu.Program
	switch {
	case len(elfFile) != 0:
		inf, err := os.Open(elfFile)
		if err != nil {
			log.Fatalf("%v: %v", elfFile, err)
		}
		defer inf.Close()

		prog, err = loader.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", elfFile, err)
		}
	case len(binFile) != 0:
		text, err := os.ReadFile(binFile)
		if err != nil {
			log.Fatalf("%v: %v", binFile, err)
		}
		prog = &cpu.Program{
			Text:         text,
			LoadAddr:     origin,
			Entry:        origin,
			StackPointer: memory.SRAM_TOP,
		}
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf, origin, 0)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		prog = emu.Program
	default:
		log.Fatalf("%v: one of -e, -b or -c is required", os.Args[0])
	}

	if len(entry) != 0 {
		prog.Entry = address("entry", entry) &^ 1
	}
	if len(sp) != 0 {
		prog.StackPointer = address("sp", sp)
	}

	if disassemble {
		monitor.WriteListing(os.Stdout, prog)
		return
	}

	err := emu.Load(prog)
	if err != nil {
		log.Fatal(err)
	}

	if interactive {
		mon := monitor.NewMonitor(emu, os.Stdout)
		mon.Verbose = verbose

		stop := mon.HandleInterrupts()
		defer stop()

		var input monitor.LineReader
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			rw := struct {
				io.Reader
				io.Writer
			}{os.Stdin, os.Stdout}
			input = monitor.NewTerminalReader(fd, rw, monitor.PROMPT)
		} else {
			input = monitor.NewPlainReader(os.Stdin, os.Stdout, "")
		}

		err = mon.Serve(input)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if emu.Console.Exited && emu.Console.ExitCode != 0 {
		os.Exit(int(emu.Console.ExitCode & 0xff))
	}
}
