package memory

import (
	"fmt"
	"iter"
	"maps"
)

// Region is one of the ARMv6-M default memory map regions.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	REGION_CODE     = Region(0) // code
	REGION_SRAM     = Region(1) // sram
	REGION_PERIPH   = Region(2) // peripheral
	REGION_EXT_RAM  = Region(3) // external-ram
	REGION_EXT_DEV  = Region(4) // external-device
	REGION_SYSTEM   = Region(5) // system
	REGION_RESERVED = Region(6) // reserved
)

// Default memory map base addresses.
const (
	CODE_BASE    = uint32(0x0000_0000) // Code, usually flash.
	SRAM_BASE    = uint32(0x2000_0000) // On-chip SRAM.
	PERIPH_BASE  = uint32(0x4000_0000) // On-chip peripherals.
	EXT_RAM_BASE = uint32(0x6000_0000) // External RAM.
	EXT_DEV_BASE = uint32(0xa000_0000) // External devices.
	SYSTEM_BASE  = uint32(0xe000_0000) // Private peripheral bus and system.
	VENDOR_BASE  = uint32(0xe010_0000) // Vendor specific, reserved here.
	SRAM_TOP     = uint32(0x2000_8000) // Initial SP when an image names none (32K SRAM).
	VECTOR_SP    = uint32(0x0000_0000) // Vector table entry holding the initial SP.
	VECTOR_RESET = uint32(0x0000_0004) // Vector table entry holding the reset handler.
)

var _memory_defines = map[string]string{
	"CODE_BASE":    fmt.Sprintf("%#x", CODE_BASE),
	"SRAM_BASE":    fmt.Sprintf("%#x", SRAM_BASE),
	"SRAM_TOP":     fmt.Sprintf("%#x", SRAM_TOP),
	"PERIPH_BASE":  fmt.Sprintf("%#x", PERIPH_BASE),
	"EXT_RAM_BASE": fmt.Sprintf("%#x", EXT_RAM_BASE),
	"EXT_DEV_BASE": fmt.Sprintf("%#x", EXT_DEV_BASE),
	"SYSTEM_BASE":  fmt.Sprintf("%#x", SYSTEM_BASE),
}

// Defines returns the memory map equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// RegionOf returns the default memory map region containing addr.
func RegionOf(addr uint32) Region {
	switch {
	case addr >= VENDOR_BASE:
		return REGION_RESERVED
	case addr >= SYSTEM_BASE:
		return REGION_SYSTEM
	case addr >= EXT_DEV_BASE:
		return REGION_EXT_DEV
	case addr >= EXT_RAM_BASE:
		return REGION_EXT_RAM
	case addr >= PERIPH_BASE:
		return REGION_PERIPH
	case addr >= SRAM_BASE:
		return REGION_SRAM
	}
	return REGION_CODE
}

// Executable reports whether the region permits instruction fetch.
func (r Region) Executable() bool {
	switch r {
	case REGION_CODE, REGION_SRAM, REGION_EXT_RAM:
		return true
	}
	return false
}
