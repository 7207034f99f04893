// Package cpu implements the execution engine of an ARMv6-M core.
//
// The CPU holds sixteen 32-bit core registers, the APSR condition flags and
// a bank of special registers, and executes decoded Thumb instructions
// against a flat memory. Only a subset of the instruction set executes;
// everything else the decoder recognizes fails with ErrNotImplemented.
//
// Instructions see PC as the address of the current instruction plus 4.
// Handlers that write PC report the redirection, and the CPU only advances
// PC past instructions that did not.
package cpu
