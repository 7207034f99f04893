// Package thumb decodes and encodes the ARMv6-M Thumb instruction set.
//
// Decode turns a little-endian byte stream into structured Instruction
// values, one per call, choosing between the 16-bit and 32-bit forms from
// the first halfword. Every variant can be encoded back into the halfwords
// it was decoded from, and the Assembler builds such streams from text.
//
// Encodings that are allocated by the architecture but whose operands are
// not modeled here decode to Unmodeled, so that they can still be listed.
// Unallocated or UNPREDICTABLE encodings fail with ErrIllegalEncoding.
package thumb
