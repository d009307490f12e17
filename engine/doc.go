// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package engine implements the accumulator machine.
//
// The machine has a single signed accumulator (AC), a sparse integer memory
// addressed by non-negative integers, a program of textual instructions, and a
// program counter (PC). Each step fetches the instruction at PC, decodes it,
// dispatches it, and then advances PC by one. Jumps store their target less one
// so that the uniform advance lands on the target.
//
// Faults (division or modulo by zero) end a run. Every other problem with an
// instruction is a recoverable diagnostic that is recorded and skipped.
package engine
