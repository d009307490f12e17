// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package engine

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"
)

//go:generate go tool stringer -linecomment -type=State

// State is the run state of the engine.
type State int

const (
	STATE_IDLE      = State(0) // idle
	STATE_RUNNING   = State(1) // running
	STATE_HALTED    = State(2) // halted
	STATE_FAULTED   = State(3) // faulted
	STATE_EXHAUSTED = State(4) // exhausted
	STATE_LIMITED   = State(5) // limited
)

// Terminal returns true if the state ends a run.
func (st State) Terminal() bool {
	return st >= STATE_HALTED
}

// Result reports how the last run ended.
type Result struct {
	State       State   // Terminal state of the run.
	Err         error   // Fault or step limit error, nil otherwise.
	Steps       int     // Instructions executed.
	Diagnostics []error // Recoverable conditions, each an *ErrRuntime.
}

// Engine is the accumulator machine.
type Engine struct {
	Verbose  bool // Set to enable verbose logging.
	MaxSteps int  // If non-zero, the maximum number of steps in a run.

	Ac      int64           // Accumulator.
	Pc      int             // Index of the next instruction.
	Memory  map[int64]int64 // Sparse memory. Absent cells read as 0.
	Running bool            // Set while the run loop should continue.

	program []string      // Program lines.
	code    []Instruction // Decoded program lines, one per line.
	result  Result
}

// NewEngine creates an idle engine with an empty program.
func NewEngine() (e *Engine) {
	e = &Engine{
		Memory: map[int64]int64{},
	}

	return
}

// Reset returns the engine to idle, with a zero AC, empty memory and an
// empty program.
func (e *Engine) Reset() {
	if e.Verbose {
		log.Printf("engine: reset")
	}

	e.Ac = 0
	e.Pc = 0
	e.Running = false
	if e.Memory == nil {
		e.Memory = map[int64]int64{}
	}
	clear(e.Memory)
	e.program = nil
	e.code = nil
	e.result = Result{}
}

// Load replaces the program, decoding each line.
func (e *Engine) Load(lines []string) {
	e.program = slices.Clone(lines)
	e.code = make([]Instruction, len(lines))
	for n, line := range lines {
		e.code[n] = Decode(line)
	}
}

// Append adds a line to the end of the program.
func (e *Engine) Append(line string) {
	e.program = append(e.program, line)
	e.code = append(e.code, Decode(line))
}

// Program returns a copy of the program lines.
func (e *Engine) Program() []string {
	return slices.Clone(e.program)
}

// Code returns the decoded instruction for a 0-based program index.
func (e *Engine) Code(pc int) (inst Instruction, ok bool) {
	if pc < 0 || pc >= len(e.code) {
		return
	}
	inst, ok = e.code[pc], true
	return
}

// Listing returns the program lines with their 1-based line numbers.
func (e *Engine) Listing() iter.Seq2[int, string] {
	return func(yield func(lineno int, line string) bool) {
		for n, line := range e.program {
			if !yield(n+1, line) {
				return
			}
		}
	}
}

// Peek returns the value of a memory cell.
func (e *Engine) Peek(addr int64) int64 {
	return e.Memory[addr]
}

// Poke sets the value of a memory cell.
func (e *Engine) Poke(addr int64, value int64) (err error) {
	if addr < 0 {
		err = ErrAddressInvalid
		return
	}
	if e.Memory == nil {
		e.Memory = map[int64]int64{}
	}
	e.Memory[addr] = value
	return
}

// Cells returns the set memory cells in ascending address order.
func (e *Engine) Cells() iter.Seq2[int64, int64] {
	return func(yield func(addr, value int64) bool) {
		for _, addr := range slices.Sorted(maps.Keys(e.Memory)) {
			if !yield(addr, e.Memory[addr]) {
				return
			}
		}
	}
}

// Result returns the report of the last run.
func (e *Engine) Result() Result {
	return e.result
}

// State returns the current run state.
func (e *Engine) State() State {
	return e.result.State
}

// String returns the engine registers and memory as text.
func (e *Engine) String() (text string) {
	text += fmt.Sprintf("% 6s: %d\n", "ac", e.Ac)
	text += fmt.Sprintf("% 6s: %d\n", "pc", e.Pc)
	text += fmt.Sprintf("% 6s: %v\n", "state", e.result.State)

	var cells []string
	for addr, value := range e.Cells() {
		cells = append(cells, fmt.Sprintf("%d: %d", addr, value))
	}
	text += fmt.Sprintf("% 6s: {%v}\n", "memory", strings.Join(cells, ", "))

	return
}

// Start begins a new run at the first instruction, with a fresh result.
// AC and memory are kept.
func (e *Engine) Start() {
	e.Pc = 0
	e.Running = true
	e.result = Result{State: STATE_RUNNING}
}

// Run executes the program from the first instruction until it halts, faults,
// runs off the end, or reaches MaxSteps. Memory is not cleared between runs.
func (e *Engine) Run() Result {
	e.Start()

	if e.Verbose {
		log.Printf("engine: run %d lines", len(e.program))
	}

	for e.Running && e.Pc >= 0 && e.Pc < len(e.program) {
		if e.MaxSteps > 0 && e.result.Steps >= e.MaxSteps {
			e.Running = false
			e.result.State = STATE_LIMITED
			e.result.Err = &ErrRuntime{LineNo: e.Pc + 1, Line: e.program[e.Pc], Err: ErrStepLimit}
			break
		}
		e.Step()
	}

	if e.result.State == STATE_RUNNING {
		e.result.State = STATE_EXHAUSTED
	}
	e.Running = false

	if e.Verbose {
		log.Printf("engine: %v after %d steps", e.result.State, e.result.Steps)
	}

	return e.result
}

// Step performs a single cycle of the run loop: fetch the decoded line at PC,
// execute it, then advance PC. Faults stop the run, diagnostics are recorded
// in the result. Returns the error of the step, if any.
//
// Stepping an idle engine starts a run at the current PC. Once a run has
// ended, Step returns ErrRunEnded until Start, Run or Reset is called.
func (e *Engine) Step() (err error) {
	switch {
	case e.result.State.Terminal():
		err = ErrRunEnded
		return
	case e.result.State == STATE_IDLE:
		e.Running = true
		e.result = Result{State: STATE_RUNNING}
	}

	if e.Pc < 0 || e.Pc >= len(e.code) {
		e.Running = false
		e.result.State = STATE_EXHAUSTED
		return
	}

	line := e.program[e.Pc]
	lineno := e.Pc + 1
	inst := e.code[e.Pc]

	if e.Verbose {
		log.Printf("%03d: %v", e.Pc, inst)
	}

	err = e.Execute(inst)
	e.result.Steps++

	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Line: line, Err: err}
		if IsFault(err) {
			e.Running = false
			e.result.State = STATE_FAULTED
			e.result.Err = err
		} else {
			e.result.Diagnostics = append(e.result.Diagnostics, err)
		}
		if e.Verbose {
			log.Printf("engine: %v", err)
		}
	}

	e.Pc++

	return
}

// Execute applies a single decoded instruction to the engine state.
//
// Jumps set PC to one before the target, as the run loop advances PC after
// every instruction. On error the AC and memory are left unchanged.
func (e *Engine) Execute(inst Instruction) (err error) {
	var addr int64

	switch {
	case inst.Op == OP_NOP, inst.Op == OP_UNKNOWN:
		// no operand
	case inst.Op.Address():
		if !inst.HasOperand {
			err = diagnostic{ErrOperandMissing}
			return
		}
		addr = inst.Operand
		if addr < 0 {
			err = diagnostic{ErrAddressInvalid}
			return
		}
	case inst.Op.Jump():
		if !inst.HasOperand {
			err = diagnostic{ErrOperandMissing}
			return
		}
		if inst.Operand < 0 {
			err = diagnostic{ErrTargetInvalid}
			return
		}
	}

	switch inst.Op {
	case OP_NOP:
		// pass
	case OP_CONST:
		if !inst.HasOperand {
			err = diagnostic{ErrOperandMissing}
			return
		}
		e.Ac = inst.Operand
	case OP_LOAD:
		e.Ac = e.Memory[addr]
	case OP_STORE:
		if e.Memory == nil {
			e.Memory = map[int64]int64{}
		}
		e.Memory[addr] = e.Ac
	case OP_ADD:
		e.Ac += e.Memory[addr]
	case OP_SUB:
		e.Ac -= e.Memory[addr]
	case OP_MUL:
		e.Ac *= e.Memory[addr]
	case OP_DIV:
		divisor := e.Memory[addr]
		if divisor == 0 {
			err = fault{ErrDivideByZero}
			return
		}
		e.Ac = floorDiv(e.Ac, divisor)
	case OP_MOD:
		divisor := e.Memory[addr]
		if divisor == 0 {
			err = fault{ErrModuloByZero}
			return
		}
		e.Ac = floorMod(e.Ac, divisor)
	case OP_CLR:
		e.Ac = 0
	case OP_JMP:
		e.Pc = int(inst.Operand) - 1
	case OP_JNEG:
		if e.Ac < 0 {
			e.Pc = int(inst.Operand) - 1
		}
	case OP_JZERO:
		if e.Ac == 0 {
			e.Pc = int(inst.Operand) - 1
		}
	case OP_HALT:
		e.Running = false
		e.result.State = STATE_HALTED
	case OP_UNKNOWN:
		err = ErrUnknown(inst.Mnemonic)
	default:
		err = ErrUnknown(inst.Op.String())
	}

	return
}

// floorDiv divides, rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the remainder of floorDiv, which has the sign of b.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
