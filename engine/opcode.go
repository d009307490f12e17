// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate go tool stringer -linecomment -type=Op

// Op is a decoded instruction operation.
type Op int

const (
	OP_NOP     = Op(0)  // NOP
	OP_CONST   = Op(1)  // CONST
	OP_LOAD    = Op(2)  // LOAD
	OP_STORE   = Op(3)  // STORE
	OP_ADD     = Op(4)  // ADD
	OP_SUB     = Op(5)  // SUB
	OP_MUL     = Op(6)  // MUL
	OP_DIV     = Op(7)  // DIV
	OP_MOD     = Op(8)  // MOD
	OP_CLR     = Op(9)  // CLR
	OP_JMP     = Op(10) // JMP
	OP_JNEG    = Op(11) // JNEG
	OP_JZERO   = Op(12) // JZERO
	OP_HALT    = Op(13) // HALT
	OP_UNKNOWN = Op(14) // ?
)

// opMap maps mnemonics to operations.
var opMap = map[string]Op{
	"CONST": OP_CONST,
	"LOAD":  OP_LOAD,
	"STORE": OP_STORE,
	"ADD":   OP_ADD,
	"SUB":   OP_SUB,
	"MUL":   OP_MUL,
	"DIV":   OP_DIV,
	"MOD":   OP_MOD,
	"CLR":   OP_CLR,
	"JMP":   OP_JMP,
	"JNEG":  OP_JNEG,
	"JZERO": OP_JZERO,
	"HALT":  OP_HALT,
}

// Address returns true if the operand of the operation is a memory address.
func (op Op) Address() bool {
	switch op {
	case OP_LOAD, OP_STORE, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
		return true
	}
	return false
}

// Jump returns true if the operand of the operation is a jump target.
func (op Op) Jump() bool {
	return op == OP_JMP || op == OP_JNEG || op == OP_JZERO
}

// Instruction is a decoded program line.
type Instruction struct {
	Op         Op     // Decoded operation.
	Mnemonic   string // Upper-cased first word of the line.
	Operand    int64  // Operand value, valid if HasOperand is set.
	HasOperand bool   // Set if the second word parsed as a base-10 integer.
}

// Decode parses a single program line.
//
// The line is split on whitespace. The first word is the mnemonic, matched
// without regard to case. The second word, if any, is parsed as a signed
// base-10 integer, with single underscores allowed between digits; if it is
// missing or does not parse, the operand is absent.
// Words after the second are ignored. A line with no words decodes to OP_NOP.
func Decode(line string) (inst Instruction) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	inst.Mnemonic = strings.ToUpper(words[0])

	op, ok := opMap[inst.Mnemonic]
	if !ok {
		op = OP_UNKNOWN
	}
	inst.Op = op

	if len(words) > 1 {
		value, err := parseOperand(words[1])
		if err == nil {
			inst.Operand = value
			inst.HasOperand = true
		}
	}

	return
}

// parseOperand parses a signed base-10 integer such as "-5_000".
func parseOperand(word string) (value int64, err error) {
	digits := word
	if strings.Contains(word, "_") {
		body := strings.TrimLeft(word, "+-")
		for n := 0; n < len(body); n++ {
			if body[n] != '_' {
				continue
			}
			if n == 0 || n == len(body)-1 || !isDigit(body[n-1]) || !isDigit(body[n+1]) {
				err = strconv.ErrSyntax
				return
			}
		}
		digits = strings.ReplaceAll(word, "_", "")
	}

	value, err = strconv.ParseInt(digits, 10, 64)
	return
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// String returns the canonical text of the instruction.
func (inst Instruction) String() string {
	switch {
	case inst.Op == OP_NOP:
		return ""
	case inst.HasOperand:
		return fmt.Sprintf("%v %d", inst.Mnemonic, inst.Operand)
	default:
		return inst.Mnemonic
	}
}
