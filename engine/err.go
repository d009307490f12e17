// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package engine

import (
	"errors"

	"github.com/ezrec/acvm/translate"
)

var f = translate.From

var (
	// Error classes
	ErrFault      = errors.New(f("fault"))
	ErrDiagnostic = errors.New(f("diagnostic"))

	// Faults
	ErrDivideByZero = errors.New(f("division by zero"))
	ErrModuloByZero = errors.New(f("modulo by zero"))

	// Diagnostics
	ErrInstructionUnknown = errors.New(f("unknown instruction"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrTargetInvalid      = errors.New(f("jump target invalid"))

	// Run limits
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrRunEnded  = errors.New(f("run has ended"))
)

// IsFault returns true if the error ends a run.
func IsFault(err error) bool {
	return errors.Is(err, ErrFault)
}

// ErrRuntime indicates the program location of a runtime error.
// LineNo is 1-based, as shown by the listing.
type ErrRuntime struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrUnknown carries the mnemonic of an instruction that could not be decoded.
type ErrUnknown string

func (eu ErrUnknown) Error() string {
	return f("unknown instruction: %v", string(eu))
}

func (eu ErrUnknown) Is(err error) bool {
	return err == ErrInstructionUnknown || err == ErrDiagnostic
}

// fault marks an error as ending the run.
type fault struct {
	error
}

func (ef fault) Is(err error) bool {
	return err == ErrFault
}

func (ef fault) Unwrap() error {
	return ef.error
}

// diagnostic marks an error as recoverable.
type diagnostic struct {
	error
}

func (ed diagnostic) Is(err error) bool {
	return err == ErrDiagnostic
}

func (ed diagnostic) Unwrap() error {
	return ed.error
}

// ErrExpression indicates an expression that did not evaluate to a usable value.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}
