// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package shell

import (
	"errors"

	"github.com/ezrec/acvm/translate"
)

var f = translate.From

var (
	// ErrInterrupt is returned by a LineReader when the current line is abandoned.
	ErrInterrupt = errors.New(f("interrupt"))
)
