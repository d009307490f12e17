// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package listing

import (
	"github.com/ezrec/acvm/translate"
)

var f = translate.From

// ErrFile indicates the file an I/O error occurred on.
type ErrFile struct {
	Name string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
