package bank

import (
	"errors"
	"fmt"
)

// ErrNoData indicates the bank source was readable but yielded no usable
// questions.
var ErrNoData = errors.New("bank contains no usable questions")

// ReadError indicates the bank source could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read bank %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
