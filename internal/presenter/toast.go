package presenter

import (
	"fmt"
	"io"
)

// Toast writes transient notifications. Nothing is kept once written.
type Toast struct {
	out io.Writer
}

func NewToast(out io.Writer) *Toast {
	return &Toast{out: out}
}

func (t *Toast) Notify(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}
