package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota //explicitly requested information, printed unless nothing is printed at all
	Error
	Normal
	Verbose
)

type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinter(include []Class, allowEscapes bool) Printer {
	return NewPrinterTo(os.Stdout, os.Stderr, include, allowEscapes)
}

func NewPrinterTo(terminal io.Writer, diagnosis io.Writer, include []Class, allowEscapes bool) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   terminal,
		diagnosis:  diagnosis,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := p.terminal
	if class == Error {
		target = p.diagnosis
	}
	fmt.Fprint(target, p.Sprintf(format, values...))
}

// Sprintf formats like fmt.Sprintf but drops all SgrModifier values if escape sequences are disabled.
func (p Printer) Sprintf(format string, values ...interface{}) string {
	if !p.useEscapes {
		filtered := make([]interface{}, len(values))
		for i, value := range values {
			if _, isModifier := value.(SgrModifier); isModifier {
				filtered[i] = ""
			} else {
				filtered[i] = value
			}
		}
		values = filtered
	}
	return fmt.Sprintf(format, values...)
}

func (p Printer) UsesEscapes() bool {
	return p.useEscapes
}
