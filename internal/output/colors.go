package output

import "fmt"

// SgrModifier is an ANSI "Select Graphic Rendition" parameter.
type SgrModifier int

const (
	Reset             SgrModifier = 0
	BoldIntensity     SgrModifier = 1
	FaintIntensity    SgrModifier = 2
	NormalIntensity   SgrModifier = 22
	Red               SgrModifier = 31
	Cyan              SgrModifier = 36
	DefaultForeground SgrModifier = 39
)

func (m SgrModifier) String() string {
	return fmt.Sprintf("\x1B[%dm", int(m))
}

func TerminalFormatAsDim(text string) string {
	return fmt.Sprintf("%s%s%s", FaintIntensity, text, Reset)
}
