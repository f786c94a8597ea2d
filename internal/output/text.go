package output

import (
	"strings"
)

func Indent(spaces int, multilineText string) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(multilineText, "\n")
	var indented strings.Builder
	for i, line := range lines {
		indented.WriteString(indent)
		indented.WriteString(line)
		if len(lines) > 1 && i < len(lines)-1 {
			indented.WriteRune('\n') //unless last line or only line
		}
	}
	return indented.String()
}

func Plural(count int, singular string, plural string) string {
	if count != 1 {
		return plural
	}
	return singular
}
