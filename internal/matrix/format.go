package matrix

import (
	"strings"
)

// FormatLine turns a grid row into a JSON array fragment followed by a comma:
// "1 0 3" becomes "[1,0,3],". Cells are not validated.
func FormatLine(line string) string {
	return "[" + strings.ReplaceAll(line, " ", ",") + "],"
}

// Assemble joins formatted lines with newlines, drops the trailing comma of the last
// line and wraps the result in brackets.
func Assemble(formatted []string) string {
	joined := strings.Join(formatted, "\n")
	if joined != "" {
		joined = joined[:len(joined)-1]
	}

	return "[" + joined + "]"
}

// Substitution records a digit replaced in the document.
type Substitution struct {
	From  byte
	To    byte
	Index int
}

var digitPatches = []Substitution{
	{From: '3', To: '2'},
	{From: '4', To: '3'},
}

// PatchDigits replaces the first '3' of doc with '2', then the first '4' of the
// resulting document with '3'. Only the first occurrence of each digit is replaced,
// wherever it is, including inside larger numbers.
func PatchDigits(doc string) (string, []Substitution) {
	applied := []Substitution{}

	for _, patch := range digitPatches {
		idx := strings.IndexByte(doc, patch.From)
		if idx < 0 {
			continue
		}

		doc = doc[:idx] + string(patch.To) + doc[idx+1:]
		patch.Index = idx
		applied = append(applied, patch)
	}

	return doc, applied
}
