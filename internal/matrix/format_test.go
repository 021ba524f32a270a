package matrix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/stone-format/internal/matrix"
)

func TestFormatLine(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line     string
		expected string
	}{
		"cells":        {line: "1 0 0 1", expected: "[1,0,0,1],"},
		"single cell":  {line: "0", expected: "[0],"},
		"empty line":   {line: "", expected: "[],"},
		"double space": {line: "1  0", expected: "[1,,0],"},
		"not numeric":  {line: "a b", expected: "[a,b],"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, matrix.FormatLine(tc.line))
		})
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rows     []string
		expected string
	}{
		"no rows":  {rows: nil, expected: "[]"},
		"one row":  {rows: []string{"[1,0],"}, expected: "[[1,0]]"},
		"two rows": {rows: []string{"[1,0],", "[0,1],"}, expected: "[[1,0],\n[0,1]]"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, matrix.Assemble(tc.rows))
		})
	}
}

func TestAssembleWithoutDigitsToPatch(t *testing.T) {
	t.Parallel()

	lines := []string{"1 0 0", "0 1 0", "a b c"}

	rows := make([]string, len(lines))
	expectedRows := make([]string, len(lines))

	for i, line := range lines {
		rows[i] = matrix.FormatLine(line)
		expectedRows[i] = "[" + strings.ReplaceAll(line, " ", ",") + "]"
	}

	doc, applied := matrix.PatchDigits(matrix.Assemble(rows))
	assert.Empty(t, applied)
	assert.Equal(t, "["+strings.Join(expectedRows, ",\n")+"]", doc)
}

func TestPatchDigits(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc      string
		expected string
		applied  []matrix.Substitution
	}{
		"nothing to patch": {
			doc:      "[[1,0],\n[0,1]]",
			expected: "[[1,0],\n[0,1]]",
			applied:  []matrix.Substitution{},
		},
		"only first 3": {
			doc:      "[[3,0,3],\n[0,3]]",
			expected: "[[2,0,3],\n[0,3]]",
			applied:  []matrix.Substitution{{From: '3', To: '2', Index: 2}},
		},
		"only first 4": {
			doc:      "[[0,4],\n[4,0]]",
			expected: "[[0,3],\n[4,0]]",
			applied:  []matrix.Substitution{{From: '4', To: '3', Index: 4}},
		},
		"start and finish": {
			doc:      "[[3,0],\n[0,4]]",
			expected: "[[2,0],\n[0,3]]",
			applied: []matrix.Substitution{
				{From: '3', To: '2', Index: 2},
				{From: '4', To: '3', Index: 11},
			},
		},
		"3 patched before 4": {
			doc:      "[[4,3]]",
			expected: "[[3,2]]",
			applied: []matrix.Substitution{
				{From: '3', To: '2', Index: 4},
				{From: '4', To: '3', Index: 2},
			},
		},
		"inside larger numbers": {
			doc:      "[[13,34,43]]",
			expected: "[[12,33,43]]",
			applied: []matrix.Substitution{
				{From: '3', To: '2', Index: 3},
				{From: '4', To: '3', Index: 6},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, applied := matrix.PatchDigits(tc.doc)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.applied, applied)
		})
	}
}
