package matrix

import (
	"bufio"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		expected []string
	}{
		"lf":          {input: "a b\nc d\n", expected: []string{"a b", "c d"}},
		"crlf":        {input: "a b\r\nc d\r\n", expected: []string{"a b", "c d"}},
		"cr":          {input: "a b\rc d", expected: []string{"a b", "c d"}},
		"mixed":       {input: "a\rb\r\nc\nd", expected: []string{"a", "b", "c", "d"}},
		"double cr":   {input: "a\r\rb", expected: []string{"a", "", "b"}},
		"trailing cr": {input: "a\r", expected: []string{"a"}},
		"empty":       {input: "", expected: []string{}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// one byte per read splits \r\n across reads
			scanner := bufio.NewScanner(iotest.OneByteReader(strings.NewReader(tc.input)))
			scanner.Split(scanLines)

			got := []string{}
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}

			require.NoError(t, scanner.Err())
			assert.Equal(t, tc.expected, got)
		})
	}
}
