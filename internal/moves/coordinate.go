package moves

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrNotArray          = errors.New("result is not an array")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Coordinate is a (row, column) position in the grid.
type Coordinate struct {
	Row float64
	Col float64
}

func (c Coordinate) String() string {
	return "(" + strconv.FormatFloat(c.Row, 'g', -1, 64) + "," + strconv.FormatFloat(c.Col, 'g', -1, 64) + ")"
}

// UnmarshalJSON decodes a coordinate from an array starting with two numbers.
// Extra elements are ignored.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw []any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return errors.Wrapf(ErrInvalidCoordinate, "%s is not an array", data)
	}

	if len(raw) < 2 {
		return errors.Wrapf(ErrInvalidCoordinate, "%s has less than 2 elements", data)
	}

	row, rowOK := raw[0].(float64)
	col, colOK := raw[1].(float64)

	if !rowOK || !colOK {
		return errors.Wrapf(ErrInvalidCoordinate, "%s is not a pair of numbers", data)
	}

	c.Row, c.Col = row, col

	return nil
}

// LoadResult decodes a JSON array of coordinates.
func LoadResult(rdr io.Reader) ([]Coordinate, error) {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read result")
	}

	var raw json.RawMessage

	// rejects anything following the top-level value
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode result")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrNotArray
	}

	var elements []json.RawMessage

	err = json.Unmarshal(raw, &elements)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode result")
	}

	coords := make([]Coordinate, len(elements))

	for i, elem := range elements {
		err = coords[i].UnmarshalJSON(elem)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
	}

	return coords, nil
}

// LoadResultFile reads and decodes the result stored at path.
func LoadResultFile(path string) ([]Coordinate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	coords, err := LoadResult(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}

	return coords, nil
}
