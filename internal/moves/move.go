package moves

import (
	"math"

	"github.com/pkg/errors"
)

// Move is a one cell step in the grid.
type Move byte

const (
	Up    Move = 'U'
	Down  Move = 'D'
	Left  Move = 'L'
	Right Move = 'R'
)

func (m Move) String() string {
	return string(m)
}

var (
	ErrInvalidIDifference = errors.New("Invalid iDifference") //nolint:stylecheck // message shared with the submission tooling
	ErrInvalidJDifference = errors.New("Invalid jDifference") //nolint:stylecheck // message shared with the submission tooling
)

// InvalidMoveGeometryError is returned when two consecutive positions are not one
// orthogonal cell apart.
type InvalidMoveGeometryError struct {
	From Coordinate
	To   Coordinate
}

func (e *InvalidMoveGeometryError) Error() string {
	return "invalid move from " + e.From.String() + " to " + e.To.String() + ": positions must be one orthogonal cell apart"
}

// EncodeMove returns the move going from one position to the next.
// Rows grow downwards and columns grow to the right.
func EncodeMove(from, to Coordinate) (Move, error) {
	iDifference := to.Row - from.Row
	jDifference := to.Col - from.Col

	iAbs, jAbs := math.Abs(iDifference), math.Abs(jDifference)
	if !(iAbs == 1 && jAbs == 0) && !(iAbs == 0 && jAbs == 1) {
		return 0, &InvalidMoveGeometryError{From: from, To: to}
	}

	// the geometry check above already rejects every difference the defaults below catch
	switch iDifference {
	case 1:
		return Down, nil
	case -1:
		return Up, nil
	case 0:
	default:
		return 0, ErrInvalidIDifference
	}

	switch jDifference {
	case 1:
		return Right, nil
	case -1:
		return Left, nil
	default:
		return 0, ErrInvalidJDifference
	}
}
