package board

import "fmt"

const (
	NumRows = 8
	NumCols = 8

	files = "abcdefgh"
)

// Square is a grid coordinate. Row 0 is the top rendered rank (rank 8),
// column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < NumRows && sq.Col >= 0 && sq.Col < NumCols
}

// String returns the algebraic form, or "-" for squares off the board.
func (sq Square) String() string {
	s, err := SquareToCoord(sq.Row, sq.Col)
	if err != nil {
		return "-"
	}
	return s
}

// Rank returns the rank digit ('1'..'8') of the square.
func (sq Square) Rank() byte {
	return byte('0' + NumRows - sq.Row)
}

func SquareToCoord(row, col int) (string, error) {
	if row < 0 || row >= NumRows || col < 0 || col >= NumCols {
		return "", fmt.Errorf("%w: row %d col %d", ErrInvalidCoordinate, row, col)
	}
	return fmt.Sprintf("%c%d", files[col], NumRows-row), nil
}

func CoordToSquare(coord string) (Square, error) {
	if len(coord) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, coord)
	}
	file, rank := coord[0], coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, coord)
	}
	return Square{Row: NumRows - int(rank-'0'), Col: int(file - 'a')}, nil
}

// MustSquare is CoordToSquare for literals known to be valid.
func MustSquare(coord string) Square {
	sq, err := CoordToSquare(coord)
	if err != nil {
		panic(err)
	}
	return sq
}
