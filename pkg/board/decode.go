package board

import "strings"

// Grid holds the pieces of a decoded position, indexed [row][col].
type Grid [NumRows][NumCols]Piece

func (g *Grid) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return g[sq.Row][sq.Col]
}

func (g *Grid) Occupied(sq Square) bool {
	return g.At(sq) != NoPiece
}

// FindKing returns the square of the first or second player's king.
func (g *Grid) FindKing(first bool) (Square, bool) {
	want := Piece('k')
	if first {
		want = 'K'
	}
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumCols; c++ {
			if g[r][c] == want {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

// Decode parses the piece placement field of a position encoding. Any
// fields after the first space are ignored.
func Decode(encoding string) (Grid, error) {
	var g Grid
	placement := encoding
	if i := strings.IndexByte(encoding, ' '); i >= 0 {
		placement = encoding[:i]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRows {
		return g, &EncodingError{Err: ErrMalformedEncoding, Rank: -1, Text: placement}
	}

	for r, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '0' && c <= '9' {
				n := int(c - '0')
				if n < 1 || n > NumCols {
					return g, &EncodingError{Err: ErrMalformedEncoding, Rank: r, Text: rank}
				}
				col += n
				continue
			}
			if _, err := Classify(Piece(c)); err != nil {
				return g, &EncodingError{Err: err, Rank: r, Text: rank}
			}
			if col >= NumCols {
				return g, &EncodingError{Err: ErrMalformedEncoding, Rank: r, Text: rank}
			}
			g[r][col] = Piece(c)
			col++
		}
		if col != NumCols {
			return g, &EncodingError{Err: ErrMalformedEncoding, Rank: r, Text: rank}
		}
	}
	return g, nil
}

// SideToMove reads the active color field of a position encoding. ok is
// false when the field is missing or is neither "w" nor "b".
func SideToMove(encoding string) (first, ok bool) {
	fields := strings.Fields(encoding)
	if len(fields) < 2 {
		return false, false
	}
	switch fields[1] {
	case "w":
		return true, true
	case "b":
		return false, true
	}
	return false, false
}
