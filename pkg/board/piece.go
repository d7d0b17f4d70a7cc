package board

import "fmt"

type Piece byte

const NoPiece Piece = 0

type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

var kinds = map[byte]Kind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// Classify returns the kind of a piece regardless of its side.
func Classify(p Piece) (Kind, error) {
	c := byte(p)
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	k, ok := kinds[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, rune(p))
	}
	return k, nil
}

// IsFirst reports whether the piece belongs to the first player (uppercase).
func (p Piece) IsFirst() bool {
	return p >= 'A' && p <= 'Z'
}

func (p Piece) String() string {
	if p == NoPiece {
		return ""
	}
	return string(rune(p))
}

// Glyph returns the unicode chess symbol for p, or a space for NoPiece.
func (p Piece) Glyph() string {
	switch p {
	case 'K':
		return "♔"
	case 'Q':
		return "♕"
	case 'R':
		return "♖"
	case 'B':
		return "♗"
	case 'N':
		return "♘"
	case 'P':
		return "♙"
	case 'k':
		return "♚"
	case 'q':
		return "♛"
	case 'r':
		return "♜"
	case 'b':
		return "♝"
	case 'n':
		return "♞"
	case 'p':
		return "♟"
	default:
		return " "
	}
}
