package gui

import (
	"github.com/qnkhuat/chessterm/pkg/board"
	"github.com/qnkhuat/chessterm/pkg/client"
)

type Shade int

const (
	Light Shade = iota
	Dark
)

// Marker flags a destination of the current selection.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerDot
	MarkerCapture
)

type KingMark int

const (
	KingNone KingMark = iota
	KingInCheck
	KingCheckmated
	KingWon
)

// HighlightCause records why a square is highlighted. Every cause is drawn
// the same way today; the causes are kept apart so they can be styled
// separately later.
type HighlightCause uint8

const (
	CauseSelected HighlightCause = 1 << iota
	CauseLastFrom
	CauseLastTo
)

// Cell is everything needed to draw one square.
type Cell struct {
	Square    board.Square
	Shade     Shade
	Piece     board.Piece
	Highlight HighlightCause
	Marker    Marker
	King      KingMark
}

func (c Cell) Highlighted() bool {
	return c.Highlight != 0
}

// Project computes the visual facets of every square from a grid and an
// interaction state. It has no side effects.
func Project(g board.Grid, s client.State) [board.NumRows][board.NumCols]Cell {
	var cells [board.NumRows][board.NumCols]Cell
	for r := 0; r < board.NumRows; r++ {
		for c := 0; c < board.NumCols; c++ {
			sq := board.Square{Row: r, Col: c}
			cell := Cell{Square: sq, Piece: g[r][c]}
			if (r+c)%2 != 0 {
				cell.Shade = Dark
			}
			if s.IsSelected(sq) {
				cell.Highlight |= CauseSelected
			}
			if s.LastFrom != nil && *s.LastFrom == sq {
				cell.Highlight |= CauseLastFrom
			}
			if s.LastTo != nil && *s.LastTo == sq {
				cell.Highlight |= CauseLastTo
			}
			if s.Selected != nil && s.Destinations[sq] {
				if cell.Piece != board.NoPiece {
					cell.Marker = MarkerCapture
				} else {
					cell.Marker = MarkerDot
				}
			}
			cells[r][c] = cell
		}
	}

	mover, moverOK := g.FindKing(s.FirstToMove)
	other, otherOK := g.FindKing(!s.FirstToMove)
	switch {
	case s.Checkmated:
		if moverOK {
			cells[mover.Row][mover.Col].King = KingCheckmated
		}
		if otherOK {
			cells[other.Row][other.Col].King = KingWon
		}
	case s.InCheck:
		if moverOK {
			cells[mover.Row][mover.Col].King = KingInCheck
		}
	}
	return cells
}
