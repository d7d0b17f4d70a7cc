package client

import "github.com/qnkhuat/chessterm/pkg/board"

// State is the interaction state of one board session. It is owned by the
// Controller; renderers only ever see a Clone.
type State struct {
	Selected     *board.Square
	Destinations map[board.Square]bool

	// LastFrom and LastTo mark the most recent committed move for
	// highlighting only.
	LastFrom *board.Square
	LastTo   *board.Square

	// FirstToMove flips optimistically on an accepted move and is then
	// replaced by the side to move in every snapshot.
	FirstToMove bool
	Checkmated  bool
	InCheck     bool
}

func NewState() State {
	return State{FirstToMove: true}
}

func (s *State) clearSelection() {
	s.Selected = nil
	s.Destinations = nil
}

// IsSelected reports whether sq is the active selection.
func (s State) IsSelected(sq board.Square) bool {
	return s.Selected != nil && *s.Selected == sq
}

func (s State) Clone() State {
	out := s
	out.Selected = copySquare(s.Selected)
	out.LastFrom = copySquare(s.LastFrom)
	out.LastTo = copySquare(s.LastTo)
	if s.Destinations != nil {
		out.Destinations = make(map[board.Square]bool, len(s.Destinations))
		for sq, ok := range s.Destinations {
			out.Destinations[sq] = ok
		}
	}
	return out
}

func copySquare(sq *board.Square) *board.Square {
	if sq == nil {
		return nil
	}
	v := *sq
	return &v
}

// MoveCommand builds the command for moving the piece on from to to. Pawns
// reaching the first or last rank always promote to a queen.
func MoveCommand(g *board.Grid, from, to board.Square) string {
	cmd := from.String() + to.String()
	if kind, err := board.Classify(g.At(from)); err == nil && kind == board.Pawn {
		if r := to.Rank(); r == '8' || r == '1' {
			cmd += "q"
		}
	}
	return cmd
}
