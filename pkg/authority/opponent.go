package authority

import (
	"math/rand"
	"sort"

	"github.com/notnil/chess"
	"github.com/notnil/chess/opening"
)

// Opponent picks the computer's replies. It follows the ECO opening book
// while the game is still in it, takes a mate in one when there is one and
// otherwise plays a random legal move.
type Opponent struct {
	book *opening.BookECO
	rnd  *rand.Rand
}

// NewOpponent loads the opening book, which takes a moment.
func NewOpponent(seed int64) *Opponent {
	return &Opponent{
		book: opening.NewBookECO(),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// Reply returns the move to play in g, or nil when g has no legal move.
func (o *Opponent) Reply(g *chess.Game) *chess.Move {
	valid := g.ValidMoves()
	if len(valid) == 0 {
		return nil
	}
	if m := o.bookMove(g, valid); m != nil {
		return m
	}
	for _, m := range valid {
		next := g.Clone()
		if err := next.Move(m); err == nil && next.Method() == chess.Checkmate {
			return m
		}
	}
	return valid[o.rnd.Intn(len(valid))]
}

// bookMove returns a continuation of one of the book openings that g is
// still following. Games set up from a position never use the book.
func (o *Opponent) bookMove(g *chess.Game, valid []*chess.Move) *chess.Move {
	if g.Positions()[0].String() != initialFEN {
		return nil
	}
	played := g.Moves()
	seen := make(map[string]bool)
	var candidates []*chess.Move
	for _, op := range o.book.Possible(played) {
		line := op.Game().Moves()
		if len(line) <= len(played) || !samePrefix(line, played) {
			continue
		}
		want := line[len(played)].String()
		if seen[want] {
			continue
		}
		seen[want] = true
		for _, m := range valid {
			if m.String() == want {
				candidates = append(candidates, m)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].String() < candidates[j].String()
	})
	return candidates[o.rnd.Intn(len(candidates))]
}

func samePrefix(line, played []*chess.Move) bool {
	for i, m := range played {
		if line[i].String() != m.String() {
			return false
		}
	}
	return true
}
