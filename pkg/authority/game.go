package authority

import (
	"github.com/notnil/chess"
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func newGame() *chess.Game {
	return chess.NewGame(chess.UseNotation(chess.UCINotation{}))
}

// replay rebuilds a game from its move list so that move tags (check)
// and history survive a server restart. It falls back to the bare
// position when the moves do not replay.
func replay(moves []string, fen string) (*chess.Game, []string) {
	g := newGame()
	for _, m := range moves {
		if err := playUCI(g, m); err != nil {
			return fromFEN(fen), nil
		}
	}
	return g, append([]string(nil), moves...)
}

func fromFEN(fen string) *chess.Game {
	opt, err := chess.FEN(fen)
	if err != nil {
		return newGame()
	}
	return chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))
}

func playUCI(g *chess.Game, uci string) error {
	m, err := chess.UCINotation{}.Decode(g.Position(), uci)
	if err != nil {
		return err
	}
	return g.Move(m)
}

func inCheck(g *chess.Game) bool {
	moves := g.Moves()
	if len(moves) == 0 {
		return false
	}
	return moves[len(moves)-1].HasTag(chess.Check)
}

// destinations lists the distinct target squares of the legal moves
// starting on coord, in move generation order.
func destinations(g *chess.Game, coord string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range g.ValidMoves() {
		if m.S1().String() != coord {
			continue
		}
		to := m.S2().String()
		if seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}

func turn(g *chess.Game) string {
	if g.Position().Turn() == chess.White {
		return "white"
	}
	return "black"
}
