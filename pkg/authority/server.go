// Package authority is the rules side of the board: it owns the game,
// validates moves with notnil/chess and serves the JSON API the client
// talks to.
package authority

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/qnkhuat/chessterm/pkg/api"
	"github.com/qnkhuat/chessterm/pkg/store"
)

type Config struct {
	// AllowOrigins is passed to the CORS middleware
	AllowOrigins string
	// Computer is the side the computer plays; chess.NoColor leaves both
	// sides to the clients.
	Computer chess.Color
	// Opponent picks the computer's moves. One is created when Computer is
	// set and Opponent is nil.
	Opponent *Opponent
}

type Server struct {
	mu    sync.Mutex
	game  *chess.Game
	moves []string

	computer chess.Color
	opponent *Opponent

	store store.Store
	log   zerolog.Logger
	app   *fiber.App
}

// New builds the server and restores the saved game from st, if any.
func New(ctx context.Context, st store.Store, log zerolog.Logger, cfg Config) (*Server, error) {
	s := &Server{
		game:     newGame(),
		store:    st,
		log:      log,
		computer: cfg.Computer,
		opponent: cfg.Opponent,
	}
	if s.computer != chess.NoColor && s.opponent == nil {
		s.opponent = NewOpponent(time.Now().UnixNano())
	}

	rec, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		s.game, s.moves = replay(rec.Moves, rec.FEN)
		log.Info().Int("moves", len(s.moves)).Str("fen", s.game.Position().String()).Msg("restored game")
	}
	if moves, played := s.reply(s.game, s.moves); played {
		if err := s.save(ctx, s.game, moves); err != nil {
			return nil, err
		}
		s.moves = moves
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, " + api.HeaderSession,
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}
	app.Use(s.accessLog)

	app.Get(api.PathState, s.getState)
	app.Post(api.PathMove, s.postMove)
	app.Post(api.PathLegalMoves, s.postLegalMoves)
	app.Post(api.PathCheckmate, s.postCheckmate)
	app.Post(api.PathRestart, s.postRestart)

	s.app = app
	return s, nil
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("authority listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Str("session", c.Get(api.HeaderSession)).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) getState(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := api.State{
		Fen:     s.game.Position().String(),
		Turn:    turn(s.game),
		IsCheck: inCheck(s.game),
	}
	if s.game.Outcome() != chess.NoOutcome {
		result := s.game.Outcome().String()
		state.IsGameOver = true
		state.Result = &result
	}
	return c.JSON(state)
}

func (s *Server) postMove(c *fiber.Ctx) error {
	var req api.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(api.MoveResult{Success: false, Error: err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.game.Clone()
	if err := playUCI(next, req.Move); err != nil {
		s.log.Info().Str("move", req.Move).Err(err).Msg("rejected move")
		return c.JSON(api.MoveResult{Success: false, Error: "Illegal move"})
	}
	moves := append(append([]string(nil), s.moves...), req.Move)
	moves, _ = s.reply(next, moves)
	fen := next.Position().String()
	// The move only becomes part of the game once it is stored.
	if err := s.save(c.UserContext(), next, moves); err != nil {
		return err
	}
	s.game, s.moves = next, moves
	s.log.Info().Str("move", req.Move).Str("fen", fen).Msg("played move")
	return c.JSON(api.MoveResult{Success: true, Fen: fen})
}

func (s *Server) postLegalMoves(c *fiber.Ctx) error {
	var req api.LegalMovesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(api.LegalMovesResponse{Moves: destinations(s.game, req.Coord)})
}

func (s *Server) postCheckmate(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(api.CheckmateResponse{IsCheckmate: s.game.Method() == chess.Checkmate})
}

func (s *Server) postRestart(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := newGame()
	moves, _ := s.reply(g, nil)
	if err := s.save(c.UserContext(), g, moves); err != nil {
		return err
	}
	s.game, s.moves = g, moves
	s.log.Info().Msg("restarted game")
	return c.JSON(api.RestartResponse{Success: true, Fen: s.game.Position().String()})
}

// reply plays the computer's move in g when it is the computer's turn and
// returns moves with that move appended.
func (s *Server) reply(g *chess.Game, moves []string) ([]string, bool) {
	if s.opponent == nil || g.Outcome() != chess.NoOutcome || g.Position().Turn() != s.computer {
		return moves, false
	}
	m := s.opponent.Reply(g)
	if m == nil {
		return moves, false
	}
	uci := chess.UCINotation{}.Encode(g.Position(), m)
	if err := g.Move(m); err != nil {
		s.log.Error().Err(err).Str("move", uci).Msg("computer move refused")
		return moves, false
	}
	s.log.Info().Str("move", uci).Msg("computer played")
	return append(moves, uci), true
}

// save stores g and moves. Callers commit them to s only when it succeeds.
func (s *Server) save(ctx context.Context, g *chess.Game, moves []string) error {
	rec := store.Record{FEN: g.Position().String(), Moves: moves}
	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Error().Err(err).Msg("saving game")
		return fiber.NewError(fiber.StatusInternalServerError, "saving game failed")
	}
	return nil
}
