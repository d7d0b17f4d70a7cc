// Package client drives a board session: it turns square clicks into
// selections and move commands, asks the authority what is legal, and
// redraws the board from the authority's snapshot.
package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qnkhuat/chessterm/pkg/api"
	"github.com/qnkhuat/chessterm/pkg/board"
)

// Authority is the remote side that owns every rule decision.
type Authority interface {
	GetState(ctx context.Context) (api.State, error)
	SubmitMove(ctx context.Context, move string) (api.MoveResult, error)
	GetLegalDestinations(ctx context.Context, sq board.Square) (map[board.Square]bool, error)
	GetCheckmate(ctx context.Context) (bool, error)
	Restart(ctx context.Context) error
}

type Renderer interface {
	Render(g board.Grid, s State)
	SetStatus(msg string)
}

type requestKind int

const (
	kindDestinations requestKind = iota
	kindRefresh
	numKinds
)

type Controller struct {
	ctx    context.Context
	auth   Authority
	render Renderer
	sched  Scheduler
	log    zerolog.Logger

	state State
	grid  board.Grid

	// seq numbers every issued request; latest holds the newest number per
	// request kind. Responses carrying an older number are dropped.
	seq    uint64
	latest [numKinds]uint64

	notice string
}

func NewController(ctx context.Context, auth Authority, r Renderer, sched Scheduler, log zerolog.Logger) *Controller {
	if sched == nil {
		sched = Inline{}
	}
	return &Controller{
		ctx:    ctx,
		auth:   auth,
		render: r,
		sched:  sched,
		log:    log,
		state:  NewState(),
	}
}

// State returns a copy of the current interaction state.
func (c *Controller) State() State {
	return c.state.Clone()
}

func (c *Controller) Grid() board.Grid {
	return c.grid
}

func (c *Controller) begin(k requestKind) uint64 {
	c.seq++
	c.latest[k] = c.seq
	return c.seq
}

func (c *Controller) current(k requestKind, token uint64) bool {
	if c.latest[k] != token {
		c.log.Debug().Uint64("seq", token).Uint64("latest", c.latest[k]).Msg("dropping stale response")
		return false
	}
	return true
}

// OnSquareClick is the single entry point for clicks on the board.
func (c *Controller) OnSquareClick(sq board.Square) {
	st := &c.state
	if st.Checkmated {
		return
	}
	c.notice = ""

	switch {
	case st.IsSelected(sq):
		c.deselect()
	case st.Selected == nil:
		if !c.grid.Occupied(sq) {
			return
		}
		c.selectSquare(sq)
	case !st.Destinations[sq]:
		if c.grid.Occupied(sq) {
			c.selectSquare(sq)
			return
		}
		c.deselect()
	default:
		c.commitMove(*st.Selected, sq)
	}
}

func (c *Controller) deselect() {
	c.state.clearSelection()
	c.begin(kindDestinations)
	c.redraw()
}

func (c *Controller) selectSquare(sq board.Square) {
	c.state.Selected = &sq
	c.state.Destinations = nil
	token := c.begin(kindDestinations)
	c.log.Debug().Str("square", sq.String()).Uint64("seq", token).Msg("selected")

	c.sched.Go(func() {
		dests, err := c.auth.GetLegalDestinations(c.ctx, sq)
		c.sched.Update(func() {
			if !c.current(kindDestinations, token) {
				return
			}
			if err != nil {
				c.state.clearSelection()
				c.fail(err)
				c.redraw()
				return
			}
			c.state.Destinations = dests
			c.redraw()
		})
	})
}

func (c *Controller) commitMove(from, to board.Square) {
	st := &c.state
	prevFrom, prevTo := st.LastFrom, st.LastTo
	st.LastFrom, st.LastTo = &from, &to
	lastFrom, lastTo := st.LastFrom, st.LastTo
	cmd := MoveCommand(&c.grid, from, to)

	st.clearSelection()
	c.begin(kindDestinations)
	c.log.Info().Str("move", cmd).Msg("submitting move")

	c.sched.Go(func() {
		res, err := c.auth.SubmitMove(c.ctx, cmd)
		c.sched.Update(func() {
			rollback := func() {
				if st.LastFrom == lastFrom && st.LastTo == lastTo {
					st.LastFrom, st.LastTo = prevFrom, prevTo
				}
			}
			switch {
			case err != nil:
				rollback()
				c.fail(err)
			case !res.Success:
				rollback()
				c.log.Info().Str("move", cmd).Str("reason", res.Error).Msg("move rejected")
				c.notice = fmt.Sprintf("Illegal move %s", cmd)
			default:
				st.FirstToMove = !st.FirstToMove
			}
			c.redraw()
			c.Refresh()
		})
	})
}

// Restart resets the session and asks the authority for a new game.
func (c *Controller) Restart() {
	c.state = NewState()
	c.notice = ""
	for k := range c.latest {
		c.begin(requestKind(k))
	}
	c.log.Info().Msg("restarting game")

	c.sched.Go(func() {
		err := c.auth.Restart(c.ctx)
		c.sched.Update(func() {
			if err != nil {
				c.fail(err)
			}
			c.Refresh()
		})
	})
}

// Refresh pulls the authority's snapshot and redraws the board with it.
func (c *Controller) Refresh() {
	token := c.begin(kindRefresh)

	c.sched.Go(func() {
		mate, err := c.auth.GetCheckmate(c.ctx)
		var s api.State
		if err == nil {
			s, err = c.auth.GetState(c.ctx)
		}
		c.sched.Update(func() {
			if !c.current(kindRefresh, token) {
				return
			}
			if err != nil {
				c.fail(err)
				c.redraw()
				return
			}
			grid, err := board.Decode(s.Fen)
			if err != nil {
				c.log.Error().Err(err).Str("fen", s.Fen).Msg("skipping render")
				c.notice = "Unreadable position from server"
				c.render.SetStatus(c.status())
				return
			}
			c.grid = grid
			if first, ok := sideToMove(s); ok {
				c.state.FirstToMove = first
			}
			c.state.Checkmated = mate
			c.state.InCheck = s.IsCheck
			if mate {
				c.state.clearSelection()
			}
			c.redraw()
		})
	})
}

// sideToMove prefers the snapshot's turn field and falls back to the
// position encoding. Other sessions may have moved since our last move.
func sideToMove(s api.State) (first, ok bool) {
	switch s.Turn {
	case "white":
		return true, true
	case "black":
		return false, true
	}
	return board.SideToMove(s.Fen)
}

func (c *Controller) fail(err error) {
	c.log.Error().Err(err).Msg("authority request failed")
	c.notice = fmt.Sprintf("Server error: %v", err)
}

func (c *Controller) redraw() {
	c.render.Render(c.grid, c.state.Clone())
	c.render.SetStatus(c.status())
}

func (c *Controller) status() string {
	mover, other := "White", "Black"
	if !c.state.FirstToMove {
		mover, other = other, mover
	}
	var msg string
	switch {
	case c.state.Checkmated:
		msg = fmt.Sprintf("Checkmate! %s wins", other)
	case c.state.InCheck:
		msg = fmt.Sprintf("%s to move (check)", mover)
	default:
		msg = fmt.Sprintf("%s to move", mover)
	}
	if c.notice != "" {
		return c.notice + " | " + msg
	}
	return msg
}
