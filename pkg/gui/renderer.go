// Package gui draws the board into a tview primitive and routes mouse
// clicks on a square to that square's handler.
package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/chessterm/pkg/board"
	"github.com/qnkhuat/chessterm/pkg/client"
)

const (
	// squareWidth is the number of terminal columns per square
	squareWidth = 3
	// leftMargin leaves room for the rank label
	leftMargin = 2

	// BoardWidth and BoardHeight are the size of the drawn board,
	// labels included
	BoardWidth  = leftMargin + board.NumCols*squareWidth
	BoardHeight = board.NumRows + 1
)

// Renderer is a tview primitive showing the board plus a status line.
// Everything it draws comes from the last Render call; each Render throws
// the previous cells and click handlers away.
type Renderer struct {
	*tview.Box
	Status *tview.TextView

	theme   Theme
	onClick func(board.Square)

	cells    [board.NumRows][board.NumCols]Cell
	handlers [board.NumRows][board.NumCols]func()
	rendered bool

	// top-left corner of the a8 square, set on every draw
	originX, originY int
}

func NewRenderer(theme Theme) *Renderer {
	r := &Renderer{
		Box:    tview.NewBox(),
		Status: tview.NewTextView().SetTextColor(theme.Status),
		theme:  theme,
	}
	r.Box.SetDrawFunc(r.draw)
	r.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		x, y := event.Position()
		if r.Click(x, y) {
			return action, nil
		}
		return action, event
	})
	return r
}

// SetClickHandler sets the function square handlers forward to. It takes
// effect from the next Render.
func (r *Renderer) SetClickHandler(f func(board.Square)) {
	r.onClick = f
}

func (r *Renderer) SetStatus(msg string) {
	r.Status.SetText(msg)
}

func (r *Renderer) Render(g board.Grid, s client.State) {
	r.cells = Project(g, s)
	r.handlers = [board.NumRows][board.NumCols]func(){}
	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < board.NumCols; col++ {
			sq := board.Square{Row: row, Col: col}
			onClick := r.onClick
			r.handlers[row][col] = func() {
				if onClick != nil {
					onClick(sq)
				}
			}
		}
	}
	r.rendered = true
}

// Cells returns the facets drawn by the last Render.
func (r *Renderer) Cells() [board.NumRows][board.NumCols]Cell {
	return r.cells
}

// Click runs the handler of the square under screen position (x, y) and
// reports whether there was one.
func (r *Renderer) Click(x, y int) bool {
	sq, ok := r.squareAt(x, y)
	if !ok || !r.rendered {
		return false
	}
	r.handlers[sq.Row][sq.Col]()
	return true
}

func (r *Renderer) squareAt(x, y int) (board.Square, bool) {
	if x < r.originX || y < r.originY {
		return board.Square{}, false
	}
	sq := board.Square{Row: y - r.originY, Col: (x - r.originX) / squareWidth}
	return sq, sq.Valid()
}

func (r *Renderer) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	r.originX, r.originY = x+leftMargin, y
	if !r.rendered {
		return x, y, width, height
	}

	labelStyle := tcell.StyleDefault.Foreground(r.theme.Label)
	for row := 0; row < board.NumRows; row++ {
		screen.SetContent(x, y+row, rune('0'+board.NumRows-row), nil, labelStyle)
		for col := 0; col < board.NumCols; col++ {
			r.drawSquare(screen, r.originX+col*squareWidth, y+row, r.cells[row][col])
		}
	}
	for col := 0; col < board.NumCols; col++ {
		screen.SetContent(r.originX+col*squareWidth+1, y+board.NumRows, rune('a'+col), nil, labelStyle)
	}
	return x, y, width, height
}

// drawSquare draws a board square and its corresponding piece
func (r *Renderer) drawSquare(s tcell.Screen, x, y int, c Cell) {
	bg := r.background(c)
	fill := tcell.StyleDefault.Background(bg)
	s.SetContent(x, y, ' ', nil, fill)
	s.SetContent(x+2, y, ' ', nil, fill)

	switch {
	case c.Marker == MarkerDot:
		s.SetContent(x+1, y, '•', nil, fill.Foreground(r.theme.Dot))
	case c.Piece != board.NoPiece:
		fg := r.theme.Black
		if c.Piece.IsFirst() {
			fg = r.theme.White
		}
		glyph := []rune(c.Piece.Glyph())[0]
		s.SetContent(x+1, y, glyph, nil, fill.Foreground(fg).Bold(true))
	default:
		s.SetContent(x+1, y, ' ', nil, fill)
	}
}

// background picks the square color; later facets override earlier ones
func (r *Renderer) background(c Cell) tcell.Color {
	t := r.theme
	bg := t.SquareLight
	if c.Shade == Dark {
		bg = t.SquareDark
	}
	if c.Highlighted() {
		bg = t.SquareHigh
	}
	if c.Marker == MarkerCapture {
		bg = t.SquareCapture
	}
	switch c.King {
	case KingInCheck:
		bg = t.SquareCheck
	case KingCheckmated:
		bg = t.SquareMated
	case KingWon:
		bg = t.SquareWon
	}
	return bg
}

// AppScheduler runs requests on their own goroutine and applies the results
// through the application's event loop.
type AppScheduler struct {
	App *tview.Application
}

func (s AppScheduler) Go(f func()) { go f() }

func (s AppScheduler) Update(f func()) { s.App.QueueUpdateDraw(f) }
