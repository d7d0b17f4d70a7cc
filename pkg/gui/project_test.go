package gui

import (
	"testing"

	"github.com/qnkhuat/chessterm/internal/testutil"
	"github.com/qnkhuat/chessterm/pkg/board"
	"github.com/qnkhuat/chessterm/pkg/client"
)

func mustDecode(t *testing.T, fen string) board.Grid {
	t.Helper()
	g, err := board.Decode(fen)
	testutil.AssertNoError(t, err)
	return g
}

func sqp(s string) *board.Square {
	sq := board.MustSquare(s)
	return &sq
}

func countKings(cells [board.NumRows][board.NumCols]Cell) map[KingMark]int {
	out := make(map[KingMark]int)
	for _, row := range cells {
		for _, c := range row {
			if c.King != KingNone {
				out[c.King]++
			}
		}
	}
	return out
}

func TestProjectShades(t *testing.T) {
	cells := Project(board.Grid{}, client.NewState())
	testutil.AssertEqual(t, cells[0][0].Shade, Light)
	testutil.AssertEqual(t, cells[0][1].Shade, Dark)
	testutil.AssertEqual(t, cells[7][7].Shade, Light)
	testutil.AssertEqual(t, cells[3][4].Shade, Dark)
}

func TestProjectHighlightCauses(t *testing.T) {
	g := mustDecode(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	s := client.NewState()
	s.LastFrom = sqp("e2")
	s.LastTo = sqp("e4")
	s.Selected = sqp("e4")

	cells := Project(g, s)
	e2 := cells[6][4]
	e4 := cells[4][4]
	testutil.AssertEqual(t, e2.Highlight, CauseLastFrom)
	testutil.AssertEqual(t, e4.Highlight, CauseLastTo|CauseSelected)
	testutil.AssertTrue(t, e2.Highlighted() && e4.Highlighted())
	testutil.AssertFalse(t, cells[0][0].Highlighted())
}

func TestProjectDestinationMarkers(t *testing.T) {
	g := mustDecode(t, "8/8/8/3p4/4N3/8/8/8 w - - 0 1")
	s := client.NewState()
	s.Destinations = map[board.Square]bool{
		board.MustSquare("d5"): true,
		board.MustSquare("f6"): true,
	}

	// no selection, no markers
	cells := Project(g, s)
	testutil.AssertEqual(t, cells[3][3].Marker, MarkerNone)

	s.Selected = sqp("e4")
	cells = Project(g, s)
	testutil.AssertEqual(t, cells[3][3].Marker, MarkerCapture)
	testutil.AssertEqual(t, cells[2][5].Marker, MarkerDot)
	testutil.AssertEqual(t, cells[4][4].Marker, MarkerNone)
}

func TestProjectCheckmate(t *testing.T) {
	g := mustDecode(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	s := client.NewState()
	s.Checkmated = true
	s.InCheck = true

	cells := Project(g, s)
	testutil.AssertEqual(t, countKings(cells), map[KingMark]int{KingCheckmated: 1, KingWon: 1})
	testutil.AssertEqual(t, cells[7][4].King, KingCheckmated)
	testutil.AssertEqual(t, cells[0][4].King, KingWon)

	s.FirstToMove = false
	cells = Project(g, s)
	testutil.AssertEqual(t, cells[0][4].King, KingCheckmated)
	testutil.AssertEqual(t, cells[7][4].King, KingWon)
}

func TestProjectCheckOnly(t *testing.T) {
	g := mustDecode(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	s := client.NewState()
	s.InCheck = true

	cells := Project(g, s)
	testutil.AssertEqual(t, countKings(cells), map[KingMark]int{KingInCheck: 1})
	testutil.AssertEqual(t, cells[7][4].King, KingInCheck)
}
