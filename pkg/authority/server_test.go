package authority

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qnkhuat/chessterm/internal/testutil"
	"github.com/qnkhuat/chessterm/pkg/api"
	"github.com/qnkhuat/chessterm/pkg/store"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func newServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	if st == nil {
		st = store.NewMemory()
	}
	s, err := New(context.Background(), st, zerolog.Nop(), Config{AllowOrigins: "*"})
	testutil.AssertNoError(t, err)
	return s
}

func call(t *testing.T, s *Server, method, path, body string, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func move(t *testing.T, s *Server, m string) api.MoveResult {
	t.Helper()
	var res api.MoveResult
	call(t, s, http.MethodPost, api.PathMove, `{"move":"`+m+`"}`, &res)
	return res
}

func TestInitialState(t *testing.T) {
	s := newServer(t, nil)
	var st api.State
	code := call(t, s, http.MethodGet, api.PathState, "", &st)
	testutil.AssertEqual(t, code, http.StatusOK)
	testutil.AssertEqual(t, st.Fen, startFEN)
	testutil.AssertEqual(t, st.Turn, "white")
	testutil.AssertFalse(t, st.IsCheck)
	testutil.AssertFalse(t, st.IsGameOver)
}

func TestMoves(t *testing.T) {
	s := newServer(t, nil)
	testutil.AssertTrue(t, move(t, s, "e2e4").Success)

	res := move(t, s, "e2e4")
	testutil.AssertFalse(t, res.Success)
	testutil.AssertEqual(t, res.Error, "Illegal move")

	res = move(t, s, "zz")
	testutil.AssertFalse(t, res.Success)

	var st api.State
	call(t, s, http.MethodGet, api.PathState, "", &st)
	testutil.AssertEqual(t, st.Turn, "black")

	var bad api.MoveResult
	call(t, s, http.MethodPost, api.PathMove, `{"move":`, &bad)
	testutil.AssertFalse(t, bad.Success)
}

func TestLegalMoves(t *testing.T) {
	s := newServer(t, nil)
	var res api.LegalMovesResponse
	call(t, s, http.MethodPost, api.PathLegalMoves, `{"coord":"e2"}`, &res)
	testutil.AssertEqual(t, len(res.Moves), 2)
	testutil.AssertTrue(t, (res.Moves[0] == "e3" && res.Moves[1] == "e4") || (res.Moves[0] == "e4" && res.Moves[1] == "e3"))

	call(t, s, http.MethodPost, api.PathLegalMoves, `{"coord":"e4"}`, &res)
	testutil.AssertEqual(t, res.Moves, []string{})
}

func TestPromotionDestinationsAreSquares(t *testing.T) {
	st := store.NewMemory()
	// an invalid move list forces the FEN fallback
	st.Save(context.Background(), store.Record{FEN: "8/4P3/8/8/8/8/8/k6K w - - 0 1", Moves: []string{"x"}})
	s := newServer(t, st)

	var res api.LegalMovesResponse
	call(t, s, http.MethodPost, api.PathLegalMoves, `{"coord":"e7"}`, &res)
	testutil.AssertEqual(t, res.Moves, []string{"e8"})
	testutil.AssertTrue(t, move(t, s, "e7e8q").Success)
}

func TestCheckmateAndRestart(t *testing.T) {
	s := newServer(t, nil)
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		testutil.AssertTrue(t, move(t, s, m).Success, m)
	}

	var mate api.CheckmateResponse
	call(t, s, http.MethodPost, api.PathCheckmate, "", &mate)
	testutil.AssertTrue(t, mate.IsCheckmate)

	var st api.State
	call(t, s, http.MethodGet, api.PathState, "", &st)
	testutil.AssertTrue(t, st.IsCheck)
	testutil.AssertTrue(t, st.IsGameOver)
	testutil.AssertEqual(t, *st.Result, "0-1")
	testutil.AssertFalse(t, move(t, s, "e2e4").Success)

	var rs api.RestartResponse
	call(t, s, http.MethodPost, api.PathRestart, "", &rs)
	testutil.AssertTrue(t, rs.Success)
	testutil.AssertEqual(t, rs.Fen, startFEN)
	call(t, s, http.MethodPost, api.PathCheckmate, "", &mate)
	testutil.AssertFalse(t, mate.IsCheckmate)
}

func TestGameSurvivesRestartOfServer(t *testing.T) {
	st := store.NewMemory()
	s := newServer(t, st)
	testutil.AssertTrue(t, move(t, s, "e2e4").Success)
	testutil.AssertTrue(t, move(t, s, "f7f6").Success)
	testutil.AssertTrue(t, move(t, s, "d1h5").Success)

	s2 := newServer(t, st)
	var state api.State
	call(t, s2, http.MethodGet, api.PathState, "", &state)
	testutil.AssertEqual(t, state.Turn, "black")
	testutil.AssertTrue(t, state.IsCheck)
}

type flakyStore struct {
	*store.Memory
	fail bool
}

func (f *flakyStore) Save(ctx context.Context, rec store.Record) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Save(ctx, rec)
}

func TestUnsavedMoveIsNotPlayed(t *testing.T) {
	st := &flakyStore{Memory: store.NewMemory()}
	s := newServer(t, st)
	testutil.AssertTrue(t, move(t, s, "e2e4").Success)

	st.fail = true
	code := call(t, s, http.MethodPost, api.PathMove, `{"move":"e7e5"}`, nil)
	testutil.AssertEqual(t, code, http.StatusInternalServerError)
	code = call(t, s, http.MethodPost, api.PathRestart, "", nil)
	testutil.AssertEqual(t, code, http.StatusInternalServerError)

	var state api.State
	call(t, s, http.MethodGet, api.PathState, "", &state)
	testutil.AssertEqual(t, strings.Fields(state.Fen)[0], "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")
	testutil.AssertEqual(t, state.Turn, "black")

	st.fail = false
	testutil.AssertTrue(t, move(t, s, "e7e5").Success)
	rec, err := st.Load(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Moves, []string{"e2e4", "e7e5"})
}
