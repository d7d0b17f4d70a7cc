package store

import (
	"context"
	"testing"

	"github.com/qnkhuat/chessterm/internal/testutil"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx)
	testutil.AssertErrorIs(t, err, ErrNotFound)

	rec := Record{FEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", Moves: []string{"e2e4"}}
	testutil.AssertNoError(t, s.Save(ctx, rec))

	// the store must not alias the caller's slice
	rec.Moves[0] = "d2d4"
	got, err := s.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, []string{"e2e4"})

	next := Record{FEN: "8/8/8/8/8/8/8/8 w - - 0 1"}
	testutil.AssertNoError(t, s.Save(ctx, next))
	got, err = s.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, next)
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestBadgerInMemory(t *testing.T) {
	b, err := OpenBadger("")
	testutil.AssertNoError(t, err)
	defer b.Close()
	testStore(t, b)
}

func TestBadgerReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := OpenBadger(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, b.Save(ctx, Record{FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Moves: []string{}}))
	testutil.AssertNoError(t, b.Close())

	b, err = OpenBadger(dir)
	testutil.AssertNoError(t, err)
	defer b.Close()
	got, err := b.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.FEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
}
