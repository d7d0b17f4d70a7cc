package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qnkhuat/chessterm/internal/testutil"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "client", zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Str("move", "e2e4").Msg("submitting move")

	var line map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &line))
	testutil.AssertEqual(t, line["component"], "client")
	testutil.AssertEqual(t, line["move"], "e2e4")
	testutil.AssertEqual(t, line["message"], "submitting move")
}

func TestInitAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	for i := 0; i < 2; i++ {
		log, closer, err := Init(path, "client", zerolog.InfoLevel)
		testutil.AssertNoError(t, err)
		log.Info().Int("run", i).Msg("started")
		testutil.AssertNoError(t, closer.Close())
	}
	b, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, bytes.Count(b, []byte("\n")), 2)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lvl, zerolog.InfoLevel)
	lvl, err = ParseLevel("debug")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lvl, zerolog.DebugLevel)
	_, err = ParseLevel("loud")
	testutil.AssertTrue(t, err != nil)
}
