// Package api is the client side of the authority's HTTP interface. It
// shapes requests and decodes responses; it never checks chess rules.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/qnkhuat/chessterm/pkg/board"
)

const DefaultAddr = "http://127.0.0.1:8000"

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
		Session: uuid.NewString(),
	}
}

func (c *Client) GetState(ctx context.Context) (State, error) {
	var s State
	err := c.do(ctx, "get state", http.MethodGet, PathState, nil, &s)
	return s, err
}

// SubmitMove sends a 4 or 5 character move command. A rejected move is
// not an error: it comes back as MoveResult.Success == false.
func (c *Client) SubmitMove(ctx context.Context, move string) (MoveResult, error) {
	var res MoveResult
	err := c.do(ctx, "submit move", http.MethodPost, PathMove, MoveRequest{Move: move}, &res)
	return res, err
}

// GetLegalDestinations returns the squares the piece on sq may move to.
// Entries may come back as bare squares ("e4") or as full moves
// ("e2e4", "e7e8q"); full moves must start on sq and contribute their
// destination.
func (c *Client) GetLegalDestinations(ctx context.Context, sq board.Square) (map[board.Square]bool, error) {
	const op = "legal moves"
	var res LegalMovesResponse
	if err := c.do(ctx, op, http.MethodPost, PathLegalMoves, LegalMovesRequest{Coord: sq.String()}, &res); err != nil {
		return nil, err
	}
	dests := make(map[board.Square]bool, len(res.Moves))
	for _, m := range res.Moves {
		var coord string
		switch len(m) {
		case 2:
			coord = m
		case 4, 5:
			if m[:2] != sq.String() {
				return nil, &ProtocolError{Op: op, Err: fmt.Errorf("move %q does not start on %s", m, sq)}
			}
			coord = m[2:4]
		default:
			return nil, &ProtocolError{Op: op, Err: fmt.Errorf("unexpected move %q", m)}
		}
		dst, err := board.CoordToSquare(coord)
		if err != nil {
			return nil, &ProtocolError{Op: op, Err: err}
		}
		dests[dst] = true
	}
	return dests, nil
}

func (c *Client) GetCheckmate(ctx context.Context) (bool, error) {
	var res CheckmateResponse
	err := c.do(ctx, "checkmate", http.MethodPost, PathCheckmate, nil, &res)
	return res.IsCheckmate, err
}

// Restart asks the authority for a new game. The response body is ignored.
func (c *Client) Restart(ctx context.Context) error {
	return c.do(ctx, "restart", http.MethodPost, PathRestart, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Session != "" {
		req.Header.Set(HeaderSession, c.Session)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &TransportError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{Op: op, Err: err}
	}
	return nil
}
