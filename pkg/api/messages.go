package api

const (
	PathState      = "/api/state"
	PathMove       = "/api/move"
	PathLegalMoves = "/api/legal_moves"
	PathCheckmate  = "/api/is_checkmate"
	PathRestart    = "/api/restart"

	HeaderSession = "X-Session-ID"
)

// State is the authority's current snapshot. The client reads Fen, Turn
// and IsCheck; the remaining fields are informational.
type State struct {
	Fen        string  `json:"fen"`
	Turn       string  `json:"turn,omitempty"`
	IsCheck    bool    `json:"is_check"`
	IsGameOver bool    `json:"is_game_over,omitempty"`
	Result     *string `json:"result,omitempty"`
}

type MoveRequest struct {
	Move string `json:"move"`
}

type MoveResult struct {
	Success bool   `json:"success"`
	Fen     string `json:"fen,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LegalMovesRequest struct {
	Coord string `json:"coord"`
}

type LegalMovesResponse struct {
	Moves []string `json:"moves"`
}

type CheckmateResponse struct {
	IsCheckmate bool `json:"is_checkmate"`
}

type RestartResponse struct {
	Success bool   `json:"success"`
	Fen     string `json:"fen,omitempty"`
}
