package board

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedEncoding = errors.New("malformed position encoding")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrUnknownPiece      = errors.New("unknown piece")
)

// EncodingError carries the rank group that failed to decode.
type EncodingError struct {
	Err  error
	Rank int // 0-based index of the rank group, -1 when the group count is wrong
	Text string
}

func (e *EncodingError) Error() string {
	if e.Rank < 0 {
		return fmt.Sprintf("%v: %q", e.Err, e.Text)
	}
	return fmt.Sprintf("rank group %d %q: %v", e.Rank, e.Text, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Is lets every EncodingError match ErrMalformedEncoding, even when the
// underlying cause is an unknown piece letter.
func (e *EncodingError) Is(target error) bool {
	return target == ErrMalformedEncoding
}
