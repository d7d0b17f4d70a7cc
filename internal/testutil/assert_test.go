package testutil

import (
	"errors"
	"fmt"
	"testing"
)

func TestAssertionsPass(t *testing.T) {
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, "e2e4", "e2e4", "move %d", 1)
	AssertNoError(t, nil)
	sentinel := errors.New("boom")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	AssertTrue(t, true)
	AssertFalse(t, false)
	AssertContains(t, "White to move", "move")
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		args []interface{}
		want string
	}{
		{nil, ""},
		{[]interface{}{"plain"}, "plain: "},
		{[]interface{}{"rank %d", 8}, "rank 8: "},
		{[]interface{}{42}, "42: "},
	}
	for _, tt := range tests {
		if got := prefix(tt.args...); got != tt.want {
			t.Errorf("prefix(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
