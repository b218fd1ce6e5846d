package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestRuleViolation(t *testing.T) {
	err := fmt.Errorf("applying move: %w", ErrWrongTurn)
	var v RuleViolation
	switch {
	case !errors.As(err, &v):
		t.Errorf("wanted wrapped error to be a rule violation")
	case v != ErrWrongTurn:
		t.Errorf("wanted %v, got %v", ErrWrongTurn, v)
	case v.Error() != "not your turn":
		t.Errorf("unwanted message: %q", v.Error())
	}
}
