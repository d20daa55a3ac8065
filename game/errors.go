package game

import (
	"errors"
	"fmt"
)

// Protocol violations. A policy that commits one has broken its contract;
// the match is aborted rather than corrected.
var (
	ErrIllegalSplit  = errors.New("split does not partition hand")
	ErrSpuriousPass  = errors.New("passing when a legal play exists")
	ErrIllegalCard   = errors.New("illegal pegging card")
	ErrCardNotInHand = errors.New("played card not in hand")
)

// ProtocolError reports a contract breach by one of the match's policies.
type ProtocolError struct {
	Player int
	Phase  Phase
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("player %d in phase %v: %v", e.Player, e.Phase, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
