package game

import (
	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
)

// Policy is a strategy for playing a match. The match consults it for the
// cards to keep and for each pegging play. Scores are always given with
// the policy's own score first.
type Policy interface {
	// Keep splits hand into the cards to keep and the cards to throw into
	// the crib. The two must partition hand exactly.
	Keep(hand []cards.Card, scores [2]int, amDealer bool) (keep, throw []cards.Card, err error)
	// Peg returns the card to play from cards, or nil to pass. It may only
	// pass if no card in cards is a legal play.
	Peg(cards []cards.Card, history pegging.History, scores [2]int, amDealer bool) (*cards.Card, error)
}
