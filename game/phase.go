package game

import (
	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
)

// A Phase is one step of a hand.
type Phase uint8

const (
	PhaseDeal Phase = iota
	PhaseDiscard
	PhasePeg
	PhaseScoreNonDealer
	PhaseScoreDealer
	PhaseScoreCrib
	PhaseRotateDealer
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDeal:
		return "deal"
	case PhaseDiscard:
		return "discard"
	case PhasePeg:
		return "peg"
	case PhaseScoreNonDealer:
		return "score_nondealer"
	case PhaseScoreDealer:
		return "score_dealer"
	case PhaseScoreCrib:
		return "score_crib"
	case PhaseRotateDealer:
		return "rotate_dealer"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// MatchState is everything a match knows between phases. Phase functions
// take a state and return the next one.
type MatchState struct {
	Phase  Phase
	Scores [2]int
	Dealer int
	// Hand counts the hands dealt so far, starting at 1 for the first.
	Hand int

	Dealt [2][]cards.Card
	Keep  [2][]cards.Card
	Throw [2][]cards.Card
	// Pegging holds the cards each player has left to peg.
	Pegging [2][]cards.Card
	Turn    cards.Card

	History pegging.History
	// OnTurn is the player to act next while pegging.
	OnTurn int
}

// role maps a seat to its pegging role for the current hand.
func (s *MatchState) role(player int) int {
	if player == s.Dealer {
		return pegging.Dealer
	}
	return pegging.NonDealer
}

// scoresFor returns the scores with player's own first.
func (s *MatchState) scoresFor(player int) [2]int {
	return [2]int{s.Scores[player], s.Scores[1-player]}
}

func (s *MatchState) crib() []cards.Card {
	crib := make([]cards.Card, 0, len(s.Throw[0])+len(s.Throw[1]))
	crib = append(crib, s.Throw[s.Dealer]...)
	return append(crib, s.Throw[1-s.Dealer]...)
}
