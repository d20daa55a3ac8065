// Package rules holds the RuleSet: every tunable constant of a game of
// Cribbage, exposed as pure queries. A RuleSet is immutable once built and
// may be shared freely between goroutines.
package rules

import (
	"errors"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/cribbage/cards"
)

const (
	DefaultWinningScore = 121
	DefaultPeggingLimit = 31

	skunkLine       = 90
	doubleSkunkLine = 60
)

var (
	ErrBadWinningScore = errors.New("winning score must be positive")
	ErrBadPeggingLimit = errors.New("pegging limit must be at least 10")
)

// RuleSet is a simple struct that encapsulates the scoring and match rules.
type RuleSet struct {
	winningScore int
	peggingLimit int
	keepCards    int
	throwCards   int

	ranks        []cards.Rank
	suits        []cards.Suit
	values       []int
	throwIndices [][]int
}

// Option tweaks a RuleSet while it is being built.
type Option func(*RuleSet)

// WithWinningScore sets the score needed to win a match.
func WithWinningScore(s int) Option {
	return func(r *RuleSet) { r.winningScore = s }
}

// WithPeggingLimit sets the maximum running total in a pegging round.
func WithPeggingLimit(l int) Option {
	return func(r *RuleSet) { r.peggingLimit = l }
}

// New builds a RuleSet with standard rules, modified by opts.
func New(opts ...Option) (*RuleSet, error) {
	r := &RuleSet{
		winningScore: DefaultWinningScore,
		peggingLimit: DefaultPeggingLimit,
		keepCards:    4,
		throwCards:   2,
	}
	for _, o := range opts {
		o(r)
	}
	if r.winningScore <= 0 {
		return nil, ErrBadWinningScore
	}
	// a limit under the largest card value would make every card illegal
	if r.peggingLimit < 10 {
		return nil, ErrBadPeggingLimit
	}
	for rank := cards.Ace; rank <= cards.King; rank++ {
		r.ranks = append(r.ranks, rank)
	}
	r.suits = []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	for v := 1; v <= 10; v++ {
		r.values = append(r.values, v)
	}
	r.throwIndices = combin.Combinations(r.keepCards+r.throwCards, r.throwCards)
	return r, nil
}

var standard, _ = New()

// Standard returns the standard rules. The returned RuleSet is shared.
func Standard() *RuleSet {
	return standard
}

func (r *RuleSet) Ranks() []cards.Rank {
	return append([]cards.Rank(nil), r.ranks...)
}

func (r *RuleSet) Suits() []cards.Suit {
	return append([]cards.Suit(nil), r.suits...)
}

// Values returns every distinct pegging value.
func (r *RuleSet) Values() []int {
	return append([]int(nil), r.values...)
}

// RankValue is the pegging value of a rank: face cards count ten.
func (r *RuleSet) RankValue(rank cards.Rank) int {
	return min(int(rank), 10)
}

// CardValue is a shortcut for RankValue(c.Rank).
func (r *RuleSet) CardValue(c cards.Card) int {
	return r.RankValue(c.Rank)
}

func (r *RuleSet) FifteenValue() int {
	return 2
}

// PairValue is the value of a single pair in a hand.
func (r *RuleSet) PairValue() int {
	return 2
}

// StraightValue is the value of count parallel runs of the given length.
func (r *RuleSet) StraightValue(length, count int) int {
	if length < 3 {
		return 0
	}
	return length * count
}

// TurnCardValue is the dealer's bonus for the turned card ("his heels").
func (r *RuleSet) TurnCardValue(turn cards.Card) int {
	if turn.Rank == cards.Jack {
		return 2
	}
	return 0
}

// NobValue is the bonus for holding the jack of the turn card's suit.
func (r *RuleSet) NobValue(c cards.Card, turn *cards.Card) int {
	if turn != nil && c.Rank == cards.Jack && c.Suit == turn.Suit {
		return 1
	}
	return 0
}

// HandFlushValue is the value of a flush among the hand cards alone.
func (r *RuleSet) HandFlushValue(size int) int {
	if size >= 4 {
		return size
	}
	return 0
}

// TurnFlushValue is the value of a flush that includes the turn card.
func (r *RuleSet) TurnFlushValue(size int) int {
	if size >= 5 {
		return size
	}
	return 0
}

func (r *RuleSet) KeepCards() int {
	return r.keepCards
}

func (r *RuleSet) ThrowCards() int {
	return r.throwCards
}

// HandSize is the number of cards dealt to each player.
func (r *RuleSet) HandSize() int {
	return r.keepCards + r.throwCards
}

// DealCards is the number of cards dealt per hand: both hands plus the turn.
func (r *RuleSet) DealCards() int {
	return 2*r.HandSize() + 1
}

// ThrowIndices returns every combination of indices into a dealt hand that
// may be thrown, each in increasing order. The caller owns the result.
func (r *RuleSet) ThrowIndices() [][]int {
	out := make([][]int, len(r.throwIndices))
	for i, idx := range r.throwIndices {
		out[i] = append([]int(nil), idx...)
	}
	return out
}

func (r *RuleSet) PeggingLimit() int {
	return r.peggingLimit
}

// PeggingExactValue is the value of hitting the pegging limit exactly;
// worth less if the opponent had already said go.
func (r *RuleSet) PeggingExactValue(isGo bool) int {
	if isGo {
		return 1
	}
	return 2
}

// PeggingPairValue is the value of count consecutive cards of one rank.
func (r *RuleSet) PeggingPairValue(count int) int {
	if count < 2 {
		return 0
	}
	return r.PairValue() * count * (count - 1) / 2
}

func (r *RuleSet) PeggingStraightValue(length int) int {
	if length < 3 {
		return 0
	}
	return length
}

// PeggingSumValue is the bonus for bringing the running total to 15.
func (r *RuleSet) PeggingSumValue(total int) int {
	if total == 15 {
		return 2
	}
	return 0
}

// PeggingGoValue is the value awarded to the opponent of a player who
// cannot play.
func (r *RuleSet) PeggingGoValue() int {
	return 1
}

func (r *RuleSet) WinningScore() int {
	return r.winningScore
}

// GameValue returns the point value of a match ending with the given
// scores. Positive values are won by player 0, negative by player 1. It is
// 0 if neither player has reached the winning score.
func (r *RuleSet) GameValue(score0, score1 int) int {
	if max(score0, score1) < r.winningScore {
		return 0
	}
	loser := min(score0, score1)
	points := 1
	switch {
	case loser <= doubleSkunkLine:
		points = 3
	case loser <= skunkLine:
		points = 2
	}
	if score0 > score1 {
		return points
	}
	return -points
}

// NewDeck returns an unshuffled deck made from this rule set's ranks and suits.
func (r *RuleSet) NewDeck() *cards.Deck {
	return cards.NewDeck(r.ranks, r.suits)
}
