// Package game runs a cribbage match between two policies. A match is a
// state machine over the phases of a hand; it deals, collects discards,
// runs the pegging and scores the hands until one player reaches the
// winning score.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/rules"
	"github.com/domino14/cribbage/scoring"
)

var ErrNilPolicy = errors.New("match needs two policies")

// Result is the outcome of a finished match.
type Result struct {
	// Value is the game value from player 0's point of view.
	Value  int    `yaml:"value"`
	Hands  int    `yaml:"hands"`
	Scores [2]int `yaml:"scores,flow"`
}

// Match plays one game between two policies. A Match is not safe for
// concurrent use, but separate matches share nothing.
type Match struct {
	rules    *rules.RuleSet
	policies [2]Policy
	rng      cards.RNG
	logger   Logger
	dealer   int
}

type MatchOption func(*Match)

// WithLogger sends every match event to l.
func WithLogger(l Logger) MatchOption {
	return func(m *Match) {
		m.logger = l
	}
}

// WithFirstDealer sets which player deals the first hand. Player 0 deals
// first by default.
func WithFirstDealer(player int) MatchOption {
	return func(m *Match) {
		m.dealer = player & 1
	}
}

// NewMatch creates a match. The rng shuffles every deal; a seeded rng
// makes the whole match reproducible.
func NewMatch(r *rules.RuleSet, p0, p1 Policy, rng cards.RNG, opts ...MatchOption) (*Match, error) {
	if p0 == nil || p1 == nil {
		return nil, ErrNilPolicy
	}
	if r == nil {
		r = rules.Standard()
	}
	m := &Match{
		rules:    r,
		policies: [2]Policy{p0, p1},
		rng:      rng,
		logger:   NopLogger{},
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// Play runs the match to completion. The context is checked between
// phases.
func (m *Match) Play(ctx context.Context) (Result, error) {
	st := MatchState{Phase: PhaseDeal, Dealer: m.dealer}
	var err error
	for st.Phase != PhaseGameOver {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		st, err = m.Step(st)
		if err != nil {
			return Result{}, err
		}
	}
	res := Result{
		Value:  m.rules.GameValue(st.Scores[0], st.Scores[1]),
		Hands:  st.Hand,
		Scores: st.Scores,
	}
	m.logger.Log(Event{Kind: EventGameOver, Hand: st.Hand, Points: res.Value, Scores: st.Scores})
	log.Debug().Int("value", res.Value).Int("hands", res.Hands).
		Ints("scores", res.Scores[:]).Msg("match-over")
	return res, nil
}

// Step advances st by one transition. During pegging one transition is a
// single play or pass.
func (m *Match) Step(st MatchState) (MatchState, error) {
	switch st.Phase {
	case PhaseDeal:
		return m.deal(st)
	case PhaseDiscard:
		return m.discard(st)
	case PhasePeg:
		return m.peg(st)
	case PhaseScoreNonDealer:
		return m.scoreHand(st, 1-st.Dealer, PhaseScoreDealer), nil
	case PhaseScoreDealer:
		return m.scoreHand(st, st.Dealer, PhaseScoreCrib), nil
	case PhaseScoreCrib:
		return m.scoreCrib(st), nil
	case PhaseRotateDealer:
		st.Dealer = 1 - st.Dealer
		st.Phase = m.next(st, PhaseDeal)
		return st, nil
	case PhaseGameOver:
		return st, nil
	}
	return st, fmt.Errorf("unknown phase %d", st.Phase)
}

func (m *Match) won(st MatchState) bool {
	return max(st.Scores[0], st.Scores[1]) >= m.rules.WinningScore()
}

// next is the phase to go to, unless the match is already over.
func (m *Match) next(st MatchState, p Phase) Phase {
	if m.won(st) {
		return PhaseGameOver
	}
	return p
}

func (m *Match) addScore(st *MatchState, player, points int) {
	st.Scores[player] += points
}

func (m *Match) deal(st MatchState) (MatchState, error) {
	deck := m.rules.NewDeck()
	deck.Shuffle(m.rng)
	dealt, err := deck.Deal(m.rules.DealCards())
	if err != nil {
		return st, err
	}
	n := m.rules.HandSize()
	st.Hand++
	st.Dealt = [2][]cards.Card{dealt[:n], dealt[n : 2*n]}
	st.Turn = dealt[2*n]
	st.Keep = [2][]cards.Card{}
	st.Throw = [2][]cards.Card{}
	for p := range 2 {
		m.logger.Log(Event{Kind: EventDeal, Hand: st.Hand, Player: p,
			Cards: cardStrings(st.Dealt[p]...), Scores: st.Scores})
	}
	st.Phase = PhaseDiscard
	return st, nil
}

func (m *Match) discard(st MatchState) (MatchState, error) {
	for p := range 2 {
		hand := st.Dealt[p]
		keep, throw, err := m.policies[p].Keep(slices.Clone(hand), st.scoresFor(p), p == st.Dealer)
		if err != nil {
			return st, fmt.Errorf("player %d keep: %w", p, err)
		}
		if len(throw) != m.rules.ThrowCards() || !scoring.IsLegalSplit(hand, keep, throw) {
			return st, &ProtocolError{Player: p, Phase: PhaseDiscard, Err: ErrIllegalSplit}
		}
		st.Keep[p] = slices.Clone(keep)
		st.Throw[p] = slices.Clone(throw)
	}
	st.Pegging = [2][]cards.Card{slices.Clone(st.Keep[0]), slices.Clone(st.Keep[1])}

	heels := m.rules.TurnCardValue(st.Turn)
	m.addScore(&st, st.Dealer, heels)
	m.logger.Log(Event{Kind: EventTurn, Hand: st.Hand, Player: st.Dealer,
		Cards: cardStrings(st.Turn), Points: heels, Scores: st.Scores})

	st.History = pegging.New()
	st.OnTurn = 1 - st.Dealer
	st.Phase = m.next(st, PhasePeg)
	return st, nil
}

func (m *Match) pegDone(st MatchState) bool {
	return len(st.Pegging[0])+len(st.Pegging[1]) == 0 && st.History.IsStartOfRound()
}

func (m *Match) peg(st MatchState) (MatchState, error) {
	if m.won(st) {
		st.Phase = PhaseGameOver
		return st, nil
	}
	if m.pegDone(st) {
		st.Phase = PhaseScoreNonDealer
		return st, nil
	}
	p := st.OnTurn
	role := st.role(p)
	left := st.Pegging[p]

	var play *cards.Card
	if !st.History.HasPassed(role) {
		var err error
		play, err = m.policies[p].Peg(slices.Clone(left), st.History, st.scoresFor(p), p == st.Dealer)
		if err != nil {
			return st, fmt.Errorf("player %d peg: %w", p, err)
		}
		switch {
		case play == nil && st.History.HasLegalPlay(m.rules, left, role):
			return st, &ProtocolError{Player: p, Phase: PhasePeg, Err: ErrSpuriousPass}
		case play != nil && !st.History.IsLegal(m.rules, *play, role):
			return st, &ProtocolError{Player: p, Phase: PhasePeg, Err: ErrIllegalCard}
		case play != nil && !cards.Contains(left, *play):
			return st, &ProtocolError{Player: p, Phase: PhasePeg, Err: ErrCardNotInHand}
		}
	}

	h, score, err := st.History.Play(m.rules, play, role)
	if err != nil {
		return st, &ProtocolError{Player: p, Phase: PhasePeg, Err: ErrIllegalCard}
	}
	st.History = h

	evt := Event{Kind: EventPass, Hand: st.Hand, Player: p, Total: h.Total()}
	if score < 0 {
		// a go scores for the opponent
		m.addScore(&st, 1-p, -score*m.rules.PeggingGoValue())
		evt.Player = 1 - p
		evt.Points = -score * m.rules.PeggingGoValue()
	} else {
		m.addScore(&st, p, score)
		evt.Points = score
	}
	if play != nil {
		st.Pegging[p], _ = cards.Remove(left, *play)
		evt.Kind = EventPeg
		evt.Cards = cardStrings(*play)
	}
	evt.Scores = st.Scores
	m.logger.Log(evt)

	st.OnTurn = 1 - p
	return st, nil
}

func (m *Match) scoreHand(st MatchState, player int, after Phase) MatchState {
	if m.won(st) {
		st.Phase = PhaseGameOver
		return st
	}
	b := scoring.Score(m.rules, st.Keep[player], &st.Turn, false)
	m.addScore(&st, player, b.Total)
	m.logger.Log(Event{Kind: EventHand, Hand: st.Hand, Player: player,
		Cards: cardStrings(st.Keep[player]...), Points: b.Total, Scores: st.Scores})
	st.Phase = m.next(st, after)
	return st
}

func (m *Match) scoreCrib(st MatchState) MatchState {
	if m.won(st) {
		st.Phase = PhaseGameOver
		return st
	}
	crib := st.crib()
	b := scoring.Score(m.rules, crib, &st.Turn, true)
	m.addScore(&st, st.Dealer, b.Total)
	m.logger.Log(Event{Kind: EventCrib, Hand: st.Hand, Player: st.Dealer,
		Cards: cardStrings(crib...), Points: b.Total, Scores: st.Scores})
	st.Phase = m.next(st, PhaseRotateDealer)
	return st
}
