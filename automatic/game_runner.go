// Package automatic plays computer vs computer cribbage matches and
// evaluates one policy against another.
package automatic

import (
	"context"
	"strconv"

	"github.com/domino14/cribbage/ai/player"
	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/game"
	"github.com/domino14/cribbage/rules"
)

// MatchRecord is the outcome of one evaluated match, seen from the side of
// the policy under evaluation (policy 0).
type MatchRecord struct {
	ID   int
	Seed [cards.SeedSize]byte
	// Policy0First is true when policy 0 sat in seat 0 and dealt first.
	Policy0First bool
	Value        int
	Hands        int
	// Scores are in policy order, not seat order.
	Scores [2]int
}

func (m MatchRecord) csvRecord() []string {
	return []string{
		strconv.Itoa(m.ID),
		FormatSeed(m.Seed),
		strconv.FormatBool(m.Policy0First),
		strconv.Itoa(m.Value),
		strconv.Itoa(m.Hands),
		strconv.Itoa(m.Scores[0]),
		strconv.Itoa(m.Scores[1]),
	}
}

// GameRunner plays matches between two named policies. It holds no
// per-match state and may be shared by several workers.
type GameRunner struct {
	rules  *rules.RuleSet
	names  [2]string
	logger game.Logger
}

// NewGameRunner creates a runner for the given policy names; see
// player.FromName. The names are checked here so a bad name fails before
// any match is played.
func NewGameRunner(r *rules.RuleSet, policy0, policy1 string) (*GameRunner, error) {
	if r == nil {
		r = rules.Standard()
	}
	for _, n := range []string{policy0, policy1} {
		if _, err := player.FromName(n, r, nil); err != nil {
			return nil, err
		}
	}
	return &GameRunner{rules: r, names: [2]string{policy0, policy1}, logger: game.NopLogger{}}, nil
}

// SetLogger sends the events of every match to l.
func (r *GameRunner) SetLogger(l game.Logger) {
	r.logger = l
}

func (r *GameRunner) Names() [2]string {
	return r.names
}

// PlayMatch plays one match from the given seed. Even ids seat policy 0
// first, odd ids seat policy 1 first. The same id and seed always give the
// same match.
func (r *GameRunner) PlayMatch(ctx context.Context, id int, seed [cards.SeedSize]byte) (MatchRecord, error) {
	rng := cards.NewRNG(seed)
	var policies [2]game.Policy
	for i, n := range r.names {
		p, err := player.FromName(n, r.rules, rng)
		if err != nil {
			return MatchRecord{}, err
		}
		policies[i] = p
	}
	first := id%2 == 0
	if !first {
		policies[0], policies[1] = policies[1], policies[0]
	}
	m, err := game.NewMatch(r.rules, policies[0], policies[1], rng, game.WithLogger(r.logger))
	if err != nil {
		return MatchRecord{}, err
	}
	res, err := m.Play(ctx)
	if err != nil {
		return MatchRecord{}, err
	}
	rec := MatchRecord{ID: id, Seed: seed, Policy0First: first, Hands: res.Hands}
	if first {
		rec.Value = res.Value
		rec.Scores = res.Scores
	} else {
		rec.Value = -res.Value
		rec.Scores = [2]int{res.Scores[1], res.Scores[0]}
	}
	return rec, nil
}
