// Package player contains automatic cribbage players. A player is made of
// two halves: a Thrower decides which cards to keep, and a Pegger decides
// which card to play during the pegging.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/game"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/rules"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// Thrower is the keep/throw half of a policy.
type Thrower interface {
	Keep(hand []cards.Card, scores [2]int, amDealer bool) (keep, throw []cards.Card, err error)
}

// Pegger is the pegging half of a policy.
type Pegger interface {
	Peg(hand []cards.Card, history pegging.History, scores [2]int, amDealer bool) (*cards.Card, error)
}

// Compound is a full policy made of a Thrower and a Pegger.
type Compound struct {
	Thrower
	Pegger
	name string
}

// NewCompound creates a policy that keeps with t and pegs with p.
func NewCompound(name string, t Thrower, p Pegger) *Compound {
	return &Compound{Thrower: t, Pegger: p, name: name}
}

func (c *Compound) String() string {
	return c.name
}

var _ game.Policy = (*Compound)(nil)

func thrower(name string, r *rules.RuleSet, rng cards.RNG) (Thrower, error) {
	switch name {
	case "random":
		return NewRandomThrower(r, rng), nil
	case "greedy":
		return NewGreedyThrower(r, rng), nil
	}
	return nil, fmt.Errorf("%w: thrower %q", ErrUnknownPolicy, name)
}

func pegger(name string, r *rules.RuleSet, rng cards.RNG) (Pegger, error) {
	switch name {
	case "random":
		return NewRandomPegger(r, rng), nil
	case "greedy":
		return NewGreedyPegger(r, rng), nil
	}
	return nil, fmt.Errorf("%w: pegger %q", ErrUnknownPolicy, name)
}

// FromName builds a policy from its name. "greedy" and "random" use the
// same strategy for both halves; "greedy-random" keeps greedily and pegs
// at random, and so on.
func FromName(name string, r *rules.RuleSet, rng cards.RNG) (*Compound, error) {
	tname, pname, found := strings.Cut(strings.ToLower(strings.TrimSpace(name)), "-")
	if !found {
		pname = tname
	}
	t, err := thrower(tname, r, rng)
	if err != nil {
		return nil, err
	}
	p, err := pegger(pname, r, rng)
	if err != nil {
		return nil, err
	}
	return NewCompound(tname+"-"+pname, t, p), nil
}

// Names lists the policies FromName knows.
func Names() []string {
	return []string{"greedy", "random", "greedy-random", "random-greedy"}
}
