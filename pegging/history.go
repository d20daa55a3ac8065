// Package pegging keeps the history of the cards played during the pegging
// phase of a hand and scores each play as it is made.
//
// Players are identified from the point of view of the deal: 0 is the
// dealer and 1 is the non-dealer.
package pegging

import (
	"errors"
	"strconv"
	"strings"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/rules"
)

const (
	Dealer    = 0
	NonDealer = 1
)

// ErrIllegalPlay is returned when a card would take the running total past
// the pegging limit, or is played by a player who already passed this round.
var ErrIllegalPlay = errors.New("illegal pegging play")

type eventKind uint8

const (
	eventPlay eventKind = iota
	eventPass
	// eventClose is the pass that ends a round. It separates the events of
	// one round from the next.
	eventClose
)

type event struct {
	kind   eventKind
	player int
	card   cards.Card
}

// History is the pegging history of one hand. A History is an immutable
// value: Play returns a new History and leaves the receiver untouched, so
// earlier histories can be kept and replayed. The zero value is an empty
// history at the start of a round.
type History struct {
	// events is an append-only log. A History never writes into the
	// backing array past its own length, so histories may share it.
	events     []event
	roundStart int
	total      int
	passed     [2]bool
}

// Play is a single entry in the pegging record. Card is nil for a pass.
type Play struct {
	Player int
	Card   *cards.Card
}

// New returns an empty history.
func New() History {
	return History{}
}

// Role returns the pegging player index for a seat that is or is not the
// dealer.
func Role(amDealer bool) int {
	if amDealer {
		return Dealer
	}
	return NonDealer
}

func other(player int) int {
	return 1 - player
}

// Play returns the history that results from the given player playing
// card after this history, along with the points the play earns. A nil card
// is a pass ("go"). A negative score means the points go to the other
// player. Illegal plays return ErrIllegalPlay and this history unchanged.
func (h History) Play(r *rules.RuleSet, card *cards.Card, player int) (History, int, error) {
	score, ok := h.Score(r, card, player)
	if !ok {
		return h, 0, ErrIllegalPlay
	}
	next := History{
		roundStart: h.roundStart,
		total:      h.total,
		passed:     h.passed,
	}
	switch {
	case card != nil:
		next.events = h.appendEvent(event{kind: eventPlay, player: player, card: *card})
		next.total += r.CardValue(*card)
	case h.passed[other(player)]:
		// both players have passed; start a new round
		next.events = h.appendEvent(event{kind: eventClose, player: player})
		next.roundStart = len(next.events)
		next.total = 0
		next.passed = [2]bool{}
	default:
		next.events = h.appendEvent(event{kind: eventPass, player: player})
		next.passed[player] = true
	}
	return next, score, nil
}

func (h History) appendEvent(e event) []event {
	// the full slice expression forces a copy, so a branch off an older
	// history can't clobber events seen by a newer one
	return append(h.events[:len(h.events):len(h.events)], e)
}

// Score returns the points the given player would earn by playing card (nil
// for a pass) after this history, without changing it. The score is
// negative when the points go to the other player. ok is false if the play
// is illegal.
func (h History) Score(r *rules.RuleSet, card *cards.Card, player int) (score int, ok bool) {
	if card == nil {
		switch {
		case h.passed[player]:
			// already said go; nothing more to give
			return 0, true
		case h.passed[other(player)]:
			// the round closes
			return 0, true
		case h.total == r.PeggingLimit():
			// the limit bonus was already taken by whoever reached it
			return 0, true
		default:
			return -r.PeggingGoValue(), true
		}
	}
	if h.passed[player] {
		return 0, false
	}
	newTotal := h.total + r.CardValue(*card)
	if newTotal > r.PeggingLimit() {
		return 0, false
	}

	matches, run := h.scan(card.Rank)
	score = r.PeggingPairValue(matches) + r.PeggingStraightValue(run) + r.PeggingSumValue(newTotal)
	if newTotal == r.PeggingLimit() {
		score += r.PeggingExactValue(h.passed[other(player)])
	}
	return score, true
}

// scan walks backward over the cards of the current round as if rank had
// just been played. It returns the number of consecutive cards of that rank
// ending with the new card, and the length of the longest run of distinct
// consecutive ranks ending with the new card.
func (h History) scan(rank cards.Rank) (maxMatches, maxRun int) {
	var seen [cards.NumRanks + 1]bool
	seen[rank] = true
	count := 1
	curMatches := 1
	maxMatches = 1
	maxRun = 1
	minRank, maxRank := rank, rank
	doubles := false

	for i := len(h.events) - 1; i >= h.roundStart && (curMatches == maxMatches || !doubles); i-- {
		e := h.events[i]
		if e.kind != eventPlay {
			continue
		}
		count++
		r := e.card.Rank
		if r == rank && curMatches != -1 {
			curMatches++
			maxMatches = max(maxMatches, curMatches)
		} else if r != rank {
			curMatches = -1
		}
		if seen[r] {
			doubles = true
		} else {
			seen[r] = true
		}
		minRank = min(minRank, r)
		maxRank = max(maxRank, r)
		if !doubles && int(maxRank-minRank)+1 == count {
			maxRun = count
		}
	}
	return maxMatches, maxRun
}

// IsLegal returns whether playing card would keep the running total within
// the pegging limit. It assumes the player holds the card.
func (h History) IsLegal(r *rules.RuleSet, card cards.Card, player int) bool {
	return h.total+r.CardValue(card) <= r.PeggingLimit()
}

// HasLegalPlay returns whether the player can play any card from hand.
func (h History) HasLegalPlay(r *rules.RuleSet, hand []cards.Card, player int) bool {
	if h.passed[player] {
		return false
	}
	for _, c := range hand {
		if h.IsLegal(r, c, player) {
			return true
		}
	}
	return false
}

// IsStartOfRound returns whether the running total is zero.
func (h History) IsStartOfRound() bool {
	return h.total == 0
}

// Total is the running total of the current round.
func (h History) Total() int {
	return h.total
}

// HasPassed returns whether the player has passed in the current round.
func (h History) HasPassed(player int) bool {
	return h.passed[player]
}

// Len is the number of events recorded, passes included.
func (h History) Len() int {
	return len(h.events)
}

// CurrentRound returns the plays made in the current round, oldest first.
func (h History) CurrentRound() []Play {
	return toPlays(h.events[h.roundStart:])
}

// Plays returns every round of the history, oldest first, each as its
// ordered list of plays. The pass that closes a round is not listed, and
// empty rounds are skipped.
func (h History) Plays() [][]Play {
	var rounds [][]Play
	start := 0
	for i, e := range h.events {
		if e.kind == eventClose {
			if i > start {
				rounds = append(rounds, toPlays(h.events[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(h.events) {
		rounds = append(rounds, toPlays(h.events[start:]))
	}
	return rounds
}

func toPlays(evts []event) []Play {
	out := make([]Play, 0, len(evts))
	for _, e := range evts {
		p := Play{Player: e.player}
		if e.kind == eventPlay {
			c := e.card
			p.Card = &c
		}
		out = append(out, p)
	}
	return out
}

// String shows the current round, e.g. "5S 10H go (15)".
func (h History) String() string {
	var sb strings.Builder
	for _, p := range h.CurrentRound() {
		if p.Card == nil {
			sb.WriteString("go ")
		} else {
			sb.WriteString(p.Card.String())
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("(" + strconv.Itoa(h.total) + ")")
	return sb.String()
}
