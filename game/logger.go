package game

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/domino14/cribbage/cards"
)

type EventKind string

const (
	EventDeal     EventKind = "deal"
	EventTurn     EventKind = "turn"
	EventPeg      EventKind = "peg"
	EventPass     EventKind = "pass"
	EventHand     EventKind = "hand"
	EventCrib     EventKind = "crib"
	EventGameOver EventKind = "gameover"
)

// Event is an observation of something that happened in a match. Events
// never influence the outcome.
type Event struct {
	Kind   EventKind `yaml:"kind"`
	Hand   int       `yaml:"hand"`
	Player int       `yaml:"player"`
	Cards  []string  `yaml:"cards,omitempty,flow"`
	Points int       `yaml:"points,omitempty"`
	Total  int       `yaml:"total,omitempty"`
	Scores [2]int    `yaml:"scores,flow"`
}

// Logger is a sink for match events.
type Logger interface {
	Log(Event)
}

// NopLogger discards every event.
type NopLogger struct{}

func (NopLogger) Log(Event) {}

// ZerologLogger writes events at debug level.
type ZerologLogger struct {
	Logger zerolog.Logger
}

func (z ZerologLogger) Log(e Event) {
	z.Logger.Debug().
		Str("kind", string(e.Kind)).
		Int("hand", e.Hand).
		Int("player", e.Player).
		Strs("cards", e.Cards).
		Int("points", e.Points).
		Int("total", e.Total).
		Ints("scores", e.Scores[:]).
		Msg("match-event")
}

// MultiLogger sends each event to every logger in turn.
type MultiLogger []Logger

func (m MultiLogger) Log(e Event) {
	for _, l := range m {
		l.Log(e)
	}
}

// Transcript keeps every event so a match can be replayed afterwards.
type Transcript struct {
	mu     sync.Mutex
	Events []Event `yaml:"events"`
}

func (t *Transcript) Log(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Events = append(t.Events, e)
}

func cardStrings(cs ...cards.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
