package automatic

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/cribbage/stats"
)

// Report summarizes an evaluation of policy 0 against policy 1. Values are
// game values from policy 0's side: +1 win, +2 skunk, +3 double skunk and
// the negatives for losses.
type Report struct {
	Policies [2]string `yaml:"policies,flow"`
	Games    int       `yaml:"games"`
	// Outcomes counts matches by value.
	Outcomes map[int]int `yaml:"outcomes"`
	// Net is the mean value per match.
	Net    float64 `yaml:"net"`
	StdErr float64 `yaml:"stderr"`
	// Confidence is Net less two standard errors.
	Confidence float64 `yaml:"confidence"`
	// Margin95 is the half width of the 95% interval around Net.
	Margin95     float64 `yaml:"margin95"`
	HandsPerGame float64 `yaml:"hands_per_game"`
	// Points is the mean game-value points won per match by each policy.
	Points  [2]float64    `yaml:"points,flow"`
	Elapsed time.Duration `yaml:"elapsed,omitempty"`
}

// String renders the report the way evaluation runs print it.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NET: %.4f\n", r.Net)
	fmt.Fprintf(&sb, "CONF: %.4f\n", r.Confidence)
	fmt.Fprintf(&sb, "95%%: %.4f ± %.4f\n", r.Net, r.Margin95)
	keys := lo.Keys(r.Outcomes)
	slices.Sort(keys)
	outcomes := lo.Map(keys, func(k int, _ int) string {
		return fmt.Sprintf("%d=%d", k, r.Outcomes[k])
	})
	fmt.Fprintf(&sb, "%s %.4f - %s %.4f {%s}\n", r.Policies[0], r.Points[0],
		r.Policies[1], r.Points[1], strings.Join(outcomes, " "))
	fmt.Fprintf(&sb, "games: %d  hands/game: %.2f", r.Games, r.HandsPerGame)
	if r.Elapsed > 0 {
		fmt.Fprintf(&sb, "  elapsed: %v", r.Elapsed.Round(time.Millisecond))
	}
	return sb.String()
}

// tally accumulates match records. Each worker keeps its own and the
// tallies are merged at the end.
type tally struct {
	value    stats.Statistic
	outcomes map[int]int
	hands    int
	won      [2]int
}

func newTally() *tally {
	return &tally{outcomes: map[int]int{}}
}

func (t *tally) add(rec MatchRecord) {
	t.value.Push(float64(rec.Value))
	t.outcomes[rec.Value]++
	t.hands += rec.Hands
	if rec.Value > 0 {
		t.won[0] += rec.Value
	} else {
		t.won[1] -= rec.Value
	}
}

func (t *tally) merge(o *tally) {
	t.value.Merge(&o.value)
	for k, v := range o.outcomes {
		t.outcomes[k] += v
	}
	t.hands += o.hands
	t.won[0] += o.won[0]
	t.won[1] += o.won[1]
}

func (t *tally) report(names [2]string) *Report {
	n := t.value.Iterations()
	r := &Report{
		Policies:   names,
		Games:      n,
		Outcomes:   lo.Assign(t.outcomes),
		Net:        t.value.Mean(),
		StdErr:     t.value.StandardError(),
		Confidence: t.value.LowerBound(stats.ConfidenceZ),
		Margin95:   stats.ZVal(95) * t.value.StandardError(),
	}
	if n > 0 {
		r.HandsPerGame = float64(t.hands) / float64(n)
		r.Points = [2]float64{float64(t.won[0]) / float64(n), float64(t.won[1]) / float64(n)}
	}
	return r
}
