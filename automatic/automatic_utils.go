package automatic

// Policy evaluation: many computer vs computer matches played in parallel.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/cribbage/rules"
)

var (
	MatchCounter *expvar.Int
	IsPlaying    *expvar.Int

	playing atomic.Bool
)

var (
	ErrAlreadyPlaying = errors.New("matches are already being played, please wait till complete")
	ErrNoLimit        = errors.New("need a number of games or a duration")
)

func init() {
	MatchCounter = expvar.NewInt("cribbageMatches")
	IsPlaying = expvar.NewInt("cribbageIsPlaying")
}

// EvalConfig describes an evaluation run.
type EvalConfig struct {
	Rules    *rules.RuleSet
	Policies [2]string
	// Games is the number of matches to play. With a Duration, matches are
	// played until it elapses or Games is reached, whichever comes first;
	// Games 0 means no limit. The clock is only checked between matches.
	Games    int
	Duration time.Duration
	Threads  int
	// Seeds are used for the first matches. Later matches derive their seed
	// from MasterSeed, which is random if left zero.
	Seeds      []Seed
	MasterSeed Seed
	// LogFile, if set, receives one CSV line per match.
	LogFile string
}

func (c *EvalConfig) seedFor(id int) Seed {
	if id < len(c.Seeds) {
		return c.Seeds[id]
	}
	return DeriveSeed(c.MasterSeed, id)
}

// Evaluate plays matches between the two policies and reports how policy 0
// fared. Match i seats policy 0 first when i is even. If ctx is cancelled
// the matches finished so far are reported.
func Evaluate(ctx context.Context, cfg EvalConfig) (*Report, error) {
	if cfg.Games <= 0 && cfg.Duration <= 0 {
		return nil, ErrNoLimit
	}
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)

	runner, err := NewGameRunner(cfg.Rules, cfg.Policies[0], cfg.Policies[1])
	if err != nil {
		return nil, err
	}
	if cfg.MasterSeed == (Seed{}) {
		cfg.MasterSeed = GenerateSeeds(1)[0]
	}
	threads := max(cfg.Threads, 1)
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("games", cfg.Games).Dur("duration", cfg.Duration).
		Int("threads", threads).Strs("policies", cfg.Policies[:]).
		Str("master-seed", FormatSeed(cfg.MasterSeed)).Msg("starting evaluation")

	var logChan chan MatchRecord
	var logDone chan error
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		logChan = make(chan MatchRecord, 100)
		logDone = make(chan error, 1)
		go func() {
			err := writeMatchLog(f, runner.Names(), logChan)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			logDone <- err
		}()
	}

	start := time.Now()
	total := newTally()
	var mu sync.Mutex
	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; cfg.Games <= 0 || i < cfg.Games; i++ {
			if cfg.Duration > 0 && i > 0 && time.Since(start) >= cfg.Duration {
				return nil
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				logger.Info().Int("queued", i).Msg("got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				logger.Debug().Int("queued", i+1).Msg("queued matches")
			}
		}
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			local := newTally()
			defer func() {
				mu.Lock()
				total.merge(local)
				mu.Unlock()
			}()
			for id := range jobs {
				rec, err := runner.PlayMatch(gctx, id, cfg.seedFor(id))
				if err != nil {
					if ctx.Err() != nil {
						// interrupted; drop the unfinished match
						return nil
					}
					return err
				}
				local.add(rec)
				MatchCounter.Add(1)
				if logChan != nil {
					logChan <- rec
				}
			}
			return nil
		})
	}

	err = g.Wait()
	if logChan != nil {
		close(logChan)
		if lerr := <-logDone; err == nil {
			err = lerr
		}
	}
	if err != nil {
		return nil, err
	}
	rep := total.report(runner.Names())
	rep.Elapsed = time.Since(start)
	if rep.Games == 0 && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	logger.Info().Int("games", rep.Games).Float64("net", rep.Net).
		Float64("conf", rep.Confidence).Dur("elapsed", rep.Elapsed).Msg("evaluation finished")
	return rep, nil
}

func csvHeader(names [2]string) []string {
	return []string{"matchID", "seed", "policy0First", "value", "hands",
		names[0] + "_score", names[1] + "_score"}
}

// writeMatchLog drains ch into w as CSV. It keeps draining after a write
// error so the workers never block.
func writeMatchLog(w io.Writer, names [2]string, ch <-chan MatchRecord) error {
	cw := csv.NewWriter(w)
	err := cw.Write(csvHeader(names))
	for rec := range ch {
		if err != nil {
			continue
		}
		err = cw.Write(rec.csvRecord())
	}
	cw.Flush()
	if err != nil {
		return err
	}
	return cw.Error()
}
