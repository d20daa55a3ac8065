// Command eval plays two cribbage policies against each other and prints
// how the first one fared.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/cribbage/automatic"
	"github.com/domino14/cribbage/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ec, err := evalConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad evaluation settings")
	}

	ctx, stop := signal.NotifyContext(log.Logger.WithContext(context.Background()),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := automatic.Evaluate(ctx, ec)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
	if len(cfg.Args()) > 0 && cfg.Args()[0] == "yaml" {
		out, err := yaml.Marshal(rep)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		fmt.Print(string(out))
		return
	}
	fmt.Println(rep)
}

func evalConfig(cfg *config.Config) (automatic.EvalConfig, error) {
	r, err := cfg.RuleSet()
	if err != nil {
		return automatic.EvalConfig{}, err
	}
	ec := automatic.EvalConfig{
		Rules:    r,
		Policies: [2]string{cfg.GetString(config.ConfigPolicy0), cfg.GetString(config.ConfigPolicy1)},
		Games:    cfg.GetInt(config.ConfigEvalGames),
		Duration: cfg.GetDuration(config.ConfigEvalDuration),
		Threads:  cfg.GetInt(config.ConfigEvalThreads),
		LogFile:  cfg.GetString(config.ConfigEvalLogFile),
	}
	if ec.Duration > 0 && !cfg.IsSet(config.ConfigEvalGames) {
		ec.Games = 0
	}
	if f := cfg.GetString(config.ConfigEvalSeedFile); f != "" {
		if ec.Seeds, err = automatic.LoadSeeds(f); err != nil {
			return ec, err
		}
	}
	if s := cfg.GetString(config.ConfigEvalSeed); s != "" {
		if ec.MasterSeed, err = automatic.ParseSeed(s); err != nil {
			return ec, err
		}
	}
	return ec, nil
}
