/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Seednode/quizbox/trivia"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	prefix         string
	profile        bool
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
	questions      string
	questionTime   int
	questionCount  int
	startDelay     time.Duration
	questionDelay  time.Duration
	baseScore      int
	bonusMult      int
	bonusFloor     int
	minPlayers     int
	maxPlayers     int
	reconnectGrace time.Duration
	sessionTimeout time.Duration
	rateLimit      float64
	rateBurst      int

	log zerolog.Logger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.questionTime < 1 {
		return fmt.Errorf("invalid question time (must be at least 1 second): %d", c.questionTime)
	}
	if c.questionCount < 1 {
		return fmt.Errorf("invalid question count (must be at least 1): %d", c.questionCount)
	}
	if c.minPlayers < 2 {
		return fmt.Errorf("invalid minimum player count (must be at least 2): %d", c.minPlayers)
	}
	if c.maxPlayers != 0 && c.maxPlayers < c.minPlayers {
		return fmt.Errorf("invalid maximum player count (must be 0 or at least %d): %d", c.minPlayers, c.maxPlayers)
	}
	if c.startDelay < 0 || c.questionDelay < 0 || c.reconnectGrace < 0 || c.sessionTimeout < 0 {
		return errors.New("delays and timeouts cannot be negative")
	}
	if c.baseScore < 0 || c.bonusMult < 0 {
		return errors.New("scores cannot be negative")
	}
	if c.bonusFloor < 0 || c.bonusFloor > c.questionTime {
		return fmt.Errorf("invalid bonus floor (must be between 0 and %d inclusive): %d", c.questionTime, c.bonusFloor)
	}
	if c.rateLimit < 0 || c.rateBurst < 1 {
		return errors.New("rate limit cannot be negative and burst must be at least 1")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// settings converts the command line into game settings.
func (c *Config) settings() trivia.Settings {
	s := trivia.DefaultSettings()

	s.QuestionTime = c.questionTime
	s.QuestionCount = c.questionCount
	s.StartDelay = c.startDelay
	s.QuestionDelay = c.questionDelay
	s.BaseScore = c.baseScore
	s.BonusMultiplier = c.bonusMult
	s.BonusFloor = c.bonusFloor
	s.MinPlayers = c.minPlayers
	s.MaxPlayers = c.maxPlayers
	s.ReconnectGrace = c.reconnectGrace
	s.SessionTimeout = c.sessionTimeout
	s.MessageRate = c.rateLimit
	s.MessageBurst = c.rateBurst

	return s
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUIZBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quizbox",
		Short:         "A realtime multiplayer trivia server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			cfg.log = newLogger(os.Stderr, cfg.verbose)

			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVar(&cfg.baseScore, "base-score", 100, "points for a correct answer (env: QUIZBOX_BASE_SCORE)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUIZBOX_BIND)")
	fs.IntVar(&cfg.bonusFloor, "bonus-floor", 10, "seconds remaining that earn no time bonus (env: QUIZBOX_BONUS_FLOOR)")
	fs.IntVar(&cfg.bonusMult, "bonus-multiplier", 2, "bonus points per second remaining above the floor (env: QUIZBOX_BONUS_MULTIPLIER)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 8, "maximum players per room, 0 for no limit (env: QUIZBOX_MAX_PLAYERS)")
	fs.IntVar(&cfg.minPlayers, "min-players", 2, "players required to start a game (env: QUIZBOX_MIN_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: QUIZBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: QUIZBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: QUIZBOX_PROFILE)")
	fs.IntVar(&cfg.questionCount, "question-count", 10, "questions per game (env: QUIZBOX_QUESTION_COUNT)")
	fs.DurationVar(&cfg.questionDelay, "question-delay", 3*time.Second, "pause between questions (env: QUIZBOX_QUESTION_DELAY)")
	fs.IntVar(&cfg.questionTime, "question-time", 30, "seconds to answer each question (env: QUIZBOX_QUESTION_TIME)")
	fs.StringVar(&cfg.questions, "questions", "", "path to a yaml question bank, instead of the built-in one (env: QUIZBOX_QUESTIONS)")
	fs.Float64Var(&cfg.rateLimit, "rate-limit", 10, "messages per second accepted from each connection, 0 for no limit (env: QUIZBOX_RATE_LIMIT)")
	fs.IntVar(&cfg.rateBurst, "rate-burst", 20, "burst of messages accepted from each connection (env: QUIZBOX_RATE_BURST)")
	fs.DurationVar(&cfg.reconnectGrace, "reconnect-grace", 30*time.Second, "time a dropped player may rejoin before removal (env: QUIZBOX_RECONNECT_GRACE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle rooms are closed (env: QUIZBOX_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.startDelay, "start-delay", 3*time.Second, "countdown before the first question (env: QUIZBOX_START_DELAY)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: QUIZBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: QUIZBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: QUIZBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: QUIZBOX_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quizbox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
