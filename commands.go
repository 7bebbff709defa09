// commands.go
//
// Command tree for guessbot.
// Responsibilities:
//   - Root command with the global --debug and --env-file flags.
//   - "play": one terminal session against the bubbletea front end.
//   - "serve": the JSON session API.
//   - Shared boot: config, logging, question table, ledger, controller.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/guessbot/assets"
	"github.com/robalobadob/guessbot/internal/config"
	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/httpserver"
	"github.com/robalobadob/guessbot/internal/ledger"
	"github.com/robalobadob/guessbot/internal/session"
	"github.com/robalobadob/guessbot/internal/store"
	"github.com/robalobadob/guessbot/internal/tui"
	"github.com/robalobadob/guessbot/internal/words"
)

// newRootCommand returns the top-level CLI command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "guessbot",
		Usage: "A bot that guesses your number or your word",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newPlayCommand(),
			newServeCommand(),
		},
	}
}

func newPlayCommand() *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "Play in the terminal",
		Action: runPlay,
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON session API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides PORT)",
			},
		},
		Action: runServe,
	}
}

// app is everything both front ends share.
type app struct {
	cfg    config.Config
	words  *words.Table
	db     *sql.DB
	ledger *ledger.Store
	ctrl   *session.Controller
}

// boot loads configuration, the question table and the ledger, and builds the controller.
func boot(cmd *cli.Command, terminal bool) (*app, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel, cmd.Bool("debug"), terminal)

	if err := words.Init(); err != nil {
		return nil, fmt.Errorf("load question table: %w", err)
	}
	table, err := words.Default()
	if err != nil {
		return nil, err
	}

	db, err := ledger.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := ledger.Migrate(db, assets.Migrations, assets.MigrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	lg := ledger.NewStore(db)

	ctrl, err := session.NewController(session.Options{
		Vocabulary:   table.Vocabulary(),
		Questions:    table.Questions(),
		NumberBounds: &game.Range{Low: cfg.NumberMin, High: cfg.NumberMax},
		Recorder:     lg,
		Logger:       log.Logger,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &app{cfg: cfg, words: table, db: db, ledger: lg, ctrl: ctrl}, nil
}

// setupLogging applies LOG_LEVEL (or --debug). The terminal front end stays
// silent unless debugging, and then logs human-readable lines to stderr.
func setupLogging(level string, debug, terminal bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if terminal {
		if !debug {
			log.Logger = zerolog.Nop()
			return
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	a, err := boot(cmd, true)
	if err != nil {
		return err
	}
	defer a.db.Close()

	st := a.ctrl.NewState(uuid.New().String())
	log.Debug().Str("session", st.ID).Msg("terminal session started")
	if err := tui.Run(ctx, a.ctrl, st); err != nil {
		return err
	}
	log.Debug().Str("session", st.ID).
		Int("number_games", st.Tally.NumberGames).
		Int("word_games", st.Tally.WordGames).
		Msg("terminal session ended")
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	a, err := boot(cmd, false)
	if err != nil {
		return err
	}
	defer a.db.Close()

	if cmd.IsSet("port") {
		a.cfg.Port = int(cmd.Int("port"))
	}

	srv := httpserver.New(httpserver.Options{
		Controller:     a.ctrl,
		Sessions:       store.NewMemoryStore(a.cfg.SessionTTL),
		Ledger:         a.ledger,
		Words:          a.words,
		JWTSecret:      a.cfg.JWTSecret,
		SessionTTL:     a.cfg.SessionTTL,
		ClientOrigin:   a.cfg.ClientOrigin,
		RequestTimeout: a.cfg.RequestTimeout,
		NewID:          func() string { return uuid.New().String() },
	})

	log.Info().Int("port", a.cfg.Port).Str("dsn", a.cfg.DatabaseDSN).Msg("starting guessbot server")
	return srv.Start(ctx, a.cfg.Addr())
}
