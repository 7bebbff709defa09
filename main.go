// main.go
//
// Entry point for guessbot.
// Responsibilities:
//   - Install the interrupt-aware root context.
//   - Run the command tree (play / serve).

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("guessbot exited")
	}
}
