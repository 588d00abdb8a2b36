package main

import (
	"context"
	"os"
	"os/signal"

	"mosaicbot/internal/cli"

	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("mosaic failed")
		cancel()
		os.Exit(1)
	}
}
