// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/discord"
	"github.com/keshon/modbot/internal/dispatch"
	"github.com/keshon/modbot/internal/logging"
	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/mods"
	"github.com/keshon/modbot/internal/storage"
	"github.com/keshon/modbot/internal/version"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.Setup(cfg)
	log.Info().Str("app", version.AppName).Str("version", version.String()).Msg("starting bot")

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.Close()

	registry := mod.NewRegistry()
	for _, m := range mods.All(cfg) {
		registry.Register(m)
	}
	log.Info().Int("mods", registry.Len()).Msg("mods registered")

	dispatcher := dispatch.New(registry, store, cfg, log)
	defer dispatcher.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, registry, dispatcher, log); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("bot stopped")
		}
		cancel()
	case <-ctx.Done():
	}

	log.Info().Msg("bot exited cleanly")
}
