package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gayratjon-02/AD-sub001/internal/adapter/repo"
	"github.com/gayratjon-02/AD-sub001/internal/domain"
	"github.com/gayratjon-02/AD-sub001/internal/infra"
)

const staleReason = "generation timed out"

// The reaper fails PROCESSING records whose pipeline died without reaching a
// terminal state, so clients polling a progress view are never stuck forever.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("reaper: db connection failed")
	}
	defer pool.Close()

	generations := repo.NewGenerationRepository(pool)
	if err := run(ctx, generations, logger, cfg.StaleRunCutoff, cfg.ReapPollEvery); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("reaper: stopped with error")
	}
	logger.Info().Msg("reaper: stopped")
}

func run(ctx context.Context, generations domain.GenerationRepository, logger infra.Logger, cutoff, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		reaped, err := generations.FailStale(ctx, cutoff, staleReason)
		if err != nil {
			logger.Error().Err(err).Msg("reaper: sweep failed")
		} else if reaped > 0 {
			logger.Info().Int("reaped", reaped).Msg("reaper: failed stale generations")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
