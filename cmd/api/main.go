package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/gayratjon-02/AD-sub001/internal/adapter/repo"
	"github.com/gayratjon-02/AD-sub001/internal/generation"
	httpapi "github.com/gayratjon-02/AD-sub001/internal/http"
	"github.com/gayratjon-02/AD-sub001/internal/http/handlers"
	"github.com/gayratjon-02/AD-sub001/internal/infra"
	"github.com/gayratjon-02/AD-sub001/internal/infra/geoip"
	"github.com/gayratjon-02/AD-sub001/internal/middleware"
	imageprovider "github.com/gayratjon-02/AD-sub001/internal/providers/image"
	textprovider "github.com/gayratjon-02/AD-sub001/internal/providers/text"
	"github.com/gayratjon-02/AD-sub001/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to connect database")
	}
	defer pool.Close()

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure storage")
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("api: geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		countryLookup = resolver.CountryCode
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}

	var completer textprovider.Completer
	switch cfg.CopyProvider {
	case "gemini":
		completer, err = textprovider.NewGeminiCompleter(textprovider.GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiTextModel,
			BaseURL:    cfg.GeminiBaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("api: gemini copy unavailable, using static copy")
			completer = textprovider.NewStaticCompleter()
		}
	default:
		completer = textprovider.NewStaticCompleter()
	}

	images := imageprovider.NewGeminiGenerator(imageprovider.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiImageModel,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("api: gemini api key missing, using synthetic image generation")
	}

	generations := repo.NewGenerationRepository(pool)
	service := generation.NewService(generation.Deps{
		Generations: generations,
		Brands:      repo.NewBrandRepository(pool),
		Concepts:    repo.NewConceptRepository(pool),
		Blobs:       fileStore,
		Completer:   completer,
		Images:      images,
		Logger:      logger,
		SyncWait:    cfg.SyncWait,
	})

	app := handlers.NewApp(service, generations, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:         logger,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  countryLookup,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      fileStore.BasePath(),
	})

	server := infra.NewHTTPServer(cfg, router)
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("api: listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("api: stopped with error")
	}
	logger.Info().Msg("api: stopped")
}
