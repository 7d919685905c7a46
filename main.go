package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	youtubeclient "github.com/TWO22-Org/rezipe/infrastructure/clients/youtube"
	"github.com/TWO22-Org/rezipe/infrastructure/configuration"
	"github.com/TWO22-Org/rezipe/infrastructure/logger"
	"github.com/TWO22-Org/rezipe/infrastructure/persistence"
	httpHandler "github.com/TWO22-Org/rezipe/interfaces/http"
	"github.com/TWO22-Org/rezipe/server"
	"github.com/TWO22-Org/rezipe/usecase"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	app := configuration.C.App

	// The cache is a latency optimization: when Postgres is unreachable the
	// service still serves straight from the provider.
	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - serving without search cache")
		psqlDb = nil
	} else {
		if err := persistence.EnsureSearchCacheSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring search cache schema")
		}
	}

	youtubeConfig := configuration.GetYouTubeConfig()
	searchClient, err := youtubeclient.NewSearchClient(ctx, &youtubeclient.Config{
		APIKey:       youtubeConfig.APIKey,
		ClientID:     youtubeConfig.ClientID,
		ClientSecret: youtubeConfig.ClientSecret,
		RedirectURL:  youtubeConfig.RedirectURL,
		AccessToken:  youtubeConfig.AccessToken,
		RefreshToken: youtubeConfig.RefreshToken,
		Timeout:      configuration.C.YouTube.SearchTimeout(),
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube search client")
		os.Exit(1)
	}

	observeError := func(err error) {
		logger.GetLogger().WithField("error", err).Error("search cache error")
	}
	searchCache := persistence.NewSearchCacheRepository(psqlDb, observeError)
	searchUseCase := usecase.NewSearchUseCase(searchClient, searchCache, observeError)
	searchHandler := httpHandler.NewSearchHandler(searchUseCase)
	healthHandler := httpHandler.NewHealthHandler()

	router := server.InitiateRouter(searchHandler, healthHandler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Port),
		Handler: router,
	}

	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if psqlDb != nil {
		_ = psqlDb.Close()
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
