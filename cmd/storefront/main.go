package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/cart"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/catalog"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/config"
	storehttp "github.com/RuneterraShadow/site-encomendas-patos/internal/http"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/money"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/order"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/repository"
	"github.com/RuneterraShadow/site-encomendas-patos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")

	catalogStore := catalog.NewStore()
	feed := catalog.NewFeed(cfg.KafkaBrokers, cfg.CatalogTopic, cfg.CatalogGroupID, catalogStore, log)
	go feed.Run(ctx)
	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.CatalogTopic).Msg("catalog feed started")

	repo := repository.NewRedisRepository(redisClient)
	cartService := cart.NewService(repo, catalogStore)

	formatter := money.NewFormatter(cfg.CurrencySymbol)
	submitter := order.NewSubmitter(cartService, catalogStore, formatter, cfg.OrderWebhookURL, cfg.SubmitTimeout, log)
	if cfg.OrderWebhookURL == "" {
		log.Warn().Msg("ORDER_WEBHOOK_URL not set, checkout will be rejected until configured")
	}

	router := storehttp.NewRouter(
		storehttp.NewProductHandler(catalogStore, formatter),
		storehttp.NewCartHandler(cartService, catalogStore, formatter),
		storehttp.NewCheckoutHandler(submitter),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := feed.Close(); err != nil {
		log.Error().Err(err).Msg("closing catalog feed")
	}

	log.Info().Msg("storefront stopped")
}
