package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"promotedlogger/internal/config"
	"promotedlogger/internal/constants"
	"promotedlogger/internal/logger"
	"promotedlogger/pkg/metrics"
	"promotedlogger/pkg/ratelimit"
	"promotedlogger/pkg/snowplow"
)

type App struct {
	cfg    *config.Config
	log    logger.Logger
	server *http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	metrics.RegisterSinkMetrics()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	a := &App{cfg: cfg, log: log}

	if cfg.Sink.RateLimit.Enabled {
		router.Use(ratelimit.Middleware(a.rateLimitConfig()))
	}

	router.POST("/events", a.handleEvents)
	router.GET("/healthz", a.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := cfg.Sink.Port
	if port == 0 {
		port = 8099
	}

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	return a
}

func (a *App) rateLimitConfig() ratelimit.Config {
	rlCfg := ratelimit.DefaultConfig()
	if a.cfg.Sink.RateLimit.RPS > 0 {
		rlCfg.RPS = a.cfg.Sink.RateLimit.RPS
	}
	if a.cfg.Sink.RateLimit.Burst > 0 {
		rlCfg.Burst = a.cfg.Sink.RateLimit.Burst
	}
	if a.cfg.Sink.RateLimit.CleanupInterval > 0 {
		rlCfg.CleanupInterval = time.Duration(a.cfg.Sink.RateLimit.CleanupInterval) * time.Second
	}
	if a.cfg.Sink.RateLimit.MaxAge > 0 {
		rlCfg.MaxAge = time.Duration(a.cfg.Sink.RateLimit.MaxAge) * time.Second
	}
	return rlCfg
}

func (a *App) handleEvents(c *gin.Context) {
	var env snowplow.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		metrics.SinkRejectedTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "malformed envelope",
			"error_code": "MALFORMED_ENVELOPE",
		})
		return
	}

	if env.EventID == "" || env.Kind == "" {
		metrics.SinkRejectedTotal.WithLabelValues("incomplete").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "envelope is missing eid or kind",
			"error_code": "INCOMPLETE_ENVELOPE",
		})
		return
	}

	metrics.SinkEventsReceivedTotal.WithLabelValues(string(env.Kind)).Inc()

	payload, _ := json.Marshal(env)
	a.log.Infow("Envelope received",
		"eid", env.EventID,
		"kind", env.Kind,
		"payload", string(payload),
	)

	c.JSON(http.StatusOK, gin.H{"status": "accepted", "eid": env.EventID})
}

func (a *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Infow("HTTP server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
