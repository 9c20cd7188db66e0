// Command api-gateway serves the timetable generator over HTTP: a
// synchronous generate endpoint for small worlds, an async one backed by a
// worker queue for larger ones, and Prometheus/health endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	internalhandler "github.com/noah-isme/campus-scheduler/internal/handler"
	internalmiddleware "github.com/noah-isme/campus-scheduler/internal/middleware"
	"github.com/noah-isme/campus-scheduler/internal/cpsat/ortools"
	"github.com/noah-isme/campus-scheduler/internal/planning"
	"github.com/noah-isme/campus-scheduler/pkg/cache"
	"github.com/noah-isme/campus-scheduler/pkg/config"
	"github.com/noah-isme/campus-scheduler/pkg/jobs"
	"github.com/noah-isme/campus-scheduler/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-scheduler/pkg/middleware/requestid"
	"github.com/noah-isme/campus-scheduler/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := metrics.New()
	metricsHandler := internalhandler.NewMetricsHandler(reg)

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("proposal cache disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close() //nolint:errcheck
	}

	engine := ortools.New()
	opts := planning.Options{
		TimeLimit: cfg.Scheduler.TimeLimit,
		Workers:   cfg.Scheduler.SearchWorkers,
	}

	queueCfg := jobs.QueueConfig{
		Workers: 2,
		BufferSize: 8,
		// A solve can fail transiently (solver timeout under load, a
		// momentarily saturated worker pool) rather than because the
		// request itself is bad; retrying a few times before giving up
		// costs nothing since jobs are idempotent (same world in, same
		// schedule out).
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
		Logger:     logr,
	}
	scheduleHandler := internalhandler.NewScheduleHandler(engine, opts, nil, redisClient, cfg.Scheduler.ProposalCacheTTL, reg, logr)
	queue := jobs.NewQueue("schedule-generate", scheduleHandler.JobHandler(), queueCfg)
	scheduleHandler.SetQueue(queue)

	exportHandler, err := internalhandler.NewExportHandler(scheduleHandler, cfg.Export.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "dir", cfg.Export.StorageDir, "error", err)
	}

	queueCtx, cancel := context.WithCancel(context.Background())
	queue.Start(queueCtx)
	go scheduleHandler.StartProposalSweeper(queueCtx, cfg.Scheduler.ProposalCacheTTL/2)
	defer func() {
		cancel()
		queue.Stop()
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(reg))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	schedules := api.Group("/schedules")
	schedules.POST("/generate", scheduleHandler.Generate)
	schedules.GET("/proposals/:id", scheduleHandler.Proposal)
	schedules.POST("/proposals/:id/export", exportHandler.Render)
	r.GET("/exports/:file", exportHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
