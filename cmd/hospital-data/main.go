package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-data/internal/config"
	"hospital-data/internal/database"
	"hospital-data/internal/events"
	httpapi "hospital-data/internal/http"
	"hospital-data/internal/logger"
	"hospital-data/internal/metrics"
	"hospital-data/internal/mqtt"
	"hospital-data/internal/records"
	"hospital-data/internal/repository"
	"hospital-data/internal/service"
	"hospital-data/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hospital-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startCancel()

	// Drafts: Redis when enabled, otherwise process memory.
	var kv store.KV = store.NewMemoryKV()
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		if c, err := database.NewRedisClient(startCtx, &cfg.Redis); err == nil {
			redisClient = c
			kv = store.NewRedisKV(c)
			log.Info("Redis enabled for drafts", zap.String("addr", cfg.Redis.Addr))
		} else {
			log.Warn("Redis enabled but connection failed, keeping drafts in memory", zap.Error(err))
		}
	}

	// Submission audit log: Postgres when enabled, otherwise memory.
	var audit repository.SubmissionLog = repository.NewMemorySubmissionLog()
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(startCtx, &cfg.Database); err == nil {
			pg := repository.NewPostgresSubmissionLog(d)
			if err := pg.EnsureSchema(startCtx); err != nil {
				log.Warn("record_submissions schema check failed, auditing in memory", zap.Error(err))
				_ = d.Close()
			} else {
				db = d
				audit = pg
				log.Info("DB enabled for submission audit")
			}
		} else {
			log.Warn("DB enabled but connection failed, auditing in memory", zap.Error(err))
		}
	}

	var publisher events.Publisher = events.Nop{}
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		if c, err := mqtt.NewClient(&cfg.MQTT, log); err == nil {
			mqttClient = c
			publisher = events.NewMQTTPublisher(c, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS)
			log.Info("MQTT enabled for record events", zap.String("broker", cfg.MQTT.Broker))
		} else {
			log.Warn("MQTT enabled but connection failed, events disabled", zap.Error(err))
		}
	}

	rec := metrics.NewRecorder()
	catalog := service.NewCatalog(time.Now, records.Coercer{Strict: cfg.Records.StrictNumbers})
	svc := service.NewRecordService(catalog, service.NewDraftStore(kv, cfg.Records.DraftTTL), service.RecordServiceOptions{
		Audit:   audit,
		Events:  publisher,
		Metrics: rec,
		Logger:  log,
	})

	router := httpapi.NewRouter(svc, rec, log)
	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown incomplete", zap.Error(err))
	}
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = database.Close(db)
}
