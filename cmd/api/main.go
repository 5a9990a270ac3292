package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/internal/server"
	"ecovoiceapi/pkg/config"
	ranking "ecovoiceapi/pkg/leaderboard"
	"ecovoiceapi/pkg/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/api/idtoken"
)

func main() {

	ctx := context.Background()
	h := &api.Handler{}

	// init logger
	var logger *zap.Logger
	var err error
	if config.VAR.IsProd() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	}
	if err != nil {
		panic(err)
	}
	logger.Info("Server starting...", zap.String("env", config.VAR.ENV))
	defer logger.Sync()
	h.Logger = logger

	h.Validate = api.NewValidator()
	h.VerifyGoogle = idtoken.Validate

	// init document store
	switch config.VAR.STORE {
	case "memory":
		logger.Warn("Using in-memory store, data is lost on restart")
		h.Store = store.NewMemoryStore()
	case "mongo":
		mongoServerAPI := options.ServerAPI(options.ServerAPIVersion1)
		mongoOpts := options.Client().ApplyURI(config.VAR.MONGO_URI).SetServerAPIOptions(mongoServerAPI)
		mongoCli, err := mongo.Connect(mongoOpts)
		if err != nil {
			logger.Fatal("mongo connect failed", zap.Error(err))
		}
		defer func() {
			if err := mongoCli.Disconnect(ctx); err != nil {
				logger.Error("mongo disconnect failed", zap.Error(err))
			}
		}()

		mongoStore := store.NewMongoStore(mongoCli.Database(config.VAR.MONGO_DB))
		if err := mongoStore.Ping(ctx); err != nil {
			logger.Fatal("mongo ping failed", zap.Error(err))
		}
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			logger.Fatal("mongo indexes failed", zap.Error(err))
		}
		h.Store = mongoStore
	default:
		logger.Fatal("unknown STORE", zap.String("store", config.VAR.STORE))
	}

	// init redis
	if config.VAR.REDIS_ADDR != "" {
		h.RedisCli = redis.NewClient(&redis.Options{
			Addr:     config.VAR.REDIS_ADDR,
			Username: config.VAR.REDIS_USERNAME,
			Password: config.VAR.REDIS_PASSWORD,
			DB:       0,
		})
		defer h.RedisCli.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, claim locks, logout revocation and leaderboard movement are disabled")
	}

	// init r2
	if config.VAR.R2_ENDPOINT != "" {
		cred := credentials.NewStaticCredentialsProvider(
			config.VAR.R2_ACCESS_KEY,
			config.VAR.R2_SECRET_KEY,
			"",
		)
		r2Cli := s3.New(s3.Options{
			Credentials:  cred,
			BaseEndpoint: aws.String(config.VAR.R2_ENDPOINT),
			UsePathStyle: true,
			Region:       "auto",
		})
		h.R2Presign = s3.NewPresignClient(r2Cli)
	}

	// leaderboard snapshot job
	sched, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("scheduler init failed", zap.Error(err))
	}
	if h.RedisCli != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(config.VAR.LEADERBOARD_REFRESH),
			gocron.NewTask(func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				entries, err := ranking.Refresh(h.RedisCli, jobCtx, h.Store)
				if err != nil {
					logger.Error("leaderboard refresh failed", zap.Error(err))
					return
				}
				logger.Info("leaderboard refreshed", zap.Int("users", len(entries)))
			}),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			logger.Fatal("leaderboard job failed", zap.Error(err))
		}
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + config.VAR.PORT,
		Handler:           server.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if err := sched.Shutdown(); err != nil {
		logger.Error("scheduler shutdown failed", zap.Error(err))
	}

}
