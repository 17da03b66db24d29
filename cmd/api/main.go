package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Vibe_Eat/internal/config"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
	"Vibe_Eat/internal/repository/redis"
	"Vibe_Eat/internal/router"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	var (
		configPath string
		addr       string
		seed       bool
	)
	pflag.StringVar(&configPath, "config", "config.yaml", "path to YAML config file")
	pflag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	pflag.BoolVar(&seed, "seed", false, "insert demo restaurants and host on an empty database")
	pflag.Parse()

	if err := run(configPath, addr, seed); err != nil {
		slog.Error("exit", "error", err)
		os.Exit(1)
	}
}

func run(configPath, addr string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}

	var level slog.Level
	if err = level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysql.InitDB(cfg.MySQL.DSN, mysql.Options{
		MaxOpenConns: cfg.MySQL.MaxOpenConns,
		MaxIdleConns: cfg.MySQL.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	// 自动建表（开发阶段 OK）
	if err = mysql.Migrate(db); err != nil {
		return err
	}

	// 连接redis
	rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := &mysql.UserRepository{DB: db}
	restaurants := &mysql.RestaurantRepository{DB: db}
	mealSets := &mysql.MealSetRepository{DB: db}
	bureaus := &mysql.BureauRepository{DB: db}
	orders := &mysql.OrderRepository{DB: db}
	messages := &mysql.MessageRepository{DB: db}
	reviews := &mysql.ReviewRepository{DB: db}
	outbox := &mysql.OutboxRepository{DB: db}

	sessions := &redis.SessionRepository{RDB: rdb, TTL: cfg.JWT.SessionTTL}
	lock := &redis.DistLock{RDB: rdb, TTL: cfg.Lock.TTL, Wait: cfg.Lock.Wait}
	tokens := pkg.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	clock := pkg.SystemClock{}

	if seed {
		if err = service.Seed(ctx, restaurants, users); err != nil {
			return err
		}
		log.Info("seed done")
	}

	// 没有 kafka 时事件只写日志
	sender := service.LogSender(log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return err
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outbox, sender, cfg.Outbox.BatchSize, cfg.Outbox.Interval, log)
	go relayer.Run(ctx)

	r := router.InitRouter(router.Deps{
		Log:      log,
		Tokens:   tokens,
		Sessions: sessions,
		Users:    service.NewUserService(users, sessions, tokens, cfg.IsAdminPhone),
		Bureaus:  service.NewBureauService(bureaus, users, clock),
		Orders:   service.NewOrderService(orders, lock, clock, log),
		Chat:     service.NewChatService(messages, orders),
		Reviews:  service.NewReviewService(reviews),
		Catalog:  service.NewCatalogService(restaurants, mealSets),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
