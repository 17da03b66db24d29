// Package config loads service settings. Precedence, lowest first:
// built-in defaults, the YAML file, then VIBEEAT_* environment variables
// (a .env file in the working directory is loaded into the environment
// first). Command-line flags are applied on top by cmd/api.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "VIBEEAT_"

type Config struct {
	HTTP     HTTPConfig   `yaml:"http"`
	MySQL    MySQLConfig  `yaml:"mysql"`
	Redis    RedisConfig  `yaml:"redis"`
	Kafka    KafkaConfig  `yaml:"kafka"`
	JWT      JWTConfig    `yaml:"jwt"`
	Lock     LockConfig   `yaml:"lock"`
	Outbox   OutboxConfig `yaml:"outbox"`
	LogLevel string       `yaml:"log_level"`
	Admin    AdminConfig  `yaml:"admin"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type MySQLConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig 没有配置 broker 时事件只写日志
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type JWTConfig struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type LockConfig struct {
	TTL  time.Duration `yaml:"ttl"`
	Wait time.Duration `yaml:"wait"`
}

type OutboxConfig struct {
	Interval  time.Duration `yaml:"interval"`
	BatchSize int           `yaml:"batch_size"`
}

type AdminConfig struct {
	Phones []string `yaml:"phones"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		MySQL: MySQLConfig{
			DSN:          "user:password@tcp(127.0.0.1:3306)/vibeeat?charset=utf8mb4&parseTime=True&loc=Local",
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
		Kafka: KafkaConfig{Topic: "vibeeat.events"},
		JWT: JWTConfig{
			AccessSecret:  "secret-key",
			RefreshSecret: "refresh-key",
			AccessTTL:     7 * 24 * time.Hour,
			RefreshTTL:    30 * 24 * time.Hour,
			SessionTTL:    7 * 24 * time.Hour,
		},
		Lock: LockConfig{
			TTL:  5 * time.Second,
			Wait: 3 * time.Second,
		},
		Outbox: OutboxConfig{
			Interval:  time.Second,
			BatchSize: 200,
		},
		LogLevel: "info",
	}
}

// Load 按 默认值 -> yaml -> 环境变量 的顺序合并配置。path 为空或文件不存在时跳过 yaml
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// .env 只是补充环境变量，不存在不算错误
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = splitList(v)
		}
	}
	var errs []error
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", envPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("MYSQL_DSN", &cfg.MySQL.DSN)
	num("MYSQL_MAX_OPEN_CONNS", &cfg.MySQL.MaxOpenConns)
	num("MYSQL_MAX_IDLE_CONNS", &cfg.MySQL.MaxIdleConns)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	num("REDIS_DB", &cfg.Redis.DB)
	list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	str("KAFKA_TOPIC", &cfg.Kafka.Topic)
	str("JWT_ACCESS_SECRET", &cfg.JWT.AccessSecret)
	str("JWT_REFRESH_SECRET", &cfg.JWT.RefreshSecret)
	dur("JWT_ACCESS_TTL", &cfg.JWT.AccessTTL)
	dur("JWT_REFRESH_TTL", &cfg.JWT.RefreshTTL)
	dur("SESSION_TTL", &cfg.JWT.SessionTTL)
	dur("LOCK_TTL", &cfg.Lock.TTL)
	dur("LOCK_WAIT", &cfg.Lock.Wait)
	dur("OUTBOX_INTERVAL", &cfg.Outbox.Interval)
	num("OUTBOX_BATCH_SIZE", &cfg.Outbox.BatchSize)
	str("LOG_LEVEL", &cfg.LogLevel)
	list("ADMIN_PHONES", &cfg.Admin.Phones)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("config: http.addr required"))
	}
	if c.MySQL.DSN == "" {
		errs = append(errs, errors.New("config: mysql.dsn required"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("config: redis.addr required"))
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("config: jwt secrets required"))
	}
	for name, d := range map[string]time.Duration{
		"jwt.access_ttl":  c.JWT.AccessTTL,
		"jwt.refresh_ttl": c.JWT.RefreshTTL,
		"jwt.session_ttl": c.JWT.SessionTTL,
		"lock.ttl":        c.Lock.TTL,
		"lock.wait":       c.Lock.Wait,
		"outbox.interval": c.Outbox.Interval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive", name))
		}
	}
	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, errors.New("config: outbox.batch_size must be positive"))
	}
	return errors.Join(errs...)
}

// IsAdminPhone 配置中的手机号登录后获得管理员角色
func (c Config) IsAdminPhone(phone string) bool {
	for _, p := range c.Admin.Phones {
		if p == phone {
			return true
		}
	}
	return false
}
