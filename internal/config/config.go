package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTUserSecret string `env:"JWT_SECRET"`

	DBMaxConns        int32         `env:"DB_MAX_CONNS"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME"`
	LockTimeout       time.Duration `env:"DB_LOCK_TIMEOUT"`
	StatementTimeout  time.Duration `env:"DB_STATEMENT_TIMEOUT"`

	PaystackBaseURL   string `env:"PAYSTACK_BASE_URL"`
	PaystackSecretKey string `env:"PAYSTACK_SECRET_KEY"`

	ReconcileWorkers   int           `env:"RECONCILE_WORKERS"`
	ReconcileBatch     uint          `env:"RECONCILE_BATCH"`
	ReconcileOlderThan time.Duration `env:"RECONCILE_OLDER_THAN"`
	ReconcileInterval  time.Duration `env:"RECONCILE_INTERVAL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	EmailFrom     string `env:"EMAIL_FROM"`
	EmailFromName string `env:"EMAIL_FROM_NAME"`

	// KafkaBrokers пустой список отключает публикацию событий.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"`
}

// LoadConfig собирает конфигурацию из переменных окружения и флагов. Переменные окружения имеют
// приоритет, флаги задают значения по умолчанию. Файл .env подгружается, если он есть.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	return conf, nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("hustlaa", flag.ContinueOnError)

	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.JWTUserSecret, "jwt-secret", "", "JWT signing secret")

	var maxConns int
	fs.IntVar(&maxConns, "db-max-conns", 10, "Database pool size") //nolint:mnd
	fs.DurationVar(&flagConfig.DBMaxConnIdleTime, "db-idle", 5*time.Minute, "Database connection max idle time")
	fs.DurationVar(&flagConfig.LockTimeout, "lock-timeout", 5*time.Second, "Row lock wait timeout")
	fs.DurationVar(&flagConfig.StatementTimeout, "statement-timeout", 10*time.Second, "Statement timeout")

	fs.StringVar(&flagConfig.PaystackBaseURL, "paystack-url", "https://api.paystack.co", "Paystack API base url")
	fs.StringVar(&flagConfig.PaystackSecretKey, "paystack-key", "", "Paystack secret key")

	fs.IntVar(&flagConfig.ReconcileWorkers, "reconcile-workers", 5, "Payment reconciliation workers") //nolint:mnd
	var batch int
	fs.IntVar(&batch, "reconcile-batch", 50, "Payments per reconciliation iteration") //nolint:mnd
	fs.DurationVar(&flagConfig.ReconcileOlderThan, "reconcile-older-than", 15*time.Minute,
		"Reconcile pending payments older than")
	fs.DurationVar(&flagConfig.ReconcileInterval, "reconcile-interval", time.Minute, "Reconciliation idle interval")

	fs.StringVar(&flagConfig.RedisAddr, "redis", "localhost:6379", "Redis address")

	fs.StringVar(&flagConfig.SMTPHost, "smtp-host", "localhost", "SMTP host")
	fs.IntVar(&flagConfig.SMTPPort, "smtp-port", 587, "SMTP port") //nolint:mnd
	fs.StringVar(&flagConfig.EmailFrom, "email-from", "noreply@hustlaa.com", "Sender address")
	fs.StringVar(&flagConfig.EmailFromName, "email-from-name", "Hustlaa", "Sender name")

	var brokers string
	fs.StringVar(&brokers, "kafka", "", "Comma separated kafka brokers")

	fs.Float64Var(&flagConfig.RateLimitRPS, "rate-rps", 20, "Requests per second per client ip") //nolint:mnd
	fs.IntVar(&flagConfig.RateLimitBurst, "rate-burst", 40, "Rate limiter burst")                //nolint:mnd

	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck
	}

	flagConfig.DBMaxConns = int32(maxConns) //nolint:gosec
	if batch > 0 {
		flagConfig.ReconcileBatch = uint(batch)
	}
	if brokers != "" {
		flagConfig.KafkaBrokers = strings.Split(brokers, ",")
	}
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:         defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:        defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:      defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTUserSecret:      defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret),
		DBMaxConns:         defaultIfBlank(envConfig.DBMaxConns, flagsConfig.DBMaxConns),
		DBMaxConnIdleTime:  defaultIfBlank(envConfig.DBMaxConnIdleTime, flagsConfig.DBMaxConnIdleTime),
		LockTimeout:        defaultIfBlank(envConfig.LockTimeout, flagsConfig.LockTimeout),
		StatementTimeout:   defaultIfBlank(envConfig.StatementTimeout, flagsConfig.StatementTimeout),
		PaystackBaseURL:    defaultIfBlank(envConfig.PaystackBaseURL, flagsConfig.PaystackBaseURL),
		PaystackSecretKey:  defaultIfBlank(envConfig.PaystackSecretKey, flagsConfig.PaystackSecretKey),
		ReconcileWorkers:   defaultIfBlank(envConfig.ReconcileWorkers, flagsConfig.ReconcileWorkers),
		ReconcileBatch:     defaultIfBlank(envConfig.ReconcileBatch, flagsConfig.ReconcileBatch),
		ReconcileOlderThan: defaultIfBlank(envConfig.ReconcileOlderThan, flagsConfig.ReconcileOlderThan),
		ReconcileInterval:  defaultIfBlank(envConfig.ReconcileInterval, flagsConfig.ReconcileInterval),
		RedisAddr:          defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr),
		RedisPassword:      defaultIfBlank(envConfig.RedisPassword, flagsConfig.RedisPassword),
		SMTPHost:           defaultIfBlank(envConfig.SMTPHost, flagsConfig.SMTPHost),
		SMTPPort:           defaultIfBlank(envConfig.SMTPPort, flagsConfig.SMTPPort),
		SMTPUser:           defaultIfBlank(envConfig.SMTPUser, flagsConfig.SMTPUser),
		SMTPPassword:       defaultIfBlank(envConfig.SMTPPassword, flagsConfig.SMTPPassword),
		EmailFrom:          defaultIfBlank(envConfig.EmailFrom, flagsConfig.EmailFrom),
		EmailFromName:      defaultIfBlank(envConfig.EmailFromName, flagsConfig.EmailFromName),
		KafkaBrokers:       defaultIfEmpty(envConfig.KafkaBrokers, flagsConfig.KafkaBrokers),
		RateLimitRPS:       defaultIfBlank(envConfig.RateLimitRPS, flagsConfig.RateLimitRPS),
		RateLimitBurst:     defaultIfBlank(envConfig.RateLimitBurst, flagsConfig.RateLimitBurst),
	}
}

func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}

func defaultIfEmpty[T any](value []T, defaultValue []T) []T {
	if len(value) == 0 {
		return defaultValue
	}
	return value
}

// String скрывает секреты, чтобы конфиг можно было писать в лог.
func (c Config) String() string {
	masked := c
	masked.DatabaseDSN = mask(c.DatabaseDSN)
	masked.JWTUserSecret = mask(c.JWTUserSecret)
	masked.PaystackSecretKey = mask(c.PaystackSecretKey)
	masked.RedisPassword = mask(c.RedisPassword)
	masked.SMTPPassword = mask(c.SMTPPassword)
	type plain Config
	return fmt.Sprintf("%+v", plain(masked))
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
