package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Settings holds application configuration loaded from files and environment variables.
type Settings struct {
	Env         string      `mapstructure:"env"`
	LogLevel    string      `mapstructure:"log_level"`
	HTTP        HTTP        `mapstructure:"http"`
	Quiz        Quiz        `mapstructure:"quiz"`
	Auth        Auth        `mapstructure:"auth"`
	Leaderboard Leaderboard `mapstructure:"leaderboard"`

	DatabaseDSN      string `mapstructure:"-"`
	TelegramAPIToken string `mapstructure:"-"`
}

type HTTP struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Quiz struct {
	QuestionsPath string        `mapstructure:"questions_path"`
	SessionSize   int           `mapstructure:"session_size"`
	RevealDelay   time.Duration `mapstructure:"reveal_delay"`  // pause before the score panel appears
	RestartDelay  time.Duration `mapstructure:"restart_delay"` // pause before the next quiz starts
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"-"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type Leaderboard struct {
	Limit int `mapstructure:"limit"`
}

// RequireJWTSecret reports ErrMissingEnvironmentVariables when no signing
// secret is configured.
func (s *Settings) RequireJWTSecret() error {
	if s.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (s *Settings) RequireTelegramToken() error {
	if s.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (s *Settings) IsProduction() bool { return s.Env == "production" }

// Load reads configuration from .env, config/config.yaml and the environment.
func Load() (*Settings, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("quiz.questions_path", "assets/questions.json")
	v.SetDefault("quiz.session_size", 10)
	v.SetDefault("quiz.reveal_delay", "100ms")
	v.SetDefault("quiz.restart_delay", "2500ms")
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("auth.token_ttl", "2h")
	v.SetDefault("leaderboard.limit", 10)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("database_dsn", "DATABASE_DSN")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	s.Auth.JWTSecret = v.GetString("jwt_secret")
	s.DatabaseDSN = v.GetString("database_dsn")
	s.TelegramAPIToken = v.GetString("telegram_api_token")

	if s.Quiz.SessionSize < 0 {
		return nil, fmt.Errorf("quiz.session_size must not be negative, got %d", s.Quiz.SessionSize)
	}

	return &s, nil
}
