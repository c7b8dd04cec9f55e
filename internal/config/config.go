package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken     string        `yaml:"discord_token"`
	GuildID          string        `yaml:"guild_id"`
	AutoRoleID       string        `yaml:"autorole_role_id"`
	WelcomeChannelID string        `yaml:"welcome_channel_id"`
	SupportChannelID string        `yaml:"support_channel_id"`
	WarningsPath     string        `yaml:"warnings_path"`
	LogLevel         string        `yaml:"log_level"`
	Automod          AutomodConfig `yaml:"automod"`
	Health           HealthConfig  `yaml:"health"`
}

type AutomodConfig struct {
	BlockedTerms     []string `yaml:"blocked_terms"`
	NoticeTTLSeconds int      `yaml:"notice_ttl_seconds"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

func DefaultConfig() Config {
	return Config{
		WarningsPath: "data/warnings.json",
		LogLevel:     "info",
		Automod: AutomodConfig{
			NoticeTTLSeconds: 15,
		},
		Health: HealthConfig{Enabled: false, Addr: ":8080"},
	}
}

func Load() (Config, error) {
	// Populate the process env from a .env file when present.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.GuildID == "" {
		return Config{}, errors.New("DISCORD_GUILD_ID is required")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.GuildID = envString("DISCORD_GUILD_ID", cfg.GuildID)
	cfg.AutoRoleID = envString("DISCORD_ROLE_ID", cfg.AutoRoleID)
	cfg.WelcomeChannelID = envString("DISCORD_WELCOME_CHANNEL_ID", cfg.WelcomeChannelID)
	cfg.SupportChannelID = envString("DISCORD_SUPPORT_CHANNEL_ID", cfg.SupportChannelID)
	cfg.WarningsPath = envString("WARNINGS_PATH", cfg.WarningsPath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.Automod.NoticeTTLSeconds = envInt("AUTOMOD_NOTICE_TTL_SECONDS", cfg.Automod.NoticeTTLSeconds)
	cfg.Health.Enabled = envBool("HEALTH_ENABLED", cfg.Health.Enabled)
	cfg.Health.Addr = envString("HEALTH_ADDR", cfg.Health.Addr)
}

func BuildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := strings.ToLower(level)
	switch lvl {
	case "debug", "info", "warn", "error":
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(lvl))
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "1" || lower == "true" || lower == "yes"
	}
	return fallback
}
