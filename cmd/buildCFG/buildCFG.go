package buildCFG

import (
	"os"

	"github.com/rs/zerolog"

	"jiggermix/internal/mailer"
)

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Path string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func BuildServerConfig(log *zerolog.Logger) ServerConfig {
	cfg := ServerConfig{
		Port: getEnv("PORT", "5000"),
	}
	log.Info().Str("port", cfg.Port).Msg("server config built")
	return cfg
}

func BuildDBConfig(log *zerolog.Logger) DBConfig {
	cfg := DBConfig{
		Path: getEnv("DATABASE_URL", "database.db"),
	}
	log.Info().Str("path", cfg.Path).Msg("database config built")
	return cfg
}

func BuildMailConfig(log *zerolog.Logger) mailer.Config {
	cfg := mailer.Config{
		Host:     os.Getenv("MAIL_SERVER"),
		Port:     getEnv("MAIL_PORT", "587"),
		Username: os.Getenv("MAIL_USERNAME"),
		Password: os.Getenv("MAIL_PASSWORD"),
		Sender:   getEnv("MAIL_SENDER", "JiggerOnTheMix <noreply@jiggeronthemix.com>"),
	}
	if cfg.Host == "" {
		log.Warn().Msg("MAIL_SERVER is not set, outgoing email will fail and be logged")
	}
	return cfg
}
