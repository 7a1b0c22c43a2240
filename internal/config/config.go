// Package config assembles the per-binary configuration from the shared
// environment loader.
package config

import (
	"fmt"

	platform "github.com/nbfilms/studio-api/internal/platform/config"
)

const envPrefix = "STUDIO"

// ServerConfig is the studio API's configuration.
type ServerConfig struct {
	Port           string
	AppEnv         string
	Database       platform.DatabaseConfig
	Redis          platform.RedisConfig
	Kafka          platform.KafkaConfig
	JWT            platform.JWTConfig
	MailerURL      string
	ImgbbKey       string
	MigrationsPath string
}

// MailerConfig is the mail relay's configuration.
type MailerConfig struct {
	Port            string
	AppEnv          string
	SMTP            platform.SMTPConfig
	Kafka           platform.KafkaConfig
	FeedbackBaseURL string
	StudioInbox     string
}

// LoadServer reads the studio API configuration from the environment.
func LoadServer() (*ServerConfig, error) {
	v, err := platform.Load(envPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	v.SetDefault("db.name", "studio")
	v.SetDefault("mailer.url", "http://localhost:8081")
	v.SetDefault("migrations.path", "migrations")

	cfg := &ServerConfig{
		Port:           platform.GetServicePort(v, "server.port", "8080"),
		AppEnv:         platform.GetAppEnv(v),
		Database:       platform.LoadDatabaseConfig(v, "db.name"),
		Redis:          platform.LoadRedisConfig(v),
		Kafka:          platform.LoadKafkaConfig(v),
		JWT:            platform.LoadJWTConfig(v),
		MailerURL:      v.GetString("mailer.url"),
		ImgbbKey:       v.GetString("imgbb.key"),
		MigrationsPath: v.GetString("migrations.path"),
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("STUDIO_JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadMailer reads the mail relay configuration from the environment.
func LoadMailer() (*MailerConfig, error) {
	v, err := platform.Load(envPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	v.SetDefault("feedback.base.url", "http://localhost:5173")

	cfg := &MailerConfig{
		Port:            platform.GetServicePort(v, "mailer.port", "8081"),
		AppEnv:          platform.GetAppEnv(v),
		SMTP:            platform.LoadSMTPConfig(v),
		Kafka:           platform.LoadKafkaConfig(v),
		FeedbackBaseURL: v.GetString("feedback.base.url"),
		StudioInbox:     v.GetString("studio.inbox"),
	}
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
		return nil, fmt.Errorf("STUDIO_SMTP_USERNAME and STUDIO_SMTP_PASSWORD are required")
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.StudioInbox == "" {
		cfg.StudioInbox = cfg.SMTP.From
	}
	return cfg, nil
}
