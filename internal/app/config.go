package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/utils"
)

type Config struct {
	Addr             string   `yaml:"addr"`
	Environment      string   `yaml:"environment"`
	Version          string   `yaml:"version"`
	JWTSecretKey     string   `yaml:"jwt_secret_key"`
	AllowOrigins     []string `yaml:"allow_origins"`
	PublishBatchSize int      `yaml:"publish_batch_size"`
	// VerifyVersionHashes gates the integrity check undo/redo runs before
	// applying a patch.
	VerifyVersionHashes bool `yaml:"verify_version_hashes"`
}

// LoadConfig starts from defaults, lets an optional YAML file named by
// CONFIG_FILE override them, then lets the environment override both.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Addr:                ":8080",
		Environment:         "development",
		Version:             "dev",
		JWTSecretKey:        "defaultsecret",
		PublishBatchSize:    200,
		VerifyVersionHashes: true,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Addr = utils.GetEnv("ADDR", cfg.Addr, log)
	cfg.Environment = utils.GetEnv("ENVIRONMENT", cfg.Environment, log)
	cfg.Version = utils.GetEnv("SERVICE_VERSION", cfg.Version, log)
	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.PublishBatchSize = utils.GetEnvAsInt("PUBLISH_BATCH_SIZE", cfg.PublishBatchSize, log)
	cfg.VerifyVersionHashes = utils.GetEnvAsBool("VERIFY_VERSION_HASHES", cfg.VerifyVersionHashes, log)
	if origins := strings.TrimSpace(os.Getenv("ALLOW_ORIGINS")); origins != "" {
		cfg.AllowOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	return cfg, nil
}
