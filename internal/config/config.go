package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	DBPath      string `toml:"db_path" env:"CHATROAST_DB_PATH"`
	ExportsRoot string `toml:"exports_root" env:"CHATROAST_EXPORTS_ROOT"`
	OutputDir   string `toml:"output_dir" env:"CHATROAST_OUTPUT_DIR" validate:"required"`
	Level       string `toml:"level" env:"CHATROAST_LEVEL" validate:"oneof=mild medium savage"`
	TopWords    int    `toml:"top_words" env:"CHATROAST_TOP_WORDS" validate:"gte=0"`
	TopEmojis   int    `toml:"top_emojis" env:"CHATROAST_TOP_EMOJIS" validate:"gte=0"`
	ChartWidth  int    `toml:"chart_width" env:"CHATROAST_CHART_WIDTH" validate:"gte=10,lte=200"`
	LogLevel    string `toml:"log_level" env:"CHATROAST_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Load builds the config from defaults, ~/.config/chatroast/config.toml,
// a .env file in the working directory and CHATROAST_* variables, in that order.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return load(home, filepath.Join(home, ".config", "chatroast", "config.toml"))
}

func load(home, cfgPath string) (*Config, error) {
	cfg := defaults(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.ExportsRoot = expandHome(cfg.ExportsRoot, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)

	cfg.Level = strings.ToLower(strings.TrimSpace(cfg.Level))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults(home string) *Config {
	return &Config{
		DBPath:      filepath.Join(home, ".config", "chatroast", "chatroast.db"),
		ExportsRoot: filepath.Join(home, "Downloads"),
		OutputDir:   "analysis",
		Level:       "medium",
		TopWords:    10,
		TopEmojis:   5,
		ChartWidth:  40,
		LogLevel:    "warn",
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
