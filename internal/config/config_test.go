package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	home := t.TempDir()

	cfg, err := load(home, filepath.Join(home, "missing.toml"))
	req.NoError(err)
	req.Equal(filepath.Join(home, ".config", "chatroast", "chatroast.db"), cfg.DBPath)
	req.Equal("medium", cfg.Level)
	req.Equal(10, cfg.TopWords)
	req.Equal(5, cfg.TopEmojis)
	req.Equal(40, cfg.ChartWidth)
	req.Equal("warn", cfg.LogLevel)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	req := require.New(t)
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.toml")
	content := `
db_path = "~/data/roast.db"
level = "Savage"
top_words = 3
`
	req.NoError(os.WriteFile(cfgPath, []byte(content), 0o644))
	t.Setenv("CHATROAST_TOP_WORDS", "7")
	t.Setenv("CHATROAST_OUTPUT_DIR", "~/charts")

	cfg, err := load(home, cfgPath)
	req.NoError(err)
	req.Equal(filepath.Join(home, "data", "roast.db"), cfg.DBPath)
	req.Equal(filepath.Join(home, "charts"), cfg.OutputDir)
	req.Equal("savage", cfg.Level)
	req.Equal(7, cfg.TopWords)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown level", "CHATROAST_LEVEL", "extreme"},
		{"negative word count", "CHATROAST_TOP_WORDS", "-1"},
		{"chart too narrow", "CHATROAST_CHART_WIDTH", "2"},
		{"unknown log level", "CHATROAST_LOG_LEVEL", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			home := t.TempDir()
			t.Setenv(tt.key, tt.val)

			_, err := load(home, filepath.Join(home, "missing.toml"))
			req.ErrorIs(err, ErrInvalid)
		})
	}
}

func TestLoad_BadToml(t *testing.T) {
	req := require.New(t)
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.toml")
	req.NoError(os.WriteFile(cfgPath, []byte("level = "), 0o644))

	_, err := load(home, cfgPath)
	req.Error(err)
	req.Contains(err.Error(), "parse config")
}

func TestExpandHome(t *testing.T) {
	req := require.New(t)
	req.Equal(filepath.Join("/home/x", "a/b"), expandHome("~/a/b", "/home/x"))
	req.Equal("/abs/path", expandHome("/abs/path", "/home/x"))
	req.Equal("~", expandHome("~", "/home/x"))
}
