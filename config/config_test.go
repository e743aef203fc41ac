package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Hopman/rothello/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(*cfg, DefaultConfig) {
		t.Errorf("Load(\"\") = %+v, want DefaultConfig", *cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"engine": {"depth": 5, "tie_break": "random"}, "theme": {"symbols": {"black": 88}}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Depth != 5 {
		t.Errorf("Depth = %d, want 5", cfg.Engine.Depth)
	}
	if cfg.Engine.TieBreak != "random" {
		t.Errorf("TieBreak = %q, want random", cfg.Engine.TieBreak)
	}
	if cfg.Theme.Symbols.BlackDisk != 'X' {
		t.Errorf("BlackDisk = %q, want 'X'", cfg.Theme.Symbols.BlackDisk)
	}
	// Untouched keys keep their defaults.
	if cfg.Engine.CornerBonus != DefaultConfig.Engine.CornerBonus {
		t.Errorf("CornerBonus = %d, want default", cfg.Engine.CornerBonus)
	}
	if cfg.Theme.Symbols.WhiteDisk != DefaultConfig.Theme.Symbols.WhiteDisk {
		t.Errorf("WhiteDisk = %q, want default", cfg.Theme.Symbols.WhiteDisk)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ROTHELLO_ENGINE_DEPTH", "6")
	t.Setenv("ROTHELLO_ENGINE_CORNER_SHORTCUT", "true")
	t.Setenv("ROTHELLO_LOG_LEVEL", "debug")

	path := writeConfig(t, `{"engine": {"depth": 2}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Depth != 6 {
		t.Errorf("Depth = %d, want 6 from the environment", cfg.Engine.Depth)
	}
	if !cfg.Engine.CornerShortcut {
		t.Error("CornerShortcut should be enabled from the environment")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	if _, err := Load(writeConfig(t, `{"engine": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}

	_, err := Load(writeConfig(t, `{"engine": {"depth": -2}}`))
	var invalid *InvalidConfig
	if !errors.As(err, &invalid) {
		t.Errorf("error = %v, want *InvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"watch mode", func(c *Config) { c.Engine.PlayerColor = 0 }, true},
		{"control character", func(c *Config) { c.Theme.Symbols.BlackDisk = '\t' }, false},
		{"C1 character", func(c *Config) { c.Theme.Symbols.LegalHint = 130 }, false},
		{"negative depth", func(c *Config) { c.Engine.Depth = -1 }, false},
		{"exponent too large", func(c *Config) { c.Engine.DepthExponent = 5 }, false},
		{"unknown tie-break", func(c *Config) { c.Engine.TieBreak = "best" }, false},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }, false},
		{"bad player color", func(c *Config) { c.Engine.PlayerColor = 3 }, false},
		{"negative delay", func(c *Config) { c.Engine.BotDelay = -5 }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
	}
	for _, tt := range tests {
		c := DefaultConfig
		tt.modify(&c)
		err := c.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
		if !tt.ok {
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("%s: Validate() = %v, want *InvalidConfig", tt.name, err)
			}
		}
	}
}

func TestSearchParams(t *testing.T) {
	c := DefaultConfig
	c.Engine.Depth = 4
	c.Engine.DepthExponent = 2
	c.Engine.ZeroDiskBonus = 100
	c.Engine.TieBreak = "random"
	c.Engine.Workers = 2

	p, err := c.SearchParams()
	if err != nil {
		t.Fatalf("SearchParams: %v", err)
	}
	want := search.Params{
		Depth:         4,
		CornerBonus:   2500,
		DepthExponent: 2,
		ZeroDiskBonus: 100,
		TieBreak:      search.TieBreakRandom,
		Workers:       2,
	}
	if p != want {
		t.Errorf("SearchParams = %+v, want %+v", p, want)
	}

	def, err := DefaultConfig.SearchParams()
	if err != nil {
		t.Fatalf("SearchParams: %v", err)
	}
	if def != search.DefaultParams() {
		t.Errorf("default engine section = %+v, want search.DefaultParams()", def)
	}
}

func TestHistoryDir(t *testing.T) {
	c := DefaultConfig
	if dir := c.HistoryDir(); !strings.HasSuffix(dir, filepath.Join("rothello", "history")) {
		t.Errorf("HistoryDir = %q, want XDG data path", dir)
	}
	c.History.Dir = "/tmp/games"
	if dir := c.HistoryDir(); dir != "/tmp/games" {
		t.Errorf("HistoryDir = %q, want /tmp/games", dir)
	}
	c.History.Enabled = false
	if dir := c.HistoryDir(); dir != "" {
		t.Errorf("HistoryDir = %q, want empty when disabled", dir)
	}
}

func TestGameConfig(t *testing.T) {
	c := DefaultConfig
	c.Engine.PlayerColor = 0
	c.Engine.Depth = 2
	c.Engine.BotDelay = 0
	c.History.Dir = "/tmp/games"

	gc, err := c.GameConfig()
	if err != nil {
		t.Fatalf("GameConfig: %v", err)
	}
	want := search.DefaultParams()
	want.Depth = 2
	if gc.PlayerColor != 0 || gc.Search != want || gc.HistoryDir != "/tmp/games" || gc.BotDelay != 0 {
		t.Errorf("GameConfig = %+v", gc)
	}

	c.Engine.Workers = -1
	if _, err := c.GameConfig(); err == nil {
		t.Error("GameConfig accepted negative workers")
	}
}

func TestSaveThenLoad(t *testing.T) {
	c := DefaultConfig
	c.Engine.Depth = 1
	c.Theme.Symbols.BoardSquare = '+'

	path := filepath.Join(t.TempDir(), "config.json")
	if err := saveCfgFile(path, &c, 0664); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(*loaded, c) {
		t.Errorf("loaded %+v, want %+v", *loaded, c)
	}
}
