package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/search"
)

var (
	cfgFile    = "rothello/config.json"
	historyDir = "rothello/history"
	envPrefix  = "ROTHELLO"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" mapstructure:"board"`
	BoardColorAlt     int `json:"board_alt" mapstructure:"board_alt"`
	BlackColor        int `json:"black" mapstructure:"black"`
	WhiteColor        int `json:"white" mapstructure:"white"`
	LineColor         int `json:"line" mapstructure:"line"`
	HintColor         int `json:"hint" mapstructure:"hint"`
	CursorColorFG     int `json:"cursor_fg" mapstructure:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg" mapstructure:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg" mapstructure:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackDisk   rune `json:"black" mapstructure:"black"`
	WhiteDisk   rune `json:"white" mapstructure:"white"`
	BoardSquare rune `json:"board" mapstructure:"board"`
	LegalHint   rune `json:"hint" mapstructure:"hint"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg" mapstructure:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg" mapstructure:"draw_last_played_bg"`
	ShowLegalMoves           bool          `json:"show_legal_moves" mapstructure:"show_legal_moves"`
	FullWidthLetters         bool          `json:"fullwidth_letters" mapstructure:"fullwidth_letters"`
	Colors                   ConfigColors  `json:"colors" mapstructure:"colors"`
	Symbols                  ConfigSymbols `json:"symbols" mapstructure:"symbols"`
}

// EngineConfig holds the bot settings and the defaults of the game setup screen.
type EngineConfig struct {
	Depth          int    `json:"depth" mapstructure:"depth"`
	CornerBonus    int    `json:"corner_bonus" mapstructure:"corner_bonus"`
	DepthExponent  int    `json:"depth_exponent" mapstructure:"depth_exponent"`
	ZeroDiskBonus  int    `json:"zero_disk_bonus" mapstructure:"zero_disk_bonus"`
	TieBreak       string `json:"tie_break" mapstructure:"tie_break"`
	CornerShortcut bool   `json:"corner_shortcut" mapstructure:"corner_shortcut"`
	Workers        int    `json:"workers" mapstructure:"workers"`
	PlayerColor    int    `json:"player_color" mapstructure:"player_color"` // 1=black, 2=white, 0=watch
	BotDelay       int    `json:"bot_delay_ms" mapstructure:"bot_delay_ms"`
}

// HistoryConfig controls where game records are written.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"` // empty means the XDG data dir
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"` // empty means the XDG state dir
}

type Config struct {
	Theme   Theme         `json:"theme" mapstructure:"theme"`
	Engine  EngineConfig  `json:"engine" mapstructure:"engine"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" mapstructure:"log"`
}

// InitConfig loads the XDG config file, if any, over DefaultConfig and applies
// ROTHELLO_* environment overrides.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return Load(absPath)
}

// Load reads the config file at path (skipped when empty) layered over DefaultConfig.
// Environment variables like ROTHELLO_ENGINE_DEPTH override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	defaults, err := json.Marshal(DefaultConfig)
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("read default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackDisk, c.Theme.Symbols.WhiteDisk, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.LegalHint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := c.SearchParams(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Engine.PlayerColor < 0 || c.Engine.PlayerColor > 2 {
		return &InvalidConfig{fmt.Sprintf("player_color must be 0, 1 or 2, got %d", c.Engine.PlayerColor)}
	}
	if c.Engine.BotDelay < 0 {
		return &InvalidConfig{"bot_delay_ms must not be negative"}
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// SearchParams converts the engine section to bot parameters.
func (c *Config) SearchParams() (search.Params, error) {
	tb, err := search.ParseTieBreak(c.Engine.TieBreak)
	if err != nil {
		return search.Params{}, err
	}
	p := search.Params{
		Depth:          c.Engine.Depth,
		CornerBonus:    c.Engine.CornerBonus,
		DepthExponent:  c.Engine.DepthExponent,
		ZeroDiskBonus:  c.Engine.ZeroDiskBonus,
		TieBreak:       tb,
		CornerShortcut: c.Engine.CornerShortcut,
		Workers:        c.Engine.Workers,
	}
	return p, p.Validate()
}

// GameConfig returns the settings of a new game from the engine and history sections.
func (c *Config) GameConfig() (engine.GameConfig, error) {
	params, err := c.SearchParams()
	if err != nil {
		return engine.GameConfig{}, err
	}
	return engine.GameConfig{
		PlayerColor: c.Engine.PlayerColor,
		Search:      params,
		HistoryDir:  c.HistoryDir(),
		BotDelay:    c.Engine.BotDelay,
	}, nil
}

// HistoryDir returns the directory for game records, or "" when recording is disabled.
func (c *Config) HistoryDir() string {
	if !c.History.Enabled {
		return ""
	}
	if c.History.Dir != "" {
		return c.History.Dir
	}
	return filepath.Join(xdg.DataHome, historyDir)
}

// Save writes the config to the XDG config path.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
