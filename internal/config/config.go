// Package config handles loading kanban.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/kanban/internal/paths"
	"github.com/go-playground/validator/v10"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "kanban.toml"

// Environment variables that override configuration.
const (
	EnvConfig  = "KANBAN_CONFIG"
	EnvBoard   = "KANBAN_BOARD"
	EnvNoColor = "NO_COLOR"
)

// Defaults.
const (
	DefaultBackend  = "json"
	DefaultColor    = "auto"
	DefaultWidth    = 80
	DefaultLogLevel = "warn"
)

// ErrInvalid is returned when a config value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config represents the kanban.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Editor  Editor  `toml:"editor"`
	Display Display `toml:"display"`
	History History `toml:"history"`
	Log     Log     `toml:"log"`

	// Sources lists the config files that were read, lowest precedence first.
	Sources []string `toml:"-"`
}

// Storage selects where the board is kept.
type Storage struct {
	// Backend is "json" or "sqlite".
	Backend string `toml:"backend" validate:"oneof=json sqlite"`

	// Path is the board file. Defaults to board.json or board.db in the data dir.
	Path string `toml:"path" validate:"required"`
}

// Editor configures how descriptions are edited.
type Editor struct {
	// Command overrides $EDITOR. It may include arguments.
	Command string `toml:"command"`
}

// Display configures board rendering.
type Display struct {
	// Color is "auto", "always", or "never".
	Color string `toml:"color" validate:"oneof=auto always never"`

	// Width is the wrap width for descriptions.
	Width int `toml:"width" validate:"gte=20,lte=1000"`
}

// History configures the undo history.
type History struct {
	// Limit caps the number of undo records. Zero keeps every record.
	Limit int `toml:"limit" validate:"gte=0"`
}

// Log configures diagnostic logging.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error disabled"`

	// Path is a file to append logs to. Logs go to stderr when empty.
	Path string `toml:"path"`
}

// Load loads configuration from the global config file and from dir.
// explicitPath, if set, replaces the global file and must exist.
// Missing files are ignored; defaults fill unset values.
func Load(dir, explicitPath string) (*Config, error) {
	globalPath := explicitPath
	required := explicitPath != ""
	if globalPath == "" {
		if env := os.Getenv(EnvConfig); env != "" {
			globalPath, required = env, true
		}
	}
	if globalPath == "" {
		configDir, err := paths.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		globalPath = filepath.Join(configDir, "config.toml")
	}

	globalCfg, globalMeta, globalFound, err := loadConfigFile(globalPath, required)
	if err != nil {
		return nil, err
	}

	projectPath := filepath.Join(dir, ProjectFile)
	projectCfg, projectMeta, projectFound, err := loadConfigFile(projectPath, false)
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if globalFound {
		merged.Sources = append(merged.Sources, globalPath)
	}
	if projectFound {
		merged.Sources = append(merged.Sources, projectPath)
	}

	applyEnv(merged)
	if err := applyDefaults(merged); err != nil {
		return nil, err
	}
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string, required bool) (*Config, toml.MetaData, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return &Config{}, toml.MetaData{}, false, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, false, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, false, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, false, fmt.Errorf("%w: %s: unknown key %s", ErrInvalid, path, undecoded[0])
	}

	return &cfg, meta, true, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Editor.Command = mergeString(projectMeta.IsDefined("editor", "command"), projectCfg.Editor.Command, globalCfg.Editor.Command)
	merged.Display.Color = mergeString(projectMeta.IsDefined("display", "color"), projectCfg.Display.Color, globalCfg.Display.Color)
	merged.Display.Width = mergeInt(projectMeta.IsDefined("display", "width"), globalMeta.IsDefined("display", "width"), projectCfg.Display.Width, globalCfg.Display.Width)
	merged.History.Limit = mergeInt(projectMeta.IsDefined("history", "limit"), globalMeta.IsDefined("history", "limit"), projectCfg.History.Limit, globalCfg.History.Limit)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Path = mergeString(projectMeta.IsDefined("log", "path"), projectCfg.Log.Path, globalCfg.Log.Path)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeInt(projectDefined, globalDefined bool, projectValue, globalValue int) int {
	switch {
	case projectDefined:
		return projectValue
	case globalDefined:
		return globalValue
	default:
		return -1
	}
}

func applyEnv(cfg *Config) {
	if board := strings.TrimSpace(os.Getenv(EnvBoard)); board != "" {
		cfg.Storage.Path = board
	}
	if os.Getenv(EnvNoColor) != "" && cfg.Display.Color != "always" {
		cfg.Display.Color = "never"
	}
}

func applyDefaults(cfg *Config) error {
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.Path == "" {
		dataDir, err := paths.DefaultDataDir()
		if err != nil {
			return err
		}
		name := "board.json"
		if cfg.Storage.Backend == "sqlite" {
			name = "board.db"
		}
		cfg.Storage.Path = filepath.Join(dataDir, name)
	}

	var err error
	if cfg.Storage.Path, err = paths.Expand(cfg.Storage.Path); err != nil {
		return err
	}
	if cfg.Log.Path, err = paths.Expand(cfg.Log.Path); err != nil {
		return err
	}

	if cfg.Display.Color == "" {
		cfg.Display.Color = DefaultColor
	}
	if cfg.Display.Width < 0 {
		cfg.Display.Width = DefaultWidth
	}
	if cfg.History.Limit < 0 {
		cfg.History.Limit = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every value is in range.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		problems = append(problems, fmt.Errorf("%w: %s = %v (%s)", ErrInvalid, key, fe.Value(), describe(fe)))
	}
	return errors.Join(problems...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "required":
		return "is required"
	default:
		return "fails " + fe.Tag()
	}
}
