package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all survey client configuration.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:3000".
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// SurveyID selects the survey under /api/v1/members/survey/{id}.
	SurveyID int `yaml:"survey_id" validate:"min=1"`

	// PageSize is the number of questions shown together. Default: 5.
	PageSize int `yaml:"page_size" validate:"min=1"`

	// Pages is the total page count. 0 derives it from the number of
	// loaded questions. Default: 4.
	Pages int `yaml:"pages" validate:"min=0"`

	// Timeout bounds a single HTTP request. 0 disables the limit.
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`

	// DB is the submission log path. Empty resolves the XDG default.
	DB string `yaml:"db"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the zap file logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  "http://localhost:3000",
		SurveyID: 1,
		PageSize: 5,
		Pages:    4,
		Timeout:  30 * time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file and applies SURVEY_*
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotenv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SURVEY_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SURVEY_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("SURVEY_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SURVEY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"SURVEY_ID", &c.SurveyID},
		{"SURVEY_PAGE_SIZE", &c.PageSize},
		{"SURVEY_PAGES", &c.Pages},
	}
	for _, it := range ints {
		v := os.Getenv(it.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.env, err)
		}
		*it.dst = n
	}

	if v := os.Getenv("SURVEY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SURVEY_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// DefaultPath resolves the config file location:
// 1. SURVEY_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/survey/config.yaml
// 3. ~/.config/survey/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("SURVEY_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "survey", "config.yaml"), nil
}
