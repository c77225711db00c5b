package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// AppName is used for the XDG config and data directories.
const AppName = "stack-cli"

const (
	defaultAPIBaseURL  = "https://api.stackexchange.com/2.3"
	defaultSite        = "stackoverflow"
	defaultPageSize    = 100
	defaultSort        = "votes"
	defaultOrder       = "desc"
	defaultFilter      = "withbody"
	defaultQuestionURL = "https://stackoverflow.com/questions/%d/"
	defaultColor       = ColorAuto

	// DefaultWidth and DefaultHeight are used when the terminal size cannot be detected.
	DefaultWidth  = 80
	DefaultHeight = 24

	// statusMargin is the number of rows kept free below each screenful for the prompt.
	statusMargin = 4

	maxPageSize = 100
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds runtime settings for the CLI app. It is built once at startup
// and passed by value into every component that needs it.
type Config struct {
	APIBaseURL  string
	Site        string
	PageSize    int
	Sort        string
	Order       string
	Filter      string
	QuestionURL string

	// Width and Height describe the terminal. Zero means "not detected".
	Width  int
	Height int

	Color string

	// HistoryPath enables search history in this sqlite file. Empty keeps
	// nothing between runs.
	HistoryPath string
	HTTPTimeout time.Duration
	Verbose     bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:  defaultAPIBaseURL,
		Site:        defaultSite,
		PageSize:    defaultPageSize,
		Sort:        defaultSort,
		Order:       defaultOrder,
		Filter:      defaultFilter,
		QuestionURL: defaultQuestionURL,
		Color:       defaultColor,
	}
}

// DefaultHistoryPath is where search history goes when it is switched on
// without a path. History is off unless HistoryPath is set.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, "history.db")
}

var defaultConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultConfigPath is where Load looks when no explicit file is given.
func DefaultConfigPath() string {
	return defaultConfigPath()
}

// Load builds a Config from defaults, the YAML file at path (or the default
// location when path is empty) and STACK_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	file, err := LoadConfigFile(path)
	switch {
	case err == nil:
		if err := file.apply(&cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	case errors.Is(err, ErrConfigNotFound) && !explicit:
	default:
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv is Load with the default file location.
func LoadFromEnv() (Config, error) {
	return Load("")
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %q", key, v)
		}
		*dst = n
		return nil
	}

	setString("STACK_API_BASE_URL", &cfg.APIBaseURL)
	setString("STACK_SITE", &cfg.Site)
	setString("STACK_SORT", &cfg.Sort)
	setString("STACK_ORDER", &cfg.Order)
	setString("STACK_FILTER", &cfg.Filter)
	setString("STACK_QUESTION_URL", &cfg.QuestionURL)
	setString("STACK_HISTORY_PATH", &cfg.HistoryPath)
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = ColorNever
	}
	setString("STACK_COLOR", &cfg.Color)

	for key, dst := range map[string]*int{
		"STACK_PAGE_SIZE": &cfg.PageSize,
		"STACK_WIDTH":     &cfg.Width,
		"STACK_HEIGHT":    &cfg.Height,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}

	if v := strings.TrimSpace(os.Getenv("STACK_HTTP_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STACK_HTTP_TIMEOUT must be a duration: %q", v)
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.Site == "" {
		return ErrMissingSite
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, c.PageSize)
	}
	switch c.Sort {
	case "activity", "votes", "creation", "relevance":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSort, c.Sort)
	}
	if c.Order != "asc" && c.Order != "desc" {
		return fmt.Errorf("%w: %s", ErrInvalidOrder, c.Order)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidColor, c.Color)
	}
	if !strings.Contains(c.QuestionURL, "%d") {
		return fmt.Errorf("%w: %s", ErrInvalidQuestionURL, c.QuestionURL)
	}
	if c.Width < 0 || c.Height < 0 {
		return ErrInvalidTerminalSize
	}
	if c.HTTPTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// WithTerminalSize fills Width and Height when they were not configured.
func (c Config) WithTerminalSize(width, height int) Config {
	if c.Width == 0 && width > 0 {
		c.Width = width
	}
	if c.Height == 0 && height > 0 {
		c.Height = height
	}
	return c
}

// Columns is the separator width.
func (c Config) Columns() int {
	if c.Width > 0 {
		return c.Width
	}
	return DefaultWidth
}

// LinesPerScreen is the number of buffered lines shown between key presses.
func (c Config) LinesPerScreen() int {
	height := c.Height
	if height <= 0 {
		height = DefaultHeight
	}
	return max(1, height-statusMargin)
}

// QuestionLink returns the web permalink of a question.
func (c Config) QuestionLink(id int64) string {
	return fmt.Sprintf(c.QuestionURL, id)
}
