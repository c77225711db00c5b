package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the YAML configuration file. Zero values leave the default untouched.
type File struct {
	APIBaseURL  string `yaml:"api_base_url"`
	Site        string `yaml:"site"`
	PageSize    int    `yaml:"page_size"`
	Sort        string `yaml:"sort"`
	Order       string `yaml:"order"`
	Filter      string `yaml:"filter"`
	QuestionURL string `yaml:"question_url"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Color       string `yaml:"color"`
	HistoryPath string `yaml:"history_path"`
	HTTPTimeout string `yaml:"http_timeout"`
}

// LoadConfigFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &f, nil
}

func (f *File) apply(cfg *Config) error {
	if f.APIBaseURL != "" {
		cfg.APIBaseURL = f.APIBaseURL
	}
	if f.Site != "" {
		cfg.Site = f.Site
	}
	if f.PageSize != 0 {
		cfg.PageSize = f.PageSize
	}
	if f.Sort != "" {
		cfg.Sort = f.Sort
	}
	if f.Order != "" {
		cfg.Order = f.Order
	}
	if f.Filter != "" {
		cfg.Filter = f.Filter
	}
	if f.QuestionURL != "" {
		cfg.QuestionURL = f.QuestionURL
	}
	if f.Width != 0 {
		cfg.Width = f.Width
	}
	if f.Height != 0 {
		cfg.Height = f.Height
	}
	if f.Color != "" {
		cfg.Color = f.Color
	}
	if f.HistoryPath != "" {
		cfg.HistoryPath = f.HistoryPath
	}
	if f.HTTPTimeout != "" {
		d, err := time.ParseDuration(f.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	return nil
}
