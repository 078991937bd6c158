package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultSettingsFile = "settings.yaml"

// Default user agent used when REDDIT_USER_AGENT is not set.
const defaultUserAgent = "linux:subcast:v1.0 (by /u/subcast)"

// Embedded configuration files
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/page.html.tmpl
var defaultPageTemplate string

// ConfigOverrides allows overriding embedded defaults with file paths
type ConfigOverrides struct {
	SettingsPath *string
	TemplatePath *string
}

// VoiceSettings selects the synthesis language and voice.
type VoiceSettings struct {
	Language string `yaml:"language"`
	Name     string `yaml:"name"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	Subreddit     string        `yaml:"subreddit"`
	PostLimit     int           `yaml:"post_limit"`
	MinTextLength int           `yaml:"min_text_length"`
	MaxTextLength int           `yaml:"max_text_length"`
	AudioDir      string        `yaml:"audio_dir"`
	HTMLFile      string        `yaml:"html_file"`
	HistoryFile   string        `yaml:"history_file"`
	Voice         VoiceSettings `yaml:"voice"`
}

// Config holds configuration and overrides
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
}

// NewConfig creates a new Config with settings and overrides
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	var (
		settings *Settings
		err      error
	)

	if overrides != nil && overrides.SettingsPath != nil {
		// Explicit settings file must exist
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("loading settings from %s: %w", *overrides.SettingsPath, err)
		}
	} else {
		settings, err = loadSettings(defaultSettingsFile)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
	}

	return &Config{
		Settings:  settings,
		Overrides: overrides,
	}, nil
}

// GetPageTemplate returns the page template (from override file or embedded)
func (c *Config) GetPageTemplate() string {
	if c.Overrides != nil && c.Overrides.TemplatePath != nil {
		if content, err := os.ReadFile(*c.Overrides.TemplatePath); err == nil {
			return string(content)
		}
	}
	return defaultPageTemplate
}

// embeddedSettings parses the embedded default settings.
func embeddedSettings() (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}
	return &settings, nil
}

// loadSettings loads settings from a YAML file, starting from the embedded
// defaults so a partial file only overrides the values it names. A missing
// file yields the defaults unchanged.
func loadSettings(settingsPath string) (*Settings, error) {
	settings, err := embeddedSettings()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	return settings, nil
}

// loadSettingsRequired loads settings from a YAML file, failing if the file
// doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	settings, err := embeddedSettings()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	return settings, nil
}

// Credentials holds the Reddit application credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// CredentialsFromEnv reads the Reddit credentials from the environment. The
// user agent falls back to a built-in default when unset.
func CredentialsFromEnv() Credentials {
	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return Credentials{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    userAgent,
	}
}
