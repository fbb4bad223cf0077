package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/filter"
)

const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
)

const (
	KeyGeminiAPIKey     = "gemini_api_key"
	KeyGitHubToken      = "github_token"
	KeyModel            = "model"
	KeyOutputPath       = "output_path"
	KeyLanguage         = "language"
	KeyRelevantSuffixes = "relevant_suffixes"
)

const (
	defaultLang       = LangEN
	DefaultOutputPath = "repo_analysis.json"
	configDirName     = ".repolens"
	configFileName    = "config.json"
)

// DefaultRelevantSuffixes are the name endings of the files sent to the AI.
var DefaultRelevantSuffixes = filter.DefaultSuffixes

type Config struct {
	GeminiAPIKey     string   `json:"gemini_api_key,omitempty"`
	GitHubToken      string   `json:"github_token,omitempty"`
	Model            Model    `json:"model"`
	OutputPath       string   `json:"output_path"`
	Language         string   `json:"language"`
	RelevantSuffixes []string `json:"relevant_suffixes"`
	PathFile         string   `json:"path_file"`
}

// LoadConfig reads the configuration file. path is either a .json file or a
// base directory under which ".repolens/config.json" is used. A missing file is
// created with defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error checking configuration file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding configuration file: %w", err)
	}
	config.PathFile = configPath
	config.applyDefaults()

	if err := validateConfig(&config); err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", configPath)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{PathFile: path}
	config.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating configuration directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error saving default configuration: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err)
	}

	if config.PathFile == "" {
		return errors.New("configuration file path is not defined")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

// WithEnv returns a copy with the secrets found in the environment. The copy is
// meant for the current run only and should not be saved.
func (c *Config) WithEnv(lookup func(string) (string, bool)) *Config {
	cp := *c
	cp.RelevantSuffixes = append([]string(nil), c.RelevantSuffixes...)

	if v, ok := lookup(EnvGeminiAPIKey); ok && v != "" {
		cp.GeminiAPIKey = v
	}
	if v, ok := lookup(EnvGitHubToken); ok && v != "" {
		cp.GitHubToken = v
	}
	return &cp
}

// Set updates a single key from its string form.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyGeminiAPIKey:
		c.GeminiAPIKey = value
	case KeyGitHubToken:
		c.GitHubToken = value
	case KeyModel:
		c.Model = Model(value)
	case KeyOutputPath:
		c.OutputPath = value
	case KeyLanguage:
		c.Language = value
	case KeyRelevantSuffixes:
		var suffixes []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				suffixes = append(suffixes, s)
			}
		}
		c.RelevantSuffixes = suffixes
	default:
		return domainErrors.ErrUnknownConfigKey.WithContext("key", key)
	}

	return validateConfig(c)
}

// Masked returns the configuration as key/value pairs with secrets hidden,
// sorted by key.
func (c *Config) Masked() [][2]string {
	values := map[string]string{
		KeyGeminiAPIKey:     maskSecret(c.GeminiAPIKey),
		KeyGitHubToken:      maskSecret(c.GitHubToken),
		KeyModel:            string(c.Model),
		KeyOutputPath:       c.OutputPath,
		KeyLanguage:         c.Language,
		KeyRelevantSuffixes: strings.Join(c.RelevantSuffixes, ","),
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, values[k]})
	}
	return pairs
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = defaultLang
	}
	if c.Model == "" {
		c.Model = DefaultModelForAI(AIGemini)
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if len(c.RelevantSuffixes) == 0 {
		c.RelevantSuffixes = append([]string(nil), DefaultRelevantSuffixes...)
	}
}

func validateConfig(config *Config) error {
	if !IsSupportedLanguage(config.Language) {
		return fmt.Errorf("unsupported language: %q", config.Language)
	}
	if config.Model == "" {
		return errors.New("model cannot be empty")
	}
	if strings.TrimSpace(config.OutputPath) == "" {
		return errors.New("output path cannot be empty")
	}
	if len(config.RelevantSuffixes) == 0 {
		return errors.New("relevant suffixes cannot be empty")
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
