// Package config loads talent-match settings from a config file, the environment and CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/talent-match/internal/explain"
	"github.com/jonathan/talent-match/internal/extraction"
	"github.com/jonathan/talent-match/internal/fetch"
	"github.com/jonathan/talent-match/internal/llm"
	"github.com/jonathan/talent-match/internal/parsing"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

// EnvPrefix prefixes every environment override, e.g. TALENT_MATCH_RANKING_CONCURRENCY
const EnvPrefix = "TALENT_MATCH"

// DefaultConfigName is looked up in the working directory when no path is given
const DefaultConfigName = "talent-match"

// Similarity providers
const (
	ProviderToken  = "token"
	ProviderGemini = "gemini"
)

// Config is the full runtime configuration
type Config struct {
	Weights     types.Weights    `mapstructure:"weights"`
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	Ranking     RankingConfig    `mapstructure:"ranking"`
	Explain     ExplainConfig    `mapstructure:"explain"`
	Gemini      GeminiConfig     `mapstructure:"gemini"`
	Fetch       FetchConfig      `mapstructure:"fetch"`
	DatabaseURL string           `mapstructure:"database-url"`
	Log         LogConfig        `mapstructure:"log"`
}

// ExtractionConfig tunes skill extraction and section detection
type ExtractionConfig struct {
	SectionThreshold  float64 `mapstructure:"section-threshold"`
	ProficiencyWindow int     `mapstructure:"proficiency-window"`
	Fuzzy             bool    `mapstructure:"fuzzy"`
}

// RankingConfig tunes scoring and batch ranking
type RankingConfig struct {
	Provider    string `mapstructure:"similarity-provider"`
	Concurrency int    `mapstructure:"concurrency"`
	Cache       bool   `mapstructure:"cache"`
}

// ExplainConfig tunes match explanations
type ExplainConfig struct {
	StrengthThreshold float64 `mapstructure:"strength-threshold"`
	WeaknessThreshold float64 `mapstructure:"weakness-threshold"`
	MaxHighlights     int     `mapstructure:"max-highlights"`
}

// GeminiConfig holds the Gemini credentials and model choices
type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	Tagger         bool   `mapstructure:"tagger"` // use the LLM NER tagger instead of the rule tagger
}

// FetchConfig controls downloading job postings by URL
type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Browser bool          `mapstructure:"browser"` // render thin pages in headless Chrome
}

// LogConfig selects the zap encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Weights: types.DefaultWeights(),
		Extraction: ExtractionConfig{
			SectionThreshold:  parsing.DefaultHeaderThreshold,
			ProficiencyWindow: extraction.DefaultWindow,
			Fuzzy:             true,
		},
		Ranking: RankingConfig{
			Provider:    ProviderToken,
			Concurrency: ranking.DefaultConcurrency,
			Cache:       true,
		},
		Explain: ExplainConfig{
			StrengthThreshold: explain.DefaultStrengthThreshold,
			WeaknessThreshold: explain.DefaultWeaknessThreshold,
			MaxHighlights:     explain.DefaultMaxHighlights,
		},
		Gemini: GeminiConfig{
			EmbeddingModel: llm.DefaultEmbeddingModel,
		},
		Fetch: FetchConfig{
			Timeout: fetch.DefaultTimeout,
			Browser: true,
		},
	}
}

// Loader layers defaults, a config file, environment variables and bound flags
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader seeded with Defaults
func NewLoader() *Loader {
	v := viper.New()
	d := Defaults()
	v.SetDefault("weights.semantic", d.Weights.Semantic)
	v.SetDefault("weights.skills", d.Weights.Skills)
	v.SetDefault("weights.experience", d.Weights.Experience)
	v.SetDefault("weights.education", d.Weights.Education)
	v.SetDefault("extraction.section-threshold", d.Extraction.SectionThreshold)
	v.SetDefault("extraction.proficiency-window", d.Extraction.ProficiencyWindow)
	v.SetDefault("extraction.fuzzy", d.Extraction.Fuzzy)
	v.SetDefault("ranking.similarity-provider", d.Ranking.Provider)
	v.SetDefault("ranking.concurrency", d.Ranking.Concurrency)
	v.SetDefault("ranking.cache", d.Ranking.Cache)
	v.SetDefault("explain.strength-threshold", d.Explain.StrengthThreshold)
	v.SetDefault("explain.weakness-threshold", d.Explain.WeaknessThreshold)
	v.SetDefault("explain.max-highlights", d.Explain.MaxHighlights)
	v.SetDefault("gemini.api-key", "")
	v.SetDefault("gemini.embedding-model", d.Gemini.EmbeddingModel)
	v.SetDefault("gemini.tagger", false)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.browser", d.Fetch.Browser)
	v.SetDefault("database-url", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Unprefixed names shared with other tools
	_ = v.BindEnv("gemini.api-key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database-url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return &Loader{v: v}
}

// BindFlag lets a CLI flag override key when the flag is set
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads path, or talent-match.{yaml,json} from the working directory when path is empty,
// then validates the result. A missing default file is not an error.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(DefaultConfigName)
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is shorthand for NewLoader().Load(path)
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Extraction.SectionThreshold < 0 || c.Extraction.SectionThreshold > 1 {
		return configError("extraction.section-threshold", "must be between 0 and 1")
	}
	if c.Extraction.ProficiencyWindow < 0 {
		return configError("extraction.proficiency-window", "must be non-negative")
	}
	if c.Ranking.Concurrency < 1 {
		return configError("ranking.concurrency", "must be at least 1")
	}
	switch c.Ranking.Provider {
	case ProviderToken:
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return configError("gemini.api-key", "required when the similarity provider is gemini")
		}
	default:
		return configError("ranking.similarity-provider", fmt.Sprintf("unknown provider %q", c.Ranking.Provider))
	}
	if c.Gemini.Tagger && c.Gemini.APIKey == "" {
		return configError("gemini.api-key", "required when the LLM tagger is enabled")
	}
	for key, v := range map[string]float64{
		"explain.strength-threshold": c.Explain.StrengthThreshold,
		"explain.weakness-threshold": c.Explain.WeaknessThreshold,
	} {
		if v < 0 || v > 100 {
			return configError(key, "must be between 0 and 100")
		}
	}
	if c.Explain.MaxHighlights < 0 {
		return configError("explain.max-highlights", "must be non-negative")
	}
	if c.Fetch.Timeout < 0 {
		return configError("fetch.timeout", "must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Bools cannot be told apart from an explicit false and are never merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Weights.IsZero() {
		result.Weights = defaults.Weights
	}
	if result.Extraction.SectionThreshold == 0 {
		result.Extraction.SectionThreshold = defaults.Extraction.SectionThreshold
	}
	if result.Extraction.ProficiencyWindow == 0 {
		result.Extraction.ProficiencyWindow = defaults.Extraction.ProficiencyWindow
	}
	if result.Ranking.Provider == "" {
		result.Ranking.Provider = defaults.Ranking.Provider
	}
	if result.Ranking.Concurrency == 0 {
		result.Ranking.Concurrency = defaults.Ranking.Concurrency
	}
	if result.Explain.StrengthThreshold == 0 {
		result.Explain.StrengthThreshold = defaults.Explain.StrengthThreshold
	}
	if result.Explain.WeaknessThreshold == 0 {
		result.Explain.WeaknessThreshold = defaults.Explain.WeaknessThreshold
	}
	if result.Explain.MaxHighlights == 0 {
		result.Explain.MaxHighlights = defaults.Explain.MaxHighlights
	}
	if result.Gemini.APIKey == "" {
		result.Gemini.APIKey = defaults.Gemini.APIKey
	}
	if result.Gemini.EmbeddingModel == "" {
		result.Gemini.EmbeddingModel = defaults.Gemini.EmbeddingModel
	}
	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	return result
}

func configError(field, message string) error {
	return &types.ConfigurationError{Field: field, Message: message}
}
