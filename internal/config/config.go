package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tiancaiamao/bench-csv"
)

// Config holds all configuration for the extractors
type Config struct {
	// Global configuration
	Debug    bool   `yaml:"debug" mapstructure:"debug"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	LogFile  string `yaml:"log_file" mapstructure:"log_file"`

	Section SectionConfig `yaml:"section" mapstructure:"section"`
	Inline  InlineConfig  `yaml:"inline" mapstructure:"inline"`
	Chart   ChartConfig   `yaml:"chart" mapstructure:"chart"`
}

// SectionConfig holds configuration for parse-oneshot
type SectionConfig struct {
	StartTag    string   `yaml:"start_tag" mapstructure:"start_tag"`
	EndTag      string   `yaml:"end_tag" mapstructure:"end_tag"`
	NamePattern string   `yaml:"name_pattern" mapstructure:"name_pattern"`
	Columns     []string `yaml:"columns" mapstructure:"columns"`
}

// InlineConfig holds configuration for parse
type InlineConfig struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// ChartConfig controls the optional HTML scatter page. No page is written when
// Output is empty.
type ChartConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
	Title  string `yaml:"title" mapstructure:"title"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Section: SectionConfig{
			StartTag:    benchcsv.DefaultStartTag,
			EndTag:      benchcsv.DefaultEndTag,
			NamePattern: benchcsv.DefaultNamePattern,
		},
		Inline: InlineConfig{
			Pattern: benchcsv.DefaultInlinePattern,
		},
	}
}

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"debug":        "debug",
	"log-level":    "log_level",
	"log-file":     "log_file",
	"start-tag":    "section.start_tag",
	"end-tag":      "section.end_tag",
	"name-pattern": "section.name_pattern",
	"columns":      "section.columns",
	"pattern":      "inline.pattern",
	"html":         "chart.output",
	"title":        "chart.title",
}

// LoadConfig loads configuration from file, environment variables, and the
// given flags, in increasing order of precedence.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := DefaultConfig()

	// A local viper instance keeps separate runs in one process apart
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, config)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BENCHCSV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("debug", c.Debug)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_file", c.LogFile)
	v.SetDefault("section.start_tag", c.Section.StartTag)
	v.SetDefault("section.end_tag", c.Section.EndTag)
	v.SetDefault("section.name_pattern", c.Section.NamePattern)
	v.SetDefault("section.columns", c.Section.Columns)
	v.SetDefault("inline.pattern", c.Inline.Pattern)
	v.SetDefault("chart.output", c.Chart.Output)
	v.SetDefault("chart.title", c.Chart.Title)
}

// Level resolves the configured log level. Debug wins over LogLevel.
func (c *Config) Level() zapcore.Level {
	if c.Debug {
		return zapcore.DebugLevel
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// NewLogger creates a zap logger writing to w, and to LogFile when set. w is
// the diagnostic stream; stdout carries data and must not be used here.
func (c *Config) NewLogger(w io.Writer) (*zap.Logger, error) {
	level := c.Level()

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level),
	}
	if c.LogFile != "" {
		sink, _, err := zap.Open(c.LogFile)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// SectionExtractorConfig validates the section settings and compiles them.
func (c *Config) SectionExtractorConfig() (*benchcsv.SectionConfig, error) {
	cols, err := benchcsv.ParseColumns(c.Section.Columns)
	if err != nil {
		return nil, err
	}
	return benchcsv.NewSectionConfig(c.Section.StartTag, c.Section.EndTag, c.Section.NamePattern, cols)
}

// InlineExtractorConfig validates the inline settings and compiles them.
func (c *Config) InlineExtractorConfig() (*benchcsv.InlineConfig, error) {
	if c.Inline.Pattern == "" {
		return nil, fmt.Errorf("inline pattern must be specified")
	}
	return benchcsv.NewInlineConfig(c.Inline.Pattern)
}
