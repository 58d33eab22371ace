package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeServe = "serve"

	// Output format constants
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the candidate field extractor.
type Config struct {
	// Run configuration
	Mode string // "batch" or "serve"

	// Input configuration
	InputDirectory string

	// Output configuration
	OutputPath   string // "-" means stdout
	OutputFormat string // table, csv or xlsx

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:           ModeBatch,
		InputDirectory: currentDir,
		OutputPath:     "-",
		OutputFormat:   FormatTable,
		Version:        "1.0.0",
		ServerName:     "candex",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("CANDEX")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.InputDirectory)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("format", cfg.OutputFormat)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' for one-shot extraction, 'serve' for MCP standard I/O")
	pflag.String("dir", cfg.InputDirectory, "Directory containing candidate PDF files")
	pflag.String("out", cfg.OutputPath, "Output path ('-' for stdout)")
	pflag.String("format", cfg.OutputFormat, "Output format (table, csv, xlsx)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ncandex - Extract candidate fields from PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # extract every PDF in the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --format=csv # CSV to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s a.pdf b.pdf --format=xlsx --out=candidates.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=serve --dir=/path/to/pdfs # MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_DIR         Input PDF directory\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_OUT         Output path\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_FORMAT      Output format\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  CANDEX_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputDirectory = viper.GetString("dir")
	cfg.OutputPath = viper.GetString("out")
	cfg.OutputFormat = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeServe {
		return errors.New("mode must be either 'batch' or 'serve'")
	}

	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}

	switch c.OutputFormat {
	case FormatTable, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: table, csv, xlsx)", c.OutputFormat)
	}

	if c.OutputFormat == FormatXLSX && c.OutputPath == "-" {
		return errors.New("xlsx output requires --out to point at a file")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsServeMode returns true when running as an MCP stdio server
func (c *Config) IsServeMode() bool {
	return c.Mode == ModeServe
}

// IsBatchMode returns true when running a one-shot batch extraction
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputDirectory: %s, OutputPath: %s, OutputFormat: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InputDirectory, c.OutputPath, c.OutputFormat, c.LogLevel, c.MaxFileSize)
}
