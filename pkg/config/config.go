// Package config resolves mosp settings from defaults, an optional YAML file,
// MOSP_* environment variables (including a .env file) and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/srodi/mosp/pkg/apperrors"
	"github.com/srodi/mosp/pkg/logging"
	"github.com/srodi/mosp/pkg/output"
	"github.com/srodi/mosp/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable mosp reads.
const EnvPrefix = "MOSP_"

var (
	// ErrHelp is returned when -h/--help was given.
	ErrHelp = flag.ErrHelp
	// ErrVersion is returned when -v/--version was given.
	ErrVersion = errors.New("version requested")
)

// Config is the fully resolved run configuration.
type Config struct {
	Interval       time.Duration
	MaxRunTime     time.Duration
	OutputFile     string
	AutoOutputFile bool
	OutputPath     string
	NoHeaderRow    bool
	LegacyDeltas   bool
	MetricsAddr    string
	LogLevel       string
	LogFormat      string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval:  types.DefaultInterval,
		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
	}
}

// OutputTarget returns the results file path, or "" when file output is off.
// An explicit output file takes precedence over the generated name.
func (c Config) OutputTarget(hostname string, now time.Time) string {
	switch {
	case c.OutputFile != "":
		return output.ResolvePath(c.OutputPath, c.OutputFile)
	case c.AutoOutputFile:
		return output.ResolvePath(c.OutputPath, output.AutoFileName(hostname, now))
	}
	return ""
}

// WriteHeader reports whether a CSV header row precedes the data.
func (c Config) WriteHeader() bool {
	return !c.NoHeaderRow
}

// Environment holds everything Load reads besides the arguments.
type Environment struct {
	// LookupEnv reads process environment variables.
	LookupEnv func(string) (string, bool)
	// DotEnvFile is read for MOSP_* variables missing from the process
	// environment. A missing file is not an error.
	DotEnvFile string
}

// DefaultEnvironment reads the real process environment and ./.env.
func DefaultEnvironment() Environment {
	return Environment{LookupEnv: os.LookupEnv, DotEnvFile: ".env"}
}

// fileConfig mirrors Config for YAML; nil fields were not set.
type fileConfig struct {
	Interval       *Seconds `yaml:"interval"`
	MaxRunTime     *Seconds `yaml:"max_run_time"`
	OutputFile     *string  `yaml:"output_file"`
	AutoOutputFile *bool    `yaml:"auto_output_file"`
	OutputPath     *string  `yaml:"output_path"`
	NoHeaderRow    *bool    `yaml:"no_header_row"`
	LegacyDeltas   *bool    `yaml:"legacy_deltas"`
	MetricsAddr    *string  `yaml:"metrics_addr"`
	LogLevel       *string  `yaml:"log_level"`
	LogFormat      *string  `yaml:"log_format"`
}

type flagValues struct {
	help, version  bool
	configFile     string
	interval       Seconds
	maxRunTime     Seconds
	outputFile     string
	autoOutputFile bool
	outputPath     string
	noHeaderRow    bool
	legacyDeltas   bool
	metricsAddr    string
	logLevel       string
	logFormat      string
}

func newFlagSet(fv *flagValues) *flag.FlagSet {
	fs := flag.NewFlagSet("mosp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.BoolVar(&fv.help, "h", false, "")
	fs.BoolVar(&fv.help, "help", false, "")
	fs.BoolVar(&fv.version, "v", false, "")
	fs.BoolVar(&fv.version, "version", false, "")
	fs.Var(&fv.maxRunTime, "m", "")
	fs.Var(&fv.maxRunTime, "max-run-time", "")
	fs.Var(&fv.interval, "i", "")
	fs.Var(&fv.interval, "interval", "")
	fs.StringVar(&fv.outputFile, "w", "", "")
	fs.StringVar(&fv.outputFile, "output-file", "", "")
	fs.BoolVar(&fv.autoOutputFile, "W", false, "")
	fs.StringVar(&fv.outputPath, "b", "", "")
	fs.StringVar(&fv.outputPath, "output-path", "", "")
	fs.BoolVar(&fv.noHeaderRow, "j", false, "")
	fs.BoolVar(&fv.noHeaderRow, "no-header-row", false, "")
	fs.StringVar(&fv.configFile, "config", "", "")
	fs.BoolVar(&fv.legacyDeltas, "legacy-deltas", false, "")
	fs.StringVar(&fv.metricsAddr, "metrics-addr", "", "")
	fs.StringVar(&fv.logLevel, "log-level", "", "")
	fs.StringVar(&fv.logFormat, "log-format", "", "")
	return fs
}

// Load parses args and layers the other configuration sources beneath them.
// It returns ErrHelp or ErrVersion when those were requested, and an
// apperrors.ConfigError for anything malformed.
func Load(args []string, env Environment) (*Config, error) {
	var fv flagValues
	fs := newFlagSet(&fv)
	if err := fs.Parse(expandShortFlags(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, apperrors.NewConfigError("%v", err)
	}
	if fv.help {
		return nil, ErrHelp
	}
	if fv.version {
		return nil, ErrVersion
	}
	if fs.NArg() > 0 {
		return nil, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	lookup, err := envLookup(env)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	configFile := fv.configFile
	if configFile == "" {
		configFile, _ = lookup("CONFIG")
	}
	if configFile != "" {
		if err := applyFile(&cfg, configFile); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	applyFlags(&cfg, fs, &fv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return apperrors.NewConfigError("interval must be greater than zero")
	}
	if c.MaxRunTime < 0 {
		return apperrors.NewConfigError("max run time must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return apperrors.NewConfigError("unknown log format %q", c.LogFormat)
	}
	return nil
}

// envLookup returns a lookup for unprefixed keys that prefers the process
// environment over the .env file.
func envLookup(env Environment) (func(string) (string, bool), error) {
	dotenv := map[string]string{}
	if env.DotEnvFile != "" {
		vals, err := godotenv.Read(env.DotEnvFile)
		switch {
		case err == nil:
			dotenv = vals
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, apperrors.NewConfigError("reading %s: %v", env.DotEnvFile, err)
		}
	}
	processLookup := env.LookupEnv
	if processLookup == nil {
		processLookup = os.LookupEnv
	}
	return func(key string) (string, bool) {
		if v, ok := processLookup(EnvPrefix + key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok && v != ""
	}, nil
}

func applyFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewConfigError("opening config file: %v", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}

	if fc.Interval != nil {
		cfg.Interval = time.Duration(*fc.Interval)
	}
	if fc.MaxRunTime != nil {
		cfg.MaxRunTime = time.Duration(*fc.MaxRunTime)
	}
	setString(&cfg.OutputFile, fc.OutputFile)
	setBool(&cfg.AutoOutputFile, fc.AutoOutputFile)
	setString(&cfg.OutputPath, fc.OutputPath)
	setBool(&cfg.NoHeaderRow, fc.NoHeaderRow)
	setBool(&cfg.LegacyDeltas, fc.LegacyDeltas)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"INTERVAL", &cfg.Interval},
		{"MAX_RUN_TIME", &cfg.MaxRunTime},
	}
	for _, d := range durations {
		if v, ok := lookup(d.key); ok {
			parsed, err := ParseSeconds(v)
			if err != nil {
				return apperrors.NewConfigError("%s%s: %v", EnvPrefix, d.key, err)
			}
			*d.dst = parsed
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"AUTO_OUTPUT_FILE", &cfg.AutoOutputFile},
		{"NO_HEADER_ROW", &cfg.NoHeaderRow},
		{"LEGACY_DELTAS", &cfg.LegacyDeltas},
	}
	for _, b := range bools {
		if v, ok := lookup(b.key); ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return apperrors.NewConfigError("%s%s: invalid boolean %q", EnvPrefix, b.key, v)
			}
			*b.dst = parsed
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"OUTPUT_FILE", &cfg.OutputFile},
		{"OUTPUT_PATH", &cfg.OutputPath},
		{"METRICS_ADDR", &cfg.MetricsAddr},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"LOG_FORMAT", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = v
		}
	}
	return nil
}

// applyFlags copies only the flags that were given explicitly.
func applyFlags(cfg *Config, fs *flag.FlagSet, fv *flagValues) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i", "interval":
			cfg.Interval = time.Duration(fv.interval)
		case "m", "max-run-time":
			cfg.MaxRunTime = time.Duration(fv.maxRunTime)
		case "w", "output-file":
			cfg.OutputFile = fv.outputFile
		case "W":
			cfg.AutoOutputFile = fv.autoOutputFile
		case "b", "output-path":
			cfg.OutputPath = fv.outputPath
		case "j", "no-header-row":
			cfg.NoHeaderRow = fv.noHeaderRow
		case "legacy-deltas":
			cfg.LegacyDeltas = fv.legacyDeltas
		case "metrics-addr":
			cfg.MetricsAddr = fv.metricsAddr
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "log-format":
			cfg.LogFormat = fv.logFormat
		}
	})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// String summarizes the configuration for startup logs.
func (c Config) String() string {
	return fmt.Sprintf("interval=%v max-run-time=%v header=%t legacy-deltas=%t",
		c.Interval, c.MaxRunTime, c.WriteHeader(), c.LegacyDeltas)
}
