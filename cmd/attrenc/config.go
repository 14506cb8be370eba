package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/davinci-attrenc/api"
	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/backends"
	"github.com/vocdoni/davinci-attrenc/log"
)

const (
	defaultAPIHost   = "0.0.0.0"
	defaultAPIPort   = 9090
	defaultLogLevel  = "info"
	defaultLogOutput = "stderr"
	envPrefix        = "ATTRENC"
)

// Version is the build version, set at build time with -ldflags
var Version = "dev"

// Config holds the application configuration
type Config struct {
	Backend string      `mapstructure:"backend"`
	Kind    string      `mapstructure:"kind"`
	Schema  string      `mapstructure:"schema"`
	Values  string      `mapstructure:"values"`
	Serve   bool        `mapstructure:"serve"`
	List    bool        `mapstructure:"list"`
	API     APIConfig   `mapstructure:"api"`
	Cache   CacheConfig `mapstructure:"cache"`
	Log     LogConfig   `mapstructure:"log"`
	// args are the positional values to encode with Kind
	args []string
}

// APIConfig holds the API-specific configuration
type APIConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Backends []string `mapstructure:"backends"`
}

// CacheConfig holds the encoding cache configuration of the API
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// loadConfig loads configuration from flags, environment variables, and
// defaults. Flags are parsed from args.
func loadConfig(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend", backends.Default)
	v.SetDefault("api.host", defaultAPIHost)
	v.SetDefault("api.port", defaultAPIPort)
	v.SetDefault("api.backends", []string{})
	v.SetDefault("cache.size", api.DefaultCacheSize)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	fs := flag.NewFlagSet("attrenc", flag.ContinueOnError)
	fs.StringP("backend", "b", backends.Default, fmt.Sprintf("encoding backend %v", backends.Backends()))
	fs.StringP("kind", "k", "", fmt.Sprintf("kind of the positional values %v", attribute.Kinds()))
	fs.StringP("schema", "s", "", "attribute schema file (YAML or JSON)")
	fs.StringP("values", "v", "", "attribute values file (YAML or JSON map), requires --schema")
	fs.Bool("serve", false, "serve the HTTP API instead of encoding")
	fs.Bool("list", false, "list the available backends and their constants")
	fs.StringP("api.host", "a", defaultAPIHost, "API host")
	fs.IntP("api.port", "p", defaultAPIPort, "API port")
	fs.StringSlice("api.backends", []string{}, "backends enabled in the API, comma-separated (all if empty)")
	fs.Int("cache.size", api.DefaultCacheSize, "number of single value encodings cached by the API")
	fs.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringP("log.output", "o", defaultLogOutput, "log output (stdout, stderr or filepath)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "attrenc v%s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: attrenc [flags] [values...]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables are also available with the same name as flags,\n")
		fmt.Fprintf(os.Stderr, "  except for dots (.) which are replaced by underscores (_).\n")
		fmt.Fprintf(os.Stderr, "  For example, ATTRENC_BACKEND or ATTRENC_API_PORT\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Encode two doubles on the BN254 scalar field\n")
		fmt.Fprintf(os.Stderr, "  attrenc --backend bn254 --kind float 1.33 -2.5\n\n")
		fmt.Fprintf(os.Stderr, "  # Encode the attributes of a credential\n")
		fmt.Fprintf(os.Stderr, "  attrenc --schema license.yaml --values holder.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Serve the HTTP API\n")
		fmt.Fprintf(os.Stderr, "  attrenc --serve --api.port 9090\n")
	}

	fs.SortFlags = false
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.args = fs.Args()
	return cfg, nil
}

// validateConfig validates the loaded configuration
func validateConfig(cfg *Config) error {
	if !backends.IsValid(cfg.Backend) {
		return fmt.Errorf("invalid backend %s, available backends: %v", cfg.Backend, backends.Backends())
	}
	for _, b := range cfg.API.Backends {
		if !backends.IsValid(b) {
			return fmt.Errorf("invalid API backend %s, available backends: %v", b, backends.Backends())
		}
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("invalid log level %s", cfg.Log.Level)
	}
	if cfg.Serve || cfg.List {
		return nil
	}
	switch {
	case cfg.Schema != "" && cfg.Kind != "":
		return fmt.Errorf("--schema and --kind are mutually exclusive")
	case cfg.Schema != "":
		if cfg.Values == "" {
			return fmt.Errorf("--schema requires a --values file")
		}
		if len(cfg.args) > 0 {
			return fmt.Errorf("positional values are not allowed with --schema")
		}
	case cfg.Values != "":
		return fmt.Errorf("--values requires a --schema file")
	case cfg.Kind == "":
		return fmt.Errorf("nothing to do: use --kind with values, --schema with --values, --list or --serve")
	default:
		if _, err := attribute.ParseKind(cfg.Kind); err != nil {
			return err
		}
		if len(cfg.args) == 0 {
			return fmt.Errorf("no values to encode")
		}
	}
	return nil
}
