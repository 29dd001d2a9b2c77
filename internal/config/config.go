// Package config loads console settings from layered sources.
//
// Precedence, lowest to highest: defaults, YAML file, .env file,
// INSIGHTLENS_* environment variables, explicitly set flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/csheth/insightlens/internal/backend"
)

// EnvPrefix namespaces environment variables.
const EnvPrefix = "INSIGHTLENS_"

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 2 * time.Minute

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

var configFileNames = []string{"insightlens.yaml", "insightlens.yml"}

// Config holds the resolved settings.
type Config struct {
	BackendURL string        `koanf:"backend_url"`
	Timeout    time.Duration `koanf:"timeout"`
	AltScreen  bool          `koanf:"alt_screen"`
	LogFile    string        `koanf:"log_file"`
	Verbose    bool          `koanf:"verbose"`

	// FileUsed is the YAML file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// Options selects the sources Load reads.
type Options struct {
	ConfigFile string
	EnvFile    string
	Flags      *pflag.FlagSet
}

// ErrMissingBackendURL is returned by Validate when no backend is configured.
var ErrMissingBackendURL = errors.New("backend_url is required (set --backend-url, INSIGHTLENS_BACKEND_URL or backend_url in insightlens.yaml)")

// Load resolves the configuration. It does not validate; callers that talk
// to the backend call Validate.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"backend_url": "",
		"timeout":     DefaultTimeout.String(),
		"alt_screen":  true,
		"log_file":    "",
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(opts.ConfigFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	if len(dotenv) > 0 {
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey(opts.Flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	return &cfg, nil
}

// Validate checks the settings needed to reach the backend and normalizes
// BackendURL in place.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return ErrMissingBackendURL
	}
	normalized, err := backend.NormalizeBaseURL(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url: %w", err)
	}
	c.BackendURL = normalized
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	return nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// readEnvFile returns the INSIGHTLENS_* entries of a dotenv file as config
// keys. A missing file is not an error.
func readEnvFile(path string) (map[string]any, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading env file %s: %w", path, err)
	}
	out := make(map[string]any, len(values))
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		out[envKey(name)] = value
	}
	return out, nil
}

// envKey maps INSIGHTLENS_BACKEND_URL to backend_url.
func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		switch f.Name {
		case "no-alt-screen":
			return "alt_screen", !posflag.FlagVal(flags, f).(bool)
		case "config", "env-file":
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
}
