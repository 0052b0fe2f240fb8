package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read into the config.
// A double underscore separates nesting levels:
// EARLYLINT_FIX__APPLICABILITY sets fix.applicability.
const EnvPrefix = "EARLYLINT_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps flag names to config keys. Flags not listed here are
// command options and never reach the config.
var flagKeys = map[string]string{
	"verbose":  "verbose",
	"output":   "output",
	"severity": "severity",
	"jobs":     "jobs",
	"docs-url": "docs_url",
}

// listKeys are config keys whose environment values are comma separated.
var listKeys = map[string]bool{
	"lint.disabled": true,
}

// configIn returns the first config file present in dir.
func configIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// FindConfigFile searches startDir and its parents for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func FindConfigFile(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags,
// searching for the config file from the working directory.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFrom(cwd, cfgFile, flags)
}

// LoadFrom is Load with an explicit search directory.
func LoadFrom(startDir, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	d := Defaults()
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":           d.Verbose,
		"output":            d.Output,
		"severity":          d.Severity,
		"jobs":              d.Jobs,
		"docs_url":          d.DocsURL,
		"fix.applicability": d.Fix.Applicability,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile == "" {
		cfgFile = FindConfigFile(startDir)
	} else if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s does not exist", cfgFile)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Load environment variables
	// Transform: EARLYLINT_DOCS_URL -> docs_url, EARLYLINT_LINT__DISABLED -> lint.disabled
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if f.Name == "unsafe" {
				if on, _ := flags.GetBool("unsafe"); on {
					return "fix.applicability", "maybe-incorrect"
				}
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = cfgFile

	if err := cfg.Validate(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("%s: %w", cfgFile, err)
		}
		return nil, err
	}
	return &cfg, nil
}
