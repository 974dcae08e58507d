// Package config resolves settings from flags, DIARY_* environment
// variables, an optional .env file and an optional .diary.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys understood in the config file and, upper-cased with dots replaced by
// underscores and a DIARY_ prefix, in the environment.
const (
	KeyAPIURL   = "api.url"
	KeyTimeout  = "api.timeout"
	KeyState    = "state.path"
	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"
	KeyDebounce = "search.debounce"
)

// PathEnv names a directory searched first for the config file.
const PathEnv = "DIARY_CONFIG_PATH"

// Defaults.
const (
	DefaultAPIURL   = "http://localhost:5000/api"
	DefaultTimeout  = 15 * time.Second
	DefaultState    = "~/.diary"
	DefaultLogLevel = "warn"
	DefaultDebounce = 500 * time.Millisecond
)

// flagKeys maps persistent flag names onto config keys.
var flagKeys = map[string]string{
	"api-url":   KeyAPIURL,
	"timeout":   KeyTimeout,
	"state":     KeyState,
	"log-level": KeyLogLevel,
	"log-file":  KeyLogFile,
}

// Config is the resolved configuration.
type Config struct {
	APIURL    string
	Timeout   time.Duration
	StatePath string
	LogLevel  string
	LogFile   string
	Debounce  time.Duration

	// File is the config file that was read, if any.
	File string
}

// Options says where to look.
type Options struct {
	// File is an explicit config file; it must exist when set.
	File string
	// EnvFile is loaded into the environment first; missing is fine.
	EnvFile string
	// Flags override every other source when set by the user.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(o Options) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyState, DefaultState)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDebounce, DefaultDebounce)

	v.SetEnvPrefix("DIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.File != "" {
		v.SetConfigFile(o.File)
	} else {
		v.SetConfigName(".diary")
		v.SetConfigType("yaml")
		if override := os.Getenv(PathEnv); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	if o.Flags != nil {
		for name, key := range flagKeys {
			if f := o.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind --%s: %w", name, err)
				}
			}
		}
	}

	state, err := homedir.Expand(v.GetString(KeyState))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyState, err)
	}
	logFile := v.GetString(KeyLogFile)
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", KeyLogFile, err)
		}
	}

	c := &Config{
		APIURL:    strings.TrimSpace(v.GetString(KeyAPIURL)),
		Timeout:   v.GetDuration(KeyTimeout),
		StatePath: filepath.Clean(state),
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:   logFile,
		Debounce:  v.GetDuration(KeyDebounce),
		File:      v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.APIURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.StatePath, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func absoluteURL(v any) error {
	s, _ := v.(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute http(s) url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an absolute http(s) url")
	}
	return nil
}
