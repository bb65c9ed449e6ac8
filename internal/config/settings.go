package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "MYPCNOW"

	keyAppName            = "app_name"
	keyExecTimeout        = "exec_timeout"
	keyProtectedShortcuts = "protected_shortcuts"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"

	// DefaultAppName names recovery directories and the config directory.
	DefaultAppName = "MyPcNow"

	// DefaultExecTimeout bounds every external process the engine waits on.
	DefaultExecTimeout = 30 * time.Second
)

// Settings holds user-tunable behaviour. Everything else is static.
type Settings struct {
	AppName            string
	ExecTimeout        time.Duration
	ProtectedShortcuts []string
	LogLevel           string
	LogFormat          string
}

// Defaults returns the settings used when no config file is present.
func Defaults() Settings {
	return Settings{
		AppName:     DefaultAppName,
		ExecTimeout: DefaultExecTimeout,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// DefaultConfigDir returns <UserConfigDir>/mypcnow, or "" if the user
// config directory cannot be determined.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "mypcnow")
}

// LoadSettings reads config.yaml from configDir, applying MYPCNOW_* environment
// overrides. A missing directory or file is not an error.
func LoadSettings(configDir string) (Settings, error) {
	d := Defaults()

	v := viper.New()
	v.SetDefault(keyAppName, d.AppName)
	v.SetDefault(keyExecTimeout, d.ExecTimeout)
	v.SetDefault(keyProtectedShortcuts, []string{})
	v.SetDefault(keyLogLevel, d.LogLevel)
	v.SetDefault(keyLogFormat, d.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(configDir)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Settings{}, errors.Wrap(err, "read config")
			}
		}
	}

	s := Settings{
		AppName:            strings.TrimSpace(v.GetString(keyAppName)),
		ExecTimeout:        v.GetDuration(keyExecTimeout),
		ProtectedShortcuts: v.GetStringSlice(keyProtectedShortcuts),
		LogLevel:           strings.ToLower(v.GetString(keyLogLevel)),
		LogFormat:          strings.ToLower(v.GetString(keyLogFormat)),
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// validate rejects values that would make the engine unsafe or unusable.
func (s Settings) validate() error {
	if s.AppName == "" {
		return errors.Newf("%s must not be empty", keyAppName)
	}
	if strings.ContainsAny(s.AppName, `/\:*?"<>|`) || strings.Contains(s.AppName, "..") {
		return errors.Newf("%s %q is not a valid directory name", keyAppName, s.AppName)
	}
	if s.ExecTimeout <= 0 {
		return errors.Newf("%s must be positive, got %s", keyExecTimeout, s.ExecTimeout)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return errors.Newf("%s must be console or json, got %q", keyLogFormat, s.LogFormat)
	}
	return nil
}
