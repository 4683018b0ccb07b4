package settings

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Settings holds the process-wide configuration, read once at startup.
// Values come from environment variables (LOG_LEVEL, PORT) with an
// optional .env file for local development.
type Settings struct {
	LogLevel string `mapstructure:"log_level"`
	Port     int    `mapstructure:"port"`
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.LogLevel, validation.In(
			LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
		)),
		validation.Field(&s.Port, validation.Min(1), validation.Max(65535)),
	)
}

// Load reads settings from the environment. Cloud providers often specify
// the listen port via the PORT env var, so it overrides the default.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("port", 8080)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing .env file is fine; only real read failures matter.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
