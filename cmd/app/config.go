package main

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/ilyakutilin/telegram_notifier/telegram"
	"github.com/ilyakutilin/telegram_notifier/utils"
)

// Environment variables override the config file, e.g.
// TGNOTIFY_TELEGRAM__TOKEN sets telegram.token.
const envPrefix = "TGNOTIFY_"

type Config struct {
	Debug    bool           `koanf:"debug"`
	Log      LogConfig      `koanf:"log"`
	Telegram TelegramConfig `koanf:"telegram"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug|info|warn|error
	Format string `koanf:"format"` // json|console
}

type TelegramConfig struct {
	Token   string        `koanf:"token"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	// Chat ids, @channels or usernames used by the notify command
	Recipients []string `koanf:"recipients"`
}

type MetricsConfig struct {
	// When set, request metrics are written here after every run, ready for the
	// node_exporter textfile collector.
	Textfile string `koanf:"textfile"`
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telegram: TelegramConfig{
			BaseURL: telegram.DefaultBaseURL,
			Timeout: telegram.DefaultTimeout,
		},
	}
}

// loadConfig layers the defaults, the YAML file at path (skipped when path is
// empty) and the environment, in that order.
func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				millisecondsHookFunc(),
				mapstructure.StringToTimeDurationHookFunc()),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envToKey maps TGNOTIFY_TELEGRAM__BASE_URL to telegram.base_url. Recipients
// given through the environment are comma separated.
func envToKey(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if key == "telegram.recipients" {
		var recipients []string
		for _, r := range strings.Split(value, ",") {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
		return key, recipients
	}
	return key, value
}

// millisecondsHookFunc reads a bare number given for a duration, such as
// `timeout: 2000` or TGNOTIFY_TELEGRAM__TIMEOUT=2000, as milliseconds.
// Values with a unit ("5s") are left to StringToTimeDurationHookFunc.
func millisecondsHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != durationType || f == durationType {
			return data, nil
		}

		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()) * time.Millisecond, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return time.Duration(reflect.ValueOf(data).Uint()) * time.Millisecond, nil
		case reflect.Float32, reflect.Float64:
			return time.Duration(reflect.ValueOf(data).Float() * float64(time.Millisecond)), nil
		case reflect.String:
			if ms, err := strconv.ParseInt(strings.TrimSpace(data.(string)), 10, 64); err == nil {
				return time.Duration(ms) * time.Millisecond, nil
			}
		}
		return data, nil
	}
}

func (c *Config) Validate() error {
	var errs utils.Errors

	if c.Telegram.Token == "" {
		errs.Append(errors.New("telegram.token is required"))
	}
	switch {
	case c.Telegram.Timeout <= 0:
		errs.Append(fmt.Errorf("telegram.timeout must be positive, got %s", c.Telegram.Timeout))
	case c.Telegram.Timeout < time.Millisecond:
		errs.Append(fmt.Errorf("telegram.timeout must be at least 1ms, got %s", c.Telegram.Timeout))
	}
	if dups := utils.FindDuplicates(c.Telegram.Recipients); len(dups) > 0 {
		errs.Append(fmt.Errorf("telegram.recipients has duplicates: %s",
			strings.Join(dups, ", ")))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs.Append(fmt.Errorf("log.level %q is not a valid level", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs.Append(fmt.Errorf(`log.format must be "json" or "console", got %q`, c.Log.Format))
	}

	return errs.ErrOrNil()
}
