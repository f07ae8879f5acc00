// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON overrides any config value with a JSON document.
	EnvConfigJSON = "GO_ACCESSIBILITY_CONTROLS_CONFIG_JSON"

	mainConfigName = "main.toml"
)

// Defaults applied before main.toml is read.
func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Go Accessibility Controls")
	v.SetDefault("db.gormEngine", EngineSQLite)
	v.SetDefault("db.path", "go-accessibility-controls.db")
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "go-accessibility-controls")
	v.SetDefault("log.serviceName", "web")
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("webserver.shutDownTime", 5) //nolint:mnd
	v.SetDefault("webserver.session.expiryTime", 24*time.Hour)
	v.SetDefault("webserver.session.cookieName", "session")
	v.SetDefault("webserver.csrf.cookieName", "csrf_")
	v.SetDefault("webserver.csrf.expiration", time.Hour)
	v.SetDefault("accessibility.cookieName", "wpac_settings")
	v.SetDefault("accessibility.cookieMaxAge", 365*24*time.Hour)
	v.SetDefault("accessibility.cacheKey", "wpac_settings")
	v.SetDefault("accessibility.fontStylesheetURL", "https://fonts.googleapis.com/css2?family=Lexend:wght@400;700&display=swap")
}

// ReadConfig from config file. path is the directory holding main.toml.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(path, mainConfigName))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if override := os.Getenv(EnvConfigJSON); override != "" {
		if err := mergeJSON(v, override); err != nil {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

func mergeJSON(v *viper.Viper, configAsJSON string) error {
	v.SetConfigType("json")

	if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
		return errors.Wrapf(err, "failed to read %s", EnvConfigJSON)
	}

	return nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without and
// fills in late defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.DB.GormEngine == EngineSQLite && c.DB.Path == "" {
		return errors.Wrap(ErrSQLitePathEmpty, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
