// Package config provides configuration management for Hibari.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/hibari-bot/hibari/internal/client"
)

// ErrConfigNotFound indicates no usable config file was found.
var ErrConfigNotFound = errors.New("config not found")

// Transport selects how API calls reach the backend. Events always arrive
// over the WebSocket.
const (
	TransportBoth = "both" // calls over HTTP, events over WebSocket
	TransportWS   = "ws"   // everything over the WebSocket
)

// Config matches the structure of hibari.yaml
type Config struct {
	Host      string    `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	Port      int       `json:"port" yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	VerifyKey string    `json:"verifyKey" yaml:"verifyKey" mapstructure:"verifyKey" validate:"required"`
	Transport string    `json:"transport" yaml:"transport" mapstructure:"transport" validate:"oneof=both ws"`
	Accounts  []Account `json:"accounts" yaml:"accounts" mapstructure:"accounts" validate:"min=1,dive"`
	Logging   Logging   `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// Account is one bot account. Per-account fields override the top-level
// connection settings when set.
type Account struct {
	Account   int64  `json:"account" yaml:"account" mapstructure:"account" validate:"required,gt=0"`
	Host      string `json:"host" yaml:"host" mapstructure:"host"`
	Port      int    `json:"port" yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	VerifyKey string `json:"verifyKey" yaml:"verifyKey" mapstructure:"verifyKey"`
	Transport string `json:"transport" yaml:"transport" mapstructure:"transport" validate:"omitempty,oneof=both ws"`
}

type Logging struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// StateDir returns the state directory path.
// Can be overridden via HIBARI_STATE_DIR environment variable.
func StateDir() string {
	if override := strings.TrimSpace(os.Getenv("HIBARI_STATE_DIR")); override != "" {
		return expandPath(override)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".hibari"
	}
	return filepath.Join(home, ".hibari")
}

// ConfigPath returns the default config file path.
// Can be overridden via HIBARI_CONFIG_PATH environment variable.
// Default: ~/.hibari/hibari.yaml
func ConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("HIBARI_CONFIG_PATH")); override != "" {
		return expandPath(override)
	}
	return filepath.Join(StateDir(), "hibari.yaml")
}

// expandPath expands ~ to home directory and resolves the path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", home, 1)
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// LoadViper loads the configuration into a Viper instance.
func LoadViper() (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	if configPath := strings.TrimSpace(os.Getenv("HIBARI_CONFIG_PATH")); configPath != "" {
		v.SetConfigFile(expandPath(configPath))
	} else {
		v.SetConfigName("hibari")
		v.SetConfigType("yaml")
		v.AddConfigPath(StateDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HIBARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	return v, nil
}

// Load reads the configuration from file or environment variables.
func Load() (*Config, error) {
	v, err := LoadViper()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand environment variables in verify keys so they can live
	// outside the config file.
	cfg.VerifyKey = os.ExpandEnv(cfg.VerifyKey)
	for i := range cfg.Accounts {
		cfg.Accounts[i].VerifyKey = os.ExpandEnv(cfg.Accounts[i].VerifyKey)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("transport", TransportBoth)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seen := make(map[int64]bool, len(c.Accounts))
	for _, acc := range c.Accounts {
		if seen[acc.Account] {
			return fmt.Errorf("account %d configured twice", acc.Account)
		}
		seen[acc.Account] = true
	}
	return nil
}

// ClientInfo resolves one account against the top-level defaults into the
// connection engine's form.
func (c *Config) ClientInfo(acc Account) client.AccountInfo {
	info := client.AccountInfo{
		Host:      c.Host,
		Port:      c.Port,
		Account:   acc.Account,
		VerifyKey: c.VerifyKey,
		OnlyWS:    c.Transport == TransportWS,
	}
	if acc.Host != "" {
		info.Host = acc.Host
	}
	if acc.Port != 0 {
		info.Port = acc.Port
	}
	if acc.VerifyKey != "" {
		info.VerifyKey = acc.VerifyKey
	}
	if acc.Transport != "" {
		info.OnlyWS = acc.Transport == TransportWS
	}
	return info
}

// AccountInfos resolves every configured account.
func (c *Config) AccountInfos() []client.AccountInfo {
	infos := make([]client.AccountInfo, 0, len(c.Accounts))
	for _, acc := range c.Accounts {
		infos = append(infos, c.ClientInfo(acc))
	}
	return infos
}
