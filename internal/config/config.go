// Package config loads the device-identity YAML file that seeds the
// DeviceManager and the discovery documents at bootstrap.
package config

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Device describes the identity fields baked into the DeviceManager and the
// discovery documents.
type Device struct {
	NcVersion         string `mapstructure:"ncVersion"`
	ManufacturerName  string `mapstructure:"manufacturerName"`
	ProductName       string `mapstructure:"productName"`
	ProductKey        string `mapstructure:"productKey"`
	ProductRevision   string `mapstructure:"productRevision"`
	SerialNumber      string `mapstructure:"serialNumber"`
	DeviceName        string `mapstructure:"deviceName"`
	NodeId            string `mapstructure:"nodeId"`
	DeviceId          string `mapstructure:"deviceId"`
}

// Config is the full on-disk shape: device identity plus listen/discovery
// addresses.
type Config struct {
	Listen    string `mapstructure:"listen"`
	Discovery string `mapstructure:"discovery"`
	Device    Device `mapstructure:"device"`
}

// Loader wraps a *viper.Viper bound to one YAML file and supports the
// user-facing device fields (deviceName) being hot-reloaded without a
// restart.
type Loader struct {
	v      *viper.Viper
	logger *slog.Logger
}

// NewLoader reads path once; call Watch to pick up subsequent edits.
func NewLoader(path string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("listen", ":8080")
	v.SetDefault("discovery", ":8081")
	v.SetDefault("device.ncVersion", "v1.0.0")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return &Loader{v: v, logger: logger}, nil
}

// Current unmarshals the present state of the config file.
func (l *Loader) Current() (Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Watch invokes onChange every time the underlying file changes on disk.
func (l *Loader) Watch(onChange func(Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.Current()
		if err != nil {
			l.logger.Warn("config reload failed, keeping previous value", slog.Any("error", err))
			return
		}
		l.logger.Info("config reloaded", slog.String("file", e.Name))
		onChange(cfg)
	})
	l.v.WatchConfig()
}
