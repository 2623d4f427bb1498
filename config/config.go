// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the logger settings from a YAML file.
//
// Every key has a default, so the file is optional.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/physic"
)

// Display names.
const (
	DisplayTerm    = "term"
	DisplaySSD1306 = "ssd1306"
)

// Config holds the logger settings.
type Config struct {
	// I2CBus is the bus name passed to i2creg.Open. Empty selects the first
	// bus.
	I2CBus        string `mapstructure:"i2c_bus"`
	SensorAddress uint16 `mapstructure:"sensor_address"`
	// TemperatureOffset in °C is subtracted from the temperature by the
	// sensor to compensate for self heating.
	TemperatureOffset float64 `mapstructure:"temperature_offset"`

	Display         string        `mapstructure:"display"`
	ButtonPin       string        `mapstructure:"button_pin"`
	ButtonActiveLow bool          `mapstructure:"button_active_low"`
	Debounce        time.Duration `mapstructure:"debounce"`

	MountPoint   string        `mapstructure:"mount_point"`
	RequireMount bool          `mapstructure:"require_mount"`
	LogFile      string        `mapstructure:"log_file"`
	StorageRetry time.Duration `mapstructure:"storage_retry"`

	Cycle     time.Duration `mapstructure:"cycle"`
	PollSteps int           `mapstructure:"poll_steps"`
	LogLevel  string        `mapstructure:"log_level"`
}

// Load reads the configuration from path. When path is empty,
// airlogger.yaml is searched in the working directory and /etc/airlogger;
// not finding it there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("airlogger")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/airlogger/")
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("i2c_bus", "")
	v.SetDefault("sensor_address", 0x69)
	v.SetDefault("temperature_offset", 0.0)
	v.SetDefault("display", DisplayTerm)
	v.SetDefault("button_pin", "GPIO17")
	v.SetDefault("button_active_low", true)
	v.SetDefault("debounce", "20ms")
	v.SetDefault("mount_point", "/media/sd")
	v.SetDefault("require_mount", true)
	v.SetDefault("log_file", "airlog.csv")
	v.SetDefault("storage_retry", "1s")
	v.SetDefault("cycle", "1s")
	v.SetDefault("poll_steps", 100)
	v.SetDefault("log_level", "info")
}

func (c *Config) validate() error {
	switch c.Display {
	case DisplayTerm, DisplaySSD1306:
	default:
		return fmt.Errorf("config: unknown display %q", c.Display)
	}
	if c.SensorAddress < 0x08 || c.SensorAddress > 0x77 {
		return fmt.Errorf("config: sensor_address 0x%x is not a 7 bit address", c.SensorAddress)
	}
	if c.Display == DisplaySSD1306 && c.ButtonPin == "" {
		return errors.New("config: button_pin is required with the ssd1306 display")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("config: negative debounce %s", c.Debounce)
	}
	if c.MountPoint == "" {
		return errors.New("config: mount_point is required")
	}
	if c.LogFile == "" || filepath.Base(c.LogFile) != c.LogFile || strings.HasPrefix(c.LogFile, ".") {
		return fmt.Errorf("config: log_file %q must be a plain file name", c.LogFile)
	}
	if c.StorageRetry <= 0 {
		return fmt.Errorf("config: storage_retry must be positive, got %s", c.StorageRetry)
	}
	if c.Cycle <= 0 || c.PollSteps <= 0 || c.Cycle/time.Duration(c.PollSteps) <= 0 {
		return fmt.Errorf("config: cycle %s cannot be split in %d polls", c.Cycle, c.PollSteps)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

// Offset returns TemperatureOffset as a temperature difference.
func (c *Config) Offset() physic.Temperature {
	return physic.Temperature(c.TemperatureOffset*1000) * physic.MilliKelvin
}
