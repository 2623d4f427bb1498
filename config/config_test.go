// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "airlogger.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SensorAddress != 0x69 {
		t.Errorf("sensor_address = 0x%x", cfg.SensorAddress)
	}
	if cfg.Display != DisplayTerm {
		t.Errorf("display = %q", cfg.Display)
	}
	if cfg.Debounce != 20*time.Millisecond || cfg.Cycle != time.Second || cfg.PollSteps != 100 {
		t.Errorf("timing = %s %s %d", cfg.Debounce, cfg.Cycle, cfg.PollSteps)
	}
	if !cfg.RequireMount || !cfg.ButtonActiveLow {
		t.Error("expected mount and active low defaults")
	}
	if cfg.LogFile != "airlog.csv" || cfg.MountPoint != "/media/sd" {
		t.Errorf("storage = %q %q", cfg.MountPoint, cfg.LogFile)
	}
	if cfg.Level() != logrus.InfoLevel {
		t.Errorf("level = %s", cfg.Level())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
i2c_bus: "1"
sensor_address: 0x6a
temperature_offset: 2.5
display: ssd1306
button_pin: GPIO27
button_active_low: false
debounce: 50ms
mount_point: /mnt/usb
require_mount: false
log_file: run.csv
cycle: 2s
poll_steps: 20
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := Config{
		I2CBus:            "1",
		SensorAddress:     0x6a,
		TemperatureOffset: 2.5,
		Display:           DisplaySSD1306,
		ButtonPin:         "GPIO27",
		ButtonActiveLow:   false,
		Debounce:          50 * time.Millisecond,
		MountPoint:        "/mnt/usb",
		RequireMount:      false,
		LogFile:           "run.csv",
		StorageRetry:      time.Second,
		Cycle:             2 * time.Second,
		PollSteps:         20,
		LogLevel:          "debug",
	}
	if *cfg != expected {
		t.Errorf("Load() = %+v\nexpected %+v", *cfg, expected)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("level = %s", cfg.Level())
	}
	if cfg.Offset() != 2500*physic.MilliKelvin {
		t.Errorf("offset = %s", cfg.Offset())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("an explicit path must exist")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"display", "display: lcd"},
		{"address", "sensor_address: 0x80"},
		{"debounce", "debounce: -1ms"},
		{"log file path", "log_file: ../escape.csv"},
		{"log file empty", `log_file: ""`},
		{"mount point", `mount_point: ""`},
		{"cycle", "cycle: 0s"},
		{"poll steps", "poll_steps: 0"},
		{"poll interval", "cycle: 10ns\npoll_steps: 100"},
		{"retry", "storage_retry: 0s"},
		{"level", "log_level: loud"},
		{"button", "display: ssd1306\nbutton_pin: \"\""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, test.content)); err == nil {
				t.Errorf("%q accepted", test.content)
			}
		})
	}
}
