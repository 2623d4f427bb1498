// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// airlogger samples a SEN5x air quality sensor, draws a scrolling chart of
// the last readings and appends them to a CSV file while logging is
// toggled on.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/airlogger/button"
	"github.com/GermanBionicSystems/airlogger/config"
	"github.com/GermanBionicSystems/airlogger/screen"
	"github.com/GermanBionicSystems/airlogger/sen5x"
	"github.com/GermanBionicSystems/airlogger/session"
	"github.com/GermanBionicSystems/airlogger/storage"
	"github.com/GermanBionicSystems/airlogger/termscreen"
)

// bringUp prepares the sensor. Every step is attempted; failures are
// logged and the sensor is used as is.
func bringUp(dev *sen5x.Dev, cfg *config.Config) {
	if err := dev.Reset(); err != nil {
		log.WithError(err).Warn("sensor reset failed")
	}
	if err := dev.SetTemperatureOffset(cfg.Offset()); err != nil {
		log.WithError(err).Warn("setting temperature offset failed")
	}
	fields := log.Fields{}
	if name, err := dev.ProductName(); err != nil {
		log.WithError(err).Warn("reading product name failed")
	} else {
		fields["product"] = name
	}
	if serial, err := dev.SerialNumber(); err != nil {
		log.WithError(err).Warn("reading serial number failed")
	} else {
		fields["serial"] = serial
	}
	if v, err := dev.Version(); err != nil {
		log.WithError(err).Warn("reading version failed")
	} else {
		fields["version"] = v.String()
	}
	log.WithFields(fields).Info("sensor found")
	if err := dev.Start(); err != nil {
		log.WithError(err).Warn("starting measurement failed")
	}
}

// openDisplay returns the display sink and the matching input source.
func openDisplay(cfg *config.Config, bus i2c.Bus) (display.Drawer, session.Input, error) {
	switch cfg.Display {
	case config.DisplaySSD1306:
		oled, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
		if err != nil {
			return nil, nil, err
		}
		pin := gpioreg.ByName(cfg.ButtonPin)
		if pin == nil {
			return nil, nil, fmt.Errorf("button pin %q not found", cfg.ButtonPin)
		}
		b, err := button.New(pin, cfg.ButtonActiveLow, cfg.Debounce)
		if err != nil {
			return nil, nil, err
		}
		return oled, b, nil
	default:
		log.Info("press Enter to toggle logging")
		return termscreen.New(&termscreen.Opts{X: 80, Y: 60}), button.NewKeys(os.Stdin), nil
	}
}

func mainImpl() error {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := sen5x.NewI2C(bus, cfg.SensorAddress)
	if err != nil {
		return err
	}
	bringUp(dev, cfg)
	defer dev.Halt()

	drawer, input, err := openDisplay(cfg, bus)
	if err != nil {
		return err
	}
	defer drawer.Halt()
	scr, err := screen.New(drawer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	media := &storage.Media{Dir: cfg.MountPoint, RequireMount: cfg.RequireMount}
	err = media.Wait(ctx, cfg.StorageRetry, func(err error) {
		log.WithError(err).WithField("path", media.Dir).Warn("waiting for log media")
		if err := scr.NoMedia(); err != nil {
			log.WithError(err).Warn("display update failed")
		}
	})
	if err != nil {
		return nil
	}

	c, err := session.New(&session.Opts{
		Sensor:    dev,
		Storage:   &session.MediaLog{Media: media, Name: cfg.LogFile},
		Input:     input,
		Frame:     scr,
		Indicator: scr,
		Log:       log.StandardLogger(),
		Cycle:     cfg.Cycle,
		PollSteps: cfg.PollSteps,
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"media": media, "display": drawer}).Info("logger ready")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "airlogger: %s.\n", err)
		os.Exit(1)
	}
}
