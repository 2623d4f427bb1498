// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GermanBionicSystems/airlogger/chart"
)

// DefaultCycle is the sampling period.
const DefaultCycle = time.Second

// DefaultPollSteps is the number of input polls per idle window.
const DefaultPollSteps = 100

// Opts configures a Controller. Sensor, Storage, Input, Frame and Indicator
// are required.
type Opts struct {
	Sensor    Sensor
	Storage   Storage
	Input     Input
	Frame     Frame
	Indicator Indicator
	// Log receives acquisition failures and the per sample echo. Defaults
	// to the standard logrus logger.
	Log logrus.FieldLogger
	// Cycle is the length of one idle window. Defaults to DefaultCycle.
	Cycle time.Duration
	// PollSteps is the number of input polls per idle window. Defaults to
	// DefaultPollSteps.
	PollSteps int
}

// Controller is the explicit state of the logger: the ring, the session
// state and the open log.
type Controller struct {
	sensor    Sensor
	storage   Storage
	input     Input
	frame     Frame
	indicator Indicator
	log       logrus.FieldLogger
	cycle     time.Duration
	pollSteps int

	ring     *chart.Ring
	renderer *chart.Renderer

	state State
	start time.Time
	out   LineWriter

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a Stopped controller with an empty ring.
func New(opts *Opts) (*Controller, error) {
	if opts.Sensor == nil || opts.Storage == nil || opts.Input == nil || opts.Frame == nil || opts.Indicator == nil {
		return nil, errors.New("session: missing collaborator")
	}
	c := &Controller{
		sensor:    opts.Sensor,
		storage:   opts.Storage,
		input:     opts.Input,
		frame:     opts.Frame,
		indicator: opts.Indicator,
		log:       opts.Log,
		cycle:     opts.Cycle,
		pollSteps: opts.PollSteps,
		ring:      chart.NewRing(chart.Width),
		renderer:  chart.NewRenderer(),
		now:       time.Now,
		sleep:     sleepContext,
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	if c.cycle <= 0 {
		c.cycle = DefaultCycle
	}
	if c.pollSteps <= 0 {
		c.pollSteps = DefaultPollSteps
	}
	return c, nil
}

func (c *Controller) String() string {
	return fmt.Sprintf("session(%s)", c.state)
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Ring returns the sample history.
func (c *Controller) Ring() *chart.Ring {
	return c.ring
}

// Step runs one acquisition cycle.
//
// A failed acquisition leaves the ring and the log untouched and is
// returned. Otherwise the sample is stored, the chart redrawn and, while
// Logging, appended to the log.
func (c *Controller) Step() error {
	s, err := c.sensor.ReadSample()
	if err != nil {
		return fmt.Errorf("session: acquire: %w", err)
	}
	c.log.Debug(s.String())
	c.ring.Push(chart.NormalizeSample(&s, c.renderer.Height))
	c.renderer.Render(c.frame, c.ring)
	c.indicator.ShowStatus(c.state)
	ferr := c.frame.Flush()
	if ferr != nil {
		ferr = fmt.Errorf("session: redraw: %w", ferr)
	}
	if c.state != Logging {
		return ferr
	}
	elapsed := uint32(c.now().Sub(c.start).Milliseconds())
	if err := c.out.WriteLine(FormatRow(elapsed, &s)); err != nil {
		return errors.Join(ferr, fmt.Errorf("session: append: %w", err))
	}
	return ferr
}

// Toggle switches between Stopped and Logging.
//
// Starting a session opens the log, writing the header when the log is
// new. When the log cannot be opened the state stays Stopped. Stopping
// closes the log; the state is Stopped even if closing fails.
func (c *Controller) Toggle() error {
	var err error
	switch c.state {
	case Stopped:
		out, fresh, oerr := c.storage.OpenAppend()
		if oerr != nil {
			return fmt.Errorf("session: open log: %w", oerr)
		}
		if fresh {
			if err := out.WriteLine(Header); err != nil {
				return errors.Join(fmt.Errorf("session: write header: %w", err), out.Close())
			}
		}
		c.out = out
		c.start = c.now()
		c.state = Logging
	case Logging:
		if cerr := c.out.Close(); cerr != nil {
			err = fmt.Errorf("session: close log: %w", cerr)
		}
		c.out = nil
		c.state = Stopped
	}
	c.log.WithField("state", c.state).Info("session toggled")
	c.indicator.ShowStatus(c.state)
	if ferr := c.frame.Flush(); ferr != nil {
		err = errors.Join(err, fmt.Errorf("session: redraw: %w", ferr))
	}
	return err
}

// Idle polls the input PollSteps times spread over one cycle. A click
// toggles the session and ends the window early. It returns the context
// error when ctx is cancelled.
func (c *Controller) Idle(ctx context.Context) error {
	step := c.cycle / time.Duration(c.pollSteps)
	for i := 0; i < c.pollSteps; i++ {
		if c.input.Clicked() {
			if err := c.Toggle(); err != nil {
				c.log.WithError(err).Error("toggle failed")
			}
			return nil
		}
		if err := c.sleep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// Run alternates Step and Idle until ctx is cancelled. An active session
// is closed before returning; the returned error is the close error, if
// any.
func (c *Controller) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := c.Step(); err != nil {
			c.log.WithError(err).Warn("cycle failed")
		}
		if err := c.Idle(ctx); err != nil {
			break
		}
	}
	if c.state == Logging {
		return c.Toggle()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
