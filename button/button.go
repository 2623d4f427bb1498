// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package button turns a push button on a GPIO pin, or the Enter key of a
// terminal, into a polled "clicked since last poll" signal.
package button

import (
	"bufio"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultDebounce is the time the pin level must stay unchanged before it is
// accepted.
const DefaultDebounce = 20 * time.Millisecond

// Button detects clicks on a GPIO input. A click is a press followed by a
// release, each stable for at least the debounce time.
//
// Button is polled; it doesn't use edge interrupts.
type Button struct {
	pin      gpio.PinIn
	active   gpio.Level
	debounce time.Duration
	now      func() time.Time

	raw     gpio.Level
	changed time.Time
	stable  gpio.Level
	clicked bool
}

// New configures pin as an input with a pull resistor opposite to the
// active level. With activeLow the button shorts the pin to ground.
func New(pin gpio.PinIn, activeLow bool, debounce time.Duration) (*Button, error) {
	pull := gpio.PullDown
	active := gpio.High
	if activeLow {
		pull = gpio.PullUp
		active = gpio.Low
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button: configure %s: %w", pin, err)
	}
	b := &Button{pin: pin, active: active, debounce: debounce, now: time.Now}
	b.raw = pin.Read()
	b.stable = b.raw
	b.changed = b.now()
	return b, nil
}

func (b *Button) String() string {
	return fmt.Sprintf("button(%s)", b.pin)
}

// Poll samples the pin once. Call it often, the idle loop does so every few
// milliseconds.
func (b *Button) Poll() {
	now := b.now()
	l := b.pin.Read()
	if l != b.raw {
		b.raw = l
		b.changed = now
		return
	}
	if l == b.stable || now.Sub(b.changed) < b.debounce {
		return
	}
	b.stable = l
	if l != b.active {
		// Released after a debounced press.
		b.clicked = true
	}
}

// Clicked samples the pin and reports whether a click completed since the
// previous call.
func (b *Button) Clicked() bool {
	b.Poll()
	c := b.clicked
	b.clicked = false
	return c
}

// Keys reports a click for every line read from r, typically os.Stdin.
type Keys struct {
	pending atomic.Int32
}

// NewKeys starts reading r in the background until it returns an error.
func NewKeys(r io.Reader) *Keys {
	k := &Keys{}
	go func() {
		s := bufio.NewScanner(r)
		for s.Scan() {
			k.pending.Add(1)
		}
	}()
	return k
}

// Clicked reports whether a line was entered since the previous call.
// Several lines entered within one poll count once.
func (k *Keys) Clicked() bool {
	return k.pending.Swap(0) > 0
}
