// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package button

import (
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestButton(t *testing.T, activeLow bool) (*Button, *gpiotest.Pin, *clock) {
	pin := &gpiotest.Pin{N: "GPIO37", Num: 37}
	b, err := New(pin, activeLow, DefaultDebounce)
	if err != nil {
		t.Fatal(err)
	}
	clk := &clock{t: time.Unix(1000, 0)}
	b.now = clk.now
	b.changed = clk.t
	return b, pin, clk
}

// hold sets the pin level and polls it for d in 5ms steps, returning the
// number of clicks seen.
func hold(b *Button, pin *gpiotest.Pin, clk *clock, l gpio.Level, d time.Duration) int {
	pin.L = l
	clicks := 0
	for elapsed := time.Duration(0); elapsed < d; elapsed += 5 * time.Millisecond {
		if b.Clicked() {
			clicks++
		}
		clk.advance(5 * time.Millisecond)
	}
	return clicks
}

func TestNewConfiguresPull(t *testing.T) {
	_, pin, _ := newTestButton(t, true)
	if pin.P != gpio.PullUp {
		t.Errorf("active low button needs a pull up, got %s", pin.P)
	}
	_, pin, _ = newTestButton(t, false)
	if pin.P != gpio.PullDown {
		t.Errorf("active high button needs a pull down, got %s", pin.P)
	}
}

func TestClick(t *testing.T) {
	b, pin, clk := newTestButton(t, true)
	if n := hold(b, pin, clk, gpio.High, 100*time.Millisecond); n != 0 {
		t.Fatalf("idle button clicked %d times", n)
	}
	if n := hold(b, pin, clk, gpio.Low, 100*time.Millisecond); n != 0 {
		t.Fatalf("a press alone is not a click, got %d", n)
	}
	if n := hold(b, pin, clk, gpio.High, 100*time.Millisecond); n != 1 {
		t.Fatalf("expected one click on release, got %d", n)
	}
	if b.Clicked() {
		t.Error("click must be reported once")
	}
}

func TestBounceIgnored(t *testing.T) {
	b, pin, clk := newTestButton(t, false)
	clicks := 0
	for i := 0; i < 5; i++ {
		clicks += hold(b, pin, clk, gpio.High, 5*time.Millisecond)
		clicks += hold(b, pin, clk, gpio.Low, 5*time.Millisecond)
	}
	if clicks != 0 {
		t.Errorf("contact bounce produced %d clicks", clicks)
	}
}

func TestString(t *testing.T) {
	b, _, _ := newTestButton(t, true)
	if s := b.String(); !strings.Contains(s, "GPIO37") {
		t.Errorf("String() = %q", s)
	}
}

func TestKeys(t *testing.T) {
	k := NewKeys(strings.NewReader("\n\n"))
	deadline := time.Now().Add(time.Second)
	for !k.Clicked() {
		if time.Now().After(deadline) {
			t.Fatal("Enter not reported")
		}
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	k.Clicked()
	if k.Clicked() {
		t.Error("lines must be consumed by Clicked")
	}
}
