// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reading defines the multi-channel air quality sample shared by the
// sensor driver, the chart and the CSV log.
//
// A channel value is either a finite measurement or missing. Missing is
// encoded as NaN, the same way the sensor reports an unavailable channel.
package reading

import (
	"fmt"
	"math"
)

// Channel identifies one measured quantity of a Sample.
type Channel int

const (
	PM1p0 Channel = iota
	PM2p5
	PM4p0
	PM10p0
	Humidity
	Temperature
	VOCIndex
	NOxIndex

	// NumChannels is the number of channels in a Sample.
	NumChannels = 8
)

// Range is the expected domain of a channel. It is a display range, not a
// physical limit: temperature is shown over 0..100 °C.
type Range struct {
	Min, Max float64
}

func (r Range) String() string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

var names = [NumChannels]string{"PM1.0", "PM2.5", "PM4.0", "PM10.0", "Hum", "Temp", "VOC", "NOx"}

var domains = [NumChannels]Range{
	PM1p0:       {0, 1000},
	PM2p5:       {0, 1000},
	PM4p0:       {0, 1000},
	PM10p0:      {0, 1000},
	Humidity:    {0, 100},
	Temperature: {0, 100},
	VOCIndex:    {1, 500},
	NOxIndex:    {1, 500},
}

// String returns the column name used in the CSV header.
func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return names[c]
}

// Domain returns the fixed expected range of the channel.
func (c Channel) Domain() Range {
	return domains[c]
}

// Label returns the channel name followed by its domain, e.g. "VOC(1-500)".
func (c Channel) Label() string {
	return fmt.Sprintf("%s(%s)", c, c.Domain())
}

// Channels returns all channels in index order.
func Channels() [NumChannels]Channel {
	var c [NumChannels]Channel
	for i := range c {
		c[i] = Channel(i)
	}
	return c
}

// Sample is one reading of all channels, taken in a single cycle.
type Sample [NumChannels]float64

// Missing returns the sentinel for an unavailable channel value.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing reports whether channel c has no value in this sample.
func (s *Sample) Missing(c Channel) bool {
	return IsMissing(s[c])
}

func (s *Sample) String() string {
	out := ""
	for c := range s {
		if c > 0 {
			out += " "
		}
		if s.Missing(Channel(c)) {
			out += fmt.Sprintf("%s=n/a", Channel(c))
		} else {
			out += fmt.Sprintf("%s=%.1f", Channel(c), s[c])
		}
	}
	return out
}
