// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chart

import (
	"math"

	"github.com/GermanBionicSystems/airlogger/reading"
)

// Point is a normalized channel value in [0, height], or NoPoint.
type Point int16

// NoPoint marks a channel that had no value. The renderer draws nothing for
// it.
const NoPoint Point = -1

// Column holds the normalized values of one sample, one Point per channel.
type Column [reading.NumChannels]Point

// EmptyColumn has every channel missing.
var EmptyColumn = Column{NoPoint, NoPoint, NoPoint, NoPoint, NoPoint, NoPoint, NoPoint, NoPoint}

// Normalize maps v linearly from domain onto [0, height].
//
// A missing v yields NoPoint. Values outside the domain are clamped to 0 or
// height.
func Normalize(v float64, domain reading.Range, height int) Point {
	if reading.IsMissing(v) {
		return NoPoint
	}
	span := domain.Max - domain.Min
	if span <= 0 {
		return 0
	}
	scaled := math.Floor((v - domain.Min) / span * float64(height))
	if scaled < 0 {
		return 0
	}
	if scaled > float64(height) {
		return Point(height)
	}
	return Point(scaled)
}

// NormalizeSample normalizes every channel of s against its own domain.
func NormalizeSample(s *reading.Sample, height int) Column {
	var col Column
	for _, c := range reading.Channels() {
		col[c] = Normalize(s[c], c.Domain(), height)
	}
	return col
}
