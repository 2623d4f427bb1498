// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package session runs the acquisition loop: read a sample, store it in the
// ring, redraw the chart and, while a logging session is active, append the
// sample to the CSV log.
//
// A single click toggles between Stopped and Logging. The loop owns every
// collaborator; none of them is used concurrently.
package session

import (
	"github.com/GermanBionicSystems/airlogger/chart"
	"github.com/GermanBionicSystems/airlogger/reading"
	"github.com/GermanBionicSystems/airlogger/storage"
)

// State is the logging session state.
type State int

const (
	Stopped State = iota
	Logging
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Logging:
		return "Logging"
	default:
		return "State(?)"
	}
}

// Sensor produces one sample per call. Unavailable channels are NaN.
type Sensor interface {
	ReadSample() (reading.Sample, error)
}

// LineWriter is an open append destination.
type LineWriter interface {
	WriteLine(line string) error
	// Close flushes and syncs buffered lines before releasing the handle.
	Close() error
}

// Storage opens the log for appending. fresh is true when the log holds no
// data yet, so the header must be written.
type Storage interface {
	OpenAppend() (w LineWriter, fresh bool, err error)
}

// Input reports a debounced click, at most once per press.
type Input interface {
	Clicked() bool
}

// Indicator shows the session state.
type Indicator interface {
	ShowStatus(s State)
}

// Frame is the chart canvas. Flush publishes what was drawn.
type Frame interface {
	chart.Canvas
	Flush() error
}

// MediaLog is the Storage for a named file on removable media.
type MediaLog struct {
	Media *storage.Media
	Name  string
}

// OpenAppend implements Storage.
func (m *MediaLog) OpenAppend() (LineWriter, bool, error) {
	f, fresh, err := m.Media.Append(m.Name)
	if err != nil {
		return nil, false, err
	}
	return f, fresh, nil
}
