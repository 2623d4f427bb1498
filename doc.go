// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package airlogger is a strip chart logger for Sensirion SEN5x air quality
// sensors.
//
// The sensor is sampled once per cycle. The last chart.Width samples are
// kept in a ring, normalized and drawn as a scrolling chart. While a logging
// session is active each sample is appended to a CSV file on removable
// media. A button click starts and stops a session.
//
// The binary lives in cmd/airlogger; session holds the control loop.
package airlogger
