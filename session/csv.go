// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/airlogger/reading"
)

// Header is the first line of a log file.
const Header = "time[ms],PM1.0,PM2.5,PM4.0,PM10.0,Hum,Temp,VOC,NOx"

// NotAvailable replaces a missing channel value in a row.
const NotAvailable = "n/a"

// FormatRow returns the log line for a sample taken elapsed milliseconds
// after the session started. Values use six decimals.
func FormatRow(elapsed uint32, s *reading.Sample) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(elapsed), 10))
	for c := range s {
		b.WriteByte(',')
		if s.Missing(reading.Channel(c)) {
			b.WriteString(NotAvailable)
			continue
		}
		b.WriteString(strconv.FormatFloat(s[c], 'f', 6, 64))
	}
	return b.String()
}
