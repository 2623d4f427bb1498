// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"math"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/airlogger/reading"
)

func TestHeader(t *testing.T) {
	fields := strings.Split(Header, ",")
	if len(fields) != reading.NumChannels+1 {
		t.Fatalf("header has %d fields", len(fields))
	}
	for _, c := range reading.Channels() {
		if fields[c+1] != c.String() {
			t.Errorf("column %d = %q expected %q", c+1, fields[c+1], c)
		}
	}
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		elapsed uint32
		s       reading.Sample
		want    string
	}{
		{
			0,
			reading.Sample{1, 2.5, 3, 4, 45.5, 21.25, 100, 1},
			"0,1.000000,2.500000,3.000000,4.000000,45.500000,21.250000,100.000000,1.000000",
		},
		{
			4294967295,
			reading.Sample{0, 0, 0, 0, 50, math.NaN(), 1, math.NaN()},
			"4294967295,0.000000,0.000000,0.000000,0.000000,50.000000,n/a,1.000000,n/a",
		},
		{
			1500,
			reading.Sample{-0.5, 0, 0, 0, 0, -5, 0, 0},
			"1500,-0.500000,0.000000,0.000000,0.000000,0.000000,-5.000000,0.000000,0.000000",
		},
	}
	for _, test := range tests {
		if got := FormatRow(test.elapsed, &test.s); got != test.want {
			t.Errorf("FormatRow(%d) = %q expected %q", test.elapsed, got, test.want)
		}
	}
}
