// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chart

import (
	"image/color"

	"github.com/GermanBionicSystems/airlogger/reading"
)

// Style holds the colors of the chart. It is set once at startup.
type Style struct {
	Background color.NRGBA
	Grid       color.NRGBA
	Channels   [reading.NumChannels]color.NRGBA
}

var (
	Black     = color.NRGBA{0, 0, 0, 255}
	LightGrey = color.NRGBA{211, 211, 211, 255}
	Red       = color.NRGBA{255, 0, 0, 255}
	Purple    = color.NRGBA{128, 0, 128, 255}
	Magenta   = color.NRGBA{255, 0, 255, 255}
	Orange    = color.NRGBA{255, 165, 0, 255}
	Cyan      = color.NRGBA{0, 255, 255, 255}
	Yellow    = color.NRGBA{255, 255, 0, 255}
	Green     = color.NRGBA{0, 255, 0, 255}
	SkyBlue   = color.NRGBA{135, 206, 235, 255}
)

// DefaultStyle draws on black with light grey gridlines.
var DefaultStyle = Style{
	Background: Black,
	Grid:       LightGrey,
	Channels: [reading.NumChannels]color.NRGBA{
		reading.PM1p0:       Red,
		reading.PM2p5:       Purple,
		reading.PM4p0:       Magenta,
		reading.PM10p0:      Orange,
		reading.Humidity:    Cyan,
		reading.Temperature: Yellow,
		reading.VOCIndex:    Green,
		reading.NOxIndex:    SkyBlue,
	},
}
