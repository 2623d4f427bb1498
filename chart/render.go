// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chart

import (
	"image/color"

	"github.com/GermanBionicSystems/airlogger/reading"
)

const (
	// Width is the number of columns, and the ring capacity.
	Width = 320
	// Height is the vertical resolution of a normalized value.
	Height = 240
)

// Canvas is the set of drawing primitives the renderer needs. Coordinates
// outside of the canvas are ignored by implementations.
type Canvas interface {
	// VLine draws a vertical line at x from y0 to y1 exclusive.
	VLine(x, y0, y1 int, c color.Color)
	SetPixel(x, y int, c color.Color)
}

// Renderer repaints the whole chart from a Ring.
type Renderer struct {
	Style  Style
	Height int
}

// NewRenderer returns a Renderer of the default height and style.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle, Height: Height}
}

// Render draws every column of r, oldest at x=0 and newest at the right
// edge.
//
// Each column is cleared to the background, then the gridlines are drawn,
// then each channel in index order. Missing channels are skipped.
func (rd *Renderer) Render(c Canvas, r *Ring) {
	mid := rd.Height / 2
	quarter := rd.Height / 4
	for x := 0; x < r.Cap(); x++ {
		col := r.Oldest(x)
		c.VLine(x, 0, rd.Height, rd.Style.Background)
		c.SetPixel(x, mid, rd.Style.Grid)
		if x%4 == 0 {
			c.SetPixel(x, quarter, rd.Style.Grid)
			c.SetPixel(x, rd.Height-quarter, rd.Style.Grid)
		}
		for ch := 0; ch < reading.NumChannels; ch++ {
			if col[ch] == NoPoint {
				continue
			}
			c.SetPixel(x, rd.Y(col[ch]), rd.Style.Channels[ch])
		}
	}
}

// Y returns the row of a normalized value. The bottom value 0 lands on the
// last row of the chart instead of one past it.
func (rd *Renderer) Y(p Point) int {
	y := rd.Height - int(p)
	if y >= rd.Height {
		y = rd.Height - 1
	}
	if y < 0 {
		y = 0
	}
	return y
}
