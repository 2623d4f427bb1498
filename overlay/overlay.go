// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package overlay draws the text layers on top of the chart: the channel
// legend and the logging status indicator.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/airlogger/chart"
	"github.com/GermanBionicSystems/airlogger/reading"
)

// Legend lists every channel with its domain in the channel's color.
type Legend struct {
	face       font.Face
	style      *chart.Style
	lineHeight float64
}

// NewLegend parses the embedded Go Regular font at the given point size.
func NewLegend(style *chart.Style, size float64) (*Legend, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	return &Legend{face: face, style: style, lineHeight: size * 1.2}, nil
}

// Draw writes the labels from the top-left corner of img.
func (l *Legend) Draw(img *image.RGBA) {
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(l.face)
	for _, c := range reading.Channels() {
		dc.SetColor(l.style.Channels[c])
		dc.DrawString(c.Label(), 1, l.lineHeight*float64(c+1))
	}
}

// Status is the two-state logging indicator in the top-right corner.
type Status struct {
	// Area is cleared before each update.
	Area image.Rectangle
	// Background fills Area.
	Background color.Color
}

// Status texts.
const (
	TextLogging = "Logging"
	TextStopped = "Stopped"
	TextNoMedia = "no SD"
)

// NewStatus returns the indicator at its default place on a 320×240 frame.
func NewStatus() *Status {
	return &Status{Area: image.Rect(200, 0, 320, 20), Background: chart.Black}
}

// Draw clears the indicator area and writes text in col.
func (s *Status) Draw(img *image.RGBA, text string, col color.Color) {
	clearRect(img, s.Area, s.Background)
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{col},
		Face: face,
		Dot:  fixed.P(s.Area.Min.X, s.Area.Min.Y+face.Ascent+2),
	}
	d.DrawString(text)
}

// Logging shows whether a logging session is active.
func (s *Status) Logging(img *image.RGBA, active bool) {
	if active {
		s.Draw(img, TextLogging, chart.Green)
	} else {
		s.Draw(img, TextStopped, chart.Red)
	}
}

func clearRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}
