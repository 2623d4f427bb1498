// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen composes the chart frame with the legend and the logging
// status indicator, and pushes it to a display.
package screen

import (
	"fmt"
	"image/color"

	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/airlogger/chart"
	"github.com/GermanBionicSystems/airlogger/framebuf"
	"github.com/GermanBionicSystems/airlogger/overlay"
	"github.com/GermanBionicSystems/airlogger/session"
)

// LegendSize is the legend font size in points.
const LegendSize = 9

// Screen is a session.Frame and session.Indicator backed by a display.
type Screen struct {
	*framebuf.Canvas
	legend *overlay.Legend
	status *overlay.Status
	// redrawn is set when the chart was painted since the last legend.
	redrawn bool
}

// New returns a chart sized Screen that flushes to dst.
func New(dst display.Drawer) (*Screen, error) {
	legend, err := overlay.NewLegend(&chart.DefaultStyle, LegendSize)
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	return &Screen{
		Canvas:  framebuf.New(chart.Width, chart.Height, dst),
		legend:  legend,
		status:  overlay.NewStatus(),
		redrawn: true,
	}, nil
}

// ShowStatus implements session.Indicator. It is visible after the next
// Flush.
func (s *Screen) ShowStatus(st session.State) {
	s.status.Logging(s.Image(), st == session.Logging)
}

// NoMedia shows that the log media is missing and flushes immediately.
func (s *Screen) NoMedia() error {
	s.status.Draw(s.Image(), overlay.TextNoMedia, chart.Red)
	return s.Flush()
}

// VLine implements chart.Canvas. The renderer clears every column with it,
// so it marks the legend for redrawing.
func (s *Screen) VLine(x, y0, y1 int, c color.Color) {
	s.redrawn = true
	s.Canvas.VLine(x, y0, y1, c)
}

// Flush draws the legend over a freshly painted chart and sends the frame.
// The antialiased legend is not drawn twice over itself.
func (s *Screen) Flush() error {
	if s.redrawn {
		s.legend.Draw(s.Image())
		s.redrawn = false
	}
	return s.Canvas.Flush()
}

var _ session.Frame = &Screen{}
var _ session.Indicator = &Screen{}
