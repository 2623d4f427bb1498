// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/GermanBionicSystems/airlogger/chart"
	"github.com/GermanBionicSystems/airlogger/overlay"
	"github.com/GermanBionicSystems/airlogger/reading"
	"github.com/GermanBionicSystems/airlogger/session"
	"github.com/GermanBionicSystems/airlogger/termscreen"
)

func count(img image.Image, r image.Rectangle, col color.Color) int {
	n := 0
	cr, cg, cb, _ := col.RGBA()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			if pr == cr && pg == cg && pb == cb {
				n++
			}
		}
	}
	return n
}

func TestStatus(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	area := overlay.NewStatus().Area

	s.ShowStatus(session.Logging)
	if count(s.Image(), area, chart.Green) == 0 {
		t.Error("expected the logging indicator")
	}
	s.ShowStatus(session.Stopped)
	if count(s.Image(), area, chart.Green) != 0 || count(s.Image(), area, chart.Red) == 0 {
		t.Error("expected the stopped indicator only")
	}
	if err := s.NoMedia(); err != nil {
		t.Fatal(err)
	}
	if count(s.Image(), area, chart.Red) == 0 {
		t.Error("expected the missing media indicator")
	}
}

func TestFlushToTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := termscreen.NewWriter(&buf, &termscreen.Opts{X: 80, Y: 60})
	s, err := New(term)
	if err != nil {
		t.Fatal(err)
	}
	r := chart.NewRing(chart.Width)
	chart.NewRenderer().Render(s, r)
	s.ShowStatus(session.Logging)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("nothing sent to the terminal")
	}
	// The legend is drawn on every flush. The first label is red over the
	// black background of an empty chart.
	red := 0
	img := s.Image()
	for y := 0; y < 20; y++ {
		for x := 0; x < 100; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 0 && c.G == 0 && c.B == 0 {
				red++
			}
		}
	}
	if red == 0 {
		t.Error("legend missing")
	}
}

// fakeDrawer is a display.Drawer keeping a copy of the last frame.
type fakeDrawer struct {
	bounds image.Rectangle
	frame  *image.RGBA
}

func (f *fakeDrawer) String() string          { return "fake" }
func (f *fakeDrawer) Halt() error             { return nil }
func (f *fakeDrawer) ColorModel() color.Model { return color.RGBAModel }
func (f *fakeDrawer) Bounds() image.Rectangle { return f.bounds }

func (f *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	f.frame = image.NewRGBA(f.bounds)
	draw.Draw(f.frame, r, src, sp, draw.Src)
	return nil
}

func TestTraceOnSmallDisplays(t *testing.T) {
	r := chart.NewRing(chart.Width)
	nan := math.NaN()
	s := reading.Sample{101, nan, nan, nan, nan, nan, nan, nan}
	for i := 0; i < chart.Width; i++ {
		r.Push(chart.NormalizeSample(&s, chart.Height))
	}
	for _, size := range []image.Point{{80, 60}, {128, 64}} {
		d := &fakeDrawer{bounds: image.Rectangle{Max: size}}
		scr, err := New(d)
		if err != nil {
			t.Fatal(err)
		}
		chart.NewRenderer().Render(scr, r)
		scr.ShowStatus(session.Stopped)
		if err := scr.Flush(); err != nil {
			t.Fatal(err)
		}
		// The legend and the status are in the top half.
		lower := image.Rect(0, size.Y/2, size.X, size.Y)
		if n := count(d.frame, lower, chart.DefaultStyle.Channels[reading.PM1p0]); n < size.X {
			t.Errorf("%s: %d trace pixels, expected at least %d", size, n, size.X)
		}
	}
}

func TestFlushWithoutRedraw(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	chart.NewRenderer().Render(s, chart.NewRing(chart.Width))
	s.ShowStatus(session.Logging)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	before := append([]byte(nil), s.Image().Pix...)
	for i := 0; i < 2; i++ {
		s.ShowStatus(session.Logging)
		if err := s.Flush(); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(before, s.Image().Pix) {
		t.Error("flushing without a redraw changed the frame")
	}
}
