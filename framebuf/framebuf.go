// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framebuf is an in-memory canvas that is flushed as a whole to a
// display.Drawer.
//
// The chart is always composed at its native resolution. When the display
// is larger the frame is scaled up with nearest neighbour sampling. When it
// is smaller each display pixel takes the most saturated pixel of the block
// it covers, so single pixel traces survive on small OLEDs and terminals.
package framebuf

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
)

// Canvas is a RGBA frame buffer bound to a display.
type Canvas struct {
	img    *image.RGBA
	scaled *image.RGBA
	dst    display.Drawer
}

// New returns a Canvas of w×h pixels, cleared to black, that flushes to dst.
// dst may be nil, in which case Flush is a no-op.
func New(w, h int, dst display.Drawer) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), dst: dst}
	draw.Draw(c.img, c.img.Bounds(), image.Black, image.Point{}, draw.Src)
	if dst != nil && !dst.Bounds().Eq(c.img.Bounds()) {
		c.scaled = image.NewRGBA(dst.Bounds())
	}
	return c
}

func (c *Canvas) String() string {
	if c.dst == nil {
		return fmt.Sprintf("framebuf(%s)", c.img.Bounds().Size())
	}
	return fmt.Sprintf("framebuf(%s) -> %s", c.img.Bounds().Size(), c.dst)
}

// Bounds returns the frame size.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the frame. Overlays draw into it directly.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// FillRect paints r with col.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// VLine implements chart.Canvas.
func (c *Canvas) VLine(x, y0, y1 int, col color.Color) {
	c.FillRect(image.Rect(x, y0, x+1, y1), col)
}

// SetPixel implements chart.Canvas.
func (c *Canvas) SetPixel(x, y int, col color.Color) {
	c.img.Set(x, y, col)
}

// Flush sends the frame to the display.
func (c *Canvas) Flush() error {
	if c.dst == nil {
		return nil
	}
	src := c.img
	if c.scaled != nil {
		sb, db := c.img.Bounds(), c.scaled.Bounds()
		if db.Dx() >= sb.Dx() && db.Dy() >= sb.Dy() {
			xdraw.NearestNeighbor.Scale(c.scaled, db, c.img, sb, draw.Src, nil)
		} else {
			reduce(c.scaled, c.img)
		}
		src = c.scaled
	}
	if err := c.dst.Draw(c.dst.Bounds(), src, c.dst.Bounds().Min); err != nil {
		return fmt.Errorf("framebuf: flush to %s: %w", c.dst, err)
	}
	return nil
}

// reduce shrinks src into dst. Every dst pixel covers a block of src pixels
// and keeps the one with the highest saturation, then brightness. Traces
// are saturated, gridlines are grey and the background is black.
func reduce(dst, src *image.RGBA) {
	sb, db := src.Bounds(), dst.Bounds()
	for dy := 0; dy < db.Dy(); dy++ {
		y0, y1 := span(dy, sb.Dy(), db.Dy())
		for dx := 0; dx < db.Dx(); dx++ {
			x0, x1 := span(dx, sb.Dx(), db.Dx())
			var best color.RGBA
			score := -1
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					p := src.RGBAAt(sb.Min.X+x, sb.Min.Y+y)
					if s := salience(p); s > score {
						best, score = p, s
					}
				}
			}
			dst.SetRGBA(db.Min.X+dx, db.Min.Y+dy, best)
		}
	}
}

// span returns the source range [lo, hi) covered by destination index i.
func span(i, src, dst int) (int, int) {
	lo := i * src / dst
	hi := (i + 1) * src / dst
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func salience(c color.RGBA) int {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	return int(hi-lo)<<8 | int(hi)
}
