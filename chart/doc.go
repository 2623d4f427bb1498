// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package chart implements the scrolling strip-chart: a fixed capacity ring
// of normalized samples and a renderer that repaints every column of the
// chart from it on each cycle.
//
// The chart is Width pixels wide, one column per sample, and Height pixels
// tall. A channel value v is drawn at y = Height - v, so 0 is the bottom row
// and Height the top row.
package chart
