// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chart

// Ring is the chart history: a fixed number of columns and a write cursor
// pointing at the next slot to overwrite, which is also the oldest column.
//
// All storage is allocated by NewRing. Ring is not safe for concurrent use.
type Ring struct {
	slots  []Column
	cursor int
}

// NewRing returns a Ring of the given capacity with every slot empty.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic("chart: ring capacity must be positive")
	}
	r := &Ring{slots: make([]Column, capacity)}
	for i := range r.slots {
		r.slots[i] = EmptyColumn
	}
	return r
}

// Cap returns the number of slots.
func (r *Ring) Cap() int {
	return len(r.slots)
}

// Cursor returns the index of the next slot to be written.
func (r *Ring) Cursor() int {
	return r.cursor
}

// Write stores col at slot. The caller keeps slot in [0, Cap()).
func (r *Ring) Write(slot int, col Column) {
	r.slots[slot] = col
}

// Read returns the column stored at slot. The caller keeps slot in
// [0, Cap()).
func (r *Ring) Read(slot int) Column {
	return r.slots[slot]
}

// Push writes col at the cursor and advances the cursor, evicting the
// oldest column.
func (r *Ring) Push(col Column) {
	r.Write(r.cursor, col)
	r.cursor = (r.cursor + 1) % len(r.slots)
}

// Oldest returns the i-th column counting from the oldest one.
func (r *Ring) Oldest(i int) Column {
	return r.Read((r.cursor + i) % len(r.slots))
}
