// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chart

import "testing"

func column(n int) Column {
	p := Point(n % (Height + 1))
	return Column{p, p, p, p, p, p, p, p}
}

func TestRingEmpty(t *testing.T) {
	r := NewRing(Width)
	if r.Cap() != Width {
		t.Errorf("Cap() = %d expected %d", r.Cap(), Width)
	}
	for i := 0; i < r.Cap(); i++ {
		if r.Read(i) != EmptyColumn {
			t.Fatalf("slot %d not empty: %v", i, r.Read(i))
		}
	}
}

func TestRingWriteRead(t *testing.T) {
	r := NewRing(4)
	r.Write(2, column(7))
	if got := r.Read(2); got != column(7) {
		t.Errorf("Read(2) = %v", got)
	}
	if r.Cursor() != 0 {
		t.Errorf("Write must not move the cursor, got %d", r.Cursor())
	}
}

// After k >= capacity pushes, the ring holds exactly the last capacity
// columns, oldest first from the cursor.
func TestRingKeepsLastCapacity(t *testing.T) {
	for _, k := range []int{Width, Width + 1, 400, 2*Width + 17, 5000} {
		r := NewRing(Width)
		for n := 0; n < k; n++ {
			r.Push(column(n))
		}
		if r.Cursor() != k%Width {
			t.Errorf("k=%d cursor=%d expected %d", k, r.Cursor(), k%Width)
		}
		for i := 0; i < Width; i++ {
			expected := column(k - Width + i)
			if got := r.Oldest(i); got != expected {
				t.Fatalf("k=%d Oldest(%d) = %v expected %v", k, i, got, expected)
			}
			if got := r.Read((r.Cursor() + i) % Width); got != expected {
				t.Fatalf("k=%d Read = %v expected %v", k, got, expected)
			}
		}
	}
}

func TestRingOverwrite(t *testing.T) {
	r := NewRing(Width)
	for n := 0; n < 400; n++ {
		r.Push(Column{Point(n / 2), NoPoint, 0, 0, 0, 0, 0, Point(n % 7)})
	}
	seen := map[Column]bool{}
	for i := 0; i < Width; i++ {
		seen[r.Read(i)] = true
	}
	for n := 0; n < 80; n++ {
		c := Column{Point(n / 2), NoPoint, 0, 0, 0, 0, 0, Point(n % 7)}
		if seen[c] {
			t.Errorf("evicted sample %d still present", n)
		}
	}
	first := r.Oldest(0)
	if first[0] != 40 || first[7] != Point(80%7) {
		t.Errorf("oldest column %v expected sample 80", first)
	}
	last := r.Oldest(Width - 1)
	if last[0] != 199 || last[7] != Point(399%7) {
		t.Errorf("newest column %v expected sample 399", last)
	}
}
