// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package storage is the append-only log destination on removable media.
//
// Files are always opened in append mode so that reopening, in the same
// process or after a restart, never truncates what was logged before.
package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// ErrNotMounted is returned by Check when the media is absent.
var ErrNotMounted = errors.New("storage: media not mounted")

// Media is a directory on removable storage.
type Media struct {
	// Dir is the mount point.
	Dir string
	// RequireMount rejects a Dir that is a plain directory of the parent
	// filesystem, i.e. the card is not inserted.
	RequireMount bool
}

func (m *Media) String() string {
	return m.Dir
}

// Check returns nil when Dir is present, writable and, if RequireMount is
// set, a mount point.
func (m *Media) Check() error {
	fi, err := os.Stat(m.Dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotMounted, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotMounted, m.Dir)
	}
	if m.RequireMount {
		mounted, err := isMountPoint(m.Dir)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotMounted, err)
		}
		if !mounted {
			return fmt.Errorf("%w: %s is not a mount point", ErrNotMounted, m.Dir)
		}
	}
	if err := unix.Access(m.Dir, unix.W_OK); err != nil {
		return fmt.Errorf("storage: %s is not writable: %w", m.Dir, err)
	}
	return nil
}

// Wait blocks until Check succeeds, calling missing after every failed
// attempt and retrying every interval. It returns ctx.Err() if ctx is done
// first.
func (m *Media) Wait(ctx context.Context, interval time.Duration, missing func(error)) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		err := m.Check()
		if err == nil {
			return nil
		}
		if missing != nil {
			missing(err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// isMountPoint compares the device of dir with the device of its parent.
func isMountPoint(dir string) (bool, error) {
	var st, parent unix.Stat_t
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	if err := unix.Stat(abs, &st); err != nil {
		return false, err
	}
	if err := unix.Stat(filepath.Dir(abs), &parent); err != nil {
		return false, err
	}
	return st.Dev != parent.Dev || st.Ino == parent.Ino, nil
}

// File is a text file opened for appending lines.
type File struct {
	f *os.File
	w *bufio.Writer
}

// Append opens name inside the media for appending, creating it if needed.
// fresh reports whether the file had no prior content.
func (m *Media) Append(name string) (*File, bool, error) {
	path := filepath.Join(m.Dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("storage: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("storage: stat %s: %w", path, err)
	}
	return &File{f: f, w: bufio.NewWriter(f)}, fi.Size() == 0, nil
}

func (f *File) String() string {
	return f.f.Name()
}

// WriteLine appends line and a newline and syncs it to the media, so at
// most the line being written is lost on power failure.
func (f *File) WriteLine(line string) error {
	if _, err := f.w.WriteString(line); err != nil {
		return fmt.Errorf("storage: write %s: %w", f, err)
	}
	if err := f.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("storage: write %s: %w", f, err)
	}
	if err := f.w.Flush(); err != nil {
		return fmt.Errorf("storage: write %s: %w", f, err)
	}
	if err := f.f.Sync(); err != nil {
		return fmt.Errorf("storage: sync %s: %w", f, err)
	}
	return nil
}

// Close flushes buffered lines, syncs them to the media and closes the file.
func (f *File) Close() error {
	err := f.w.Flush()
	if err == nil {
		err = f.f.Sync()
	}
	if cerr := f.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("storage: close %s: %w", f, err)
	}
	return nil
}
