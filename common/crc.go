// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains the Sensirion word framing shared by the sensor
// drivers: every 16 bit word on the wire is followed by a CRC8 byte.
package common

import "errors"

// ErrCRC is returned by DecodeWords when a word's checksum doesn't match.
var ErrCRC = errors.New("crc mismatch")

// CRC8 calculates the 8-bit CRC of the byte slice parameter and returns the
// calculated value. Polynomial 0x31, initial value 0xff.
func CRC8(bytes []byte) byte {
	var crc byte = 0xff
	for _, val := range bytes {
		crc ^= val
		for i := 0; i < 8; i++ {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (byte)((crc << 1) ^ 0x31)
			}
		}
	}
	return crc
}

// EncodeWords converts the words into big endian byte pairs, each followed
// by its CRC.
func EncodeWords(words []uint16) []byte {
	b := make([]byte, len(words)*3)
	for ix, w := range words {
		b[ix*3] = byte(w >> 8)
		b[ix*3+1] = byte(w)
		b[ix*3+2] = CRC8(b[ix*3 : ix*3+2])
	}
	return b
}

// DecodeWords verifies and strips the CRC bytes of a response. len(b) must
// be a multiple of 3.
func DecodeWords(b []byte) ([]uint16, error) {
	if len(b)%3 != 0 {
		return nil, errors.New("response length is not a multiple of 3")
	}
	words := make([]uint16, len(b)/3)
	for ix := range words {
		if CRC8(b[ix*3:ix*3+2]) != b[ix*3+2] {
			return nil, ErrCRC
		}
		words[ix] = uint16(b[ix*3])<<8 | uint16(b[ix*3+1])
	}
	return words, nil
}

// WordBytes flattens decoded words back into their data bytes. Sensirion
// string responses (product name, serial number) are packed this way.
func WordBytes(words []uint16) []byte {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}
